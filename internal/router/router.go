// Package router decodes callback tokens into render actions. It is
// the failure-containment boundary for the callback flow: every branch
// returns an action, never an error or a panic.
package router

import (
	"context"
	"strings"

	"github.com/danverh/ytgrab-bot/internal/menu"
	"github.com/danverh/ytgrab-bot/internal/youtube"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

// MetadataSource re-fetches metadata for branches that need a fresh
// rendition set. Satisfied by *youtube.Fetcher.
type MetadataSource interface {
	FetchWithRetry(ctx context.Context, id youtube.VideoID) (*youtube.Metadata, error)
}

// RenderAction is the tagged result of routing one token. The
// transport-facing caller switches over the concrete types and owns
// all platform-specific rendering.
type RenderAction interface {
	renderAction()
}

// ShowDownload presents the direct link for the chosen rendition.
type ShowDownload struct {
	ID    youtube.VideoID
	Title string
	Label string
	URL   string
}

// ShowAlternateLinks presents third-party download services. Pure
// formatting; no extraction call is ever made for it.
type ShowAlternateLinks struct {
	ID youtube.VideoID
}

// ShowMetadataView presents title, channel and duration.
type ShowMetadataView struct {
	ID       youtube.VideoID
	Title    string
	Channel  string
	Duration int
}

// ShowOptionsAgain is the "back" case: the pipeline was re-run in full
// and the fresh option list is ready to render. There is no stored
// session to restore.
type ShowOptionsAgain struct {
	ID      youtube.VideoID
	Meta    *youtube.Metadata
	Options []menu.Option
}

// ErrorAction carries a user-facing failure message.
type ErrorAction struct {
	Message string
}

func (ShowDownload) renderAction()       {}
func (ShowAlternateLinks) renderAction() {}
func (ShowMetadataView) renderAction()   {}
func (ShowOptionsAgain) renderAction()   {}
func (ErrorAction) renderAction()        {}

// Router dispatches tokens by prefix.
type Router struct {
	source MetadataSource
}

// New builds a router over the given metadata source.
func New(source MetadataSource) *Router {
	return &Router{source: source}
}

// Route decodes a callback token and produces the action to render.
func (r *Router) Route(ctx context.Context, token string) RenderAction {
	switch {
	case strings.HasPrefix(token, "dl_"):
		return r.routeDownload(ctx, token)
	case strings.HasPrefix(token, "links_"):
		return ShowAlternateLinks{ID: youtube.VideoID(strings.TrimPrefix(token, "links_"))}
	case strings.HasPrefix(token, "info_"):
		return r.routeInfo(ctx, youtube.VideoID(strings.TrimPrefix(token, "info_")))
	case strings.HasPrefix(token, "back_"):
		return r.routeBack(ctx, youtube.VideoID(strings.TrimPrefix(token, "back_")))
	default:
		logger.Warn("Unrecognized callback token", "token", token)
		return ErrorAction{Message: "Unknown action. Please send the link again."}
	}
}

// videoIDLen is fixed by the platform; ids may themselves contain
// underscores, so download tokens are parsed by position, not by
// splitting on the separator.
const videoIDLen = 11

func (r *Router) routeDownload(ctx context.Context, token string) RenderAction {
	payload := strings.TrimPrefix(token, "dl_")
	if len(payload) < videoIDLen+2 || payload[videoIDLen] != '_' {
		return ErrorAction{Message: "That selection is no longer valid. Please send the link again."}
	}
	id, formatKey := youtube.VideoID(payload[:videoIDLen]), payload[videoIDLen+1:]

	meta, err := r.source.FetchWithRetry(ctx, id)
	if err != nil {
		return ErrorAction{Message: "Couldn't refresh the video information. Please try again later."}
	}

	rendition, ok := menu.ResolveRendition(meta, formatKey)
	if !ok || rendition.URL == "" {
		logger.Warn("Token did not resolve to a usable rendition", "video", id, "key", formatKey)
		return ErrorAction{Message: "Sorry, I couldn't generate a download link for this format."}
	}

	return ShowDownload{
		ID:    id,
		Title: meta.Title,
		Label: rendition.Label,
		URL:   rendition.URL,
	}
}

func (r *Router) routeInfo(ctx context.Context, id youtube.VideoID) RenderAction {
	meta, err := r.source.FetchWithRetry(ctx, id)
	if err != nil {
		return ErrorAction{Message: "Couldn't fetch the video information. Please try again later."}
	}

	return ShowMetadataView{
		ID:       id,
		Title:    meta.Title,
		Channel:  meta.Channel,
		Duration: meta.Duration,
	}
}

func (r *Router) routeBack(ctx context.Context, id youtube.VideoID) RenderAction {
	meta, err := r.source.FetchWithRetry(ctx, id)
	if err != nil {
		return ErrorAction{Message: "Couldn't rebuild the options. Please send the link again."}
	}

	return ShowOptionsAgain{
		ID:      id,
		Meta:    meta,
		Options: menu.Select(meta),
	}
}
