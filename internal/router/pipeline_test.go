package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/danverh/ytgrab-bot/internal/menu"
	"github.com/danverh/ytgrab-bot/internal/retry"
	"github.com/danverh/ytgrab-bot/internal/youtube"
)

// scriptedExtractor fails the first failBefore calls, then returns info.
type scriptedExtractor struct {
	info       *youtube.RawInfo
	failBefore int
	calls      int
}

func (s *scriptedExtractor) Extract(ctx context.Context, url string) (*youtube.RawInfo, error) {
	s.calls++
	if s.calls <= s.failBefore {
		return nil, errors.New("transient extractor fault")
	}
	return s.info, nil
}

func TestPipeline_TextToDownload(t *testing.T) {
	const mb = 1024 * 1024

	// Recognize the id out of surrounding prose.
	id, ok := youtube.ExtractVideoID("check this out https://youtu.be/dQw4w9WgXcQ cool")
	if !ok || id != "dQw4w9WgXcQ" {
		t.Fatalf("ExtractVideoID() = %q, %v", id, ok)
	}

	ex := &scriptedExtractor{
		failBefore: 2,
		info: &youtube.RawInfo{
			ID:       string(id),
			Title:    "Never Gonna Give You Up",
			Channel:  "Rick Astley",
			Duration: 212,
			Formats: []youtube.RawFormat{
				{FormatID: "140", Ext: "m4a", Filesize: 3 * mb, ACodec: "mp4a", VCodec: "none", URL: "https://cdn.example/140"},
				{FormatID: "18", Ext: "mp4", Height: 480, Filesize: 8 * mb, VCodec: "avc1", ACodec: "mp4a", URL: "https://cdn.example/18"},
				{FormatID: "22", Ext: "mp4", Height: 720, Filesize: 20 * mb, VCodec: "avc1", ACodec: "mp4a", URL: "https://cdn.example/22"},
				{FormatID: "37", Ext: "mp4", Height: 1080, Filesize: 50 * mb, VCodec: "avc1", ACodec: "mp4a", URL: "https://cdn.example/37"},
				{FormatID: "huge", Ext: "mp4", Height: 2160, Filesize: 150 * mb, VCodec: "avc1", ACodec: "mp4a", URL: "https://cdn.example/huge"},
			},
		},
	}
	fetcher := youtube.NewFetcher(ex, 50, retry.DefaultConfig())

	// Two failures, then success: exactly three extractor calls.
	meta, err := fetcher.FetchWithRetry(context.Background(), id)
	if err != nil {
		t.Fatalf("FetchWithRetry() error = %v", err)
	}
	if ex.calls != 3 {
		t.Errorf("extractor called %d times, want 3", ex.calls)
	}

	options := menu.Select(meta)
	want := []string{"37", "22", "18", "140"}
	if len(options) != len(want) {
		t.Fatalf("Select() returned %d options, want %d (oversized rendition must be gone)", len(options), len(want))
	}
	for i, w := range want {
		if options[i].FormatID != w {
			t.Errorf("options[%d].FormatID = %q, want %q", i, options[i].FormatID, w)
		}
	}

	// Press the 720p button: its token must route to its direct URL.
	var token string
	for _, opt := range options {
		if opt.FormatID == "22" {
			token = opt.Token
		}
	}
	if !strings.HasPrefix(token, "dl_dQw4w9WgXcQ_") {
		t.Fatalf("unexpected token %q", token)
	}

	ex.failBefore = 0 // the re-fetch should succeed immediately
	action := New(fetcher).Route(context.Background(), token)
	dl, ok := action.(ShowDownload)
	if !ok {
		t.Fatalf("Route() = %T, want ShowDownload", action)
	}
	if dl.URL != "https://cdn.example/22" {
		t.Errorf("ShowDownload.URL = %q", dl.URL)
	}
	if dl.Label != "720p (mp4) [Video+Audio]" {
		t.Errorf("ShowDownload.Label = %q", dl.Label)
	}
}
