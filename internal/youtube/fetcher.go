package youtube

import (
	"context"
	"fmt"
	"time"

	"github.com/danverh/ytgrab-bot/internal/retry"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

const unknownChannel = "Unknown"

// ExtractionError means every fetch attempt failed; it carries the last
// underlying fault for logging.
type ExtractionError struct {
	ID  VideoID
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.ID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Fetcher turns a video id into shaped Metadata via the extraction
// service. It is stateless; one instance serves all requests.
type Fetcher struct {
	extractor     Extractor
	maxFilesizeMB int
	retryCfg      retry.Config
}

// NewFetcher wires the extractor to the configured size ceiling.
func NewFetcher(extractor Extractor, maxFilesizeMB int, retryCfg retry.Config) *Fetcher {
	return &Fetcher{
		extractor:     extractor,
		maxFilesizeMB: maxFilesizeMB,
		retryCfg:      retryCfg,
	}
}

// Fetch performs a single extraction attempt and shapes the result.
func (f *Fetcher) Fetch(ctx context.Context, id VideoID) (*Metadata, error) {
	info, err := f.extractor.Extract(ctx, WatchURL(id))
	if err != nil {
		return nil, err
	}
	return f.shape(info), nil
}

// FetchWithRetry runs Fetch up to the configured attempt count
// (immediate retries by default) and converts exhaustion into an
// *ExtractionError.
func (f *Fetcher) FetchWithRetry(ctx context.Context, id VideoID) (*Metadata, error) {
	var meta *Metadata
	start := time.Now()
	attempt := 0

	err := retry.Do(ctx, f.retryCfg, func(ctx context.Context) error {
		attempt++
		m, err := f.Fetch(ctx, id)
		if err != nil {
			logger.Warn("Extraction attempt failed", "video", id, "attempt", attempt, "error", err)
			return err
		}
		meta = m
		return nil
	})
	if err != nil {
		logger.ErrorWithDuration("All extraction attempts failed", start, "video", id, "error", err)
		return nil, &ExtractionError{ID: id, Err: err}
	}

	return meta, nil
}

// shape resolves optional fields to defaults and filters raw formats
// into presentable renditions. It is the only place absence is handled;
// downstream components see fully populated values.
func (f *Fetcher) shape(info *RawInfo) *Metadata {
	meta := &Metadata{
		ID:        VideoID(info.ID),
		Title:     info.Title,
		Channel:   info.Channel,
		Duration:  int(info.Duration),
		Thumbnail: info.Thumbnail,
	}
	if meta.Channel == "" {
		meta.Channel = unknownChannel
	}

	ceiling := float64(f.maxFilesizeMB) * 2

	for _, raw := range info.Formats {
		size := raw.Filesize
		if size == 0 {
			size = raw.FilesizeApprox
		}

		// The extractor reports plenty of sizeless DASH entries; with
		// no size there is nothing to bound or display, and they would
		// crowd out sized options as "0.0 KB" buttons.
		if size == 0 {
			continue
		}

		sizeMB := float64(size) / (1024 * 1024)

		// The transport refuses oversized payloads; the 2x buffer
		// allows for extractor size under-reporting.
		if sizeMB > ceiling {
			continue
		}

		meta.Renditions = append(meta.Renditions, Rendition{
			FormatID: raw.FormatID,
			Label:    formatLabel(raw),
			Height:   raw.Height,
			Ext:      raw.Ext,
			SizeMB:   sizeMB,
			URL:      raw.URL,
		})
	}

	return meta
}

// formatLabel derives the human-readable rendition name, e.g.
// "720p (mp4) [Video+Audio]" or "Audio Only (m4a) [Audio]".
func formatLabel(raw RawFormat) string {
	resolution := "Audio Only"
	if raw.Height > 0 {
		resolution = fmt.Sprintf("%dp", raw.Height)
	}

	label := fmt.Sprintf("%s (%s)", resolution, raw.Ext)
	switch {
	case raw.hasVideo() && raw.hasAudio():
		label += " [Video+Audio]"
	case raw.hasAudio():
		label += " [Audio]"
	case raw.hasVideo():
		label += " [Video]"
	}

	return label
}
