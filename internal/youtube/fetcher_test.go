package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/danverh/ytgrab-bot/internal/retry"
)

const mb = 1024 * 1024

// fakeExtractor scripts a sequence of results: each call pops the next
// entry. A nil info means that call fails.
type fakeExtractor struct {
	calls   int
	results []*RawInfo
	err     error
}

func (f *fakeExtractor) Extract(ctx context.Context, url string) (*RawInfo, error) {
	f.calls++
	if len(f.results) == 0 {
		return nil, f.err
	}
	info := f.results[0]
	f.results = f.results[1:]
	if info == nil {
		return nil, f.err
	}
	return info, nil
}

func testInfo() *RawInfo {
	return &RawInfo{
		ID:        "dQw4w9WgXcQ",
		Title:     "Test Video",
		Channel:   "Test Channel",
		Duration:  212,
		Thumbnail: "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq720.jpg",
		Formats: []RawFormat{
			{FormatID: "18", Ext: "mp4", Height: 360, Filesize: 8 * mb, VCodec: "avc1", ACodec: "mp4a"},
			{FormatID: "22", Ext: "mp4", Height: 720, Filesize: 20 * mb, VCodec: "avc1", ACodec: "mp4a"},
		},
	}
}

func newTestFetcher(ex Extractor) *Fetcher {
	return NewFetcher(ex, 50, retry.DefaultConfig())
}

func TestFetch_ShapesMetadata(t *testing.T) {
	ex := &fakeExtractor{results: []*RawInfo{testInfo()}}
	meta, err := newTestFetcher(ex).Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if meta.ID != "dQw4w9WgXcQ" || meta.Title != "Test Video" || meta.Channel != "Test Channel" {
		t.Errorf("Fetch() metadata = %+v", meta)
	}
	if meta.Duration != 212 {
		t.Errorf("Fetch() duration = %d, want 212", meta.Duration)
	}
	if len(meta.Renditions) != 2 {
		t.Fatalf("Fetch() returned %d renditions, want 2", len(meta.Renditions))
	}
	if meta.Renditions[0].Label != "360p (mp4) [Video+Audio]" {
		t.Errorf("rendition label = %q", meta.Renditions[0].Label)
	}
}

func TestFetch_ChannelDefaultsToUnknown(t *testing.T) {
	info := testInfo()
	info.Channel = ""
	ex := &fakeExtractor{results: []*RawInfo{info}}

	meta, err := newTestFetcher(ex).Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if meta.Channel != "Unknown" {
		t.Errorf("channel = %q, want Unknown", meta.Channel)
	}
}

func TestFetch_DropsOversizedRenditions(t *testing.T) {
	info := testInfo()
	info.Formats = append(info.Formats,
		RawFormat{FormatID: "big", Ext: "mp4", Height: 2160, Filesize: 150 * mb, VCodec: "avc1", ACodec: "mp4a"})
	ex := &fakeExtractor{results: []*RawInfo{info}}

	// Ceiling 50 MB means an effective 100 MB cutoff.
	meta, err := newTestFetcher(ex).Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	for _, r := range meta.Renditions {
		if r.FormatID == "big" {
			t.Error("150 MB rendition survived the 100 MB cutoff")
		}
		if r.SizeMB > 100 {
			t.Errorf("rendition %s size %.1f MB exceeds cutoff", r.FormatID, r.SizeMB)
		}
	}
}

func TestFetch_DropsEntriesWithoutHeightOrSize(t *testing.T) {
	info := testInfo()
	info.Formats = []RawFormat{
		{FormatID: "sb0", Ext: "mhtml"}, // storyboard: no height, no size
		{FormatID: "140", Ext: "m4a", FilesizeApprox: 3 * mb, ACodec: "mp4a", VCodec: "none"},
	}
	ex := &fakeExtractor{results: []*RawInfo{info}}

	meta, err := newTestFetcher(ex).Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(meta.Renditions) != 1 {
		t.Fatalf("got %d renditions, want 1", len(meta.Renditions))
	}
	if got := meta.Renditions[0].Label; got != "Audio Only (m4a) [Audio]" {
		t.Errorf("label = %q", got)
	}
}

func TestFetch_DropsSizelessVideoFormats(t *testing.T) {
	info := testInfo()
	info.Formats = []RawFormat{
		{FormatID: "sizeless2160", Ext: "webm", Height: 2160, VCodec: "vp9", ACodec: "none"},
		{FormatID: "22", Ext: "mp4", Height: 720, Filesize: 20 * mb, VCodec: "avc1", ACodec: "mp4a"},
	}
	ex := &fakeExtractor{results: []*RawInfo{info}}

	meta, err := newTestFetcher(ex).Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(meta.Renditions) != 1 {
		t.Fatalf("got %d renditions, want 1", len(meta.Renditions))
	}
	if meta.Renditions[0].FormatID != "22" {
		t.Errorf("sizeless format survived over %q", meta.Renditions[0].FormatID)
	}
}

func TestFetch_ApproximateSizeUsedWhenExactMissing(t *testing.T) {
	info := testInfo()
	info.Formats = []RawFormat{
		{FormatID: "22", Ext: "mp4", Height: 720, FilesizeApprox: 30 * mb, VCodec: "avc1", ACodec: "mp4a"},
	}
	ex := &fakeExtractor{results: []*RawInfo{info}}

	meta, err := newTestFetcher(ex).Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := meta.Renditions[0].SizeMB; got != 30 {
		t.Errorf("SizeMB = %.1f, want 30", got)
	}
}

func TestFormatLabel_VideoOnly(t *testing.T) {
	raw := RawFormat{FormatID: "137", Ext: "mp4", Height: 1080, VCodec: "avc1", ACodec: "none"}
	if got := formatLabel(raw); got != "1080p (mp4) [Video]" {
		t.Errorf("formatLabel() = %q", got)
	}
}

func TestFetchWithRetry_SucceedsOnThirdAttempt(t *testing.T) {
	ex := &fakeExtractor{
		results: []*RawInfo{nil, nil, testInfo()},
		err:     errors.New("transient"),
	}

	meta, err := newTestFetcher(ex).FetchWithRetry(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchWithRetry() error = %v", err)
	}
	if meta == nil || meta.ID != "dQw4w9WgXcQ" {
		t.Errorf("FetchWithRetry() metadata = %+v", meta)
	}
	if ex.calls != 3 {
		t.Errorf("extractor called %d times, want 3", ex.calls)
	}
}

func TestFetchWithRetry_ExhaustsAttempts(t *testing.T) {
	underlying := errors.New("boom")
	ex := &fakeExtractor{err: underlying}

	_, err := newTestFetcher(ex).FetchWithRetry(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("FetchWithRetry() returned nil error")
	}

	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("FetchWithRetry() error type = %T, want *ExtractionError", err)
	}
	if !errors.Is(err, underlying) {
		t.Errorf("ExtractionError does not wrap the last fault: %v", err)
	}
	if ex.calls != 3 {
		t.Errorf("extractor called %d times, want 3", ex.calls)
	}
}
