// Package youtube recognizes video links and fetches their metadata
// through a yt-dlp subprocess.
package youtube

import "fmt"

// VideoID is the platform-assigned 11-character video identifier.
type VideoID string

// WatchURL returns the canonical watch URL for a video.
func WatchURL(id VideoID) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}

// ShareURL returns the short share URL for a video.
func ShareURL(id VideoID) string {
	return fmt.Sprintf("https://youtu.be/%s", id)
}

// RawInfo mirrors the subset of yt-dlp's -J output this bot consumes.
// Absent fields decode to their zero values and are resolved to
// defaults once, in the fetcher; downstream code never sees them.
type RawInfo struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Channel   string      `json:"channel"`
	Duration  float64     `json:"duration"`
	Thumbnail string      `json:"thumbnail"`
	Formats   []RawFormat `json:"formats"`
}

// RawFormat is one extractor-reported format entry.
type RawFormat struct {
	FormatID       string `json:"format_id"`
	Ext            string `json:"ext"`
	Height         int    `json:"height"`
	Filesize       int64  `json:"filesize"`
	FilesizeApprox int64  `json:"filesize_approx"`
	VCodec         string `json:"vcodec"`
	ACodec         string `json:"acodec"`
	URL            string `json:"url"`
}

// hasVideo reports whether the entry carries a video track.
func (f RawFormat) hasVideo() bool {
	return f.VCodec != "" && f.VCodec != "none"
}

// hasAudio reports whether the entry carries an audio track.
func (f RawFormat) hasAudio() bool {
	return f.ACodec != "" && f.ACodec != "none"
}

// Metadata is the shaped result of one fetch. It lives for a single
// interaction turn; nothing caches it across requests.
type Metadata struct {
	ID         VideoID
	Title      string
	Channel    string // "Unknown" when the extractor omits it
	Duration   int    // whole seconds, 0 when unknown
	Thumbnail  string
	Renditions []Rendition
}

// Rendition is one downloadable encoding that survived filtering.
// URL is a time-limited direct link (observed ~6h) and must not be
// reused beyond the current interaction.
type Rendition struct {
	FormatID string
	Label    string // e.g. "720p (mp4) [Video+Audio]"
	Height   int    // 0 means audio only
	Ext      string
	SizeMB   float64
	URL      string
}

// HasResolution reports whether the rendition exposes a video resolution.
func (r Rendition) HasResolution() bool {
	return r.Height > 0
}
