package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

const (
	defaultYtdlpPath    = "yt-dlp"
	defaultYtdlpTimeout = 2 * time.Minute
)

// Extractor is the external extraction service: given a video URL it
// returns raw metadata, download disabled.
type Extractor interface {
	Extract(ctx context.Context, url string) (*RawInfo, error)
}

// YtdlpExtractor runs yt-dlp as a subprocess in metadata-only mode.
type YtdlpExtractor struct {
	// Path is the yt-dlp executable. Defaults to "yt-dlp".
	Path string

	// Timeout bounds a single invocation. Defaults to 2 minutes.
	Timeout time.Duration

	// ExtraArgs are appended to the yt-dlp command line.
	ExtraArgs []string
}

// NewYtdlpExtractor builds an extractor with the given executable path
// and per-call timeout, falling back to defaults for zero values.
func NewYtdlpExtractor(path string, timeout time.Duration) *YtdlpExtractor {
	if path == "" {
		path = defaultYtdlpPath
	}
	if timeout == 0 {
		timeout = defaultYtdlpTimeout
	}
	return &YtdlpExtractor{Path: path, Timeout: timeout}
}

// Extract invokes yt-dlp with -J (single JSON document on stdout) and
// download disabled, and decodes the result.
func (y *YtdlpExtractor) Extract(ctx context.Context, url string) (*RawInfo, error) {
	timeout := y.Timeout
	if timeout == 0 {
		timeout = defaultYtdlpTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := []string{
		"-J",
		"--no-warnings",
		"--skip-download",
		"--no-playlist",
	}
	args = append(args, y.ExtraArgs...)
	args = append(args, url)

	cmd := exec.CommandContext(cmdCtx, y.path(), args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("yt-dlp timed out after %s", timeout)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, stderr.String())
	}

	var info RawInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("empty extractor result for %s", url)
	}

	return &info, nil
}

func (y *YtdlpExtractor) path() string {
	if y.Path != "" {
		return y.Path
	}
	return defaultYtdlpPath
}
