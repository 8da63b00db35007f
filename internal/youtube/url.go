package youtube

import "regexp"

// Link patterns in priority order; the first capture of the first
// matching pattern wins. Each captures the 11-character video id.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:https?://)?(?:www\.)?(?:m\.)?(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/shorts/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
}

// ExtractVideoID scans free-form text for a recognizable video link.
// A miss is a normal outcome, reported via the bool, not an error.
func ExtractVideoID(text string) (VideoID, bool) {
	for _, pattern := range videoIDPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return VideoID(m[1]), true
		}
	}
	return "", false
}

// IsYouTubeURL reports whether the text contains any recognizable link.
func IsYouTubeURL(text string) bool {
	_, ok := ExtractVideoID(text)
	return ok
}
