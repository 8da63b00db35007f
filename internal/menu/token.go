package menu

import (
	"strings"

	"github.com/danverh/ytgrab-bot/internal/youtube"
)

// Telegram rejects callback_data beyond 64 bytes.
const maxTokenLen = 64

const compactedSuffixLen = 10

// EncodeToken builds the selection token "dl_<id>_<formatID>". When
// that would blow the payload ceiling it compacts the format id to its
// last 10 characters, marked with an "i". Compaction trades global
// uniqueness for length; within one fetch's rendition set the suffix is
// expected to disambiguate (Select skips the rare collider).
func EncodeToken(id youtube.VideoID, formatID string) string {
	token := "dl_" + string(id) + "_" + formatID
	if len(token) > maxTokenLen {
		token = "dl_" + string(id) + "_i" + lastN(formatID, compactedSuffixLen)
	}
	return token
}

// ResolveRendition maps a decoded format key back to a rendition from
// the same fetch: exact format id first, then compacted-suffix match.
func ResolveRendition(meta *youtube.Metadata, formatKey string) (youtube.Rendition, bool) {
	for _, r := range meta.Renditions {
		if r.FormatID == formatKey {
			return r, true
		}
	}

	if suffix, ok := strings.CutPrefix(formatKey, "i"); ok {
		for _, r := range meta.Renditions {
			if lastN(r.FormatID, compactedSuffixLen) == suffix {
				return r, true
			}
		}
	}

	return youtube.Rendition{}, false
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
