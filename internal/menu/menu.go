// Package menu turns fetched metadata into the ordered, token-addressed
// option list shown as inline keyboard buttons.
package menu

import (
	"sort"

	"github.com/danverh/ytgrab-bot/internal/utils"
	"github.com/danverh/ytgrab-bot/internal/youtube"
	"github.com/danverh/ytgrab-bot/pkg/logger"
)

// MaxOptions caps the keyboard so the message never clutters.
const MaxOptions = 5

// Option is one display-ready rendition choice.
type Option struct {
	// Label is the human name, e.g. "720p (mp4) [Video+Audio]".
	Label string
	// SizeLabel is the human size, e.g. "20.0 MB".
	SizeLabel string
	// Token is the callback payload that re-resolves this rendition.
	Token string
	// FormatID is the originating extractor format id.
	FormatID string
}

// Select sorts, truncates and tokenizes the renditions of one fetch.
// Resolution-bearing entries come first, higher resolution first, ties
// kept in extractor order. An empty result is a valid outcome the
// caller must surface as "no formats available".
func Select(meta *youtube.Metadata) []Option {
	renditions := make([]youtube.Rendition, len(meta.Renditions))
	copy(renditions, meta.Renditions)

	sort.SliceStable(renditions, func(i, j int) bool {
		a, b := renditions[i], renditions[j]
		if a.HasResolution() != b.HasResolution() {
			return a.HasResolution()
		}
		return a.Height > b.Height
	})

	if len(renditions) > MaxOptions {
		renditions = renditions[:MaxOptions]
	}

	options := make([]Option, 0, len(renditions))
	seen := make(map[string]bool, len(renditions))
	for _, r := range renditions {
		token := EncodeToken(meta.ID, r.FormatID)
		if seen[token] {
			// Compacted suffixes collided within one fetch; keeping the
			// later option would make its token ambiguous.
			logger.Warn("Skipping rendition with colliding token", "video", meta.ID, "format", r.FormatID)
			continue
		}
		seen[token] = true

		options = append(options, Option{
			Label:     r.Label,
			SizeLabel: utils.FormatSizeMB(r.SizeMB),
			Token:     token,
			FormatID:  r.FormatID,
		})
	}

	return options
}
