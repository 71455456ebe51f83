// Package detect holds the pure text detectors used by the message and
// post composers: video link recognition and emoji-only classification.
package detect

import (
	"regexp"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type embedPattern struct {
	provider string
	re       *regexp.Regexp
}

// Ordered pattern list; the first match wins.
var embedPatterns = []embedPattern{
	{models.EmbedYouTube, regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:[^\s]*&)?v=([A-Za-z0-9_-]{6,})`)},
	{models.EmbedYouTube, regexp.MustCompile(`(?:https?://)?(?:www\.)?youtu\.be/([A-Za-z0-9_-]{6,})`)},
	{models.EmbedYouTube, regexp.MustCompile(`(?:https?://)?(?:www\.)?youtube\.com/embed/([A-Za-z0-9_-]{6,})`)},
	{models.EmbedVimeo, regexp.MustCompile(`(?:https?://)?player\.vimeo\.com/video/(\d+)`)},
	{models.EmbedVimeo, regexp.MustCompile(`(?:https?://)?(?:www\.)?vimeo\.com/(\d+)`)},
}

// VideoEmbed scans free-form message text for a recognizable YouTube or
// Vimeo URL and returns a typed embed descriptor, or nil when the text
// contains none.
func VideoEmbed(text string) *models.VideoEmbed {
	for _, p := range embedPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return &models.VideoEmbed{
			Provider:  p.provider,
			VideoID:   m[1],
			SourceURL: m[0],
		}
	}
	return nil
}
