package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

func TestVideoEmbedYouTube(t *testing.T) {
	cases := []struct {
		text    string
		videoID string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"check this out https://youtube.com/watch?list=abc&v=dQw4w9WgXcQ wow", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
	}

	for _, tc := range cases {
		embed := VideoEmbed(tc.text)
		assert.NotNil(t, embed, "text: %s", tc.text)
		assert.Equal(t, models.EmbedYouTube, embed.Provider)
		assert.Equal(t, tc.videoID, embed.VideoID)
	}
}

func TestVideoEmbedVimeo(t *testing.T) {
	embed := VideoEmbed("https://vimeo.com/76979871")
	assert.NotNil(t, embed)
	assert.Equal(t, models.EmbedVimeo, embed.Provider)
	assert.Equal(t, "76979871", embed.VideoID)

	embed = VideoEmbed("https://player.vimeo.com/video/76979871")
	assert.NotNil(t, embed)
	assert.Equal(t, models.EmbedVimeo, embed.Provider)
	assert.Equal(t, "76979871", embed.VideoID)
}

func TestVideoEmbedNone(t *testing.T) {
	assert.Nil(t, VideoEmbed("hello world"))
	assert.Nil(t, VideoEmbed("https://example.com/watch?v=nope"))
	assert.Nil(t, VideoEmbed(""))
}

func TestVideoEmbedFirstMatchWins(t *testing.T) {
	// A YouTube link ahead of a Vimeo link in the pattern order.
	embed := VideoEmbed("https://vimeo.com/76979871 https://youtu.be/dQw4w9WgXcQ")
	assert.NotNil(t, embed)
	assert.Equal(t, models.EmbedYouTube, embed.Provider)
}

func TestVideoEmbedSourceURL(t *testing.T) {
	embed := VideoEmbed("see https://youtu.be/dQw4w9WgXcQ later")
	assert.NotNil(t, embed)
	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", embed.SourceURL)
}
