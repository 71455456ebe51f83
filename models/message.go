package models

import (
	"time"
)

// Attachment and media kinds.
const (
	MediaKindImage = "image"
	MediaKindAudio = "audio"
	MediaKindFile  = "file"
)

// Video embed providers.
const (
	EmbedYouTube = "youtube"
	EmbedVimeo   = "vimeo"
)

// Attachment describes a file attached to a message.
type Attachment struct {
	Kind     string `json:"kind" firestore:"kind"`
	URL      string `json:"url" firestore:"url"`
	Name     string `json:"name" firestore:"name"`
	Size     int64  `json:"size" firestore:"size"`
	MimeType string `json:"mime_type" firestore:"mimeType"`
}

// VideoEmbed is a detected YouTube/Vimeo link inside message text.
type VideoEmbed struct {
	Provider  string `json:"provider" firestore:"provider"`
	VideoID   string `json:"video_id" firestore:"videoId"`
	SourceURL string `json:"source_url" firestore:"sourceUrl"`
}

// Message is a single chat message in a room or a DM thread. Messages are
// immutable after creation except for deletion.
type Message struct {
	ID          string      `json:"id" firestore:"-"`
	Text        string      `json:"text" firestore:"text"`
	SenderID    string      `json:"sender_id" firestore:"senderId"`
	SenderName  string      `json:"sender_name" firestore:"senderName"`
	SenderEmail string      `json:"sender_email" firestore:"senderEmail"`
	Attachment  *Attachment `json:"attachment,omitempty" firestore:"attachment,omitempty"`
	Embed       *VideoEmbed `json:"embed,omitempty" firestore:"embed,omitempty"`
	EmojiOnly   bool        `json:"emoji_only" firestore:"emojiOnly"`
	CreatedAt   time.Time   `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
