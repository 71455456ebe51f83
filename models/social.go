package models

import "time"

// FriendRequest is a pending request from one user to another. Acceptance
// and decline are both modeled by deleting the request document; an accept
// additionally writes the friendship in the same bundled write.
type FriendRequest struct {
	ID            string    `json:"id" firestore:"-"`
	SenderID      string    `json:"sender_id" firestore:"senderId"`
	SenderName    string    `json:"sender_name" firestore:"senderName"`
	SenderEmail   string    `json:"sender_email" firestore:"senderEmail"`
	RecipientID   string    `json:"recipient_id" firestore:"recipientId"`
	RecipientName string    `json:"recipient_name" firestore:"recipientName"`
	CreatedAt     time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// ServerInvite invites a user into a server. Same lifecycle as a friend
// request: pending until deleted, acceptance bundles the membership write.
type ServerInvite struct {
	ID          string    `json:"id" firestore:"-"`
	ServerID    string    `json:"server_id" firestore:"serverId"`
	ServerName  string    `json:"server_name" firestore:"serverName"`
	SenderID    string    `json:"sender_id" firestore:"senderId"`
	SenderName  string    `json:"sender_name" firestore:"senderName"`
	RecipientID string    `json:"recipient_id" firestore:"recipientId"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// Post is an entry in the social feed.
type Post struct {
	ID           string      `json:"id" firestore:"-"`
	AuthorID     string      `json:"author_id" firestore:"authorId"`
	AuthorName   string      `json:"author_name" firestore:"authorName"`
	Content      string      `json:"content" firestore:"content"`
	MediaURL     string      `json:"media_url,omitempty" firestore:"mediaUrl,omitempty"`
	MediaKind    string      `json:"media_kind,omitempty" firestore:"mediaKind,omitempty"`
	Embed        *VideoEmbed `json:"embed,omitempty" firestore:"embed,omitempty"`
	Tags         []string    `json:"tags,omitempty" firestore:"tags,omitempty"`
	LikeCount    int64       `json:"like_count" firestore:"likeCount"`
	LikerIDs     []string    `json:"liker_ids" firestore:"likerIds"`
	CommentCount int64       `json:"comment_count" firestore:"commentCount"`
	ShareCount   int64       `json:"share_count" firestore:"shareCount"`
	CreatedAt    time.Time   `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// Comment hangs off a post in a nested collection.
type Comment struct {
	ID         string    `json:"id" firestore:"-"`
	AuthorID   string    `json:"author_id" firestore:"authorId"`
	AuthorName string    `json:"author_name" firestore:"authorName"`
	Text       string    `json:"text" firestore:"text"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// CustomFeed is a named subset of a user's subscribed tags.
type CustomFeed struct {
	ID        string    `json:"id" firestore:"-"`
	OwnerID   string    `json:"owner_id" firestore:"ownerId"`
	Name      string    `json:"name" firestore:"name"`
	Tags      []string  `json:"tags" firestore:"tags"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
