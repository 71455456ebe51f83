package models

import "time"

// Participant limits for a DM thread.
const (
	DMMinParticipants = 2
	DMMaxParticipants = 20
)

// DMThread is a direct-message conversation between 2 to 20 users.
// Messages live in a nested collection keyed by the thread id; the thread
// document carries a preview of the latest message for the sidebar.
type DMThread struct {
	ID             string    `json:"id" firestore:"-"`
	ParticipantIDs []string  `json:"participant_ids" firestore:"participantIds"`
	LastMessage    string    `json:"last_message" firestore:"lastMessage"`
	LastSenderID   string    `json:"last_sender_id" firestore:"lastSenderId"`
	LastMessageAt  time.Time `json:"last_message_at" firestore:"lastMessageAt"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}
