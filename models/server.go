package models

import "time"

// Room types. Generative and agent rooms are backed by the AI service.
const (
	RoomTypeChat       = "chat"
	RoomTypeGenerative = "generative"
	RoomTypeAgent      = "agent"
)

// Membership roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Server visibility.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Server is a named community holding rooms and members.
type Server struct {
	ID         string    `json:"id" firestore:"-"`
	Name       string    `json:"name" firestore:"name"`
	Icon       string    `json:"icon" firestore:"icon"`
	Color      string    `json:"color" firestore:"color"`
	Visibility string    `json:"visibility" firestore:"visibility"`
	OwnerID    string    `json:"owner_id" firestore:"ownerId"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// Room is a channel inside a server.
type Room struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Type      string    `json:"type" firestore:"type"`
	Icon      string    `json:"icon" firestore:"icon"`
	AgentID   string    `json:"agent_id,omitempty" firestore:"agentId,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt,serverTimestamp"`
}

// Membership links a user to a server with a role. The document id is the
// member's uid.
type Membership struct {
	UserID      string    `json:"user_id" firestore:"-"`
	DisplayName string    `json:"display_name" firestore:"displayName"`
	Role        string    `json:"role" firestore:"role"`
	JoinedAt    time.Time `json:"joined_at" firestore:"joinedAt,serverTimestamp"`
}

// CanModerate reports whether the role may delete other members' messages.
func (m Membership) CanModerate() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}
