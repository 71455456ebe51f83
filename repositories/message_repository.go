package repositories

import (
	"context"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

// RoomScope encodes a server/room pair as a livelist scope key.
func RoomScope(serverID, roomID string) string {
	return serverID + "/" + roomID
}

type MessageRepository interface {
	SendRoomMessage(ctx context.Context, serverID, roomID string, msg *models.Message) (string, error)
	GetRoomMessage(ctx context.Context, serverID, roomID, messageID string) (*models.Message, error)
	DeleteRoomMessage(ctx context.Context, serverID, roomID, messageID string) error

	// RoomMessages is the live source behind room message logs; the
	// scope key is RoomScope(serverID, roomID).
	RoomMessages() livelist.Source[models.Message]
}
