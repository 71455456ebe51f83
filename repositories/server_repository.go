package repositories

import (
	"context"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type ServerRepository interface {
	// Create writes the server document and the owner membership in one
	// bundled write.
	Create(ctx context.Context, srv *models.Server) (string, error)
	Get(ctx context.Context, serverID string) (*models.Server, error)
	Update(ctx context.Context, serverID string, fields map[string]any) error

	CreateRoom(ctx context.Context, serverID string, room *models.Room) (string, error)
	GetRoom(ctx context.Context, serverID, roomID string) (*models.Room, error)
	ListRooms(ctx context.Context, serverID string) ([]models.Room, error)

	Membership(ctx context.Context, serverID, userID string) (*models.Membership, error)
	AddMember(ctx context.Context, serverID string, member *models.Membership) error
	RemoveMember(ctx context.Context, serverID, userID string) error
	ListMembers(ctx context.Context, serverID string) ([]models.Membership, error)
}
