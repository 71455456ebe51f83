package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

var (
	ErrServerNameRequired = errors.New("server name is required")
	ErrOwnerCannotLeave   = errors.New("the owner cannot leave their own server")
)

// serverDeleter is the callable function that tears a server down with
// all of its nested collections.
type serverDeleter interface {
	DeleteServer(ctx context.Context, token, serverID string) error
}

type ServerService struct {
	ServerRepo repositories.ServerRepository
	Functions  serverDeleter
}

func NewServerService(serverRepo repositories.ServerRepository, functions serverDeleter) *ServerService {
	return &ServerService{ServerRepo: serverRepo, Functions: functions}
}

// Create writes the server with its creator as owner, plus a default
// general room so the server is immediately usable.
func (s *ServerService) Create(ctx context.Context, owner Sender, name, icon, color, visibility string) (*models.Server, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrServerNameRequired
	}
	if visibility != models.VisibilityPublic {
		visibility = models.VisibilityPrivate
	}

	srv := &models.Server{
		Name:       name,
		Icon:       icon,
		Color:      color,
		Visibility: visibility,
		OwnerID:    owner.UID,
	}
	id, err := s.ServerRepo.Create(ctx, srv)
	if err != nil {
		return nil, err
	}
	srv.ID = id

	room := &models.Room{Name: "general", Type: models.RoomTypeChat}
	if _, err := s.ServerRepo.CreateRoom(ctx, id, room); err != nil {
		return nil, err
	}
	return srv, nil
}

func (s *ServerService) Get(ctx context.Context, serverID string) (*models.Server, error) {
	return s.ServerRepo.Get(ctx, serverID)
}

// Update applies owner/admin edits to the server document.
func (s *ServerService) Update(ctx context.Context, uid, serverID string, fields map[string]any) error {
	member, err := s.ServerRepo.Membership(ctx, serverID, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	if !member.CanModerate() {
		return ErrNotPermitted
	}
	return s.ServerRepo.Update(ctx, serverID, fields)
}

// Delete hands off to the platform's callable function, which removes
// the server together with its rooms, messages and memberships. Only
// the owner may call it.
func (s *ServerService) Delete(ctx context.Context, caller Sender, serverID string) error {
	srv, err := s.ServerRepo.Get(ctx, serverID)
	if err != nil {
		return err
	}
	if srv.OwnerID != caller.UID {
		return ErrNotPermitted
	}
	return s.Functions.DeleteServer(ctx, caller.Token, serverID)
}

func (s *ServerService) CreateRoom(ctx context.Context, uid, serverID string, room *models.Room) (*models.Room, error) {
	member, err := s.ServerRepo.Membership(ctx, serverID, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	if !member.CanModerate() {
		return nil, ErrNotPermitted
	}
	switch room.Type {
	case models.RoomTypeChat, models.RoomTypeGenerative, models.RoomTypeAgent:
	default:
		room.Type = models.RoomTypeChat
	}
	id, err := s.ServerRepo.CreateRoom(ctx, serverID, room)
	if err != nil {
		return nil, err
	}
	room.ID = id
	return room, nil
}

func (s *ServerService) ListRooms(ctx context.Context, uid, serverID string) ([]models.Room, error) {
	if _, err := s.ServerRepo.Membership(ctx, serverID, uid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return s.ServerRepo.ListRooms(ctx, serverID)
}

func (s *ServerService) ListMembers(ctx context.Context, uid, serverID string) ([]models.Membership, error) {
	if _, err := s.ServerRepo.Membership(ctx, serverID, uid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, err
	}
	return s.ServerRepo.ListMembers(ctx, serverID)
}

// Leave removes the caller's membership. Ownership does not transfer;
// owners delete instead.
func (s *ServerService) Leave(ctx context.Context, uid, serverID string) error {
	member, err := s.ServerRepo.Membership(ctx, serverID, uid)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotMember
		}
		return err
	}
	if member.Role == models.RoleOwner {
		return ErrOwnerCannotLeave
	}
	return s.ServerRepo.RemoveMember(ctx, serverID, uid)
}
