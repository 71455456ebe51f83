package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type ServerRepository struct {
	mock.Mock
}

func (m *ServerRepository) Create(ctx context.Context, srv *models.Server) (string, error) {
	args := m.Called(ctx, srv)
	return args.String(0), args.Error(1)
}

func (m *ServerRepository) Get(ctx context.Context, serverID string) (*models.Server, error) {
	args := m.Called(ctx, serverID)
	var srv *models.Server
	if args.Get(0) != nil {
		srv = args.Get(0).(*models.Server)
	}
	return srv, args.Error(1)
}

func (m *ServerRepository) Update(ctx context.Context, serverID string, fields map[string]any) error {
	return m.Called(ctx, serverID, fields).Error(0)
}

func (m *ServerRepository) CreateRoom(ctx context.Context, serverID string, room *models.Room) (string, error) {
	args := m.Called(ctx, serverID, room)
	return args.String(0), args.Error(1)
}

func (m *ServerRepository) GetRoom(ctx context.Context, serverID, roomID string) (*models.Room, error) {
	args := m.Called(ctx, serverID, roomID)
	var room *models.Room
	if args.Get(0) != nil {
		room = args.Get(0).(*models.Room)
	}
	return room, args.Error(1)
}

func (m *ServerRepository) ListRooms(ctx context.Context, serverID string) ([]models.Room, error) {
	args := m.Called(ctx, serverID)
	var rooms []models.Room
	if args.Get(0) != nil {
		rooms = args.Get(0).([]models.Room)
	}
	return rooms, args.Error(1)
}

func (m *ServerRepository) Membership(ctx context.Context, serverID, userID string) (*models.Membership, error) {
	args := m.Called(ctx, serverID, userID)
	var member *models.Membership
	if args.Get(0) != nil {
		member = args.Get(0).(*models.Membership)
	}
	return member, args.Error(1)
}

func (m *ServerRepository) AddMember(ctx context.Context, serverID string, member *models.Membership) error {
	return m.Called(ctx, serverID, member).Error(0)
}

func (m *ServerRepository) RemoveMember(ctx context.Context, serverID, userID string) error {
	return m.Called(ctx, serverID, userID).Error(0)
}

func (m *ServerRepository) ListMembers(ctx context.Context, serverID string) ([]models.Membership, error) {
	args := m.Called(ctx, serverID)
	var members []models.Membership
	if args.Get(0) != nil {
		members = args.Get(0).([]models.Membership)
	}
	return members, args.Error(1)
}
