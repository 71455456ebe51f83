package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/livelist"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type FriendRepository struct {
	mock.Mock
}

func (m *FriendRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *FriendRepository) GetRequest(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	args := m.Called(ctx, requestID)
	var req *models.FriendRequest
	if args.Get(0) != nil {
		req = args.Get(0).(*models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *FriendRepository) AcceptRequest(ctx context.Context, req *models.FriendRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *FriendRepository) DeleteRequest(ctx context.Context, requestID string) error {
	return m.Called(ctx, requestID).Error(0)
}

func (m *FriendRepository) Requests() livelist.Source[models.FriendRequest] {
	args := m.Called()
	if src, ok := args.Get(0).(livelist.Source[models.FriendRequest]); ok {
		return src
	}
	return nil
}

func (m *FriendRepository) CreateInvite(ctx context.Context, inv *models.ServerInvite) (string, error) {
	args := m.Called(ctx, inv)
	return args.String(0), args.Error(1)
}

func (m *FriendRepository) GetInvite(ctx context.Context, inviteID string) (*models.ServerInvite, error) {
	args := m.Called(ctx, inviteID)
	var inv *models.ServerInvite
	if args.Get(0) != nil {
		inv = args.Get(0).(*models.ServerInvite)
	}
	return inv, args.Error(1)
}

func (m *FriendRepository) AcceptInvite(ctx context.Context, inv *models.ServerInvite, member *models.Membership) error {
	return m.Called(ctx, inv, member).Error(0)
}

func (m *FriendRepository) DeleteInvite(ctx context.Context, inviteID string) error {
	return m.Called(ctx, inviteID).Error(0)
}

func (m *FriendRepository) ListInvites(ctx context.Context, recipientID string) ([]models.ServerInvite, error) {
	args := m.Called(ctx, recipientID)
	var invites []models.ServerInvite
	if args.Get(0) != nil {
		invites = args.Get(0).([]models.ServerInvite)
	}
	return invites, args.Error(1)
}
