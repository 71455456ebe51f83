package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) Ensure(ctx context.Context, uid, displayName, email string) (*models.User, error) {
	args := m.Called(ctx, uid, displayName, email)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepository) UpdateDeviceToken(ctx context.Context, uid, token string) error {
	return m.Called(ctx, uid, token).Error(0)
}

func (m *UserRepository) SubscribeTag(ctx context.Context, uid, tag string) error {
	return m.Called(ctx, uid, tag).Error(0)
}

func (m *UserRepository) UnsubscribeTag(ctx context.Context, uid, tag string) error {
	return m.Called(ctx, uid, tag).Error(0)
}

func (m *UserRepository) DeductCredits(ctx context.Context, uid, creditType string, amount int64) (int64, error) {
	args := m.Called(ctx, uid, creditType, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) AddCredits(ctx context.Context, uid, creditType string, amount int64) error {
	return m.Called(ctx, uid, creditType, amount).Error(0)
}

func (m *UserRepository) ResetMonthlyCredits(ctx context.Context, uid string) (bool, error) {
	args := m.Called(ctx, uid)
	return args.Bool(0), args.Error(1)
}
