package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

type UserService struct {
	UserRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// EnsureProfile bootstraps the profile document on sign-in and applies
// the monthly credit reset when one is due.
func (s *UserService) EnsureProfile(ctx context.Context, uid, displayName, email string) (*models.User, error) {
	user, err := s.UserRepo.Ensure(ctx, uid, displayName, email)
	if err != nil {
		return nil, err
	}
	reset, err := s.UserRepo.ResetMonthlyCredits(ctx, uid)
	if err != nil {
		log.Warn().Err(err).Str("uid", uid).Msg("credit reset check failed")
		return user, nil
	}
	if reset {
		return s.UserRepo.Get(ctx, uid)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.UserRepo.Get(ctx, uid)
}

// RegisterDeviceToken stores the device's FCM token for push delivery.
func (s *UserService) RegisterDeviceToken(ctx context.Context, uid, token string) error {
	return s.UserRepo.UpdateDeviceToken(ctx, uid, token)
}

// DeductCredits charges usage against a balance; callers map
// ErrInsufficientCredits to a payment-required response.
func (s *UserService) DeductCredits(ctx context.Context, uid, creditType string, amount int64) (int64, error) {
	return s.UserRepo.DeductCredits(ctx, uid, creditType, amount)
}

func (s *UserService) AddCredits(ctx context.Context, uid, creditType string, amount int64) error {
	return s.UserRepo.AddCredits(ctx, uid, creditType, amount)
}
