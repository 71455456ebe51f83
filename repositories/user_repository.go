package repositories

import (
	"context"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
)

type UserRepository interface {
	Get(ctx context.Context, uid string) (*models.User, error)
	// Ensure creates the profile with its initial credit grant on first
	// sign-in; an existing profile is returned untouched.
	Ensure(ctx context.Context, uid, displayName, email string) (*models.User, error)
	UpdateDeviceToken(ctx context.Context, uid, token string) error

	SubscribeTag(ctx context.Context, uid, tag string) error
	UnsubscribeTag(ctx context.Context, uid, tag string) error

	// DeductCredits runs a read-check-decrement transaction and returns
	// the remaining balance; ErrInsufficientCredits when short.
	DeductCredits(ctx context.Context, uid, creditType string, amount int64) (int64, error)
	AddCredits(ctx context.Context, uid, creditType string, amount int64) error
	// ResetMonthlyCredits restores the tier allowance when at least 30
	// days passed since the last reset; reports whether it did.
	ResetMonthlyCredits(ctx context.Context, uid string) (bool, error)
}
