package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/models"
	"github.com/Willclarkmusic/AIGM-TheEndPoint-sub000/repositories"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// generateCaller is the generation slice of the AI sidecar.
type generateCaller interface {
	GenerateCall(ctx context.Context, token string, req GenerateCallRequest) (*GenerateCallResponse, error)
}

// GenerateService runs gen-AI requests against the sidecar, gated by
// the caller's gen-AI credit balance.
type GenerateService struct {
	AI       generateCaller
	UserRepo repositories.UserRepository
}

func NewGenerateService(ai generateCaller, userRepo repositories.UserRepository) *GenerateService {
	return &GenerateService{AI: ai, UserRepo: userRepo}
}

// GenerateResult carries the produced asset URL and the balance left.
type GenerateResult struct {
	URL              string `json:"url"`
	CreditsRemaining int64  `json:"credits_remaining"`
}

// Generate asks the sidecar to produce an asset for the prompt and
// deducts one gen-AI credit on success. The returned URL points at the
// produced blob; saving it into the media bucket is the client's call.
func (s *GenerateService) Generate(ctx context.Context, sender Sender, prompt, kind string) (*GenerateResult, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	user, err := s.UserRepo.Get(ctx, sender.UID)
	if err != nil {
		return nil, err
	}
	if user.GenAICredits <= 0 {
		return nil, repositories.ErrInsufficientCredits
	}

	res, err := s.AI.GenerateCall(ctx, sender.Token, GenerateCallRequest{
		UserID: sender.UID,
		Prompt: prompt,
		Kind:   kind,
	})
	if err != nil {
		return nil, err
	}

	remaining, err := s.UserRepo.DeductCredits(ctx, sender.UID, models.CreditTypeGenAI, 1)
	if err != nil {
		return nil, err
	}
	return &GenerateResult{URL: res.URL, CreditsRemaining: remaining}, nil
}
