package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// AIService calls the companion AI service that backs generative and
// agent rooms. Requests carry the caller's identity token so the
// service can verify it against the same identity provider.
type AIService struct {
	BaseURL string
	Client  *http.Client
}

func NewAIService(baseURL string) *AIService {
	return &AIService{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type ChatCallRequest struct {
	UserID  string `json:"user_id"`
	AgentID string `json:"agent_id,omitempty"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

type ChatCallResponse struct {
	Response         string `json:"response"`
	CreditsRemaining int    `json:"credits_remaining"`
}

type GenerateCallRequest struct {
	UserID string `json:"user_id"`
	Prompt string `json:"prompt"`
	Kind   string `json:"kind,omitempty"`
}

type GenerateCallResponse struct {
	URL              string `json:"url"`
	CreditsRemaining int    `json:"credits_remaining"`
}

func (s *AIService) ChatCall(ctx context.Context, token string, req ChatCallRequest) (*ChatCallResponse, error) {
	var res ChatCallResponse
	if err := s.post(ctx, token, "/api/v1/chat-call", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AIService) GenerateCall(ctx context.Context, token string, req GenerateCallRequest) (*GenerateCallResponse, error) {
	var res GenerateCallResponse
	if err := s.post(ctx, token, "/api/v1/generate-call", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AIService) post(ctx context.Context, token, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ai service returned %d: %s", resp.StatusCode, msg)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
