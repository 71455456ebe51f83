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

// FunctionsService invokes the platform's callable functions. Heavy
// fan-out deletes run server side so the client never orphans nested
// collections.
type FunctionsService struct {
	BaseURL string
	Client  *http.Client
}

func NewFunctionsService(baseURL string) *FunctionsService {
	return &FunctionsService{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// DeleteServer calls the deleteServer function, which removes the
// server document with all rooms, messages and memberships beneath it.
func (s *FunctionsService) DeleteServer(ctx context.Context, token, serverID string) error {
	payload, err := json.Marshal(map[string]any{"data": map[string]string{"serverId": serverID}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/deleteServer", bytes.NewReader(payload))
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
		return fmt.Errorf("deleteServer returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}
