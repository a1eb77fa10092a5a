package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// CalendarMirror pushes committed sessions into an externally visible
// calendar store. Best-effort: a mirror failure never affects the
// assignment outcome.
type CalendarMirror interface {
	MirrorSessions(ctx context.Context, trainerID string, sessions []models.Session) error
}

// HTTPCalendarMirror delivers session batches to the calendar service.
type HTTPCalendarMirror struct {
	baseURL string
	client  *http.Client
}

// NewHTTPCalendarMirror builds a mirror client with the given timeout.
func NewHTTPCalendarMirror(baseURL string, timeout time.Duration) *HTTPCalendarMirror {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCalendarMirror{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type mirrorPayload struct {
	TrainerID string           `json:"trainer_id"`
	Sessions  []models.Session `json:"sessions"`
}

// MirrorSessions POSTs the batch to {base}/calendar/sessions, preserving all
// booking metadata on each session.
func (m *HTTPCalendarMirror) MirrorSessions(ctx context.Context, trainerID string, sessions []models.Session) error {
	body, err := json.Marshal(mirrorPayload{TrainerID: trainerID, Sessions: sessions})
	if err != nil {
		return fmt.Errorf("failed to encode mirror payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/calendar/sessions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mirror request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar mirror request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("calendar mirror returned status %d", resp.StatusCode)
	}
	return nil
}
