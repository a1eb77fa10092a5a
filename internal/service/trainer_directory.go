package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

// TrainerQuery scopes a directory lookup. A nil FranchiseID asks for
// company-operated trainers, a concrete id for that franchise's trainers.
type TrainerQuery struct {
	FranchiseID *string
	ZoneID      *string
	CourseID    string
	IsActive    bool
	Limit       int
}

// TrainerDirectory is the external read-only source of trainer candidates.
type TrainerDirectory interface {
	FetchTrainers(ctx context.Context, query TrainerQuery) ([]models.TrainerCandidate, error)
}

// HTTPTrainerDirectory talks to the trainer directory service over REST.
type HTTPTrainerDirectory struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTrainerDirectory builds a directory client with the given timeout.
func NewHTTPTrainerDirectory(baseURL string, timeout time.Duration) *HTTPTrainerDirectory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPTrainerDirectory{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type trainerDirectoryResponse struct {
	Data []models.TrainerCandidate `json:"data"`
}

// FetchTrainers queries GET {base}/trainers with the scoping parameters.
// Any transport or non-200 failure surfaces as ErrDirectoryUnavailable; the
// engine cannot proceed without candidates.
func (d *HTTPTrainerDirectory) FetchTrainers(ctx context.Context, query TrainerQuery) ([]models.TrainerCandidate, error) {
	params := url.Values{}
	params.Set("course_id", query.CourseID)
	params.Set("is_active", strconv.FormatBool(query.IsActive))
	if query.FranchiseID != nil {
		params.Set("franchise_id", *query.FranchiseID)
	}
	if query.ZoneID != nil {
		params.Set("zone_id", *query.ZoneID)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	endpoint := fmt.Sprintf("%s/trainers?%s", d.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDirectoryUnavailable.Code, appErrors.ErrDirectoryUnavailable.Status, "failed to build directory request")
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDirectoryUnavailable.Code, appErrors.ErrDirectoryUnavailable.Status, "trainer directory request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Clone(appErrors.ErrDirectoryUnavailable,
			fmt.Sprintf("trainer directory returned status %d", resp.StatusCode))
	}

	var payload trainerDirectoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDirectoryUnavailable.Code, appErrors.ErrDirectoryUnavailable.Status, "failed to decode directory response")
	}
	return payload.Data, nil
}
