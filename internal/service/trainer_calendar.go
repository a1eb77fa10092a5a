package service

import (
	"context"
	"time"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

// defaultCalendarWindowDays bounds the range served when the caller omits an
// explicit end date.
const defaultCalendarWindowDays = 30

type slotRangeReader interface {
	ListByTrainer(ctx context.Context, trainerID string, from, to time.Time) ([]models.ScheduleSlot, error)
}

// TrainerCalendarService serves read-side views of the slot ledger for
// support tooling. It never mutates slots; claims happen only inside the
// assignment commit.
type TrainerCalendarService struct {
	slots slotRangeReader
}

// NewTrainerCalendarService constructs the calendar view service.
func NewTrainerCalendarService(slots slotRangeReader) *TrainerCalendarService {
	return &TrainerCalendarService{slots: slots}
}

// Calendar returns a trainer's ledger rows between from and to inclusive.
// A zero to defaults to from plus the standard window.
func (s *TrainerCalendarService) Calendar(ctx context.Context, trainerID string, from, to time.Time) ([]models.ScheduleSlot, error) {
	if trainerID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trainer id is required")
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, defaultCalendarWindowDays)
	}
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "calendar range end precedes start")
	}

	slots, err := s.slots.ListByTrainer(ctx, trainerID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer calendar")
	}
	return slots, nil
}
