package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	"github.com/pavankrishan/test-backend-ecs--sub006/pkg/jobs"
)

const jobTypeMirrorSessions = "mirror_sessions"

type mirrorJobPayload struct {
	TrainerID string
	Sessions  []models.Session
}

// CalendarSyncService mirrors assigned session batches to the external
// calendar asynchronously. The sync is eventually consistent: enqueue and
// delivery failures are logged, never propagated to the assignment path.
type CalendarSyncService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewCalendarSyncService builds the sync service around a worker queue that
// delivers batches through the given mirror.
func NewCalendarSyncService(mirror CalendarMirror, cfg jobs.QueueConfig, logger *zap.Logger) *CalendarSyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &CalendarSyncService{logger: logger}
	s.queue = jobs.NewQueue("calendar-sync", func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(mirrorJobPayload)
		if !ok {
			logger.Error("calendar sync job carries unexpected payload", zap.String("job_id", job.ID))
			return nil
		}
		return mirror.MirrorSessions(ctx, payload.TrainerID, payload.Sessions)
	}, cfg)
	return s
}

// Start launches the sync workers.
func (s *CalendarSyncService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *CalendarSyncService) Stop() {
	s.queue.Stop()
}

// Depth reports the number of pending mirror jobs.
func (s *CalendarSyncService) Depth() int {
	return s.queue.Depth()
}

// EnqueueMirror schedules a session batch for mirroring. Failure to enqueue
// is logged and swallowed.
func (s *CalendarSyncService) EnqueueMirror(trainerID string, sessions []models.Session) {
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeMirrorSessions,
		Payload: mirrorJobPayload{TrainerID: trainerID, Sessions: sessions},
	})
	if err != nil {
		s.logger.Warn("failed to enqueue calendar mirror job",
			zap.String("trainer_id", trainerID),
			zap.Int("sessions", len(sessions)),
			zap.Error(err))
	}
}
