package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/dto"
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

// Pipeline stage labels used for logging and metrics.
const (
	stageValidating         = "validating"
	stageResolvingZone      = "resolving_zone"
	stageGeneratingSchedule = "generating_schedule"
	stageFetchingCandidates = "fetching_candidates"
	stageFiltering          = "filtering"
	stageCommitting         = "committing"
)

type purchaseWriter interface {
	Create(ctx context.Context, exec sqlx.ExtContext, purchase *models.Purchase, students []models.PurchaseStudent) error
}

type sessionWriter interface {
	BulkCreate(ctx context.Context, exec sqlx.ExtContext, sessions []models.Session) error
}

type slotLedger interface {
	BulkInsertBooked(ctx context.Context, exec sqlx.ExtContext, trainerID, bookingID string, keys []models.SlotKey) error
}

type zoneResolver interface {
	Resolve(ctx context.Context, point models.GeoPoint) ([]models.ResolvedZone, error)
}

type eligibilityChecker interface {
	CheckTrainer(ctx context.Context, exec sqlx.ExtContext, trainer models.TrainerCandidate, ec EligibilityContext) (EligibilityResult, error)
	FilterEligible(ctx context.Context, exec sqlx.ExtContext, candidates []models.TrainerCandidate, ec EligibilityContext) ([]models.TrainerCandidate, []EligibilityResult, error)
}

// txBeginner opens the outcome transaction; satisfied by *sqlx.DB.
type txBeginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type visibilitySync interface {
	EnqueueMirror(trainerID string, sessions []models.Session)
}

type assignmentMetrics interface {
	RecordOutcome(status models.PurchaseStatus)
	ObserveStage(stage string, duration time.Duration)
	RecordRaceLost()
}

// AssignmentService is the orchestrator sequencing validation, zone
// resolution, schedule generation, candidate filtering, selection and the
// atomic commit. Every attempt terminates in exactly one of the four
// purchase statuses; any returned error means the attempt is unresolved and
// nothing was persisted beyond a rolled-back transaction.
type AssignmentService struct {
	db         txBeginner
	purchases  purchaseWriter
	sessions   sessionWriter
	slots      slotLedger
	zones      zoneResolver
	directory  TrainerDirectory
	elig       eligibilityChecker
	sync       visibilitySync
	metrics    assignmentMetrics
	fetchLimit int
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewAssignmentService wires the orchestrator.
func NewAssignmentService(
	db txBeginner,
	purchases purchaseWriter,
	sessions sessionWriter,
	slots slotLedger,
	zones zoneResolver,
	directory TrainerDirectory,
	elig eligibilityChecker,
	sync visibilitySync,
	metrics assignmentMetrics,
	fetchLimit int,
	logger *zap.Logger,
) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fetchLimit <= 0 {
		fetchLimit = 100
	}
	return &AssignmentService{
		db:         db,
		purchases:  purchases,
		sessions:   sessions,
		slots:      slots,
		zones:      zones,
		directory:  directory,
		elig:       elig,
		sync:       sync,
		metrics:    metrics,
		fetchLimit: fetchLimit,
		validator:  validator.New(),
		logger:     logger,
	}
}

// Assign runs one assignment attempt end to end. The four business outcomes
// are always durable before they are returned; an error return means the
// caller must treat the attempt as not yet resolved and may retry the whole
// request.
func (s *AssignmentService) Assign(ctx context.Context, req dto.AssignmentRequest) (*dto.AssignmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment request")
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "startDate must be YYYY-MM-DD")
	}

	purchase := &models.Purchase{
		ID:                uuid.NewString(),
		ExternalBookingID: req.ExternalBookingID,
		CourseID:          req.CourseID,
		ClassType:         models.ClassType(req.ClassType),
		TotalSessions:     req.TotalSessions,
		DeliveryMode:      models.DeliveryMode(req.DeliveryMode),
		StartDate:         startDate,
		PreferredTimeSlot: req.PreferredTimeSlot,
		StudentLat:        req.StudentLocation.Lat,
		StudentLng:        req.StudentLocation.Lng,
	}
	students := make([]models.PurchaseStudent, len(req.Students))
	for i, in := range req.Students {
		students[i] = models.PurchaseStudent{Name: in.Name, Contact: in.Contact}
	}
	log := s.logger.With(
		zap.String("purchase_id", purchase.ID),
		zap.String("booking_id", purchase.ExternalBookingID))

	// VALIDATING
	stageStart := time.Now()
	rule := ValidatePurchaseRules(purchase.ClassType, purchase.TotalSessions, purchase.DeliveryMode, len(students))
	s.observeStage(stageValidating, stageStart)
	if !rule.Valid {
		log.Info("purchase rejected by contract rules", zap.String("reason", rule.Message))
		return s.finalize(ctx, purchase, students, nil, models.PurchaseInvalid, rule.Message)
	}

	// RESOLVING_ZONE
	stageStart = time.Now()
	resolved, err := s.zones.Resolve(ctx, purchase.Location())
	s.observeStage(stageResolvingZone, stageStart)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		log.Info("student location outside every active zone")
		return s.finalize(ctx, purchase, students, nil, models.PurchaseServiceNotAvailable, "no active zone covers the student location")
	}
	zone := resolved[0].Zone
	purchase.ZoneID = &zone.ID
	purchase.OperatorFranchiseID = zone.OperatorFranchiseID

	// GENERATING_SCHEDULE
	stageStart = time.Now()
	sessions, err := GenerateSessions(purchase.ClassType, purchase.DeliveryMode, purchase.TotalSessions,
		purchase.StartDate, purchase.PreferredTimeSlot, purchase.ExternalBookingID)
	s.observeStage(stageGeneratingSchedule, stageStart)
	if err != nil {
		// Generator failures are logic defects, never business outcomes.
		return nil, err
	}
	for i := range sessions {
		sessions[i].PurchaseID = purchase.ID
	}

	// FETCHING_CANDIDATES
	stageStart = time.Now()
	candidates, err := s.directory.FetchTrainers(ctx, TrainerQuery{
		FranchiseID: zone.OperatorFranchiseID,
		ZoneID:      &zone.ID,
		CourseID:    purchase.CourseID,
		IsActive:    true,
		Limit:       s.fetchLimit,
	})
	s.observeStage(stageFetchingCandidates, stageStart)
	if err != nil {
		return nil, err
	}

	ec := EligibilityContext{
		CourseID:        purchase.CourseID,
		Zone:            zone,
		StudentLocation: purchase.Location(),
		Sessions:        sessions,
	}

	// FILTERING + SELECTING run outside any transaction; the availability
	// view may be stale and is re-verified at commit time.
	stageStart = time.Now()
	eligible, _, err := s.elig.FilterEligible(ctx, nil, candidates, ec)
	s.observeStage(stageFiltering, stageStart)
	if err != nil {
		return nil, err
	}

	selected := SelectBestTrainer(eligible, purchase.Location(), sessions)
	if selected == nil {
		log.Info("no eligible trainer available",
			zap.Int("candidates", len(candidates)))
		return s.finalize(ctx, purchase, students, sessions, models.PurchaseWaitlisted, "no eligible trainer available")
	}

	// COMMITTING
	stageStart = time.Now()
	result, err := s.commit(ctx, purchase, students, sessions, *selected, ec, log)
	s.observeStage(stageCommitting, stageStart)
	return result, err
}

// commit opens the outcome transaction, re-checks the selected trainer with
// a transaction-scoped read and writes purchase, sessions and slot claims
// atomically. A slot uniqueness violation rolls everything back and the
// attempt is re-finalised as WAITLISTED in a fresh transaction.
func (s *AssignmentService) commit(ctx context.Context, purchase *models.Purchase, students []models.PurchaseStudent, sessions []models.Session, trainer models.TrainerCandidate, ec EligibilityContext, log *zap.Logger) (*dto.AssignmentResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin assignment transaction: %w", err)
	}

	recheck, err := s.elig.CheckTrainer(ctx, tx, trainer, ec)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if !recheck.Eligible {
		// Lost the optimistic window before the transaction even tried to
		// claim slots. Persist the waitlisted outcome in this transaction.
		log.Info("selected trainer failed commit-time re-check",
			zap.String("trainer_id", trainer.ID),
			zap.Strings("reasons", recheck.Reasons))
		result, err := s.persistOutcome(ctx, tx, purchase, students, sessions, models.PurchaseWaitlisted, "selected trainer no longer available")
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit waitlisted outcome: %w", err)
		}
		s.recordOutcome(models.PurchaseWaitlisted)
		return result, nil
	}

	purchase.AssignedTrainerID = &trainer.ID
	result, err := s.persistOutcome(ctx, tx, purchase, students, sessions, models.PurchaseAssigned, "")
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.slots.BulkInsertBooked(ctx, tx, trainer.ID, purchase.ExternalBookingID, models.SlotKeysForSessions(sessions)); err != nil {
		tx.Rollback()
		if appErrors.FromError(err).Code == appErrors.ErrSlotTaken.Code {
			// A concurrent booking claimed a slot between the re-check and
			// the insert. The constraint is the final arbiter: demote.
			log.Info("lost slot race, demoting to waitlist",
				zap.String("trainer_id", trainer.ID))
			if s.metrics != nil {
				s.metrics.RecordRaceLost()
			}
			purchase.AssignedTrainerID = nil
			return s.finalize(ctx, purchase, students, sessions, models.PurchaseWaitlisted, "trainer calendar was claimed concurrently")
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit assignment: %w", err)
	}

	log.Info("trainer assigned",
		zap.String("trainer_id", trainer.ID),
		zap.Int("sessions", len(sessions)))
	s.recordOutcome(models.PurchaseAssigned)
	if s.sync != nil {
		s.sync.EnqueueMirror(trainer.ID, sessions)
	}
	return result, nil
}

// finalize persists a non-assigned outcome in its own transaction. Business
// outcomes must be durable before they are returned to the caller.
func (s *AssignmentService) finalize(ctx context.Context, purchase *models.Purchase, students []models.PurchaseStudent, sessions []models.Session, status models.PurchaseStatus, reason string) (*dto.AssignmentResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin outcome transaction: %w", err)
	}
	result, err := s.persistOutcome(ctx, tx, purchase, students, sessions, status, reason)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit %s outcome: %w", status, err)
	}
	s.recordOutcome(status)
	return result, nil
}

func (s *AssignmentService) persistOutcome(ctx context.Context, tx *sqlx.Tx, purchase *models.Purchase, students []models.PurchaseStudent, sessions []models.Session, status models.PurchaseStatus, reason string) (*dto.AssignmentResult, error) {
	purchase.Status = status
	if err := s.purchases.Create(ctx, tx, purchase, students); err != nil {
		return nil, err
	}
	if err := s.sessions.BulkCreate(ctx, tx, sessions); err != nil {
		return nil, err
	}
	return &dto.AssignmentResult{Purchase: purchase, Sessions: sessions, Reason: reason}, nil
}

func (s *AssignmentService) observeStage(stage string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveStage(stage, time.Since(start))
	}
}

func (s *AssignmentService) recordOutcome(status models.PurchaseStatus) {
	if s.metrics != nil {
		s.metrics.RecordOutcome(status)
	}
}
