package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

// slotOccupancyReader answers "which of these trainer slots are already
// taken". Taking sqlx.ExtContext lets the commit-time re-check run the same
// query inside the assignment transaction for a consistent read.
type slotOccupancyReader interface {
	FindOccupied(ctx context.Context, exec sqlx.ExtContext, trainerID string, keys []models.SlotKey) ([]models.ScheduleSlot, error)
}

// EligibilityContext carries everything a trainer is judged against.
type EligibilityContext struct {
	CourseID        string
	Zone            models.Zone
	StudentLocation models.GeoPoint
	Sessions        []models.Session
}

// EligibilityResult is the verdict for one trainer. Reasons are collected
// exhaustively so a rejected trainer's report names every failed rule, not
// just the first.
type EligibilityResult struct {
	Trainer  models.TrainerCandidate
	Eligible bool
	Reasons  []string
}

// EligibilityService evaluates trainers against the hard assignment
// constraints.
type EligibilityService struct {
	slots slotOccupancyReader
}

// NewEligibilityService wires the availability reader.
func NewEligibilityService(slots slotOccupancyReader) *EligibilityService {
	return &EligibilityService{slots: slots}
}

// CheckTrainer evaluates every rule without short-circuiting. Geography and
// operator rules only apply when the batch contains offline sessions; an
// online-only batch skips them entirely.
func (s *EligibilityService) CheckTrainer(ctx context.Context, exec sqlx.ExtContext, trainer models.TrainerCandidate, ec EligibilityContext) (EligibilityResult, error) {
	result := EligibilityResult{Trainer: trainer}

	if !trainer.IsActive {
		result.Reasons = append(result.Reasons, "trainer is inactive")
	}

	if hasOfflineSessions(ec.Sessions) {
		if !trainer.Operator().Equal(ec.Zone.Operator()) {
			result.Reasons = append(result.Reasons,
				fmt.Sprintf("trainer operator %s does not match zone operator %s", trainer.Operator(), ec.Zone.Operator()))
		}
		if trainer.ZoneID != ec.Zone.ID {
			result.Reasons = append(result.Reasons, "trainer is registered to a different zone")
		}
		if trainer.Location != nil {
			if d := distanceBetween(ec.StudentLocation, *trainer.Location); d > ec.Zone.RadiusKm {
				result.Reasons = append(result.Reasons,
					fmt.Sprintf("trainer is %.1f km from the student, beyond the %.1f km zone radius", d, ec.Zone.RadiusKm))
			}
		}
	}

	if !trainer.IsCertifiedFor(ec.CourseID) {
		result.Reasons = append(result.Reasons, "trainer is not certified for the course")
	}
	if len(trainer.CertifiedCourseIDs) > models.MaxCertifiedCourses {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("trainer holds %d certifications, cap is %d", len(trainer.CertifiedCourseIDs), models.MaxCertifiedCourses))
	}

	occupied, err := s.slots.FindOccupied(ctx, exec, trainer.ID, models.SlotKeysForSessions(ec.Sessions))
	if err != nil {
		return result, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check trainer availability")
	}
	if len(occupied) > 0 {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("trainer has %d conflicting calendar slot(s)", len(occupied)))
	}

	result.Eligible = len(result.Reasons) == 0
	return result, nil
}

// FilterEligible applies CheckTrainer across a candidate pool and keeps only
// trainers with zero failed rules, preserving directory order.
func (s *EligibilityService) FilterEligible(ctx context.Context, exec sqlx.ExtContext, candidates []models.TrainerCandidate, ec EligibilityContext) ([]models.TrainerCandidate, []EligibilityResult, error) {
	var eligible []models.TrainerCandidate
	results := make([]EligibilityResult, 0, len(candidates))
	for _, trainer := range candidates {
		res, err := s.CheckTrainer(ctx, exec, trainer, ec)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, res)
		if res.Eligible {
			eligible = append(eligible, trainer)
		}
	}
	return eligible, results, nil
}

func hasOfflineSessions(sessions []models.Session) bool {
	for _, s := range sessions {
		if s.Type == models.SessionOffline {
			return true
		}
	}
	return false
}
