package service

import (
	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
)

// SelectBestTrainer picks one trainer from an eligible pool. Offline batches
// prefer the trainer nearest the student; equidistant trainers keep their
// input order, first seen wins. Online-only batches have no distance signal,
// so the first candidate wins outright. Returns nil when the pool is empty.
func SelectBestTrainer(eligible []models.TrainerCandidate, studentLocation models.GeoPoint, sessions []models.Session) *models.TrainerCandidate {
	if len(eligible) == 0 {
		return nil
	}
	if len(eligible) == 1 || !hasOfflineSessions(sessions) {
		return &eligible[0]
	}

	var best *models.TrainerCandidate
	bestDistance := 0.0
	for i := range eligible {
		trainer := &eligible[i]
		if trainer.Location == nil {
			continue
		}
		d := distanceBetween(studentLocation, *trainer.Location)
		if best == nil || d < bestDistance {
			best = trainer
			bestDistance = d
		}
	}
	if best == nil {
		// No candidate exposes a location; fall back to input order.
		return &eligible[0]
	}
	return best
}
