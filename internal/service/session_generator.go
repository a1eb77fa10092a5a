package service

import (
	"fmt"
	"time"

	"github.com/pavankrishan/test-backend-ecs--sub006/internal/models"
	appErrors "github.com/pavankrishan/test-backend-ecs--sub006/pkg/errors"
)

const (
	hybridOnlineQuota   = 18
	hybridOfflineQuota  = 12
	hybridLeadingOnline = 6

	// sundayPairGapMinutes separates the two back-to-back Sunday sessions.
	sundayPairGapMinutes = 40
)

// GenerateSessions maps a contract onto its exact session calendar. Pure and
// deterministic: no clock access beyond startDate, no I/O. The returned batch
// always has exactly totalSessions entries numbered 1..N in chronological
// order; any other shape is a generator defect reported as
// ErrScheduleInvariant, never a business outcome.
func GenerateSessions(classType models.ClassType, mode models.DeliveryMode, totalSessions int, startDate time.Time, preferredTime, bookingID string) ([]models.Session, error) {
	if _, err := parseClock(preferredTime); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "preferred time slot must be HH:MM")
	}
	startDate = dateOnly(startDate)

	var sessions []models.Session
	if classType == models.ClassHybrid {
		sessions = generateHybrid(startDate, preferredTime, bookingID)
	} else {
		switch mode {
		case models.DeliverySundayOnly:
			sessions = generateSundayOnly(totalSessions, startDate, preferredTime, bookingID)
		default:
			sessions = generateWeekdayDaily(totalSessions, startDate, preferredTime, bookingID)
		}
	}

	if err := assertBatch(sessions, classType, totalSessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// generateWeekdayDaily emits one offline session per consecutive calendar
// day, all seven weekdays included, at the fixed preferred time.
func generateWeekdayDaily(totalSessions int, startDate time.Time, preferredTime, bookingID string) []models.Session {
	sessions := make([]models.Session, 0, totalSessions)
	for i := 0; i < totalSessions; i++ {
		sessions = append(sessions, models.Session{
			BookingID:     bookingID,
			SessionNumber: i + 1,
			Date:          startDate.AddDate(0, 0, i),
			TimeSlot:      preferredTime,
			Type:          models.SessionOffline,
			IsFixedTime:   true,
			Status:        models.SessionScheduled,
		})
	}
	return sessions
}

// generateSundayOnly emits paired offline sessions every Sunday, the second
// 40 minutes after the first. An odd totalSessions (rejected upstream by the
// purchase rules) still terminates with a final unpaired session.
func generateSundayOnly(totalSessions int, startDate time.Time, preferredTime, bookingID string) []models.Session {
	sessions := make([]models.Session, 0, totalSessions)
	sunday := nextSunday(startDate)
	secondSlot := addMinutesToClock(preferredTime, sundayPairGapMinutes)

	for len(sessions) < totalSessions {
		sessions = append(sessions, models.Session{
			BookingID:     bookingID,
			SessionNumber: len(sessions) + 1,
			Date:          sunday,
			TimeSlot:      preferredTime,
			Type:          models.SessionOffline,
			IsFixedTime:   true,
			Status:        models.SessionScheduled,
		})
		if len(sessions) < totalSessions {
			sessions = append(sessions, models.Session{
				BookingID:     bookingID,
				SessionNumber: len(sessions) + 1,
				Date:          sunday,
				TimeSlot:      secondSlot,
				Type:          models.SessionOffline,
				IsFixedTime:   true,
				Status:        models.SessionScheduled,
			})
		}
		sunday = sunday.AddDate(0, 0, 7)
	}
	return sessions
}

// generateHybrid interleaves 18 fixed-time online and 12 bookable offline
// sessions over 30 consecutive days. The first six are unconditionally
// online; from session 7 the types alternate starting with online until one
// quota is exhausted, after which the remainder is forced to the other type.
func generateHybrid(startDate time.Time, preferredTime, bookingID string) []models.Session {
	const total = hybridOnlineQuota + hybridOfflineQuota

	sessions := make([]models.Session, 0, total)
	onlineCount, offlineCount := 0, 0

	for i := 1; i <= total; i++ {
		sessionType := models.SessionOnline
		if i > hybridLeadingOnline {
			if (i-hybridLeadingOnline)%2 == 0 {
				sessionType = models.SessionOffline
			}
			if sessionType == models.SessionOnline && onlineCount >= hybridOnlineQuota {
				sessionType = models.SessionOffline
			}
			if sessionType == models.SessionOffline && offlineCount >= hybridOfflineQuota {
				sessionType = models.SessionOnline
			}
		}

		session := models.Session{
			BookingID:     bookingID,
			SessionNumber: i,
			Date:          startDate.AddDate(0, 0, i-1),
			TimeSlot:      preferredTime,
			Status:        models.SessionScheduled,
		}
		switch sessionType {
		case models.SessionOnline:
			session.Type = models.SessionOnline
			session.IsFixedTime = true
			onlineCount++
		default:
			session.Type = models.SessionOffline
			session.IsBookable = true
			session.RequiresBooking = true
			offlineCount++
		}
		sessions = append(sessions, session)
	}
	return sessions
}

// assertBatch is the generator's self-check guarding data integrity
// downstream. Every violation here is a programming error, not bad input.
func assertBatch(sessions []models.Session, classType models.ClassType, totalSessions int) error {
	if len(sessions) != totalSessions {
		return appErrors.Clone(appErrors.ErrScheduleInvariant,
			fmt.Sprintf("generated %d sessions, contract requires %d", len(sessions), totalSessions))
	}
	for i, s := range sessions {
		if s.SessionNumber != i+1 {
			return appErrors.Clone(appErrors.ErrScheduleInvariant,
				fmt.Sprintf("session at index %d carries number %d", i, s.SessionNumber))
		}
		if i > 0 && s.Date.Before(sessions[i-1].Date) {
			return appErrors.Clone(appErrors.ErrScheduleInvariant,
				fmt.Sprintf("session %d dated before session %d", s.SessionNumber, sessions[i-1].SessionNumber))
		}
	}
	if classType == models.ClassHybrid {
		online, offline := 0, 0
		for _, s := range sessions {
			if s.Type == models.SessionOnline {
				online++
			} else {
				offline++
			}
		}
		if online != hybridOnlineQuota || offline != hybridOfflineQuota {
			return appErrors.Clone(appErrors.ErrScheduleInvariant,
				fmt.Sprintf("hybrid split %d online / %d offline, want %d/%d", online, offline, hybridOnlineQuota, hybridOfflineQuota))
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func nextSunday(t time.Time) time.Time {
	days := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, days)
}

func parseClock(raw string) (time.Time, error) {
	return time.Parse("15:04", raw)
}

// addMinutesToClock shifts an HH:MM slot forward, wrapping across midnight.
func addMinutesToClock(raw string, minutes int) string {
	parsed, err := parseClock(raw)
	if err != nil {
		return raw
	}
	return parsed.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}
