package domain

import (
	"fmt"
	"strings"
	"time"

	"focusstake/internal/platform/amount"
	apperrors "focusstake/internal/platform/errors"
)

// DaySeconds is the length of one streak day. Days are aligned to the unix
// epoch, not to a local calendar.
const DaySeconds int64 = 86400

// Profile aggregates a user's progress across all commitments.
type Profile struct {
	Owner             string
	SessionsCompleted uint64
	RewardsEarned     uint64
	CurrentStreak     uint64
	BestStreak        uint64
	LastActiveDay     int64
	CreatedAt         time.Time
}

func New(owner string, now time.Time) (Profile, error) {
	if strings.TrimSpace(owner) == "" {
		return Profile{}, fmt.Errorf("%w: profile owner is required", apperrors.ErrInvalidInput)
	}
	return Profile{Owner: owner, CreatedAt: now}, nil
}

// DayStart returns the unix second at which the day containing t begins.
func DayStart(t time.Time) int64 {
	sec := t.Unix()
	if sec <= 0 {
		return 0
	}
	return sec - sec%DaySeconds
}

// RecordSession counts one completed session and advances the streak. A
// second session on the same day leaves the streak as is; a gap of more than
// one day starts it over at 1. BestStreak only moves when a streak is
// extended, so a lone first day leaves it at 0.
func (p *Profile) RecordSession(now time.Time) error {
	sessions, err := amount.Add(p.SessionsCompleted, 1)
	if err != nil {
		return fmt.Errorf("sessions completed: %w", err)
	}
	today := DayStart(now)
	streak := p.CurrentStreak
	if today > p.LastActiveDay {
		if today-p.LastActiveDay <= DaySeconds {
			if streak, err = amount.Add(streak, 1); err != nil {
				return fmt.Errorf("current streak: %w", err)
			}
			if streak > p.BestStreak {
				p.BestStreak = streak
			}
		} else {
			streak = 1
		}
	}
	p.SessionsCompleted = sessions
	p.CurrentStreak = streak
	if today > p.LastActiveDay {
		p.LastActiveDay = today
	}
	return nil
}

func (p *Profile) CreditRewards(value uint64) error {
	next, err := amount.Add(p.RewardsEarned, value)
	if err != nil {
		return fmt.Errorf("rewards earned: %w", err)
	}
	p.RewardsEarned = next
	return nil
}
