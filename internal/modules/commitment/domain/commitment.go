package domain

import (
	"fmt"
	"strings"
	"time"

	"focusstake/internal/platform/amount"
	apperrors "focusstake/internal/platform/errors"
)

const (
	MinSessionsPerDay = 1
	MaxSessionsPerDay = 10
	MinDays           = 1
	MaxDays           = 30

	// SessionCooldown is the minimum gap between the last completion and the
	// next session start.
	SessionCooldown = 30 * time.Minute

	daySeconds int64 = 86400
)

// Commitment is a staked pledge of SessionsPerDay sessions for TotalDays days.
type Commitment struct {
	Owner                  string
	ID                     uint64
	VaultID                string
	AmountStaked           uint64
	SessionsPerDay         uint32
	TotalDays              uint32
	StartAt                time.Time
	DaysCompleted          uint64
	SessionsCompletedToday uint64
	SessionsCompleted      uint64
	LastSessionAt          time.Time
	Active                 bool
}

func New(owner string, id, stake uint64, sessionsPerDay, totalDays uint32, vaultID string, now time.Time) (Commitment, error) {
	if strings.TrimSpace(owner) == "" {
		return Commitment{}, fmt.Errorf("%w: commitment owner is required", apperrors.ErrInvalidInput)
	}
	if sessionsPerDay < MinSessionsPerDay || sessionsPerDay > MaxSessionsPerDay {
		return Commitment{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidSessionCount, sessionsPerDay)
	}
	if totalDays < MinDays || totalDays > MaxDays {
		return Commitment{}, fmt.Errorf("%w: got %d", apperrors.ErrInvalidDayCount, totalDays)
	}
	if stake == 0 {
		return Commitment{}, fmt.Errorf("%w: stake amount must be positive", apperrors.ErrInvalidInput)
	}
	return Commitment{
		Owner:          owner,
		ID:             id,
		VaultID:        vaultID,
		AmountStaked:   stake,
		SessionsPerDay: sessionsPerDay,
		TotalDays:      totalDays,
		StartAt:        now,
		Active:         true,
	}, nil
}

// DaysElapsed counts whole days since StartAt. A clock behind StartAt
// counts as zero.
func (c Commitment) DaysElapsed(now time.Time) uint64 {
	elapsed := now.Unix() - c.StartAt.Unix()
	if elapsed <= 0 {
		return 0
	}
	return uint64(elapsed / daySeconds)
}

func (c Commitment) ExpectedSessions() uint64 {
	return uint64(c.SessionsPerDay) * uint64(c.TotalDays)
}

func (c Commitment) Ended(now time.Time) bool {
	return c.DaysElapsed(now) >= uint64(c.TotalDays)
}

// PrepareSession checks whether a session may start at now, rolling the
// daily counters over when a new day has begun. It reports whether the
// rollover changed the record.
func (c *Commitment) PrepareSession(now time.Time) (bool, error) {
	if !c.Active {
		return false, apperrors.ErrCommitmentInactive
	}
	elapsed := c.DaysElapsed(now)
	if elapsed >= uint64(c.TotalDays) {
		return false, apperrors.ErrCommitmentEnded
	}
	rolled := false
	if elapsed > c.DaysCompleted {
		c.DaysCompleted = elapsed
		c.SessionsCompletedToday = 0
		rolled = true
	}
	if c.SessionsCompletedToday >= uint64(c.SessionsPerDay) {
		return rolled, apperrors.ErrDailySessionsCompleted
	}
	if !c.LastSessionAt.IsZero() && now.Sub(c.LastSessionAt) < SessionCooldown {
		return rolled, fmt.Errorf("%w: next session allowed at %s", apperrors.ErrSessionTooSoon, c.LastSessionAt.Add(SessionCooldown).Format(time.RFC3339))
	}
	return rolled, nil
}

// RecordCompletion counts a completed session toward today's quota.
func (c *Commitment) RecordCompletion(now time.Time) error {
	if c.SessionsCompletedToday >= uint64(c.SessionsPerDay) {
		return apperrors.ErrDailySessionsCompleted
	}
	total, err := amount.Add(c.SessionsCompleted, 1)
	if err != nil {
		return fmt.Errorf("sessions completed: %w", err)
	}
	c.SessionsCompletedToday++
	c.SessionsCompleted = total
	c.LastSessionAt = now
	return nil
}

// Close ends an elapsed, still active commitment. It is terminal.
func (c *Commitment) Close(now time.Time) error {
	if !c.Ended(now) {
		return fmt.Errorf("%w: %d of %d days elapsed", apperrors.ErrCommitmentNotEnded, c.DaysElapsed(now), c.TotalDays)
	}
	if !c.Active {
		return apperrors.ErrCommitmentInactive
	}
	c.Active = false
	return nil
}
