package domain

import (
	"fmt"
	"time"

	apperrors "focusstake/internal/platform/errors"
)

const (
	// RequiredDuration models two 25 minute focus blocks with a 5 minute break.
	RequiredDuration = 55 * time.Minute
	// TickTolerance is the slack allowed on the tick cross-check.
	TickTolerance uint64 = 10
)

// Verifier decides whether a started session may complete. Wall time and
// the tick counter are checked independently, so a skewed wall clock alone
// cannot complete a session early.
type Verifier struct {
	Duration   time.Duration
	Tolerance  uint64
	TickPeriod time.Duration
}

func NewVerifier(tickPeriod time.Duration) Verifier {
	return Verifier{Duration: RequiredDuration, Tolerance: TickTolerance, TickPeriod: tickPeriod}
}

// ExpectedTicks is how many ticks the counter advances over Duration at its
// nominal period.
func (v Verifier) ExpectedTicks() uint64 {
	if v.TickPeriod <= 0 {
		return 0
	}
	return uint64(v.Duration / v.TickPeriod)
}

func (v Verifier) MinTicks() uint64 {
	expected := v.ExpectedTicks()
	if expected <= v.Tolerance {
		return 0
	}
	return expected - v.Tolerance
}

func (v Verifier) Complete(s *Session, now time.Time, tick uint64) error {
	if s.Completed {
		return apperrors.ErrSessionAlreadyCompleted
	}
	if elapsed := now.Sub(s.StartAt); elapsed < v.Duration {
		return fmt.Errorf("%w: %s of %s elapsed", apperrors.ErrSessionNotComplete, elapsed.Truncate(time.Second), v.Duration)
	}
	if tick < s.VerificationTick {
		return fmt.Errorf("%w: tick counter moved backwards", apperrors.ErrSlotVerificationFailed)
	}
	if elapsed := tick - s.VerificationTick; elapsed < v.MinTicks() {
		return fmt.Errorf("%w: %d ticks elapsed, need %d", apperrors.ErrSlotVerificationFailed, elapsed, v.MinTicks())
	}
	s.Completed = true
	s.EndAt = now
	return nil
}
