package domain

import (
	"fmt"
	"time"

	apperrors "focusstake/internal/platform/errors"
)

const SchemaVersion = 1

// Session is one attempted focus block within a commitment. It moves from
// started to completed at most once.
type Session struct {
	Owner            string
	CommitmentID     uint64
	Number           uint64
	StartAt          time.Time
	VerificationTick uint64
	Completed        bool
	EndAt            time.Time
}

func Start(owner string, commitmentID, number uint64, now time.Time, tick uint64) Session {
	return Session{
		Owner:            owner,
		CommitmentID:     commitmentID,
		Number:           number,
		StartAt:          now,
		VerificationTick: tick,
	}
}

func (s Session) OwnedBy(owner string) error {
	if s.Owner != owner {
		return fmt.Errorf("%w: session belongs to %s", apperrors.ErrInvalidAuthority, s.Owner)
	}
	return nil
}

// ActiveSession points at the session a user started last, so completion
// can be requested without repeating its coordinates.
type ActiveSession struct {
	Owner         string    `json:"owner"`
	CommitmentID  uint64    `json:"commitment_id"`
	SessionNumber uint64    `json:"session_number"`
	StartedAt     time.Time `json:"started_at"`
}

func (a ActiveSession) Matches(s Session) bool {
	return a.Owner == s.Owner && a.CommitmentID == s.CommitmentID && a.SessionNumber == s.Number
}

// JournalEntry is what a completed session leaves behind in the journal.
type JournalEntry struct {
	Session        Session
	SessionsToday  uint64
	SessionsPerDay uint32
	TotalSessions  uint64
	CurrentStreak  uint64
	BestStreak     uint64
}
