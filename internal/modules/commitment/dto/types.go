package dto

import "time"

type CreateInput struct {
	Owner          string
	CommitmentID   uint64
	Amount         uint64
	SessionsPerDay uint32
	TotalDays      uint32
}

// SessionInput addresses a commitment at a fixed instant for the session
// lifecycle hooks.
type SessionInput struct {
	Owner        string
	CommitmentID uint64
	At           time.Time
}

type CloseInput struct {
	Owner        string
	CommitmentID uint64
	At           time.Time
}

type CommitmentOutput struct {
	Owner                  string
	CommitmentID           uint64
	VaultID                string
	AmountStaked           uint64
	SessionsPerDay         uint32
	TotalDays              uint32
	StartAt                time.Time
	DaysCompleted          uint64
	SessionsCompletedToday uint64
	SessionsCompleted      uint64
	ExpectedSessions       uint64
	LastSessionAt          time.Time
	Active                 bool
}
