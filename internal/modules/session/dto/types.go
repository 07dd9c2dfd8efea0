package dto

import "time"

type StartInput struct {
	Owner         string
	CommitmentID  uint64
	SessionNumber uint64
}

// CompleteInput names the session to complete. With UseActive set the
// owner's active session pointer is used instead of the coordinates.
type CompleteInput struct {
	Owner         string
	CommitmentID  uint64
	SessionNumber uint64
	UseActive     bool
}

type SessionOutput struct {
	Owner            string
	CommitmentID     uint64
	SessionNumber    uint64
	StartAt          time.Time
	VerificationTick uint64
	Completed        bool
	EndAt            time.Time
}

type CompleteOutput struct {
	Session        SessionOutput
	SessionsToday  uint64
	SessionsPerDay uint32
	CurrentStreak  uint64
	BestStreak     uint64
	JournalPath    string
}

type ActiveSessionOutput struct {
	Owner         string
	CommitmentID  uint64
	SessionNumber uint64
	StartedAt     time.Time
	ReadyAt       time.Time
}

type JournalEntryOutput struct {
	CommitmentID  uint64
	SessionNumber uint64
	StartAt       time.Time
	EndAt         time.Time
	CurrentStreak uint64
}

type JournalStatsOutput struct {
	Sessions             int
	ActiveDays           int
	SessionsPerActiveDay float64
	MeanMinutes          float64
	MedianMinutes        float64
	P90Minutes           float64
	LongestMinutes       float64
	BestStreak           uint64
}

type ExportOutput struct {
	Path    string
	Entries int
}
