package dto

import "time"

type CreateInput struct {
	Owner string
}

type RecordSessionInput struct {
	Owner string
	At    time.Time
}

type CreditRewardsInput struct {
	Owner  string
	Amount uint64
}

type ProfileOutput struct {
	Owner             string
	SessionsCompleted uint64
	RewardsEarned     uint64
	CurrentStreak     uint64
	BestStreak        uint64
	LastActiveDay     time.Time
	CreatedAt         time.Time
}
