package dto

import "time"

type SettleInput struct {
	Owner        string
	CommitmentID uint64
}

type SettlementOutput struct {
	Owner             string
	CommitmentID      uint64
	VaultID           string
	Tier              string
	Strategy          string
	SessionsCompleted uint64
	SessionsExpected  uint64
	Ratio             float64
	Stake             uint64
	Bonus             uint64
	Payout            uint64
	ToppedUp          uint64
	VaultRemaining    uint64
	SettledAt         time.Time
}
