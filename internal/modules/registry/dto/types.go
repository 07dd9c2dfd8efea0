package dto

import "time"

type InitializeInput struct {
	Authority  string
	RewardRate uint64
}

type ProgramOutput struct {
	Authority   string
	RewardRate  uint64
	TotalStaked uint64
	TotalUsers  uint64
	CreatedAt   time.Time
}
