package in

import (
	"context"

	"focusstake/internal/modules/settlement/dto"
)

type Usecase interface {
	// Settle pays out an ended commitment once and deactivates it.
	Settle(ctx context.Context, input dto.SettleInput) (dto.SettlementOutput, error)
	// Preview computes the payout the commitment would get right now
	// without changing anything.
	Preview(ctx context.Context, input dto.SettleInput) (dto.SettlementOutput, error)
}
