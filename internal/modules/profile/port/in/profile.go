package in

import (
	"context"

	"focusstake/internal/modules/profile/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.ProfileOutput, error)
	Get(ctx context.Context, owner string) (dto.ProfileOutput, error)
	RecordSession(ctx context.Context, input dto.RecordSessionInput) (dto.ProfileOutput, error)
	CreditRewards(ctx context.Context, input dto.CreditRewardsInput) (dto.ProfileOutput, error)
}
