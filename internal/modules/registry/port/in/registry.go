package in

import (
	"context"

	"focusstake/internal/modules/registry/dto"
)

// Usecase owns the program singleton. Other modules update the stake
// aggregate through it with checked arithmetic.
type Usecase interface {
	Initialize(ctx context.Context, input dto.InitializeInput) (dto.ProgramOutput, error)
	Get(ctx context.Context) (dto.ProgramOutput, error)
	AddStaked(ctx context.Context, amount uint64) (dto.ProgramOutput, error)
	ReleaseStaked(ctx context.Context, amount uint64) (dto.ProgramOutput, error)
	RegisterUser(ctx context.Context) (dto.ProgramOutput, error)
}
