package in

import (
	"context"

	"focusstake/internal/modules/commitment/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.CommitmentOutput, error)
	Get(ctx context.Context, owner string, commitmentID uint64) (dto.CommitmentOutput, error)
	List(ctx context.Context, owner string) ([]dto.CommitmentOutput, error)
	// PrepareSession runs the session start preconditions, persisting any
	// day rollover.
	PrepareSession(ctx context.Context, input dto.SessionInput) (dto.CommitmentOutput, error)
	RecordCompletion(ctx context.Context, input dto.SessionInput) (dto.CommitmentOutput, error)
	// Close deactivates an ended commitment and returns its final state.
	Close(ctx context.Context, input dto.CloseInput) (dto.CommitmentOutput, error)
}
