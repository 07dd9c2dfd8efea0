package out

import (
	"context"

	"focusstake/internal/modules/commitment/domain"
)

type CommitmentStore interface {
	Create(ctx context.Context, commitment domain.Commitment) error
	Find(ctx context.Context, owner string, commitmentID uint64) (domain.Commitment, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.Commitment, error)
	Save(ctx context.Context, commitment domain.Commitment) error
}
