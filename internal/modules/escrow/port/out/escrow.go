package out

import (
	"context"

	"focusstake/internal/modules/escrow/domain"
)

// AccountStore persists custodial balances. Create rejects an existing id
// with apperrors.ErrAlreadyExists; Find reports apperrors.ErrNotFound.
type AccountStore interface {
	Create(ctx context.Context, account domain.Account) error
	Find(ctx context.Context, id string) (domain.Account, error)
	UpdateBalance(ctx context.Context, id string, balance uint64) error
}

type TransferJournal interface {
	Record(ctx context.Context, transfer domain.Transfer) error
	ListForAccount(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error)
}
