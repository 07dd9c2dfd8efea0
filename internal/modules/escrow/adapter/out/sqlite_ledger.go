package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"focusstake/internal/modules/escrow/domain"
	escrowout "focusstake/internal/modules/escrow/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
)

type accountRow struct {
	ID           string `db:"id"`
	Kind         string `db:"kind"`
	Owner        string `db:"owner"`
	Authority    string `db:"authority"`
	CommitmentID uint64 `db:"commitment_id"`
	Balance      uint64 `db:"balance"`
	CreatedAt    int64  `db:"created_at"`
}

func (r accountRow) toDomain() domain.Account {
	return domain.Account{
		ID:           r.ID,
		Kind:         domain.AccountKind(r.Kind),
		Owner:        r.Owner,
		Authority:    r.Authority,
		CommitmentID: r.CommitmentID,
		Balance:      r.Balance,
		CreatedAt:    storage.Time(r.CreatedAt),
	}
}

type transferRow struct {
	ID        string `db:"id"`
	From      string `db:"from_account"`
	To        string `db:"to_account"`
	Amount    uint64 `db:"amount"`
	Authority string `db:"authority"`
	Memo      string `db:"memo"`
	CreatedAt int64  `db:"created_at"`
}

// SQLiteLedger keeps accounts and the transfer journal in the shared focus
// database. Writes join the transaction carried by ctx.
type SQLiteLedger struct {
	db *sqlx.DB
}

func NewSQLiteLedger(db *sqlx.DB) *SQLiteLedger {
	return &SQLiteLedger{db: db}
}

func NewSQLiteAccountStore(db *sqlx.DB) escrowout.AccountStore {
	return NewSQLiteLedger(db)
}

func NewSQLiteTransferJournal(db *sqlx.DB) escrowout.TransferJournal {
	return NewSQLiteLedger(db)
}

func (s *SQLiteLedger) Create(ctx context.Context, account domain.Account) error {
	const stmt = `
INSERT INTO accounts (id, kind, owner, authority, commitment_id, balance, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		account.ID,
		string(account.Kind),
		account.Owner,
		account.Authority,
		account.CommitmentID,
		account.Balance,
		storage.Unix(account.CreatedAt),
	)
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: account %s", apperrors.ErrAlreadyExists, account.ID)
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (s *SQLiteLedger) Find(ctx context.Context, id string) (domain.Account, error) {
	row := accountRow{}
	err := tx.From(ctx, s.db).GetContext(ctx, &row, `SELECT id, kind, owner, authority, commitment_id, balance, created_at FROM accounts WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("load account: %w", err)
	}
	return row.toDomain(), nil
}

func (s *SQLiteLedger) UpdateBalance(ctx context.Context, id string, balance uint64) error {
	result, err := tx.From(ctx, s.db).ExecContext(ctx, `UPDATE accounts SET balance = ? WHERE id = ?`, balance, id)
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteLedger) Record(ctx context.Context, transfer domain.Transfer) error {
	const stmt = `
INSERT INTO transfers (id, from_account, to_account, amount, authority, memo, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		transfer.ID,
		transfer.From,
		transfer.To,
		transfer.Amount,
		transfer.Authority,
		transfer.Memo,
		storage.Unix(transfer.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("record transfer: %w", err)
	}
	return nil
}

func (s *SQLiteLedger) ListForAccount(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error) {
	const query = `
SELECT id, from_account, to_account, amount, authority, memo, created_at
FROM transfers
WHERE from_account = ? OR to_account = ?
ORDER BY created_at DESC, rowid DESC
LIMIT ?`
	rows := []transferRow{}
	if err := tx.From(ctx, s.db).SelectContext(ctx, &rows, query, accountID, accountID, limit); err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	out := make([]domain.Transfer, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Transfer{
			ID:        r.ID,
			From:      r.From,
			To:        r.To,
			Amount:    r.Amount,
			Authority: r.Authority,
			Memo:      r.Memo,
			CreatedAt: storage.Time(r.CreatedAt),
		})
	}
	return out, nil
}
