package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"focusstake/internal/modules/commitment/domain"
	commitmentout "focusstake/internal/modules/commitment/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
)

const commitmentColumns = `owner, commitment_id, vault_id, amount_staked, sessions_per_day, total_days, start_at,
  days_completed, sessions_completed_today, sessions_completed, last_session_at, active`

type commitmentRow struct {
	Owner                  string `db:"owner"`
	CommitmentID           uint64 `db:"commitment_id"`
	VaultID                string `db:"vault_id"`
	AmountStaked           uint64 `db:"amount_staked"`
	SessionsPerDay         uint32 `db:"sessions_per_day"`
	TotalDays              uint32 `db:"total_days"`
	StartAt                int64  `db:"start_at"`
	DaysCompleted          uint64 `db:"days_completed"`
	SessionsCompletedToday uint64 `db:"sessions_completed_today"`
	SessionsCompleted      uint64 `db:"sessions_completed"`
	LastSessionAt          int64  `db:"last_session_at"`
	Active                 bool   `db:"active"`
}

func (r commitmentRow) toDomain() domain.Commitment {
	return domain.Commitment{
		Owner:                  r.Owner,
		ID:                     r.CommitmentID,
		VaultID:                r.VaultID,
		AmountStaked:           r.AmountStaked,
		SessionsPerDay:         r.SessionsPerDay,
		TotalDays:              r.TotalDays,
		StartAt:                storage.Time(r.StartAt),
		DaysCompleted:          r.DaysCompleted,
		SessionsCompletedToday: r.SessionsCompletedToday,
		SessionsCompleted:      r.SessionsCompleted,
		LastSessionAt:          storage.Time(r.LastSessionAt),
		Active:                 r.Active,
	}
}

type SQLiteCommitmentStore struct {
	db *sqlx.DB
}

func NewSQLiteCommitmentStore(db *sqlx.DB) commitmentout.CommitmentStore {
	return &SQLiteCommitmentStore{db: db}
}

func (s *SQLiteCommitmentStore) Create(ctx context.Context, c domain.Commitment) error {
	stmt := `INSERT INTO commitments (` + commitmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		c.Owner,
		c.ID,
		c.VaultID,
		c.AmountStaked,
		c.SessionsPerDay,
		c.TotalDays,
		storage.Unix(c.StartAt),
		c.DaysCompleted,
		c.SessionsCompletedToday,
		c.SessionsCompleted,
		storage.Unix(c.LastSessionAt),
		c.Active,
	)
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: commitment %s/%d", apperrors.ErrAlreadyExists, c.Owner, c.ID)
	}
	if err != nil {
		return fmt.Errorf("insert commitment: %w", err)
	}
	return nil
}

func (s *SQLiteCommitmentStore) Find(ctx context.Context, owner string, commitmentID uint64) (domain.Commitment, error) {
	row := commitmentRow{}
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE owner = ? AND commitment_id = ?`
	err := tx.From(ctx, s.db).GetContext(ctx, &row, query, owner, commitmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Commitment{}, fmt.Errorf("%w: commitment %s/%d", apperrors.ErrNotFound, owner, commitmentID)
	}
	if err != nil {
		return domain.Commitment{}, fmt.Errorf("load commitment: %w", err)
	}
	return row.toDomain(), nil
}

func (s *SQLiteCommitmentStore) ListByOwner(ctx context.Context, owner string) ([]domain.Commitment, error) {
	rows := []commitmentRow{}
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE owner = ? ORDER BY commitment_id`
	if err := tx.From(ctx, s.db).SelectContext(ctx, &rows, query, owner); err != nil {
		return nil, fmt.Errorf("list commitments: %w", err)
	}
	out := make([]domain.Commitment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Save writes the mutable counters. Stake and schedule never change after
// creation and are not touched.
func (s *SQLiteCommitmentStore) Save(ctx context.Context, c domain.Commitment) error {
	const stmt = `
UPDATE commitments
SET days_completed = ?, sessions_completed_today = ?, sessions_completed = ?, last_session_at = ?, active = ?
WHERE owner = ? AND commitment_id = ?`
	result, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		c.DaysCompleted,
		c.SessionsCompletedToday,
		c.SessionsCompleted,
		storage.Unix(c.LastSessionAt),
		c.Active,
		c.Owner,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("save commitment: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: commitment %s/%d", apperrors.ErrNotFound, c.Owner, c.ID)
	}
	return nil
}
