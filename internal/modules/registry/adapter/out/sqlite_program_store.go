package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"focusstake/internal/modules/registry/domain"
	registryout "focusstake/internal/modules/registry/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
)

type programRow struct {
	Authority   string `db:"authority"`
	RewardRate  uint64 `db:"reward_rate"`
	TotalStaked uint64 `db:"total_staked"`
	TotalUsers  uint64 `db:"total_users"`
	CreatedAt   int64  `db:"created_at"`
}

type SQLiteProgramStore struct {
	db *sqlx.DB
}

func NewSQLiteProgramStore(db *sqlx.DB) registryout.ProgramStore {
	return &SQLiteProgramStore{db: db}
}

func (s *SQLiteProgramStore) Create(ctx context.Context, program domain.Program) error {
	const stmt = `
INSERT INTO program (id, authority, reward_rate, total_staked, total_users, created_at)
VALUES (1, ?, ?, ?, ?, ?)`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		program.Authority,
		program.RewardRate,
		program.TotalStaked,
		program.TotalUsers,
		storage.Unix(program.CreatedAt),
	)
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: program already initialized", apperrors.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("insert program: %w", err)
	}
	return nil
}

func (s *SQLiteProgramStore) Load(ctx context.Context) (domain.Program, error) {
	row := programRow{}
	err := tx.From(ctx, s.db).GetContext(ctx, &row, `SELECT authority, reward_rate, total_staked, total_users, created_at FROM program WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Program{}, apperrors.ErrProgramUninitialized
	}
	if err != nil {
		return domain.Program{}, fmt.Errorf("load program: %w", err)
	}
	return domain.Program{
		Authority:   row.Authority,
		RewardRate:  row.RewardRate,
		TotalStaked: row.TotalStaked,
		TotalUsers:  row.TotalUsers,
		CreatedAt:   storage.Time(row.CreatedAt),
	}, nil
}

func (s *SQLiteProgramStore) Save(ctx context.Context, program domain.Program) error {
	const stmt = `UPDATE program SET reward_rate = ?, total_staked = ?, total_users = ? WHERE id = 1`
	result, err := tx.From(ctx, s.db).ExecContext(ctx, stmt, program.RewardRate, program.TotalStaked, program.TotalUsers)
	if err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrProgramUninitialized
	}
	return nil
}
