package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"focusstake/internal/modules/session/domain"
	sessionout "focusstake/internal/modules/session/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
)

type sessionRow struct {
	Owner            string `db:"owner"`
	CommitmentID     uint64 `db:"commitment_id"`
	Number           uint64 `db:"session_number"`
	StartAt          int64  `db:"start_at"`
	VerificationTick uint64 `db:"verification_tick"`
	Completed        bool   `db:"completed"`
	EndAt            int64  `db:"end_at"`
}

type SQLiteSessionStore struct {
	db *sqlx.DB
}

func NewSQLiteSessionStore(db *sqlx.DB) sessionout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Create(ctx context.Context, session domain.Session) error {
	const stmt = `
INSERT INTO sessions (owner, commitment_id, session_number, start_at, verification_tick, completed, end_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		session.Owner,
		session.CommitmentID,
		session.Number,
		storage.Unix(session.StartAt),
		session.VerificationTick,
		session.Completed,
		storage.Unix(session.EndAt),
	)
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: session %d of commitment %d", apperrors.ErrAlreadyExists, session.Number, session.CommitmentID)
	}
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Find(ctx context.Context, owner string, commitmentID, number uint64) (domain.Session, error) {
	row := sessionRow{}
	const query = `
SELECT owner, commitment_id, session_number, start_at, verification_tick, completed, end_at
FROM sessions WHERE owner = ? AND commitment_id = ? AND session_number = ?`
	err := tx.From(ctx, s.db).GetContext(ctx, &row, query, owner, commitmentID, number)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("%w: session %d of commitment %d", apperrors.ErrNotFound, number, commitmentID)
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return domain.Session{
		Owner:            row.Owner,
		CommitmentID:     row.CommitmentID,
		Number:           row.Number,
		StartAt:          storage.Time(row.StartAt),
		VerificationTick: row.VerificationTick,
		Completed:        row.Completed,
		EndAt:            storage.Time(row.EndAt),
	}, nil
}

func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.Session) error {
	const stmt = `
UPDATE sessions SET completed = ?, end_at = ?
WHERE owner = ? AND commitment_id = ? AND session_number = ?`
	result, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		session.Completed,
		storage.Unix(session.EndAt),
		session.Owner,
		session.CommitmentID,
		session.Number,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: session %d of commitment %d", apperrors.ErrNotFound, session.Number, session.CommitmentID)
	}
	return nil
}
