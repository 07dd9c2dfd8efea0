package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"focusstake/internal/modules/profile/domain"
	profileout "focusstake/internal/modules/profile/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
)

type profileRow struct {
	Owner             string `db:"owner"`
	SessionsCompleted uint64 `db:"sessions_completed"`
	RewardsEarned     uint64 `db:"rewards_earned"`
	CurrentStreak     uint64 `db:"current_streak"`
	BestStreak        uint64 `db:"best_streak"`
	LastActiveDay     int64  `db:"last_active_day"`
	CreatedAt         int64  `db:"created_at"`
}

type SQLiteProfileStore struct {
	db *sqlx.DB
}

func NewSQLiteProfileStore(db *sqlx.DB) profileout.ProfileStore {
	return &SQLiteProfileStore{db: db}
}

func (s *SQLiteProfileStore) Create(ctx context.Context, profile domain.Profile) error {
	const stmt = `
INSERT INTO profiles (owner, sessions_completed, rewards_earned, current_streak, best_streak, last_active_day, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		profile.Owner,
		profile.SessionsCompleted,
		profile.RewardsEarned,
		profile.CurrentStreak,
		profile.BestStreak,
		profile.LastActiveDay,
		storage.Unix(profile.CreatedAt),
	)
	if storage.IsUniqueViolation(err) {
		return fmt.Errorf("%w: profile %s", apperrors.ErrAlreadyExists, profile.Owner)
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *SQLiteProfileStore) Find(ctx context.Context, owner string) (domain.Profile, error) {
	row := profileRow{}
	const query = `
SELECT owner, sessions_completed, rewards_earned, current_streak, best_streak, last_active_day, created_at
FROM profiles WHERE owner = ?`
	err := tx.From(ctx, s.db).GetContext(ctx, &row, query, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, fmt.Errorf("%w: profile %s", apperrors.ErrNotFound, owner)
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	return domain.Profile{
		Owner:             row.Owner,
		SessionsCompleted: row.SessionsCompleted,
		RewardsEarned:     row.RewardsEarned,
		CurrentStreak:     row.CurrentStreak,
		BestStreak:        row.BestStreak,
		LastActiveDay:     row.LastActiveDay,
		CreatedAt:         storage.Time(row.CreatedAt),
	}, nil
}

func (s *SQLiteProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	const stmt = `
UPDATE profiles
SET sessions_completed = ?, rewards_earned = ?, current_streak = ?, best_streak = ?, last_active_day = ?
WHERE owner = ?`
	result, err := tx.From(ctx, s.db).ExecContext(ctx, stmt,
		profile.SessionsCompleted,
		profile.RewardsEarned,
		profile.CurrentStreak,
		profile.BestStreak,
		profile.LastActiveDay,
		profile.Owner,
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: profile %s", apperrors.ErrNotFound, profile.Owner)
	}
	return nil
}
