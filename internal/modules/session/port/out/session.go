package out

import (
	"context"

	"focusstake/internal/modules/session/domain"
)

// SessionStore rejects a duplicate (owner, commitment, number) with
// apperrors.ErrAlreadyExists.
type SessionStore interface {
	Create(ctx context.Context, session domain.Session) error
	Find(ctx context.Context, owner string, commitmentID, number uint64) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

type Journal interface {
	Write(ctx context.Context, entry domain.JournalEntry) (string, error)
	Recent(ctx context.Context, owner string, limit int) ([]domain.JournalEntry, error)
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context, owner string) (domain.ActiveSession, error)
	ClearActive(ctx context.Context, owner string) error
}

// JournalExporter writes journal entries, oldest first, to a file at path.
type JournalExporter interface {
	Export(ctx context.Context, path string, entries []domain.JournalEntry) error
}
