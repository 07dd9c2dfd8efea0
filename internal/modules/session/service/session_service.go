package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/modules/session/domain"
	sessionout "focusstake/internal/modules/session/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/logging"
)

type SessionService struct {
	store    sessionout.SessionStore
	journal  sessionout.Journal
	verifier domain.Verifier
	exporter sessionout.JournalExporter
	logger   hclog.Logger
}

func NewSessionService(store sessionout.SessionStore, journal sessionout.Journal, verifier domain.Verifier, logger hclog.Logger) *SessionService {
	return &SessionService{store: store, journal: journal, verifier: verifier, logger: logging.Or(logger).Named("session")}
}

// WithExporter enables journal export. Without it ExportJournal fails with
// apperrors.ErrInvalidInput.
func (s *SessionService) WithExporter(exporter sessionout.JournalExporter) *SessionService {
	s.exporter = exporter
	return s
}

func (s *SessionService) Start(ctx context.Context, owner string, commitmentID, number uint64, now time.Time, tick uint64) (domain.Session, error) {
	session := domain.Start(owner, commitmentID, number, now, tick)
	if err := s.store.Create(ctx, session); err != nil {
		return domain.Session{}, err
	}
	s.logger.Info("session started", "owner", owner, "commitment", commitmentID, "session", number, "tick", tick)
	return session, nil
}

func (s *SessionService) Complete(ctx context.Context, owner string, commitmentID, number uint64, now time.Time, tick uint64) (domain.Session, error) {
	session, err := s.store.Find(ctx, owner, commitmentID, number)
	if err != nil {
		return domain.Session{}, err
	}
	if err := session.OwnedBy(owner); err != nil {
		return domain.Session{}, err
	}
	if err := s.verifier.Complete(&session, now, tick); err != nil {
		return domain.Session{}, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return domain.Session{}, err
	}
	s.logger.Info("session completed", "owner", owner, "commitment", commitmentID, "session", number, "ticks", tick-session.VerificationTick)
	return session, nil
}

func (s *SessionService) Get(ctx context.Context, owner string, commitmentID, number uint64) (domain.Session, error) {
	return s.store.Find(ctx, owner, commitmentID, number)
}

func (s *SessionService) RecordJournal(ctx context.Context, entry domain.JournalEntry) (string, error) {
	if s.journal == nil {
		return "", nil
	}
	return s.journal.Write(ctx, entry)
}

func (s *SessionService) RecentJournal(ctx context.Context, owner string, limit int) ([]domain.JournalEntry, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.Recent(ctx, owner, limit)
}

func (s *SessionService) JournalStats(ctx context.Context, owner string) (domain.JournalStats, error) {
	entries, err := s.RecentJournal(ctx, owner, 0)
	if err != nil {
		return domain.JournalStats{}, err
	}
	return domain.Summarize(entries)
}

func (s *SessionService) ExportJournal(ctx context.Context, owner, path string) (int, error) {
	if s.exporter == nil {
		return 0, fmt.Errorf("%w: journal export is not configured", apperrors.ErrInvalidInput)
	}
	entries, err := s.RecentJournal(ctx, owner, 0)
	if err != nil {
		return 0, err
	}
	slices.Reverse(entries)
	if err := s.exporter.Export(ctx, path, entries); err != nil {
		return 0, fmt.Errorf("export journal: %w", err)
	}
	s.logger.Info("journal exported", "owner", owner, "path", path, "entries", len(entries))
	return len(entries), nil
}
