package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"focusstake/internal/modules/session/domain"
	sessionout "focusstake/internal/modules/session/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/slug"
)

// FileActiveSessionStore keeps one pointer file per owner under dir.
type FileActiveSessionStore struct {
	dir string
}

func NewFileActiveSessionStore(dir string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{dir: dir}
}

func (s *FileActiveSessionStore) path(owner string) string {
	return filepath.Join(s.dir, slug.Make(owner)+".json")
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := os.WriteFile(s.path(session.Owner), payload, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context, owner string) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path(owner))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	active := domain.ActiveSession{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session: %w", err)
	}
	if active.Owner == "" {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context, owner string) error {
	if err := os.Remove(s.path(owner)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
