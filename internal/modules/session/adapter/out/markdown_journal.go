package out

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"focusstake/internal/modules/session/domain"
	sessionout "focusstake/internal/modules/session/port/out"
	"focusstake/internal/platform/markdown"
	"focusstake/internal/platform/slug"
)

const progressFile = "progress.md"

var progressBlock = markdown.Block{
	Start: "<!-- focusstake:progress:start -->",
	End:   "<!-- focusstake:progress:end -->",
}

// MarkdownJournal writes one note per completed session under
// <dir>/<owner>/YYYY/MM/DD and keeps a generated progress block in
// <dir>/<owner>/progress.md. Text outside that block is left alone.
type MarkdownJournal struct {
	dir string
}

func NewMarkdownJournal(dir string) sessionout.Journal {
	return &MarkdownJournal{dir: dir}
}

func (j *MarkdownJournal) Write(_ context.Context, entry domain.JournalEntry) (string, error) {
	session := entry.Session
	ownerDir := filepath.Join(j.dir, slug.Make(session.Owner))
	end := session.EndAt
	dayDir := filepath.Join(ownerDir, end.Format("2006"), end.Format("01"), end.Format("02"))
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dayDir, fmt.Sprintf("%s-c%d-s%d.md", end.Format("150405"), session.CommitmentID, session.Number))

	duration := int(end.Sub(session.StartAt).Minutes())
	meta := map[string]any{
		"schema_version":    domain.SchemaVersion,
		"owner":             session.Owner,
		"commitment_id":     session.CommitmentID,
		"session_number":    session.Number,
		"started_at":        session.StartAt.Format(time.RFC3339),
		"ended_at":          end.Format(time.RFC3339),
		"duration_minutes":  duration,
		"verification_tick": session.VerificationTick,
		"sessions_today":    entry.SessionsToday,
		"sessions_per_day":  entry.SessionsPerDay,
		"total_sessions":    entry.TotalSessions,
		"current_streak":    entry.CurrentStreak,
		"best_streak":       entry.BestStreak,
	}
	body := fmt.Sprintf("# Focus session %d\n\n- Commitment: %d\n- Duration: %d minutes\n- Today: %d of %d\n- Streak: %d (best %d)\n",
		session.Number, session.CommitmentID, duration, entry.SessionsToday, entry.SessionsPerDay, entry.CurrentStreak, entry.BestStreak)
	rendered, err := markdown.Note{Meta: meta, Body: body}.Render()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	if err := j.refreshProgress(ownerDir, entry); err != nil {
		return "", err
	}
	return path, nil
}

func (j *MarkdownJournal) refreshProgress(ownerDir string, entry domain.JournalEntry) error {
	path := filepath.Join(ownerDir, progressFile)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read progress note: %w", err)
	}
	body := string(existing)
	if body == "" {
		body = fmt.Sprintf("# Focus progress for %s\n", entry.Session.Owner)
	}
	generated := fmt.Sprintf("- Sessions completed: %d\n- Current streak: %d\n- Best streak: %d\n- Last session: %s",
		entry.TotalSessions, entry.CurrentStreak, entry.BestStreak, entry.Session.EndAt.Format(time.RFC3339))
	updated := progressBlock.Replace(body, generated)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write progress note: %w", err)
	}
	return nil
}

// Recent returns the owner's latest journal entries, newest first.
func (j *MarkdownJournal) Recent(_ context.Context, owner string, limit int) ([]domain.JournalEntry, error) {
	ownerDir := filepath.Join(j.dir, slug.Make(owner))
	entries := []domain.JournalEntry{}
	err := filepath.WalkDir(ownerDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == ownerDir {
				return fs.SkipDir
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") || d.Name() == progressFile {
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read session note: %w", err)
		}
		note, err := markdown.Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if fmt.Sprint(note.Meta["owner"]) != owner {
			return nil
		}
		entries = append(entries, entryFromMeta(owner, note.Meta))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Session.EndAt.After(entries[b].Session.EndAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func entryFromMeta(owner string, meta map[string]any) domain.JournalEntry {
	return domain.JournalEntry{
		Session: domain.Session{
			Owner:            owner,
			CommitmentID:     metaUint(meta["commitment_id"]),
			Number:           metaUint(meta["session_number"]),
			StartAt:          metaTime(meta["started_at"]),
			EndAt:            metaTime(meta["ended_at"]),
			VerificationTick: metaUint(meta["verification_tick"]),
			Completed:        true,
		},
		SessionsToday:  metaUint(meta["sessions_today"]),
		SessionsPerDay: uint32(metaUint(meta["sessions_per_day"])),
		TotalSessions:  metaUint(meta["total_sessions"]),
		CurrentStreak:  metaUint(meta["current_streak"]),
		BestStreak:     metaUint(meta["best_streak"]),
	}
}

func metaUint(v any) uint64 {
	switch n := v.(type) {
	case int:
		if n > 0 {
			return uint64(n)
		}
	case int64:
		if n > 0 {
			return uint64(n)
		}
	case uint64:
		return n
	case float64:
		if n > 0 {
			return uint64(n)
		}
	}
	return 0
}

func metaTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
