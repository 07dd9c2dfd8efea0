package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sessionout "focusstake/internal/modules/session/adapter/out"
	"focusstake/internal/modules/session/domain"
	"focusstake/internal/platform/markdown"
)

func completed(owner string, number uint64, end time.Time, streak uint64) domain.JournalEntry {
	session := domain.Start(owner, 1, number, end.Add(-time.Hour), 100)
	session.Completed = true
	session.EndAt = end
	return domain.JournalEntry{
		Session:        session,
		SessionsToday:  1,
		SessionsPerDay: 2,
		TotalSessions:  number,
		CurrentStreak:  streak,
		BestStreak:     streak,
	}
}

func TestMarkdownJournalWritesNoteAndProgress(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	journal := sessionout.NewMarkdownJournal(dir)
	end := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	path, err := journal.Write(context.Background(), completed("Alice Doe", 1, end, 1))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if want := filepath.Join(dir, "alice-doe", "2026", "03", "01", "100000-c1-s1.md"); path != want {
		t.Fatalf("expected note at %s, got %s", want, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	note, err := markdown.Parse(string(raw))
	if err != nil {
		t.Fatalf("parse note: %v", err)
	}
	if note.Meta["owner"] != "Alice Doe" || note.Meta["duration_minutes"] != 60 {
		t.Fatalf("unexpected frontmatter: %#v", note.Meta)
	}
	if !strings.Contains(note.Body, "Today: 1 of 2") {
		t.Fatalf("unexpected body: %q", note.Body)
	}

	progressPath := filepath.Join(dir, "alice-doe", "progress.md")
	custom := "# My notes\n\nkeep this\n"
	if err := os.WriteFile(progressPath, []byte(custom), 0o644); err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	if _, err := journal.Write(context.Background(), completed("Alice Doe", 2, end.AddDate(0, 0, 1), 2)); err != nil {
		t.Fatalf("write second: %v", err)
	}
	progress, err := os.ReadFile(progressPath)
	if err != nil {
		t.Fatalf("read progress: %v", err)
	}
	if !strings.Contains(string(progress), "keep this") || !strings.Contains(string(progress), "Current streak: 2") {
		t.Fatalf("unexpected progress note: %q", progress)
	}
}

func TestMarkdownJournalRecent(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	journal := sessionout.NewMarkdownJournal(dir)
	ctx := context.Background()

	empty, err := journal.Recent(ctx, "alice", 5)
	if err != nil {
		t.Fatalf("recent on empty journal: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no entries, got %d", len(empty))
	}

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for n := uint64(1); n <= 3; n++ {
		if _, err := journal.Write(ctx, completed("alice", n, base.AddDate(0, 0, int(n)), n)); err != nil {
			t.Fatalf("write %d: %v", n, err)
		}
	}
	if _, err := journal.Write(ctx, completed("bob", 9, base, 1)); err != nil {
		t.Fatalf("write bob: %v", err)
	}

	recent, err := journal.Recent(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Session.Number != 3 || recent[1].Session.Number != 2 {
		t.Fatalf("expected newest first, got %d then %d", recent[0].Session.Number, recent[1].Session.Number)
	}
	if !recent[0].Session.EndAt.Equal(base.AddDate(0, 0, 3)) || recent[0].CurrentStreak != 3 {
		t.Fatalf("unexpected entry: %+v", recent[0])
	}
}
