package out_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	sessionout "focusstake/internal/modules/session/adapter/out"
	"focusstake/internal/modules/session/domain"
)

func TestXLSXExporterWritesHeaderAndRows(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "export", "journal.xlsx")
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{
		completed("alice", 1, first, 1),
		completed("alice", 2, first.Add(24*time.Hour), 2),
	}

	if err := sessionout.NewXLSXExporter().Export(context.Background(), path, entries); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Journal")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Commitment" || rows[0][9] != "Best streak" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if got := rows[2]; got[1] != "2" || got[3] != "2026-03-02T10:00:00Z" || got[4] != "60" || got[8] != "2" {
		t.Fatalf("unexpected row: %v", got)
	}
}

func TestXLSXExporterHonoursCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "journal.xlsx")
	entries := []domain.JournalEntry{completed("alice", 1, time.Now().UTC(), 1)}
	if err := sessionout.NewXLSXExporter().Export(ctx, path, entries); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
