package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"focusstake/internal/modules/session/domain"
	sessionout "focusstake/internal/modules/session/port/out"
)

const journalSheet = "Journal"

var journalHeader = []any{
	"Commitment", "Session", "Started", "Ended", "Minutes",
	"Today", "Per day", "Total", "Streak", "Best streak",
}

type XLSXExporter struct{}

func NewXLSXExporter() sessionout.JournalExporter {
	return XLSXExporter{}
}

// Export writes one row per entry below a header row on the Journal sheet.
func (XLSXExporter) Export(ctx context.Context, path string, entries []domain.JournalEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", journalSheet); err != nil {
		return err
	}
	header := journalHeader
	if err := f.SetSheetRow(journalSheet, "A1", &header); err != nil {
		return err
	}
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := journalRow(entry)
		if err := f.SetSheetRow(journalSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(journalSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	return f.SaveAs(path)
}

func journalRow(entry domain.JournalEntry) []any {
	s := entry.Session
	return []any{
		s.CommitmentID,
		s.Number,
		s.StartAt.UTC().Format(time.RFC3339),
		s.EndAt.UTC().Format(time.RFC3339),
		int64(s.EndAt.Sub(s.StartAt).Round(time.Minute) / time.Minute),
		entry.SessionsToday,
		entry.SessionsPerDay,
		entry.TotalSessions,
		entry.CurrentStreak,
		entry.BestStreak,
	}
}
