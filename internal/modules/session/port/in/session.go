package in

import (
	"context"

	"focusstake/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.SessionOutput, error)
	Complete(ctx context.Context, input dto.CompleteInput) (dto.CompleteOutput, error)
	Get(ctx context.Context, owner string, commitmentID, sessionNumber uint64) (dto.SessionOutput, error)
	GetActive(ctx context.Context, owner string) (dto.ActiveSessionOutput, error)
	RecentJournal(ctx context.Context, owner string, limit int) ([]dto.JournalEntryOutput, error)
	JournalStats(ctx context.Context, owner string) (dto.JournalStatsOutput, error)
	ExportJournal(ctx context.Context, owner, path string) (dto.ExportOutput, error)
}
