package in

import (
	"context"

	sessiondto "focusstake/internal/modules/session/dto"
	sessionin "focusstake/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, owner string, commitmentID, sessionNumber uint64) (sessiondto.SessionOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Owner: owner, CommitmentID: commitmentID, SessionNumber: sessionNumber})
}

func (h CLIHandler) Complete(ctx context.Context, owner string, commitmentID, sessionNumber uint64) (sessiondto.CompleteOutput, error) {
	return h.usecase.Complete(ctx, sessiondto.CompleteInput{Owner: owner, CommitmentID: commitmentID, SessionNumber: sessionNumber})
}

// CompleteActive completes the owner's most recently started session.
func (h CLIHandler) CompleteActive(ctx context.Context, owner string) (sessiondto.CompleteOutput, error) {
	return h.usecase.Complete(ctx, sessiondto.CompleteInput{Owner: owner, UseActive: true})
}

func (h CLIHandler) Show(ctx context.Context, owner string, commitmentID, sessionNumber uint64) (sessiondto.SessionOutput, error) {
	return h.usecase.Get(ctx, owner, commitmentID, sessionNumber)
}

func (h CLIHandler) GetActive(ctx context.Context, owner string) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx, owner)
}

func (h CLIHandler) Journal(ctx context.Context, owner string, limit int) ([]sessiondto.JournalEntryOutput, error) {
	return h.usecase.RecentJournal(ctx, owner, limit)
}

func (h CLIHandler) Stats(ctx context.Context, owner string) (sessiondto.JournalStatsOutput, error) {
	return h.usecase.JournalStats(ctx, owner)
}

func (h CLIHandler) Export(ctx context.Context, owner, path string) (sessiondto.ExportOutput, error) {
	return h.usecase.ExportJournal(ctx, owner, path)
}
