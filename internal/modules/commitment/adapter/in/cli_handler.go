package in

import (
	"context"

	commitmentdto "focusstake/internal/modules/commitment/dto"
	commitmentin "focusstake/internal/modules/commitment/port/in"
)

type CLIHandler struct {
	usecase commitmentin.Usecase
}

func NewCLIHandler(usecase commitmentin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, owner string, commitmentID, amount uint64, sessionsPerDay, days uint32) (commitmentdto.CommitmentOutput, error) {
	return h.usecase.Create(ctx, commitmentdto.CreateInput{
		Owner:          owner,
		CommitmentID:   commitmentID,
		Amount:         amount,
		SessionsPerDay: sessionsPerDay,
		TotalDays:      days,
	})
}

func (h CLIHandler) Show(ctx context.Context, owner string, commitmentID uint64) (commitmentdto.CommitmentOutput, error) {
	return h.usecase.Get(ctx, owner, commitmentID)
}

func (h CLIHandler) List(ctx context.Context, owner string) ([]commitmentdto.CommitmentOutput, error) {
	return h.usecase.List(ctx, owner)
}
