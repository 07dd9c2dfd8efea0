package in

import (
	"context"

	settlementdto "focusstake/internal/modules/settlement/dto"
	settlementin "focusstake/internal/modules/settlement/port/in"
)

type CLIHandler struct {
	usecase settlementin.Usecase
}

func NewCLIHandler(usecase settlementin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Settle(ctx context.Context, owner string, commitmentID uint64) (settlementdto.SettlementOutput, error) {
	return h.usecase.Settle(ctx, settlementdto.SettleInput{Owner: owner, CommitmentID: commitmentID})
}

func (h CLIHandler) Preview(ctx context.Context, owner string, commitmentID uint64) (settlementdto.SettlementOutput, error) {
	return h.usecase.Preview(ctx, settlementdto.SettleInput{Owner: owner, CommitmentID: commitmentID})
}
