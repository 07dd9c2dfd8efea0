package in

import (
	"context"

	escrowdto "focusstake/internal/modules/escrow/dto"
	escrowin "focusstake/internal/modules/escrow/port/in"
)

type CLIHandler struct {
	usecase escrowin.Usecase
}

func NewCLIHandler(usecase escrowin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) FundWallet(ctx context.Context, owner string, amount uint64) (escrowdto.AccountOutput, error) {
	return h.usecase.FundWallet(ctx, escrowdto.FundWalletInput{Owner: owner, Amount: amount})
}

func (h CLIHandler) FundTreasury(ctx context.Context, amount uint64) (escrowdto.AccountOutput, error) {
	return h.usecase.FundTreasury(ctx, escrowdto.FundTreasuryInput{Amount: amount})
}

func (h CLIHandler) Wallet(ctx context.Context, owner string) (escrowdto.AccountOutput, error) {
	return h.usecase.GetWallet(ctx, owner)
}

func (h CLIHandler) Treasury(ctx context.Context) (escrowdto.AccountOutput, error) {
	return h.usecase.GetTreasury(ctx)
}

func (h CLIHandler) Account(ctx context.Context, id string) (escrowdto.AccountOutput, error) {
	return h.usecase.GetAccount(ctx, id)
}

func (h CLIHandler) Transfers(ctx context.Context, accountID string, limit int) ([]escrowdto.TransferOutput, error) {
	return h.usecase.ListTransfers(ctx, accountID, limit)
}
