package in

import (
	"context"

	"focusstake/internal/modules/escrow/dto"
)

type Usecase interface {
	FundWallet(ctx context.Context, input dto.FundWalletInput) (dto.AccountOutput, error)
	FundTreasury(ctx context.Context, input dto.FundTreasuryInput) (dto.AccountOutput, error)
	OpenVault(ctx context.Context, input dto.OpenVaultInput) (dto.AccountOutput, error)
	Release(ctx context.Context, input dto.ReleaseInput) (dto.AccountOutput, error)
	TopUp(ctx context.Context, input dto.TopUpInput) (dto.AccountOutput, error)
	GetAccount(ctx context.Context, id string) (dto.AccountOutput, error)
	GetWallet(ctx context.Context, owner string) (dto.AccountOutput, error)
	GetTreasury(ctx context.Context) (dto.AccountOutput, error)
	ListTransfers(ctx context.Context, accountID string, limit int) ([]dto.TransferOutput, error)
}
