package usecase

import (
	"context"
	"time"

	"focusstake/internal/modules/escrow/domain"
	"focusstake/internal/modules/escrow/dto"
	escrowin "focusstake/internal/modules/escrow/port/in"
	"focusstake/internal/modules/escrow/service"
	"focusstake/internal/platform/clock"
	"focusstake/internal/platform/tx"
)

type Interactor struct {
	svc   *service.EscrowService
	txm   tx.Manager
	clock clock.Clock
}

func NewInteractor(svc *service.EscrowService, txm tx.Manager, clk clock.Clock) escrowin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, txm: txm, clock: clk}
}

func (i *Interactor) FundWallet(ctx context.Context, input dto.FundWalletInput) (dto.AccountOutput, error) {
	at := i.at(input.At)
	return i.mutate(ctx, func(ctx context.Context) (domain.Account, error) {
		return i.svc.FundWallet(ctx, input.Owner, input.Amount, at)
	})
}

func (i *Interactor) FundTreasury(ctx context.Context, input dto.FundTreasuryInput) (dto.AccountOutput, error) {
	at := i.at(input.At)
	return i.mutate(ctx, func(ctx context.Context) (domain.Account, error) {
		return i.svc.FundTreasury(ctx, input.Amount, at)
	})
}

func (i *Interactor) OpenVault(ctx context.Context, input dto.OpenVaultInput) (dto.AccountOutput, error) {
	at := i.at(input.At)
	return i.mutate(ctx, func(ctx context.Context) (domain.Account, error) {
		return i.svc.OpenVault(ctx, input.Owner, input.CommitmentID, input.Amount, at)
	})
}

func (i *Interactor) Release(ctx context.Context, input dto.ReleaseInput) (dto.AccountOutput, error) {
	at := i.at(input.At)
	return i.mutate(ctx, func(ctx context.Context) (domain.Account, error) {
		return i.svc.Release(ctx, input.VaultID, input.Beneficiary, input.Amount, input.Authority, at)
	})
}

func (i *Interactor) TopUp(ctx context.Context, input dto.TopUpInput) (dto.AccountOutput, error) {
	at := i.at(input.At)
	return i.mutate(ctx, func(ctx context.Context) (domain.Account, error) {
		return i.svc.TopUp(ctx, input.VaultID, input.Amount, input.Authority, at)
	})
}

func (i *Interactor) GetAccount(ctx context.Context, id string) (dto.AccountOutput, error) {
	account, err := i.svc.GetAccount(ctx, id)
	if err != nil {
		return dto.AccountOutput{}, err
	}
	return toOutput(account), nil
}

func (i *Interactor) GetWallet(ctx context.Context, owner string) (dto.AccountOutput, error) {
	account, err := i.svc.GetWallet(ctx, owner)
	if err != nil {
		return dto.AccountOutput{}, err
	}
	return toOutput(account), nil
}

func (i *Interactor) GetTreasury(ctx context.Context) (dto.AccountOutput, error) {
	account, err := i.svc.GetTreasury(ctx)
	if err != nil {
		return dto.AccountOutput{}, err
	}
	return toOutput(account), nil
}

func (i *Interactor) ListTransfers(ctx context.Context, accountID string, limit int) ([]dto.TransferOutput, error) {
	transfers, err := i.svc.ListTransfers(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferOutput, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, dto.TransferOutput{
			ID:        t.ID,
			From:      t.From,
			To:        t.To,
			Amount:    t.Amount,
			Authority: t.Authority,
			Memo:      t.Memo,
			CreatedAt: t.CreatedAt,
		})
	}
	return out, nil
}

func (i *Interactor) mutate(ctx context.Context, fn func(context.Context) (domain.Account, error)) (dto.AccountOutput, error) {
	var account domain.Account
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		var err error
		account, err = fn(ctx)
		return err
	})
	if err != nil {
		return dto.AccountOutput{}, err
	}
	return toOutput(account), nil
}

func (i *Interactor) at(t time.Time) time.Time {
	if t.IsZero() {
		return i.clock.Now()
	}
	return t
}

func toOutput(account domain.Account) dto.AccountOutput {
	return dto.AccountOutput{
		ID:           account.ID,
		Kind:         string(account.Kind),
		Owner:        account.Owner,
		Authority:    account.Authority,
		CommitmentID: account.CommitmentID,
		Balance:      account.Balance,
	}
}
