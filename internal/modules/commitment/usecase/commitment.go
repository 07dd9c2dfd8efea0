package usecase

import (
	"context"
	"time"

	"focusstake/internal/modules/commitment/domain"
	"focusstake/internal/modules/commitment/dto"
	commitmentin "focusstake/internal/modules/commitment/port/in"
	"focusstake/internal/modules/commitment/service"
	escrowdto "focusstake/internal/modules/escrow/dto"
	escrowin "focusstake/internal/modules/escrow/port/in"
	profilein "focusstake/internal/modules/profile/port/in"
	registryin "focusstake/internal/modules/registry/port/in"
	"focusstake/internal/platform/clock"
	"focusstake/internal/platform/tx"
)

type Interactor struct {
	svc      *service.CommitmentService
	profiles profilein.Usecase
	escrow   escrowin.Usecase
	registry registryin.Usecase
	txm      tx.Manager
	clock    clock.Clock
}

func NewInteractor(
	svc *service.CommitmentService,
	profiles profilein.Usecase,
	escrow escrowin.Usecase,
	registry registryin.Usecase,
	txm tx.Manager,
	clk clock.Clock,
) commitmentin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, profiles: profiles, escrow: escrow, registry: registry, txm: txm, clock: clk}
}

// Create validates the schedule, opens the vault with the stake and counts
// it in the registry. Nothing persists unless all three succeed.
func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.CommitmentOutput, error) {
	now := i.clock.Now()
	var created domain.Commitment
	commitment, err := domain.New(input.Owner, input.CommitmentID, input.Amount, input.SessionsPerDay, input.TotalDays, "", now)
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	err = i.txm.Within(ctx, func(ctx context.Context) error {
		if _, err := i.profiles.Get(ctx, input.Owner); err != nil {
			return err
		}
		vault, err := i.escrow.OpenVault(ctx, escrowdto.OpenVaultInput{
			Owner:        input.Owner,
			CommitmentID: input.CommitmentID,
			Amount:       input.Amount,
			At:           now,
		})
		if err != nil {
			return err
		}
		commitment.VaultID = vault.ID
		if created, err = i.svc.Create(ctx, commitment); err != nil {
			return err
		}
		_, err = i.registry.AddStaked(ctx, input.Amount)
		return err
	})
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return toOutput(created), nil
}

func (i *Interactor) Get(ctx context.Context, owner string, commitmentID uint64) (dto.CommitmentOutput, error) {
	commitment, err := i.svc.Get(ctx, owner, commitmentID)
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return toOutput(commitment), nil
}

func (i *Interactor) List(ctx context.Context, owner string) ([]dto.CommitmentOutput, error) {
	items, err := i.svc.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommitmentOutput, 0, len(items))
	for _, item := range items {
		out = append(out, toOutput(item))
	}
	return out, nil
}

func (i *Interactor) PrepareSession(ctx context.Context, input dto.SessionInput) (dto.CommitmentOutput, error) {
	now := i.at(input.At)
	return i.within(ctx, func(ctx context.Context) (domain.Commitment, error) {
		return i.svc.PrepareSession(ctx, input.Owner, input.CommitmentID, now)
	})
}

func (i *Interactor) RecordCompletion(ctx context.Context, input dto.SessionInput) (dto.CommitmentOutput, error) {
	now := i.at(input.At)
	return i.within(ctx, func(ctx context.Context) (domain.Commitment, error) {
		return i.svc.RecordCompletion(ctx, input.Owner, input.CommitmentID, now)
	})
}

func (i *Interactor) Close(ctx context.Context, input dto.CloseInput) (dto.CommitmentOutput, error) {
	now := i.at(input.At)
	return i.within(ctx, func(ctx context.Context) (domain.Commitment, error) {
		return i.svc.Close(ctx, input.Owner, input.CommitmentID, now)
	})
}

func (i *Interactor) within(ctx context.Context, fn func(context.Context) (domain.Commitment, error)) (dto.CommitmentOutput, error) {
	var commitment domain.Commitment
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		var err error
		commitment, err = fn(ctx)
		return err
	})
	if err != nil {
		return dto.CommitmentOutput{}, err
	}
	return toOutput(commitment), nil
}

func (i *Interactor) at(t time.Time) time.Time {
	if t.IsZero() {
		return i.clock.Now()
	}
	return t
}

func toOutput(c domain.Commitment) dto.CommitmentOutput {
	return dto.CommitmentOutput{
		Owner:                  c.Owner,
		CommitmentID:           c.ID,
		VaultID:                c.VaultID,
		AmountStaked:           c.AmountStaked,
		SessionsPerDay:         c.SessionsPerDay,
		TotalDays:              c.TotalDays,
		StartAt:                c.StartAt,
		DaysCompleted:          c.DaysCompleted,
		SessionsCompletedToday: c.SessionsCompletedToday,
		SessionsCompleted:      c.SessionsCompleted,
		ExpectedSessions:       c.ExpectedSessions(),
		LastSessionAt:          c.LastSessionAt,
		Active:                 c.Active,
	}
}
