package usecase

import (
	"context"

	"focusstake/internal/modules/registry/domain"
	"focusstake/internal/modules/registry/dto"
	registryin "focusstake/internal/modules/registry/port/in"
	"focusstake/internal/modules/registry/service"
	"focusstake/internal/platform/clock"
	"focusstake/internal/platform/tx"
)

type Interactor struct {
	svc   *service.RegistryService
	txm   tx.Manager
	clock clock.Clock
}

func NewInteractor(svc *service.RegistryService, txm tx.Manager, clk clock.Clock) registryin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, txm: txm, clock: clk}
}

func (i *Interactor) Initialize(ctx context.Context, input dto.InitializeInput) (dto.ProgramOutput, error) {
	now := i.clock.Now()
	return i.within(ctx, func(ctx context.Context) (domain.Program, error) {
		return i.svc.Initialize(ctx, input.Authority, input.RewardRate, now)
	})
}

func (i *Interactor) Get(ctx context.Context) (dto.ProgramOutput, error) {
	program, err := i.svc.Get(ctx)
	if err != nil {
		return dto.ProgramOutput{}, err
	}
	return toOutput(program), nil
}

func (i *Interactor) AddStaked(ctx context.Context, amount uint64) (dto.ProgramOutput, error) {
	return i.within(ctx, func(ctx context.Context) (domain.Program, error) {
		return i.svc.AddStaked(ctx, amount)
	})
}

func (i *Interactor) ReleaseStaked(ctx context.Context, amount uint64) (dto.ProgramOutput, error) {
	return i.within(ctx, func(ctx context.Context) (domain.Program, error) {
		return i.svc.ReleaseStaked(ctx, amount)
	})
}

func (i *Interactor) RegisterUser(ctx context.Context) (dto.ProgramOutput, error) {
	return i.within(ctx, i.svc.RegisterUser)
}

func (i *Interactor) within(ctx context.Context, fn func(context.Context) (domain.Program, error)) (dto.ProgramOutput, error) {
	var program domain.Program
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		var err error
		program, err = fn(ctx)
		return err
	})
	if err != nil {
		return dto.ProgramOutput{}, err
	}
	return toOutput(program), nil
}

func toOutput(program domain.Program) dto.ProgramOutput {
	return dto.ProgramOutput{
		Authority:   program.Authority,
		RewardRate:  program.RewardRate,
		TotalStaked: program.TotalStaked,
		TotalUsers:  program.TotalUsers,
		CreatedAt:   program.CreatedAt,
	}
}
