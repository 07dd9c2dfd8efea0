package usecase

import (
	"context"
	"time"

	"focusstake/internal/modules/profile/domain"
	"focusstake/internal/modules/profile/dto"
	profilein "focusstake/internal/modules/profile/port/in"
	"focusstake/internal/modules/profile/service"
	registryin "focusstake/internal/modules/registry/port/in"
	"focusstake/internal/platform/clock"
	"focusstake/internal/platform/storage"
	"focusstake/internal/platform/tx"
)

type Interactor struct {
	svc      *service.ProfileService
	registry registryin.Usecase
	txm      tx.Manager
	clock    clock.Clock
}

func NewInteractor(svc *service.ProfileService, registry registryin.Usecase, txm tx.Manager, clk clock.Clock) profilein.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{svc: svc, registry: registry, txm: txm, clock: clk}
}

// Create zero-initializes the caller's profile and counts the user in the
// program registry.
func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.ProfileOutput, error) {
	now := i.clock.Now()
	return i.within(ctx, func(ctx context.Context) (domain.Profile, error) {
		profile, err := i.svc.Create(ctx, input.Owner, now)
		if err != nil {
			return domain.Profile{}, err
		}
		if i.registry != nil {
			if _, err := i.registry.RegisterUser(ctx); err != nil {
				return domain.Profile{}, err
			}
		}
		return profile, nil
	})
}

func (i *Interactor) Get(ctx context.Context, owner string) (dto.ProfileOutput, error) {
	profile, err := i.svc.Get(ctx, owner)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func (i *Interactor) RecordSession(ctx context.Context, input dto.RecordSessionInput) (dto.ProfileOutput, error) {
	at := input.At
	if at.IsZero() {
		at = i.clock.Now()
	}
	return i.within(ctx, func(ctx context.Context) (domain.Profile, error) {
		return i.svc.RecordSession(ctx, input.Owner, at)
	})
}

func (i *Interactor) CreditRewards(ctx context.Context, input dto.CreditRewardsInput) (dto.ProfileOutput, error) {
	return i.within(ctx, func(ctx context.Context) (domain.Profile, error) {
		return i.svc.CreditRewards(ctx, input.Owner, input.Amount)
	})
}

func (i *Interactor) within(ctx context.Context, fn func(context.Context) (domain.Profile, error)) (dto.ProfileOutput, error) {
	var profile domain.Profile
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		var err error
		profile, err = fn(ctx)
		return err
	})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

func toOutput(profile domain.Profile) dto.ProfileOutput {
	lastActive := time.Time{}
	if profile.LastActiveDay > 0 {
		lastActive = storage.Time(profile.LastActiveDay)
	}
	return dto.ProfileOutput{
		Owner:             profile.Owner,
		SessionsCompleted: profile.SessionsCompleted,
		RewardsEarned:     profile.RewardsEarned,
		CurrentStreak:     profile.CurrentStreak,
		BestStreak:        profile.BestStreak,
		LastActiveDay:     lastActive,
		CreatedAt:         profile.CreatedAt,
	}
}
