package usecase

import (
	"context"

	commitmentdto "focusstake/internal/modules/commitment/dto"
	commitmentin "focusstake/internal/modules/commitment/port/in"
	escrowdto "focusstake/internal/modules/escrow/dto"
	escrowin "focusstake/internal/modules/escrow/port/in"
	profiledto "focusstake/internal/modules/profile/dto"
	profilein "focusstake/internal/modules/profile/port/in"
	registryin "focusstake/internal/modules/registry/port/in"
	"focusstake/internal/modules/settlement/domain"
	"focusstake/internal/modules/settlement/dto"
	settlementin "focusstake/internal/modules/settlement/port/in"
	"focusstake/internal/modules/settlement/service"
	"focusstake/internal/platform/clock"
	"focusstake/internal/platform/tx"
)

type Interactor struct {
	svc         *service.SettlementService
	commitments commitmentin.Usecase
	profiles    profilein.Usecase
	escrow      escrowin.Usecase
	registry    registryin.Usecase
	txm         tx.Manager
	clock       clock.Clock
}

func NewInteractor(
	svc *service.SettlementService,
	commitments commitmentin.Usecase,
	profiles profilein.Usecase,
	escrow escrowin.Usecase,
	registry registryin.Usecase,
	txm tx.Manager,
	clk clock.Clock,
) settlementin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &Interactor{
		svc:         svc,
		commitments: commitments,
		profiles:    profiles,
		escrow:      escrow,
		registry:    registry,
		txm:         txm,
		clock:       clk,
	}
}

// Settle closes the commitment, funds any bonus from the reward treasury,
// releases the payout to the owner and updates the profile and registry
// aggregates. Any failure leaves every record as it was.
func (i *Interactor) Settle(ctx context.Context, input dto.SettleInput) (dto.SettlementOutput, error) {
	now := i.clock.Now()
	out := dto.SettlementOutput{}
	err := i.txm.Within(ctx, func(ctx context.Context) error {
		commitment, err := i.commitments.Close(ctx, commitmentdto.CloseInput{Owner: input.Owner, CommitmentID: input.CommitmentID, At: now})
		if err != nil {
			return err
		}
		outcome, err := i.evaluate(ctx, commitment)
		if err != nil {
			return err
		}
		vault, err := i.escrow.GetAccount(ctx, commitment.VaultID)
		if err != nil {
			return err
		}
		var toppedUp uint64
		if outcome.Payout > vault.Balance {
			toppedUp = outcome.Payout - vault.Balance
			if _, err := i.escrow.TopUp(ctx, escrowdto.TopUpInput{
				VaultID:   commitment.VaultID,
				Amount:    toppedUp,
				Authority: i.svc.Authority(),
				At:        now,
			}); err != nil {
				return err
			}
		}
		remaining := vault.Balance + toppedUp
		// A penalty on a tiny stake can round down to nothing to release.
		if outcome.Payout > 0 {
			released, err := i.escrow.Release(ctx, escrowdto.ReleaseInput{
				VaultID:     commitment.VaultID,
				Beneficiary: commitment.Owner,
				Amount:      outcome.Payout,
				Authority:   i.svc.Authority(),
				At:          now,
			})
			if err != nil {
				return err
			}
			remaining = released.Balance
		}
		if _, err := i.profiles.CreditRewards(ctx, profiledto.CreditRewardsInput{Owner: commitment.Owner, Amount: outcome.Payout}); err != nil {
			return err
		}
		if _, err := i.registry.ReleaseStaked(ctx, commitment.AmountStaked); err != nil {
			return err
		}
		out = i.toOutput(commitment, outcome)
		out.ToppedUp = toppedUp
		out.VaultRemaining = remaining
		out.SettledAt = now
		i.svc.LogSettled(commitment.Owner, commitment.CommitmentID, outcome, toppedUp)
		return nil
	})
	if err != nil {
		return dto.SettlementOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Preview(ctx context.Context, input dto.SettleInput) (dto.SettlementOutput, error) {
	commitment, err := i.commitments.Get(ctx, input.Owner, input.CommitmentID)
	if err != nil {
		return dto.SettlementOutput{}, err
	}
	outcome, err := i.evaluate(ctx, commitment)
	if err != nil {
		return dto.SettlementOutput{}, err
	}
	return i.toOutput(commitment, outcome), nil
}

func (i *Interactor) evaluate(ctx context.Context, commitment commitmentdto.CommitmentOutput) (domain.Outcome, error) {
	program, err := i.registry.Get(ctx)
	if err != nil {
		return domain.Outcome{}, err
	}
	profile, err := i.profiles.Get(ctx, commitment.Owner)
	if err != nil {
		return domain.Outcome{}, err
	}
	return i.svc.Evaluate(
		commitment.AmountStaked,
		profile.SessionsCompleted,
		commitment.SessionsCompleted,
		commitment.ExpectedSessions,
		program.RewardRate,
	)
}

func (i *Interactor) toOutput(commitment commitmentdto.CommitmentOutput, outcome domain.Outcome) dto.SettlementOutput {
	return dto.SettlementOutput{
		Owner:             commitment.Owner,
		CommitmentID:      commitment.CommitmentID,
		VaultID:           commitment.VaultID,
		Tier:              string(outcome.Tier),
		Strategy:          string(i.svc.Strategy()),
		SessionsCompleted: outcome.Completed,
		SessionsExpected:  outcome.Expected,
		Ratio:             outcome.Ratio,
		Stake:             outcome.Stake,
		Bonus:             outcome.Bonus,
		Payout:            outcome.Payout,
	}
}
