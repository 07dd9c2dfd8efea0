package domain

import (
	"fmt"

	"focusstake/internal/platform/amount"
	apperrors "focusstake/internal/platform/errors"
)

type Tier string

const (
	// TierBonus returns the stake plus reward_rate percent of it.
	TierBonus Tier = "bonus"
	// TierRefund returns exactly the stake.
	TierRefund Tier = "refund"
	// TierPenalty returns PenaltyPayoutPercent of the stake.
	TierPenalty Tier = "penalty"
)

const (
	BonusThresholdPercent  = 90
	RefundThresholdPercent = 75
	PenaltyPayoutPercent   = 75
)

// Classify picks the tier for completed out of expected sessions. The
// comparison is exact; no float rounding can move a ratio across a boundary.
func Classify(completed, expected uint64) Tier {
	if expected == 0 {
		return TierPenalty
	}
	switch {
	case amount.AtLeastFraction(completed, expected, BonusThresholdPercent, 100):
		return TierBonus
	case amount.AtLeastFraction(completed, expected, RefundThresholdPercent, 100):
		return TierRefund
	default:
		return TierPenalty
	}
}

// Outcome is the computed settlement of one commitment.
type Outcome struct {
	Tier      Tier
	Completed uint64
	Expected  uint64
	Ratio     float64
	Stake     uint64
	Bonus     uint64
	Payout    uint64
}

func Evaluate(stake, completed, expected, rewardRate uint64) (Outcome, error) {
	out := Outcome{
		Tier:      Classify(completed, expected),
		Completed: completed,
		Expected:  expected,
		Stake:     stake,
	}
	if expected > 0 {
		out.Ratio = float64(completed) / float64(expected)
	}
	switch out.Tier {
	case TierBonus:
		bonus, err := amount.MulDiv(stake, rewardRate, 100)
		if err != nil {
			return Outcome{}, fmt.Errorf("bonus: %w", err)
		}
		payout, err := amount.Add(stake, bonus)
		if err != nil {
			return Outcome{}, fmt.Errorf("payout: %w", err)
		}
		out.Bonus, out.Payout = bonus, payout
	case TierRefund:
		out.Payout = stake
	case TierPenalty:
		payout, err := amount.MulDiv(stake, PenaltyPayoutPercent, 100)
		if err != nil {
			return Outcome{}, fmt.Errorf("payout: %w", err)
		}
		out.Payout = payout
	default:
		return Outcome{}, fmt.Errorf("%w: unknown tier %q", apperrors.ErrInvalidInput, out.Tier)
	}
	return out, nil
}

// RatioStrategy selects the numerator of the completion ratio.
type RatioStrategy string

const (
	// RatioGlobal counts every session the user completed, across all
	// commitments.
	RatioGlobal RatioStrategy = "global"
	// RatioCommitment counts only sessions of the settled commitment.
	RatioCommitment RatioStrategy = "commitment"
)

func ParseRatioStrategy(value string) (RatioStrategy, error) {
	switch RatioStrategy(value) {
	case RatioGlobal, RatioCommitment:
		return RatioStrategy(value), nil
	case "":
		return RatioGlobal, nil
	default:
		return "", fmt.Errorf("%w: ratio strategy %q", apperrors.ErrInvalidInput, value)
	}
}

func (r RatioStrategy) Completed(profileTotal, commitmentTotal uint64) uint64 {
	if r == RatioCommitment {
		return commitmentTotal
	}
	return profileTotal
}
