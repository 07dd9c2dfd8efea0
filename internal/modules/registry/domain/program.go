package domain

import (
	"fmt"
	"strings"
	"time"

	"focusstake/internal/platform/amount"
	apperrors "focusstake/internal/platform/errors"
)

// Program is the singleton registry: the reward rate applied at settlement
// and the aggregate of stake currently held in vaults.
type Program struct {
	Authority   string
	RewardRate  uint64
	TotalStaked uint64
	TotalUsers  uint64
	CreatedAt   time.Time
}

func NewProgram(authority string, rewardRate uint64, now time.Time) (Program, error) {
	if strings.TrimSpace(authority) == "" {
		return Program{}, fmt.Errorf("%w: program authority is required", apperrors.ErrInvalidAuthority)
	}
	return Program{Authority: authority, RewardRate: rewardRate, CreatedAt: now}, nil
}

func (p *Program) AddStaked(value uint64) error {
	next, err := amount.Add(p.TotalStaked, value)
	if err != nil {
		return fmt.Errorf("total staked: %w", err)
	}
	p.TotalStaked = next
	return nil
}

func (p *Program) ReleaseStaked(value uint64) error {
	next, err := amount.Sub(p.TotalStaked, value)
	if err != nil {
		return fmt.Errorf("total staked: %w", err)
	}
	p.TotalStaked = next
	return nil
}

func (p *Program) RegisterUser() error {
	next, err := amount.Add(p.TotalUsers, 1)
	if err != nil {
		return fmt.Errorf("total users: %w", err)
	}
	p.TotalUsers = next
	return nil
}
