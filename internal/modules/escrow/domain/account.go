package domain

import (
	"fmt"
	"strings"
	"time"

	"focusstake/internal/platform/amount"
	apperrors "focusstake/internal/platform/errors"
)

type AccountKind string

const (
	AccountKindWallet   AccountKind = "wallet"
	AccountKindVault    AccountKind = "vault"
	AccountKindTreasury AccountKind = "treasury"
)

const TreasuryID = "treasury"

func WalletID(owner string) string {
	return "wallet:" + owner
}

// VaultID scopes a vault to one commitment of one owner.
func VaultID(owner string, commitmentID uint64) string {
	return fmt.Sprintf("vault:%s:%d", owner, commitmentID)
}

// Account is a custodial balance. Only Authority may draw from it.
type Account struct {
	ID           string
	Kind         AccountKind
	Owner        string
	Authority    string
	CommitmentID uint64
	Balance      uint64
	CreatedAt    time.Time
}

func NewWallet(owner string, now time.Time) (Account, error) {
	if strings.TrimSpace(owner) == "" {
		return Account{}, fmt.Errorf("%w: wallet owner is required", apperrors.ErrInvalidInput)
	}
	return Account{ID: WalletID(owner), Kind: AccountKindWallet, Owner: owner, Authority: owner, CreatedAt: now}, nil
}

// NewVault opens an empty vault held for owner under authority. The owner
// can never be the authority, otherwise the staker could drain its own stake.
func NewVault(owner string, commitmentID uint64, authority string, now time.Time) (Account, error) {
	if strings.TrimSpace(owner) == "" {
		return Account{}, fmt.Errorf("%w: vault owner is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(authority) == "" || authority == owner {
		return Account{}, fmt.Errorf("%w: vault authority must differ from owner", apperrors.ErrInvalidAuthority)
	}
	return Account{
		ID:           VaultID(owner, commitmentID),
		Kind:         AccountKindVault,
		Owner:        owner,
		Authority:    authority,
		CommitmentID: commitmentID,
		CreatedAt:    now,
	}, nil
}

func NewTreasury(authority string, now time.Time) (Account, error) {
	if strings.TrimSpace(authority) == "" {
		return Account{}, fmt.Errorf("%w: treasury authority is required", apperrors.ErrInvalidAuthority)
	}
	return Account{ID: TreasuryID, Kind: AccountKindTreasury, Owner: authority, Authority: authority, CreatedAt: now}, nil
}

func (a *Account) Debit(value uint64, authority string) error {
	if authority != a.Authority {
		return fmt.Errorf("%w: %s cannot draw from %s", apperrors.ErrInvalidAuthority, authority, a.ID)
	}
	next, err := amount.Sub(a.Balance, value)
	if err != nil {
		return fmt.Errorf("debit %s: %w", a.ID, err)
	}
	a.Balance = next
	return nil
}

func (a *Account) Credit(value uint64) error {
	next, err := amount.Add(a.Balance, value)
	if err != nil {
		return fmt.Errorf("credit %s: %w", a.ID, err)
	}
	a.Balance = next
	return nil
}

// Transfer is one journal entry of value moved between accounts.
type Transfer struct {
	ID        string
	From      string
	To        string
	Amount    uint64
	Authority string
	Memo      string
	CreatedAt time.Time
}

func (t Transfer) Validate() error {
	if t.From == "" || t.To == "" {
		return fmt.Errorf("%w: transfer endpoints are required", apperrors.ErrInvalidInput)
	}
	if t.From == t.To {
		return fmt.Errorf("%w: transfer to the same account", apperrors.ErrInvalidInput)
	}
	if t.Amount == 0 {
		return fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}
