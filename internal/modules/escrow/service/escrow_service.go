package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/modules/escrow/domain"
	escrowout "focusstake/internal/modules/escrow/port/out"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/id"
	"focusstake/internal/platform/logging"
)

const mintAccount = "mint"

type EscrowService struct {
	accounts  escrowout.AccountStore
	journal   escrowout.TransferJournal
	idGen     id.Generator
	authority string
	logger    hclog.Logger
}

// NewEscrowService builds the custody service. authority is the settlement
// identity that holds every vault and the reward treasury.
func NewEscrowService(accounts escrowout.AccountStore, journal escrowout.TransferJournal, idGen id.Generator, authority string, logger hclog.Logger) *EscrowService {
	return &EscrowService{
		accounts:  accounts,
		journal:   journal,
		idGen:     idGen,
		authority: authority,
		logger:    logging.Or(logger).Named("escrow"),
	}
}

func (s *EscrowService) Authority() string {
	return s.authority
}

func (s *EscrowService) FundWallet(ctx context.Context, owner string, value uint64, at time.Time) (domain.Account, error) {
	wallet, err := s.ensureWallet(ctx, owner, at)
	if err != nil {
		return domain.Account{}, err
	}
	return s.mint(ctx, wallet, value, at)
}

func (s *EscrowService) FundTreasury(ctx context.Context, value uint64, at time.Time) (domain.Account, error) {
	treasury, err := s.accounts.Find(ctx, domain.TreasuryID)
	if errors.Is(err, apperrors.ErrNotFound) {
		treasury, err = domain.NewTreasury(s.authority, at)
		if err != nil {
			return domain.Account{}, err
		}
		if err := s.accounts.Create(ctx, treasury); err != nil {
			return domain.Account{}, err
		}
	} else if err != nil {
		return domain.Account{}, err
	}
	return s.mint(ctx, treasury, value, at)
}

// OpenVault creates the vault for (owner, commitmentID) and moves value into
// it from the owner's wallet, signed by the owner.
func (s *EscrowService) OpenVault(ctx context.Context, owner string, commitmentID uint64, value uint64, at time.Time) (domain.Account, error) {
	if value == 0 {
		return domain.Account{}, fmt.Errorf("%w: stake amount must be positive", apperrors.ErrInvalidInput)
	}
	vault, err := domain.NewVault(owner, commitmentID, s.authority, at)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.accounts.Create(ctx, vault); err != nil {
		return domain.Account{}, fmt.Errorf("open vault %s: %w", vault.ID, err)
	}
	if _, err := s.transfer(ctx, domain.WalletID(owner), vault.ID, value, owner, "stake", at); err != nil {
		return domain.Account{}, err
	}
	vault, err = s.accounts.Find(ctx, vault.ID)
	if err != nil {
		return domain.Account{}, err
	}
	s.logger.Info("vault opened", "vault", vault.ID, "amount", value)
	return vault, nil
}

// Release pays value out of a vault into the vault owner's wallet.
func (s *EscrowService) Release(ctx context.Context, vaultID, beneficiary string, value uint64, authority string, at time.Time) (domain.Account, error) {
	vault, err := s.findVault(ctx, vaultID)
	if err != nil {
		return domain.Account{}, err
	}
	if beneficiary != vault.Owner {
		return domain.Account{}, fmt.Errorf("%w: %s is not the owner of %s", apperrors.ErrInvalidAuthority, beneficiary, vault.ID)
	}
	if _, err := s.ensureWallet(ctx, beneficiary, at); err != nil {
		return domain.Account{}, err
	}
	if _, err := s.transfer(ctx, vault.ID, domain.WalletID(beneficiary), value, authority, "release", at); err != nil {
		return domain.Account{}, err
	}
	vault, err = s.accounts.Find(ctx, vault.ID)
	if err != nil {
		return domain.Account{}, err
	}
	s.logger.Info("vault released", "vault", vault.ID, "amount", value, "remaining", vault.Balance)
	return vault, nil
}

// TopUp moves value from the reward treasury into a vault.
func (s *EscrowService) TopUp(ctx context.Context, vaultID string, value uint64, authority string, at time.Time) (domain.Account, error) {
	vault, err := s.findVault(ctx, vaultID)
	if err != nil {
		return domain.Account{}, err
	}
	if _, err := s.transfer(ctx, domain.TreasuryID, vault.ID, value, authority, "reward", at); err != nil {
		return domain.Account{}, err
	}
	return s.accounts.Find(ctx, vault.ID)
}

func (s *EscrowService) GetAccount(ctx context.Context, accountID string) (domain.Account, error) {
	return s.accounts.Find(ctx, accountID)
}

// GetWallet reports a zero balance for owners that were never funded.
func (s *EscrowService) GetWallet(ctx context.Context, owner string) (domain.Account, error) {
	wallet, err := s.accounts.Find(ctx, domain.WalletID(owner))
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.NewWallet(owner, time.Time{})
	}
	return wallet, err
}

func (s *EscrowService) GetTreasury(ctx context.Context) (domain.Account, error) {
	treasury, err := s.accounts.Find(ctx, domain.TreasuryID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.NewTreasury(s.authority, time.Time{})
	}
	return treasury, err
}

func (s *EscrowService) ListTransfers(ctx context.Context, accountID string, limit int) ([]domain.Transfer, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.journal.ListForAccount(ctx, accountID, limit)
}

func (s *EscrowService) findVault(ctx context.Context, vaultID string) (domain.Account, error) {
	vault, err := s.accounts.Find(ctx, vaultID)
	if err != nil {
		return domain.Account{}, fmt.Errorf("vault %s: %w", vaultID, err)
	}
	if vault.Kind != domain.AccountKindVault {
		return domain.Account{}, fmt.Errorf("%w: %s is not a vault", apperrors.ErrInvalidInput, vaultID)
	}
	return vault, nil
}

func (s *EscrowService) ensureWallet(ctx context.Context, owner string, at time.Time) (domain.Account, error) {
	wallet, err := s.accounts.Find(ctx, domain.WalletID(owner))
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.Account{}, err
	}
	wallet, err = domain.NewWallet(owner, at)
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.accounts.Create(ctx, wallet); err != nil {
		return domain.Account{}, err
	}
	return wallet, nil
}

func (s *EscrowService) mint(ctx context.Context, account domain.Account, value uint64, at time.Time) (domain.Account, error) {
	if value == 0 {
		return domain.Account{}, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidInput)
	}
	if err := account.Credit(value); err != nil {
		return domain.Account{}, err
	}
	if err := s.accounts.UpdateBalance(ctx, account.ID, account.Balance); err != nil {
		return domain.Account{}, err
	}
	entry := domain.Transfer{ID: s.idGen.New(), From: mintAccount, To: account.ID, Amount: value, Authority: mintAccount, Memo: "fund", CreatedAt: at}
	if err := s.journal.Record(ctx, entry); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (s *EscrowService) transfer(ctx context.Context, from, to string, value uint64, authority, memo string, at time.Time) (domain.Transfer, error) {
	entry := domain.Transfer{ID: s.idGen.New(), From: from, To: to, Amount: value, Authority: authority, Memo: memo, CreatedAt: at}
	if err := entry.Validate(); err != nil {
		return domain.Transfer{}, err
	}
	src, err := s.accounts.Find(ctx, from)
	if errors.Is(err, apperrors.ErrNotFound) && holdsNoBalanceWhenMissing(from) {
		return domain.Transfer{}, fmt.Errorf("%w: %s holds no funds", apperrors.ErrInsufficientBalance, from)
	}
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("source %s: %w", from, err)
	}
	dst, err := s.accounts.Find(ctx, to)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("destination %s: %w", to, err)
	}
	if err := src.Debit(value, authority); err != nil {
		return domain.Transfer{}, err
	}
	if err := dst.Credit(value); err != nil {
		return domain.Transfer{}, err
	}
	if err := s.accounts.UpdateBalance(ctx, src.ID, src.Balance); err != nil {
		return domain.Transfer{}, err
	}
	if err := s.accounts.UpdateBalance(ctx, dst.ID, dst.Balance); err != nil {
		return domain.Transfer{}, err
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		return domain.Transfer{}, err
	}
	s.logger.Debug("transfer", "from", from, "to", to, "amount", value, "memo", memo)
	return entry, nil
}

func holdsNoBalanceWhenMissing(accountID string) bool {
	return accountID == domain.TreasuryID || strings.HasPrefix(accountID, "wallet:")
}
