package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusstake/internal/modules/escrow/domain"
	apperrors "focusstake/internal/platform/errors"
)

var now = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

func TestVaultIsDrawableOnlyByAuthority(t *testing.T) {
	t.Parallel()
	vault, err := domain.NewVault("alice", 7, "vault-authority", now)
	require.NoError(t, err)
	require.Equal(t, "vault:alice:7", vault.ID)
	require.NoError(t, vault.Credit(1000))

	err = vault.Debit(100, "alice")
	require.ErrorIs(t, err, apperrors.ErrInvalidAuthority)
	require.Equal(t, uint64(1000), vault.Balance)

	require.NoError(t, vault.Debit(400, "vault-authority"))
	require.Equal(t, uint64(600), vault.Balance)

	err = vault.Debit(601, "vault-authority")
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	require.Equal(t, uint64(600), vault.Balance)
}

func TestNewVaultRejectsOwnerAsAuthority(t *testing.T) {
	t.Parallel()
	_, err := domain.NewVault("alice", 1, "alice", now)
	require.ErrorIs(t, err, apperrors.ErrInvalidAuthority)
	_, err = domain.NewVault("", 1, "vault-authority", now)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreditOverflow(t *testing.T) {
	t.Parallel()
	wallet, err := domain.NewWallet("bob", now)
	require.NoError(t, err)
	require.Equal(t, "bob", wallet.Authority)
	require.NoError(t, wallet.Credit(math.MaxUint64))
	require.ErrorIs(t, wallet.Credit(1), apperrors.ErrArithmeticOverflow)
}

func TestTransferValidate(t *testing.T) {
	t.Parallel()
	require.NoError(t, domain.Transfer{From: "a", To: "b", Amount: 1}.Validate())
	require.ErrorIs(t, domain.Transfer{From: "a", To: "a", Amount: 1}.Validate(), apperrors.ErrInvalidInput)
	require.ErrorIs(t, domain.Transfer{From: "a", To: "b"}.Validate(), apperrors.ErrInvalidInput)
	require.ErrorIs(t, domain.Transfer{To: "b", Amount: 1}.Validate(), apperrors.ErrInvalidInput)
}
