package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusstake/internal/modules/registry/domain"
	apperrors "focusstake/internal/platform/errors"
)

func TestProgramStakeAggregate(t *testing.T) {
	t.Parallel()
	program, err := domain.NewProgram("vault-authority", 10, time.Unix(0, 0))
	require.NoError(t, err)

	require.NoError(t, program.AddStaked(1000))
	require.NoError(t, program.AddStaked(500))
	require.Equal(t, uint64(1500), program.TotalStaked)

	require.NoError(t, program.ReleaseStaked(1000))
	require.Equal(t, uint64(500), program.TotalStaked)

	require.ErrorIs(t, program.ReleaseStaked(501), apperrors.ErrInsufficientBalance)
	require.Equal(t, uint64(500), program.TotalStaked)

	require.ErrorIs(t, program.AddStaked(math.MaxUint64), apperrors.ErrArithmeticOverflow)
	require.Equal(t, uint64(500), program.TotalStaked)
}

func TestNewProgramRequiresAuthority(t *testing.T) {
	t.Parallel()
	_, err := domain.NewProgram(" ", 10, time.Unix(0, 0))
	require.ErrorIs(t, err, apperrors.ErrInvalidAuthority)
}
