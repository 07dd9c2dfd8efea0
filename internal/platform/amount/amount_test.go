package amount_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"focusstake/internal/platform/amount"
	apperrors "focusstake/internal/platform/errors"
)

func TestAddAndSub(t *testing.T) {
	t.Parallel()
	sum, err := amount.Add(40, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(42), sum)

	_, err = amount.Add(math.MaxUint64, 1)
	require.ErrorIs(t, err, apperrors.ErrArithmeticOverflow)

	diff, err := amount.Sub(10, 10)
	require.NoError(t, err)
	require.Zero(t, diff)

	_, err = amount.Sub(9, 10)
	require.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
}

func TestMulDiv(t *testing.T) {
	t.Parallel()
	got, err := amount.MulDiv(1000, 75, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(750), got)

	got, err = amount.MulDiv(999, 75, 100)
	require.NoError(t, err)
	require.Equal(t, uint64(749), got, "result is floored")

	got, err = amount.MulDiv(math.MaxUint64, 75, 100)
	require.NoError(t, err, "intermediate product may exceed 64 bits")
	require.Equal(t, uint64(math.MaxUint64/100*75+(math.MaxUint64%100)*75/100), got)

	_, err = amount.MulDiv(math.MaxUint64, 200, 100)
	require.ErrorIs(t, err, apperrors.ErrArithmeticOverflow)

	_, err = amount.MulDiv(1, 1, 0)
	require.ErrorIs(t, err, apperrors.ErrArithmeticOverflow)
}

func TestAtLeastFraction(t *testing.T) {
	t.Parallel()
	require.True(t, amount.AtLeastFraction(9, 10, 90, 100))
	require.False(t, amount.AtLeastFraction(89, 100, 90, 100))
	require.True(t, amount.AtLeastFraction(27, 30, 9, 10))
	require.True(t, amount.AtLeastFraction(12, 10, 90, 100), "ratios above one still qualify")
	require.False(t, amount.AtLeastFraction(0, 10, 75, 100))
}
