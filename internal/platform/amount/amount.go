// Package amount holds checked arithmetic for token amounts and counters.
// Nothing here wraps: overflow is reported as apperrors.ErrArithmeticOverflow
// and underflow as apperrors.ErrInsufficientBalance.
package amount

import (
	"fmt"
	"math/bits"

	apperrors "focusstake/internal/platform/errors"
)

func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", apperrors.ErrArithmeticOverflow, a, b)
	}
	return sum, nil
}

func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, fmt.Errorf("%w: %d - %d", apperrors.ErrInsufficientBalance, a, b)
	}
	return diff, nil
}

// MulDiv returns floor(a*b/d) without intermediate overflow.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, fmt.Errorf("%w: division by zero", apperrors.ErrArithmeticOverflow)
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return 0, fmt.Errorf("%w: %d * %d / %d", apperrors.ErrArithmeticOverflow, a, b, d)
	}
	quo, _ := bits.Div64(hi, lo, d)
	return quo, nil
}

// AtLeastFraction reports num/den >= pctNum/pctDen using exact integer math.
func AtLeastFraction(num, den, pctNum, pctDen uint64) bool {
	lhsHi, lhsLo := bits.Mul64(num, pctDen)
	rhsHi, rhsLo := bits.Mul64(den, pctNum)
	if lhsHi != rhsHi {
		return lhsHi > rhsHi
	}
	return lhsLo >= rhsLo
}
