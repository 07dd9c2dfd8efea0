package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "focusstake/internal/platform/errors"
)

func TestKindOfClassifiesWrappedErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want apperrors.Kind
	}{
		{apperrors.ErrInvalidSessionCount, apperrors.KindValidation},
		{fmt.Errorf("start session: %w", apperrors.ErrSessionTooSoon), apperrors.KindPrecondition},
		{fmt.Errorf("settle: %w", apperrors.ErrInvalidAuthority), apperrors.KindAuthorization},
		{fmt.Errorf("release: %w", apperrors.ErrInsufficientBalance), apperrors.KindArithmetic},
		{apperrors.ErrAlreadyExists, apperrors.KindConflict},
		{apperrors.ErrNotFound, apperrors.KindNotFound},
		{errors.New("disk on fire"), apperrors.KindInternal},
	}
	for _, tc := range cases {
		if got := apperrors.KindOf(tc.err); got != tc.want {
			t.Fatalf("KindOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
