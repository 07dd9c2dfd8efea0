package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrNoActiveSession      = errors.New("no active session")
	ErrUnauthenticated      = errors.New("signer is not authenticated")
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrProgramUninitialized = errors.New("program is not initialized")
)

// Focus rule violations. Messages match what callers print verbatim.
var (
	ErrInvalidSessionCount     = errors.New("invalid number of sessions per day")
	ErrInvalidDayCount         = errors.New("invalid number of days for commitment")
	ErrCommitmentInactive      = errors.New("commitment is no longer active")
	ErrCommitmentEnded         = errors.New("commitment period has ended")
	ErrDailySessionsCompleted  = errors.New("all daily sessions are already completed")
	ErrSessionTooSoon          = errors.New("not enough time has passed since last session")
	ErrSessionAlreadyCompleted = errors.New("session is already marked as completed")
	ErrSessionNotComplete      = errors.New("session duration requirement not met")
	ErrSlotVerificationFailed  = errors.New("slot-based verification failed")
	ErrCommitmentNotEnded      = errors.New("commitment period has not ended yet")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrInvalidAuthority        = errors.New("invalid authority")
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindPrecondition  Kind = "precondition"
	KindAuthorization Kind = "authorization"
	KindArithmetic    Kind = "arithmetic"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindInternal      Kind = "internal"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidInput, KindValidation},
	{ErrInvalidSessionCount, KindValidation},
	{ErrInvalidDayCount, KindValidation},
	{ErrCommitmentInactive, KindPrecondition},
	{ErrCommitmentEnded, KindPrecondition},
	{ErrDailySessionsCompleted, KindPrecondition},
	{ErrSessionTooSoon, KindPrecondition},
	{ErrSessionAlreadyCompleted, KindPrecondition},
	{ErrSessionNotComplete, KindPrecondition},
	{ErrSlotVerificationFailed, KindPrecondition},
	{ErrCommitmentNotEnded, KindPrecondition},
	{ErrNoActiveSession, KindPrecondition},
	{ErrProgramUninitialized, KindPrecondition},
	{ErrInvalidAuthority, KindAuthorization},
	{ErrUnauthenticated, KindAuthorization},
	{ErrInsufficientBalance, KindArithmetic},
	{ErrArithmeticOverflow, KindArithmetic},
	{ErrNotFound, KindNotFound},
	{ErrAlreadyExists, KindConflict},
}

// KindOf reports the retry class of err. Unknown errors are internal.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
