package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"focusstake/internal/modules/commitment/domain"
	apperrors "focusstake/internal/platform/errors"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newCommitment(t *testing.T, sessionsPerDay, days uint32) domain.Commitment {
	t.Helper()
	c, err := domain.New("alice", 1, 1000, sessionsPerDay, days, "vault:alice:1", start)
	require.NoError(t, err)
	return c
}

func TestNewValidatesBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		sessionsPerDay uint32
		days           uint32
		stake          uint64
		want           error
	}{
		{name: "min bounds", sessionsPerDay: 1, days: 1, stake: 1},
		{name: "max bounds", sessionsPerDay: 10, days: 30, stake: 1},
		{name: "zero sessions", sessionsPerDay: 0, days: 5, stake: 1, want: apperrors.ErrInvalidSessionCount},
		{name: "too many sessions", sessionsPerDay: 11, days: 5, stake: 1, want: apperrors.ErrInvalidSessionCount},
		{name: "zero days", sessionsPerDay: 2, days: 0, stake: 1, want: apperrors.ErrInvalidDayCount},
		{name: "too many days", sessionsPerDay: 2, days: 31, stake: 1, want: apperrors.ErrInvalidDayCount},
		{name: "zero stake", sessionsPerDay: 2, days: 5, stake: 0, want: apperrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := domain.New("alice", 1, tt.stake, tt.sessionsPerDay, tt.days, "vault:alice:1", start)
			if tt.want != nil {
				require.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			require.True(t, c.Active)
			require.Equal(t, start, c.StartAt)
			require.Zero(t, c.DaysCompleted)
			require.Zero(t, c.SessionsCompletedToday)
		})
	}
}

func TestCooldownBoundary(t *testing.T) {
	t.Parallel()
	c := newCommitment(t, 3, 5)
	_, err := c.PrepareSession(start)
	require.NoError(t, err)
	completed := start.Add(55 * time.Minute)
	require.NoError(t, c.RecordCompletion(completed))

	_, err = c.PrepareSession(completed.Add(29*time.Minute + 59*time.Second))
	require.ErrorIs(t, err, apperrors.ErrSessionTooSoon)

	_, err = c.PrepareSession(completed.Add(domain.SessionCooldown))
	require.NoError(t, err)
}

func TestDailyQuotaAndRollover(t *testing.T) {
	t.Parallel()
	c := newCommitment(t, 1, 3)
	_, err := c.PrepareSession(start)
	require.NoError(t, err)
	require.NoError(t, c.RecordCompletion(start.Add(time.Hour)))

	_, err = c.PrepareSession(start.Add(3 * time.Hour))
	require.ErrorIs(t, err, apperrors.ErrDailySessionsCompleted)
	require.ErrorIs(t, c.RecordCompletion(start.Add(3*time.Hour)), apperrors.ErrDailySessionsCompleted)

	rolled, err := c.PrepareSession(start.Add(24 * time.Hour))
	require.NoError(t, err)
	require.True(t, rolled)
	require.Equal(t, uint64(1), c.DaysCompleted)
	require.Zero(t, c.SessionsCompletedToday)

	rolled, err = c.PrepareSession(start.Add(25 * time.Hour))
	require.NoError(t, err)
	require.False(t, rolled)
}

func TestStartRejectsEndedAndInactive(t *testing.T) {
	t.Parallel()
	c := newCommitment(t, 2, 2)
	_, err := c.PrepareSession(start.Add(48 * time.Hour))
	require.ErrorIs(t, err, apperrors.ErrCommitmentEnded)

	require.NoError(t, c.Close(start.Add(48*time.Hour)))
	_, err = c.PrepareSession(start.Add(time.Hour))
	require.ErrorIs(t, err, apperrors.ErrCommitmentInactive)
}

func TestCloseChecksEndBeforeActive(t *testing.T) {
	t.Parallel()
	c := newCommitment(t, 2, 5)
	require.ErrorIs(t, c.Close(start.Add(4*24*time.Hour)), apperrors.ErrCommitmentNotEnded)
	require.True(t, c.Active)

	end := start.Add(5 * 24 * time.Hour)
	require.NoError(t, c.Close(end))
	require.False(t, c.Active)
	require.ErrorIs(t, c.Close(end), apperrors.ErrCommitmentInactive)
}

func TestDaysElapsedClampsBackwardsClock(t *testing.T) {
	t.Parallel()
	c := newCommitment(t, 2, 5)
	require.Zero(t, c.DaysElapsed(start.Add(-48*time.Hour)))
	require.Equal(t, uint64(2), c.DaysElapsed(start.Add(50*time.Hour)))
	require.Equal(t, uint64(10), c.ExpectedSessions())
}
