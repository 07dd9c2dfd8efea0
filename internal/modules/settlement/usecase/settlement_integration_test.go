package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"focusstake/internal/bootstrap"
	"focusstake/internal/platform/config"
	apperrors "focusstake/internal/platform/errors"
)

const (
	owner        = "alice"
	commitmentID = uint64(1)
	stake        = uint64(1000)
)

var t0 = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

// testClock drives wall time and the tick counter together, so a session
// that waits out the full duration also passes the tick check.
type testClock struct {
	mu     sync.Mutex
	now    time.Time
	base   time.Time
	period time.Duration
}

func newTestClock() *testClock {
	return &testClock{now: t0, base: t0.Add(-time.Hour), period: 400 * time.Millisecond}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint64(c.now.Sub(c.base) / c.period)
}

func (c *testClock) Period() time.Duration { return c.period }

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type env struct {
	t   *testing.T
	ctx context.Context
	clk *testClock
	app *bootstrap.App
}

func newEnv(t *testing.T) env {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	clk := newTestClock()
	app, err := bootstrap.New(context.Background(), cfg,
		bootstrap.WithClock(clk),
		bootstrap.WithTicker(clk),
		bootstrap.WithLogger(hclog.NewNullLogger()),
	)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return env{t: t, ctx: context.Background(), clk: clk, app: app}
}

// seed initializes the program with a 10% reward rate, funds the treasury
// and stakes 1000 on 2 sessions a day for 5 days.
func (e env) seed(treasury uint64) {
	e.t.Helper()
	if _, err := e.app.ProgramCLI.Init(e.ctx, 10); err != nil {
		e.t.Fatalf("init program: %v", err)
	}
	if treasury > 0 {
		if _, err := e.app.WalletCLI.FundTreasury(e.ctx, treasury); err != nil {
			e.t.Fatalf("fund treasury: %v", err)
		}
	}
	if _, err := e.app.ProfileCLI.Create(e.ctx, owner); err != nil {
		e.t.Fatalf("create profile: %v", err)
	}
	if _, err := e.app.WalletCLI.FundWallet(e.ctx, owner, stake); err != nil {
		e.t.Fatalf("fund wallet: %v", err)
	}
	if _, err := e.app.CommitmentCLI.Create(e.ctx, owner, commitmentID, stake, 2, 5); err != nil {
		e.t.Fatalf("create commitment: %v", err)
	}
}

// complete runs n sessions, two per day, each lasting the full 55 minutes
// and spaced to respect the cooldown.
func (e env) complete(n int) {
	e.t.Helper()
	for i := 0; i < n; i++ {
		day, slot := i/2, i%2
		start := t0.Add(time.Duration(day)*24*time.Hour + time.Duration(slot)*90*time.Minute + 5*time.Minute)
		e.clk.Set(start)
		if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, uint64(i+1)); err != nil {
			e.t.Fatalf("start session %d: %v", i+1, err)
		}
		e.clk.Set(start.Add(55 * time.Minute))
		if _, err := e.app.SessionCLI.CompleteActive(e.ctx, owner); err != nil {
			e.t.Fatalf("complete session %d: %v", i+1, err)
		}
	}
}

func (e env) afterEnd() {
	e.clk.Set(t0.Add(5*24*time.Hour + time.Minute))
}

func (e env) balance(accountID string) uint64 {
	e.t.Helper()
	out, err := e.app.WalletCLI.Account(e.ctx, accountID)
	if err != nil {
		e.t.Fatalf("account %s: %v", accountID, err)
	}
	return out.Balance
}

func TestSettleBonusToppedUpFromTreasury(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(1000)
	e.complete(10)
	e.afterEnd()

	preview, err := e.app.SettlementCLI.Preview(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Tier != "bonus" || preview.Payout != 1100 {
		t.Fatalf("unexpected preview %+v", preview)
	}

	out, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.Tier != "bonus" || out.Bonus != 100 || out.Payout != 1100 || out.ToppedUp != 100 || out.VaultRemaining != 0 {
		t.Fatalf("unexpected settlement %+v", out)
	}
	if got := e.balance("wallet:" + owner); got != 1100 {
		t.Fatalf("expected wallet 1100, got %d", got)
	}
	if got := e.balance("treasury"); got != 900 {
		t.Fatalf("expected treasury 900, got %d", got)
	}

	profile, err := e.app.ProfileCLI.Show(e.ctx, owner)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.SessionsCompleted != 10 || profile.CurrentStreak != 5 || profile.BestStreak != 5 || profile.RewardsEarned != 1100 {
		t.Fatalf("unexpected profile %+v", profile)
	}
	program, err := e.app.ProgramCLI.Show(e.ctx)
	if err != nil {
		t.Fatalf("program: %v", err)
	}
	if program.TotalStaked != 0 || program.TotalUsers != 1 {
		t.Fatalf("unexpected program %+v", program)
	}
	commitment, err := e.app.CommitmentCLI.Show(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("commitment: %v", err)
	}
	if commitment.Active {
		t.Fatalf("commitment should be closed after settlement")
	}
}

func TestSettleRefundReturnsStake(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(1000)
	e.complete(8)
	e.afterEnd()

	out, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.Tier != "refund" || out.Payout != stake || out.ToppedUp != 0 {
		t.Fatalf("unexpected settlement %+v", out)
	}
	if got := e.balance("wallet:" + owner); got != stake {
		t.Fatalf("expected wallet %d, got %d", stake, got)
	}
	if got := e.balance("treasury"); got != 1000 {
		t.Fatalf("treasury should be untouched, got %d", got)
	}
}

func TestSettlePenaltyKeepsRemainderInVault(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(0)
	e.complete(5)
	e.afterEnd()

	out, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.Tier != "penalty" || out.Payout != 750 || out.VaultRemaining != 250 {
		t.Fatalf("unexpected settlement %+v", out)
	}
	if got := e.balance("wallet:" + owner); got != 750 {
		t.Fatalf("expected wallet 750, got %d", got)
	}
	if got := e.balance(out.VaultID); got != 250 {
		t.Fatalf("expected vault 250, got %d", got)
	}
}

func TestSettleZeroPenaltyPayoutClosesCommitment(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	if _, err := e.app.ProgramCLI.Init(e.ctx, 10); err != nil {
		t.Fatalf("init program: %v", err)
	}
	if _, err := e.app.ProfileCLI.Create(e.ctx, owner); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := e.app.WalletCLI.FundWallet(e.ctx, owner, 1); err != nil {
		t.Fatalf("fund wallet: %v", err)
	}
	if _, err := e.app.CommitmentCLI.Create(e.ctx, owner, commitmentID, 1, 2, 5); err != nil {
		t.Fatalf("create commitment: %v", err)
	}
	e.afterEnd()

	out, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	if out.Tier != "penalty" || out.Payout != 0 || out.VaultRemaining != 1 {
		t.Fatalf("unexpected settlement %+v", out)
	}
	if got := e.balance("wallet:" + owner); got != 0 {
		t.Fatalf("expected empty wallet, got %d", got)
	}
	commitment, err := e.app.CommitmentCLI.Show(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("commitment: %v", err)
	}
	if commitment.Active {
		t.Fatalf("commitment should be closed after settlement")
	}
	program, err := e.app.ProgramCLI.Show(e.ctx)
	if err != nil {
		t.Fatalf("program: %v", err)
	}
	if program.TotalStaked != 0 {
		t.Fatalf("stake should be released from the program total, got %d", program.TotalStaked)
	}
}

func TestSettleTwiceFails(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(0)
	e.complete(8)
	e.afterEnd()

	if _, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID); err != nil {
		t.Fatalf("first settle: %v", err)
	}
	_, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if !errors.Is(err, apperrors.ErrCommitmentInactive) {
		t.Fatalf("expected ErrCommitmentInactive, got %v", err)
	}
	if got := e.balance("wallet:" + owner); got != stake {
		t.Fatalf("second settle must not pay again, wallet=%d", got)
	}
}

func TestSettleBeforeEndFails(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(0)
	e.complete(2)

	_, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if !errors.Is(err, apperrors.ErrCommitmentNotEnded) {
		t.Fatalf("expected ErrCommitmentNotEnded, got %v", err)
	}
	commitment, err := e.app.CommitmentCLI.Show(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("commitment: %v", err)
	}
	if !commitment.Active {
		t.Fatalf("commitment should stay active")
	}
}

func TestSettleBonusWithEmptyTreasuryRollsBack(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(0)
	e.complete(10)
	e.afterEnd()

	_, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if !errors.Is(err, apperrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	commitment, err := e.app.CommitmentCLI.Show(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("commitment: %v", err)
	}
	if !commitment.Active {
		t.Fatalf("failed settlement must leave the commitment active")
	}
	if got := e.balance(commitment.VaultID); got != stake {
		t.Fatalf("vault should still hold the stake, got %d", got)
	}

	if _, err := e.app.WalletCLI.FundTreasury(e.ctx, 500); err != nil {
		t.Fatalf("fund treasury: %v", err)
	}
	out, err := e.app.SettlementCLI.Settle(e.ctx, owner, commitmentID)
	if err != nil {
		t.Fatalf("settle after funding: %v", err)
	}
	if out.Payout != 1100 {
		t.Fatalf("unexpected payout %d", out.Payout)
	}
}

func TestCreateFailuresLeaveNoVault(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	if _, err := e.app.ProgramCLI.Init(e.ctx, 10); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := e.app.ProfileCLI.Create(e.ctx, owner); err != nil {
		t.Fatalf("profile: %v", err)
	}

	_, err := e.app.CommitmentCLI.Create(e.ctx, owner, 2, 100, 2, 5)
	if !errors.Is(err, apperrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if _, err := e.app.WalletCLI.Account(e.ctx, "vault:alice:2"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("vault should not exist, got %v", err)
	}
	if _, err := e.app.CommitmentCLI.Show(e.ctx, owner, 2); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("commitment should not exist, got %v", err)
	}

	if _, err := e.app.WalletCLI.FundWallet(e.ctx, owner, 100); err != nil {
		t.Fatalf("fund: %v", err)
	}
	_, err = e.app.CommitmentCLI.Create(e.ctx, owner, 3, 100, 11, 5)
	if !errors.Is(err, apperrors.ErrInvalidSessionCount) {
		t.Fatalf("expected ErrInvalidSessionCount, got %v", err)
	}
	_, err = e.app.CommitmentCLI.Create(e.ctx, owner, 3, 100, 2, 31)
	if !errors.Is(err, apperrors.ErrInvalidDayCount) {
		t.Fatalf("expected ErrInvalidDayCount, got %v", err)
	}
	if got := e.balance("wallet:" + owner); got != 100 {
		t.Fatalf("wallet should be untouched, got %d", got)
	}
	program, err := e.app.ProgramCLI.Show(e.ctx)
	if err != nil {
		t.Fatalf("program: %v", err)
	}
	if program.TotalStaked != 0 {
		t.Fatalf("nothing should be staked, got %d", program.TotalStaked)
	}
}

func TestSessionRulesEndToEnd(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.seed(0)

	start := t0.Add(5 * time.Minute)
	e.clk.Set(start)
	if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	e.clk.Set(start.Add(54 * time.Minute))
	if _, err := e.app.SessionCLI.CompleteActive(e.ctx, owner); !errors.Is(err, apperrors.ErrSessionNotComplete) {
		t.Fatalf("expected ErrSessionNotComplete, got %v", err)
	}
	e.clk.Set(start.Add(55 * time.Minute))
	if _, err := e.app.SessionCLI.CompleteActive(e.ctx, owner); err != nil {
		t.Fatalf("complete: %v", err)
	}

	e.clk.Set(start.Add(55*time.Minute + 29*time.Minute))
	if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, 2); !errors.Is(err, apperrors.ErrSessionTooSoon) {
		t.Fatalf("expected ErrSessionTooSoon, got %v", err)
	}
	e.clk.Set(start.Add(55*time.Minute + 30*time.Minute))
	if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, 2); err != nil {
		t.Fatalf("start after cooldown: %v", err)
	}
	e.clk.Set(start.Add(2*55*time.Minute + 30*time.Minute))
	if _, err := e.app.SessionCLI.CompleteActive(e.ctx, owner); err != nil {
		t.Fatalf("complete second: %v", err)
	}

	e.clk.Set(start.Add(5 * time.Hour))
	if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, 3); !errors.Is(err, apperrors.ErrDailySessionsCompleted) {
		t.Fatalf("expected ErrDailySessionsCompleted, got %v", err)
	}

	e.clk.Set(t0.Add(24*time.Hour + time.Minute))
	if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, 3); err != nil {
		t.Fatalf("start next day: %v", err)
	}

	entries, err := e.app.SessionCLI.Journal(e.ctx, owner, 10)
	if err != nil {
		t.Fatalf("journal: %v", err)
	}
	if len(entries) != 2 || entries[0].SessionNumber != 2 {
		t.Fatalf("unexpected journal %+v", entries)
	}

	e.clk.Set(t0.Add(5 * 24 * time.Hour))
	if _, err := e.app.SessionCLI.Start(e.ctx, owner, commitmentID, 9); !errors.Is(err, apperrors.ErrCommitmentEnded) {
		t.Fatalf("expected ErrCommitmentEnded, got %v", err)
	}
}
