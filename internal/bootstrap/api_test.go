package bootstrap_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"focusstake/internal/bootstrap"
	commitmentdto "focusstake/internal/modules/commitment/dto"
	sessiondto "focusstake/internal/modules/session/dto"
	settlementdto "focusstake/internal/modules/settlement/dto"
	"focusstake/internal/platform/config"
	"focusstake/internal/platform/httpx"
)

type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	base time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return uint64(c.now.Sub(c.base) / c.Period())
}

func (c *fakeClock) Period() time.Duration { return 400 * time.Millisecond }

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type api struct {
	t   *testing.T
	h   http.Handler
	clk *fakeClock
}

func newAPI(t *testing.T) api {
	t.Helper()
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	clk := &fakeClock{now: start, base: start.Add(-time.Hour)}
	app, err := bootstrap.New(context.Background(), cfg,
		bootstrap.WithClock(clk),
		bootstrap.WithTicker(clk),
		bootstrap.WithLogger(hclog.NewNullLogger()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return api{t: t, h: app.HTTP, clk: clk}
}

func (a api) call(method, path, user, body string, out any) int {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(httpx.UserHeader, user)
	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestAPICommitmentLifecycle(t *testing.T) {
	t.Parallel()
	a := newAPI(t)
	authority := config.DefaultSettlementAuthority

	require.Equal(t, http.StatusForbidden, a.call(http.MethodPost, "/program", "alice", `{"reward_rate":10}`, nil))
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/program", authority, `{"reward_rate":10}`, nil))
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/treasury/fund", authority, `{"amount":500}`, nil))
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/profile", "alice", "", nil))
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/wallet/fund", "alice", `{"amount":1000}`, nil))

	var commitment commitmentdto.CommitmentOutput
	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/commitments", "alice",
		`{"commitment_id":1,"amount":1000,"sessions_per_day":1,"total_days":1}`, &commitment))
	require.Equal(t, uint64(1000), commitment.AmountStaked)
	require.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/commitments", "alice",
		`{"commitment_id":1,"amount":1000,"sessions_per_day":1,"total_days":1}`, nil))
	require.Equal(t, http.StatusNotFound, a.call(http.MethodGet, "/commitments/1", "bob", "", nil))

	require.Equal(t, http.StatusCreated, a.call(http.MethodPost, "/commitments/1/sessions/1/start", "alice", "", nil))
	var active sessiondto.ActiveSessionOutput
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/session/active", "alice", "", &active))
	require.Equal(t, uint64(1), active.SessionNumber)

	a.clk.Advance(30 * time.Minute)
	require.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/session/active/complete", "alice", "", nil))
	a.clk.Advance(25 * time.Minute)
	var done sessiondto.CompleteOutput
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/commitments/1/sessions/1/complete", "alice", "", &done))
	require.True(t, done.Session.Completed)

	var stats sessiondto.JournalStatsOutput
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/journal/stats", "alice", "", &stats))
	require.Equal(t, 1, stats.Sessions)
	require.InDelta(t, 55, stats.MeanMinutes, 1e-9)

	require.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/commitments/1/settle", "alice", "", nil))
	a.clk.Advance(24 * time.Hour)
	var preview settlementdto.SettlementOutput
	require.Equal(t, http.StatusOK, a.call(http.MethodGet, "/commitments/1/settlement", "alice", "", &preview))
	require.Equal(t, uint64(1100), preview.Payout)
	var settled settlementdto.SettlementOutput
	require.Equal(t, http.StatusOK, a.call(http.MethodPost, "/commitments/1/settle", "alice", "", &settled))
	require.Equal(t, preview.Payout, settled.Payout)
	require.Equal(t, http.StatusConflict, a.call(http.MethodPost, "/commitments/1/settle", "alice", "", nil))
}

func TestAPIRejectsBadRequests(t *testing.T) {
	t.Parallel()
	a := newAPI(t)

	require.Equal(t, http.StatusUnauthorized, a.call(http.MethodGet, "/profile", " ", "", nil))
	require.Equal(t, http.StatusNotFound, a.call(http.MethodGet, "/profile", "alice", "", nil))
	require.Equal(t, http.StatusBadRequest, a.call(http.MethodPost, "/wallet/fund", "alice", `{"amount":"lots"}`, nil))
	require.Equal(t, http.StatusBadRequest, a.call(http.MethodGet, "/commitments/abc", "alice", "", nil))
	require.Equal(t, http.StatusBadRequest, a.call(http.MethodGet, "/journal?limit=x", "alice", "", nil))
	require.Equal(t, http.StatusNotFound, a.call(http.MethodGet, "/nope", "alice", "", nil))
}
