package httpx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/httpx"
	"focusstake/internal/platform/signer"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", apperrors.ErrInvalidDayCount), http.StatusBadRequest},
		{apperrors.ErrSessionTooSoon, http.StatusConflict},
		{apperrors.ErrAlreadyExists, http.StatusConflict},
		{apperrors.ErrInvalidAuthority, http.StatusForbidden},
		{apperrors.ErrUnauthenticated, http.StatusUnauthorized},
		{apperrors.ErrInsufficientBalance, http.StatusUnprocessableEntity},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, httpx.StatusFor(tc.err), tc.err.Error())
	}
}

func newRouter() *chi.Mux {
	r := httpx.NewRouter(signer.NewAllowlist([]string{"alice"}), hclog.NewNullLogger())
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"owner": httpx.Owner(r)})
	})
	r.Post("/echo/{n}", func(w http.ResponseWriter, r *http.Request) {
		n, err := httpx.Uint64Param(r, "n")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		var body struct {
			Note string `json:"note"`
		}
		if err := httpx.DecodeJSON(r, &body); err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"n": n, "note": body.Note})
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(httpx.UserHeader, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterAuthenticates(t *testing.T) {
	t.Parallel()
	r := newRouter()

	rec := do(t, r, http.MethodGet, "/whoami", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"owner":"alice"}`, rec.Body.String())

	rec = do(t, r, http.MethodGet, "/whoami", "mallory", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, string(apperrors.KindAuthorization), body["kind"])

	rec = do(t, r, http.MethodGet, "/nowhere", "alice", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterDecodesInput(t *testing.T) {
	t.Parallel()
	r := newRouter()

	rec := do(t, r, http.MethodPost, "/echo/7", "alice", `{"note":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"n":7,"note":"hi"}`, rec.Body.String())

	rec = do(t, r, http.MethodPost, "/echo/x", "alice", `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, r, http.MethodPost, "/echo/7", "alice", `{"note":"hi","extra":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIntQuery(t *testing.T) {
	t.Parallel()
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x", nil)
	n, err := httpx.IntQuery(req, "limit", 10)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	n, err = httpx.IntQuery(req, "missing", 10)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	_, err = httpx.IntQuery(req, "bad", 10)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
