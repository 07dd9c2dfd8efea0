// Package httpx holds the shared pieces of the JSON API: the router with its
// middleware stack, the authenticated caller, and response encoding.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	hclog "github.com/hashicorp/go-hclog"

	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/logging"
	"focusstake/internal/platform/signer"
)

// UserHeader names the identity a request acts as.
const UserHeader = "X-Focusstake-User"

const maxBodyBytes = 1 << 20

type ownerKey struct{}

// NewRouter returns a router that authenticates every request before it
// reaches a module's routes.
func NewRouter(auth signer.Authenticator, logger hclog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logging.Or(logger).Named("http")))
	r.Use(authenticate(auth))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, fmt.Errorf("%w: no such route", apperrors.ErrNotFound))
	})
	return r
}

// Owner is the authenticated identity of r.
func Owner(r *http.Request) string {
	owner, _ := r.Context().Value(ownerKey{}).(string)
	return owner
}

func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func WriteError(w http.ResponseWriter, err error) {
	kind := apperrors.KindOf(err)
	WriteJSON(w, StatusFor(err), errorBody{Error: err.Error(), Kind: string(kind)})
}

// StatusFor maps an error to its HTTP status by kind.
func StatusFor(err error) int {
	if errors.Is(err, apperrors.ErrUnauthenticated) {
		return http.StatusUnauthorized
	}
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindPrecondition, apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindAuthorization:
		return http.StatusForbidden
	case apperrors.KindArithmetic:
		return http.StatusUnprocessableEntity
	case apperrors.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// DecodeJSON reads a JSON body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", apperrors.ErrInvalidInput, err)
	}
	return nil
}

// Uint64Param parses the named path parameter.
func Uint64Param(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", apperrors.ErrInvalidInput, name, raw)
	}
	return v, nil
}

// IntQuery parses an optional integer query parameter.
func IntQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", apperrors.ErrInvalidInput, name, raw)
	}
	return v, nil
}

func authenticate(auth signer.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner := r.Header.Get(UserHeader)
			if err := auth.Authenticate(r.Context(), owner); err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

func requestLogger(logger hclog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
