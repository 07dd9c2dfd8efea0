package in

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	registrydto "focusstake/internal/modules/registry/dto"
	registryin "focusstake/internal/modules/registry/port/in"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase   registryin.Usecase
	authority string
}

func NewHTTPHandler(usecase registryin.Usecase, authority string) HTTPHandler {
	return HTTPHandler{usecase: usecase, authority: authority}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Get("/program", h.show)
	r.Post("/program", h.initialize)
}

type initializeRequest struct {
	RewardRate uint64 `json:"reward_rate"`
}

func (h HTTPHandler) show(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Get(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) initialize(w http.ResponseWriter, r *http.Request) {
	if owner := httpx.Owner(r); owner != h.authority {
		httpx.WriteError(w, fmt.Errorf("%w: %s is not the settlement authority", apperrors.ErrInvalidAuthority, owner))
		return
	}
	var req initializeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Initialize(r.Context(), registrydto.InitializeInput{Authority: h.authority, RewardRate: req.RewardRate})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}
