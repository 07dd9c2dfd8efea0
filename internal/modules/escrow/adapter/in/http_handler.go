package in

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	escrowdto "focusstake/internal/modules/escrow/dto"
	escrowin "focusstake/internal/modules/escrow/port/in"
	apperrors "focusstake/internal/platform/errors"
	"focusstake/internal/platform/httpx"
)

const defaultTransferLimit = 20

type HTTPHandler struct {
	usecase   escrowin.Usecase
	authority string
}

func NewHTTPHandler(usecase escrowin.Usecase, authority string) HTTPHandler {
	return HTTPHandler{usecase: usecase, authority: authority}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Route("/wallet", func(r chi.Router) {
		r.Get("/", h.wallet)
		r.Post("/fund", h.fundWallet)
		r.Get("/transfers", h.transfers)
	})
	r.Route("/treasury", func(r chi.Router) {
		r.Get("/", h.treasury)
		r.Post("/fund", h.fundTreasury)
	})
}

type fundRequest struct {
	Amount uint64 `json:"amount"`
}

func (h HTTPHandler) wallet(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetWallet(r.Context(), httpx.Owner(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) fundWallet(w http.ResponseWriter, r *http.Request) {
	var req fundRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.FundWallet(r.Context(), escrowdto.FundWalletInput{Owner: httpx.Owner(r), Amount: req.Amount})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// transfers lists movements of the caller's own wallet only.
func (h HTTPHandler) transfers(w http.ResponseWriter, r *http.Request) {
	limit, err := httpx.IntQuery(r, "limit", defaultTransferLimit)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	wallet, err := h.usecase.GetWallet(r.Context(), httpx.Owner(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.ListTransfers(r.Context(), wallet.ID, limit)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) treasury(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetTreasury(r.Context())
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) fundTreasury(w http.ResponseWriter, r *http.Request) {
	if owner := httpx.Owner(r); owner != h.authority {
		httpx.WriteError(w, fmt.Errorf("%w: %s is not the settlement authority", apperrors.ErrInvalidAuthority, owner))
		return
	}
	var req fundRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.FundTreasury(r.Context(), escrowdto.FundTreasuryInput{Amount: req.Amount})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
