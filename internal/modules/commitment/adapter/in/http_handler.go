package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	commitmentdto "focusstake/internal/modules/commitment/dto"
	commitmentin "focusstake/internal/modules/commitment/port/in"
	"focusstake/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase commitmentin.Usecase
}

func NewHTTPHandler(usecase commitmentin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Get("/commitments", h.list)
	r.Post("/commitments", h.create)
	r.Get("/commitments/{commitmentID}", h.show)
}

type createRequest struct {
	CommitmentID   uint64 `json:"commitment_id"`
	Amount         uint64 `json:"amount"`
	SessionsPerDay uint32 `json:"sessions_per_day"`
	TotalDays      uint32 `json:"total_days"`
}

func (h HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.List(r.Context(), httpx.Owner(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Create(r.Context(), commitmentdto.CreateInput{
		Owner:          httpx.Owner(r),
		CommitmentID:   req.CommitmentID,
		Amount:         req.Amount,
		SessionsPerDay: req.SessionsPerDay,
		TotalDays:      req.TotalDays,
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.Uint64Param(r, "commitmentID")
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Get(r.Context(), httpx.Owner(r), id)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
