package in

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	settlementdto "focusstake/internal/modules/settlement/dto"
	settlementin "focusstake/internal/modules/settlement/port/in"
	"focusstake/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase settlementin.Usecase
}

func NewHTTPHandler(usecase settlementin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Get("/commitments/{commitmentID}/settlement", h.handle(h.usecase.Preview))
	r.Post("/commitments/{commitmentID}/settle", h.handle(h.usecase.Settle))
}

// handle serves both preview and settle; they differ only in whether the
// outcome is committed.
func (h HTTPHandler) handle(fn func(context.Context, settlementdto.SettleInput) (settlementdto.SettlementOutput, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.Uint64Param(r, "commitmentID")
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out, err := fn(r.Context(), settlementdto.SettleInput{Owner: httpx.Owner(r), CommitmentID: id})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
