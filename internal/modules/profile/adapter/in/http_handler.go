package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	profiledto "focusstake/internal/modules/profile/dto"
	profilein "focusstake/internal/modules/profile/port/in"
	"focusstake/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase profilein.Usecase
}

func NewHTTPHandler(usecase profilein.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Get("/profile", h.show)
	r.Post("/profile", h.create)
}

func (h HTTPHandler) show(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Get(r.Context(), httpx.Owner(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) create(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Create(r.Context(), profiledto.CreateInput{Owner: httpx.Owner(r)})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}
