package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	sessiondto "focusstake/internal/modules/session/dto"
	sessionin "focusstake/internal/modules/session/port/in"
	"focusstake/internal/platform/httpx"
)

const defaultJournalLimit = 10

type HTTPHandler struct {
	usecase sessionin.Usecase
}

func NewHTTPHandler(usecase sessionin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) Routes(r chi.Router) {
	r.Route("/commitments/{commitmentID}/sessions/{number}", func(r chi.Router) {
		r.Get("/", h.show)
		r.Post("/start", h.start)
		r.Post("/complete", h.complete)
	})
	r.Get("/session/active", h.active)
	r.Post("/session/active/complete", h.completeActive)
	r.Get("/journal", h.journal)
	r.Get("/journal/stats", h.stats)
}

func coordinates(r *http.Request) (uint64, uint64, error) {
	cid, err := httpx.Uint64Param(r, "commitmentID")
	if err != nil {
		return 0, 0, err
	}
	n, err := httpx.Uint64Param(r, "number")
	if err != nil {
		return 0, 0, err
	}
	return cid, n, nil
}

func (h HTTPHandler) show(w http.ResponseWriter, r *http.Request) {
	cid, n, err := coordinates(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Get(r.Context(), httpx.Owner(r), cid, n)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) start(w http.ResponseWriter, r *http.Request) {
	cid, n, err := coordinates(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.Start(r.Context(), sessiondto.StartInput{Owner: httpx.Owner(r), CommitmentID: cid, SessionNumber: n})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) complete(w http.ResponseWriter, r *http.Request) {
	cid, n, err := coordinates(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.finish(w, r, sessiondto.CompleteInput{Owner: httpx.Owner(r), CommitmentID: cid, SessionNumber: n})
}

func (h HTTPHandler) completeActive(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, sessiondto.CompleteInput{Owner: httpx.Owner(r), UseActive: true})
}

func (h HTTPHandler) finish(w http.ResponseWriter, r *http.Request, input sessiondto.CompleteInput) {
	out, err := h.usecase.Complete(r.Context(), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) active(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetActive(r.Context(), httpx.Owner(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) journal(w http.ResponseWriter, r *http.Request) {
	limit, err := httpx.IntQuery(r, "limit", defaultJournalLimit)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	out, err := h.usecase.RecentJournal(r.Context(), httpx.Owner(r), limit)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) stats(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.JournalStats(r.Context(), httpx.Owner(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
