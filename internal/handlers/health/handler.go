package health

import (
	"net/http"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (h *Handler) Router(router chi.Router) {
	router.Get("/health", h.Health)
}

// Health is the liveness probe. The terminal client also uses it as its
// connectivity check before deciding between online and offline mode.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	response.WithMessage(w, http.StatusOK, "ok")
}
