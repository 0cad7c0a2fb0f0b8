package maintenance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/product-manager/internal/web"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/maintenance/cleanup", h.cleanup)
}

func (h *Handler) cleanup(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.CleanOrphans(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, rep)
}
