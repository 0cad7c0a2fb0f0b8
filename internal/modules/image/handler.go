package image

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/product-manager/internal/web"
)

// Handler exposes the image listing. Per-product image routes live in the
// product module because they answer with the product view.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/images", h.listImages)
}

func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, images)
}
