package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/product-manager/internal/web"
)

// Handler exposes tag HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tags", func(r chi.Router) {
		r.Get("/", h.listTags)
		r.Patch("/{id}", h.renameTag)
	})
}

// RenameRequest renames a tag everywhere it is linked.
type RenameRequest struct {
	NewName string `json:"new_name" validate:"required"`
}

func (req *RenameRequest) Normalize() { web.TrimPtr(&req.NewName) }

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, tags)
}

func (h *Handler) renameTag(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req RenameRequest
	if !web.Decode(w, r, &req) {
		return
	}
	renamed, err := h.service.Rename(r.Context(), id, req.NewName)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, renamed)
}
