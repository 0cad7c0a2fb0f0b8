package customer

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/product-manager/internal/web"
)

// Handler exposes customer HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.listCustomers)
		r.Patch("/{id}", h.renameCustomer)
	})
}

// RenameRequest renames a customer everywhere it is linked.
type RenameRequest struct {
	NewName string `json:"new_name" validate:"required"`
}

func (req *RenameRequest) Normalize() { web.TrimPtr(&req.NewName) }

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, customers)
}

func (h *Handler) renameCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req RenameRequest
	if !web.Decode(w, r, &req) {
		return
	}
	c, err := h.service.Rename(r.Context(), id, req.NewName)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, c)
}
