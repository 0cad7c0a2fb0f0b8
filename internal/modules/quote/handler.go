package quote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/product-manager/internal/apierror"
	"github.com/georgemunganga/product-manager/internal/web"
)

// Handler exposes quote HTTP endpoints. Adding and removing quotes of a
// product is routed through the product module.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Get("/", h.listQuotes)
		r.Get("/{id}", h.getQuote)
		r.Patch("/{id}", h.editQuote)
	})
}

func (h *Handler) listQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, quotes)
}

func (h *Handler) getQuote(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if q == nil {
		web.Error(w, r, apierror.NewNotFound("quote %d not found", id))
		return
	}
	web.Respond(w, http.StatusOK, q)
}

func (h *Handler) editQuote(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req Update
	if !web.Decode(w, r, &req) {
		return
	}
	q, err := h.service.Edit(r.Context(), id, req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, q)
}
