package product

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/product-manager/internal/web"
)

// Handler exposes product HTTP endpoints, including the nested image,
// customer, tag and quote routes that answer with the product view.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/search", h.searchProducts)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getProduct)
			r.Put("/", h.updateProduct)
			r.Delete("/", h.deleteProduct)
			r.Patch("/lock", h.setLock)

			r.Post("/images", h.addImages)
			r.Delete("/images/{image_id}", h.removeImage)
			r.Post("/customers", h.addCustomers)
			r.Delete("/customers/{customer_id}", h.unlinkCustomer)
			r.Post("/tags", h.addTags)
			r.Delete("/tags/{tag_id}", h.unlinkTag)
			r.Post("/quotes", h.addQuotes)
			r.Delete("/quotes/{quote_id}", h.removeQuote)
		})
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if !web.Decode(w, r, &req) {
		return
	}
	v, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, v)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	barcode, err := web.Int64Query(r, "barcode")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	products, err := h.service.Search(r.Context(), SearchFilter{
		Name:     strings.TrimSpace(q.Get("name")),
		Tag:      strings.TrimSpace(q.Get("tag")),
		Customer: strings.TrimSpace(q.Get("customer")),
		Barcode:  barcode,
		RefNum:   strings.TrimSpace(q.Get("ref_num")),
	})
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	v, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, v)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req Update
	if !web.Decode(w, r, &req) {
		return
	}
	v, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, v)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		web.Error(w, r, err)
		return
	}
	web.NoContent(w)
}

func (h *Handler) setLock(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req LockRequest
	if !web.Decode(w, r, &req) {
		return
	}
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	v, err := h.service.SetLock(r.Context(), id, *req.Locked, user)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusOK, v)
}

func (h *Handler) addImages(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req imagesRequest
	if !web.Decode(w, r, &req) {
		return
	}
	v, err := h.service.AddImages(r.Context(), id, req.Imgs)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, v)
}

func (h *Handler) removeImage(w http.ResponseWriter, r *http.Request) {
	id, sub, err := ids(r, "image_id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if _, err := h.service.RemoveImage(r.Context(), id, sub); err != nil {
		web.Error(w, r, err)
		return
	}
	web.NoContent(w)
}

func (h *Handler) addCustomers(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req customersRequest
	if !web.Decode(w, r, &req) {
		return
	}
	v, err := h.service.AddCustomers(r.Context(), id, req.Customers)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, v)
}

func (h *Handler) unlinkCustomer(w http.ResponseWriter, r *http.Request) {
	id, sub, err := ids(r, "customer_id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if _, err := h.service.UnlinkCustomer(r.Context(), id, sub); err != nil {
		web.Error(w, r, err)
		return
	}
	web.NoContent(w)
}

func (h *Handler) addTags(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req tagsRequest
	if !web.Decode(w, r, &req) {
		return
	}
	v, err := h.service.AddTags(r.Context(), id, req.Tags)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, v)
}

func (h *Handler) unlinkTag(w http.ResponseWriter, r *http.Request) {
	id, sub, err := ids(r, "tag_id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if _, err := h.service.UnlinkTag(r.Context(), id, sub); err != nil {
		web.Error(w, r, err)
		return
	}
	web.NoContent(w)
}

func (h *Handler) addQuotes(w http.ResponseWriter, r *http.Request) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	var req quotesRequest
	if !web.Decode(w, r, &req) {
		return
	}
	v, err := h.service.AddQuotes(r.Context(), id, req.Quotes)
	if err != nil {
		web.Error(w, r, err)
		return
	}
	web.Respond(w, http.StatusCreated, v)
}

func (h *Handler) removeQuote(w http.ResponseWriter, r *http.Request) {
	id, sub, err := ids(r, "quote_id")
	if err != nil {
		web.Error(w, r, err)
		return
	}
	if _, err := h.service.RemoveQuote(r.Context(), id, sub); err != nil {
		web.Error(w, r, err)
		return
	}
	web.NoContent(w)
}

// ids parses the product id and one nested id from the URL.
func ids(r *http.Request, sub string) (int64, int64, error) {
	id, err := web.IDParam(r, "id")
	if err != nil {
		return 0, 0, err
	}
	subID, err := web.IDParam(r, sub)
	if err != nil {
		return 0, 0, err
	}
	return id, subID, nil
}
