// Package router wires repositories, services and handlers into one chi
// router.
package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/georgemunganga/product-manager/internal/database"
	"github.com/georgemunganga/product-manager/internal/middleware"
	"github.com/georgemunganga/product-manager/internal/modules/customer"
	"github.com/georgemunganga/product-manager/internal/modules/image"
	"github.com/georgemunganga/product-manager/internal/modules/maintenance"
	"github.com/georgemunganga/product-manager/internal/modules/product"
	"github.com/georgemunganga/product-manager/internal/modules/quote"
	"github.com/georgemunganga/product-manager/internal/modules/tag"
	"github.com/georgemunganga/product-manager/internal/web"
)

// New builds the HTTP API on top of db.
func New(db *sql.DB, log zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", health(db))

	tx := database.NewTxManager(db)

	// ── Shared records ──────────────────────────────────────
	imageService := image.NewService(image.NewPostgresRepository(db), tx)
	image.NewHandler(imageService).RegisterRoutes(r)

	customerService := customer.NewService(customer.NewPostgresRepository(db), tx)
	customer.NewHandler(customerService).RegisterRoutes(r)

	tagService := tag.NewService(tag.NewPostgresRepository(db), tx)
	tag.NewHandler(tagService).RegisterRoutes(r)

	quoteService := quote.NewService(quote.NewPostgresRepository(db), customerService, tx)
	quote.NewHandler(quoteService).RegisterRoutes(r)

	// ── Products ────────────────────────────────────────────
	productService := product.NewService(product.NewPostgresRepository(db), product.Deps{
		Images:    imageService,
		Customers: customerService,
		Tags:      tagService,
		Quotes:    quoteService,
	}, tx)
	product.NewHandler(productService).RegisterRoutes(r)

	// ── Housekeeping ────────────────────────────────────────
	maintenanceService := maintenance.NewService(maintenance.NewPostgresRepository(db), tx)
	maintenance.NewHandler(maintenanceService).RegisterRoutes(r)

	return r
}

func health(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
			web.Respond(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		web.Respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
