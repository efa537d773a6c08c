package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/datamart/bulkorder/internal/batch"
	"github.com/datamart/bulkorder/internal/ingestion"
	"github.com/datamart/bulkorder/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	productRepo *repository.ProductRepo,
	pricingRepo *repository.PricingRepo,
	ingestionSvc *ingestion.Service,
	batchSvc *batch.Service,
) http.Handler {
	h := &Handlers{
		productRepo:  productRepo,
		pricingRepo:  pricingRepo,
		ingestionSvc: ingestionSvc,
		batchSvc:     batchSvc,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		// Batches.
		r.Post("/batches", h.CreateBatch)
		r.Get("/batches/{id}", h.GetBatch)
		r.Post("/batches/{id}/files", h.UploadFile)
		r.Post("/batches/{id}/manual", h.AddManual)
		r.Delete("/batches/{id}/files/{fileID}", h.RemoveFile)
		r.Delete("/batches/{id}/candidates", h.ClearBatch)
		r.Post("/batches/{id}/submit", h.SubmitBatch)
		r.Get("/batches/{id}/export", h.ExportBatch)

		// Template + catalog.
		r.Get("/template", h.GetTemplate)
		r.Get("/products", h.ListProducts)

		// Calculator pricing.
		r.Get("/pricing", h.GetPricing)
		r.Put("/pricing", h.PutPricing)
		r.Post("/pricing/quote", h.QuotePrice)
	})

	return r
}
