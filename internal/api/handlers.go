package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/datamart/bulkorder/internal/batch"
	"github.com/datamart/bulkorder/internal/detect"
	"github.com/datamart/bulkorder/internal/domain"
	"github.com/datamart/bulkorder/internal/ingestion"
	"github.com/datamart/bulkorder/internal/orderapi"
	"github.com/datamart/bulkorder/internal/pricing"
	"github.com/datamart/bulkorder/internal/repository"
)

// maxErrorPreview caps how many itemized details an error response carries.
const maxErrorPreview = 5

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	productRepo  *repository.ProductRepo
	pricingRepo  *repository.PricingRepo
	ingestionSvc *ingestion.Service
	batchSvc     *batch.Service
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps domain errors onto HTTP statuses. Everything the
// pipeline raises is recoverable by user correction, so most map to 4xx.
func writeServiceError(w http.ResponseWriter, err error) {
	var insufficient *batch.InsufficientBalanceError
	var apiErr *orderapi.APIError

	switch {
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "batch not found")
	case errors.Is(err, batch.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, batch.ErrNoValidOrders),
		errors.Is(err, ingestion.ErrEmptyFile),
		errors.Is(err, ingestion.ErrUnsupportedFormat),
		errors.Is(err, detect.ErrNoColumns),
		errors.Is(err, detect.ErrIncompleteData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &insufficient):
		writeError(w, http.StatusUnprocessableEntity, insufficient.Error())
	case errors.As(err, &apiErr):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   apiErr.Message,
			"details": previewDetails(apiErr.Details),
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func previewDetails(details []string) []string {
	if len(details) <= maxErrorPreview {
		return details
	}
	out := make([]string, maxErrorPreview, maxErrorPreview+1)
	copy(out, details[:maxErrorPreview])
	return append(out, fmt.Sprintf("...and %d more", len(details)-maxErrorPreview))
}

func filterMode(r *http.Request) batch.FilterMode {
	switch r.URL.Query().Get("filter") {
	case "valid":
		return batch.FilterValidOnly
	case "invalid":
		return batch.FilterInvalidOnly
	default:
		return batch.FilterAll
	}
}

// --- CreateBatch ---

func (h *Handlers) CreateBatch(w http.ResponseWriter, r *http.Request) {
	b, err := h.batchSvc.Create()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// --- UploadFile ---

func (h *Handlers) UploadFile(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
		return
	}

	report, err := h.ingestionSvc.IngestFile(batchID, header.Filename, data)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// --- AddManual ---

func (h *Handlers) AddManual(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	report, err := h.ingestionSvc.IngestManual(batchID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// --- GetBatch ---

func (h *Handlers) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	b, cands, summary, err := h.batchSvc.Get(batchID, filterMode(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"batch":      b,
		"candidates": cands,
		"summary":    summary,
	})
}

// --- RemoveFile ---

func (h *Handlers) RemoveFile(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")
	fileID := chi.URLParam(r, "fileID")

	removed, summary, err := h.batchSvc.RemoveFile(batchID, fileID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"removed": removed,
		"summary": summary,
	})
}

// --- ClearBatch ---

func (h *Handlers) ClearBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	if err := h.batchSvc.Clear(batchID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": true,
		"summary": domain.BatchSummary{},
	})
}

// --- SubmitBatch ---

func (h *Handlers) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	var req struct {
		WalletBalance float64 `json:"wallet_balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.batchSvc.Submit(r.Context(), batchID, req.WalletBalance)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- ExportBatch ---

func (h *Handlers) ExportBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "id")

	_, cands, _, err := h.batchSvc.Get(batchID, filterMode(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := batch.ExportXLSX(cands)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeXLSX(w, "bulk_orders.xlsx", data)
}

// --- GetTemplate ---

func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	data, err := batch.ExportTemplateXLSX()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeXLSX(w, "bulk_order_template.xlsx", data)
}

func writeXLSX(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[api] write xlsx: %v", err)
	}
}

// --- ListProducts ---

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": products})
}

// --- GetPricing / PutPricing / QuotePrice ---

func (h *Handlers) GetPricing(w http.ResponseWriter, r *http.Request) {
	table, err := h.pricingRepo.Load()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tiers": table.Tiers()})
}

func (h *Handlers) PutPricing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tiers []pricing.Tier `json:"tiers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Tiers) == 0 {
		writeError(w, http.StatusBadRequest, "tiers must not be empty")
		return
	}
	for _, t := range req.Tiers {
		if t.Capacity <= 0 || t.Price < 0 {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("invalid tier: capacity %v price %v", t.Capacity, t.Price))
			return
		}
	}

	if err := h.pricingRepo.Save(req.Tiers); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tiers": pricing.New(req.Tiers).Tiers()})
}

func (h *Handlers) QuotePrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Capacity float64 `json:"capacity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Capacity <= 0 {
		writeError(w, http.StatusBadRequest, "capacity must be positive")
		return
	}

	table, err := h.pricingRepo.Load()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	price, err := table.PriceFor(req.Capacity)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"capacity": req.Capacity,
		"price":    price,
	})
}
