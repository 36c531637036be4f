package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
)

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	stockService service.StockService
	logger       *slog.Logger
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService service.StockService, logger *slog.Logger) *StockHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StockHandler")
	}

	return &StockHandler{
		stockService: stockService,
		logger:       logger.With(slog.String("component", "stock_handler")),
	}
}

// ListStocks handles GET /product/stocks requests
func (h *StockHandler) ListStocks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	stocks, err := h.stockService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list stocks")
		return
	}

	response := make([]StockResponse, 0, len(stocks))
	for _, s := range stocks {
		response = append(response, stockToResponse(s))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateStock handles POST /product/stocks requests
func (h *StockHandler) CreateStock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req StockRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stock, err := h.stockService.Create(r.Context(), userID, req.Product, *req.Quantity)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create stock")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, stockToResponse(stock))
}

// UpdateStock handles PUT and PATCH /product/stocks/{id} requests.
// Quantity is the only writable field.
func (h *StockHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrStockNotFound)
	if !ok {
		return
	}

	var req StockUpdateRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stock, err := h.stockService.Update(r.Context(), userID, id, *req.Quantity)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update stock")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stockToResponse(stock))
}

// DeleteStock handles DELETE /product/stocks/{id} requests
func (h *StockHandler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrStockNotFound)
	if !ok {
		return
	}

	if err := h.stockService.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete stock")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
