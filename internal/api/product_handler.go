package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProductHandler")
	}

	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// ListProducts handles GET /product/products requests.
// The optional "categories" query parameter filters by category ids.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	categoryIDs, err := parseCategoryIDs(r.URL.Query().Get("categories"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	products, err := h.productService.List(r.Context(), userID, categoryIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list products")
		return
	}

	response := make([]ProductSummaryResponse, 0, len(products))
	for _, p := range products {
		response = append(response, productToSummary(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetProduct handles GET /product/products/{id} requests
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrProductNotFound)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), userID, id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToDetail(product))
}

// CreateProduct handles POST /product/products requests
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req ProductRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.Create(r.Context(), userID, req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create product")
		return
	}

	log.Debug("product created",
		slog.String("user_id", userID.String()),
		slog.Int64("product_id", product.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, productToDetail(product))
}

// UpdateProduct handles PUT /product/products/{id} requests
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// PatchProduct handles PATCH /product/products/{id} requests
func (h *ProductHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrProductNotFound)
	if !ok {
		return
	}

	var req ProductRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.Update(r.Context(), userID, id, req.toInput(), partial)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, productToDetail(product))
}

// DeleteProduct handles DELETE /product/products/{id} requests
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrProductNotFound)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
