package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/catalog-api/internal/api/shared"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/phrazzld/catalog-api/internal/store"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *slog.Logger) *CategoryHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CategoryHandler")
	}

	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger.With(slog.String("component", "category_handler")),
	}
}

// ListCategories handles GET /product/categories requests.
// assigned_only=1 limits the result to categories linked to a product.
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	assignedOnly, err := parseAssignedOnly(r.URL.Query().Get("assigned_only"))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	categories, err := h.categoryService.List(r.Context(), userID, assignedOnly)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list categories")
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, categoryToResponse(*c))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// UpdateCategory handles PUT and PATCH /product/categories/{id} requests.
// The name is the only writable field, so both verbs behave alike.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrCategoryNotFound)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	category, err := h.categoryService.Update(r.Context(), userID, id, *req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update category")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(*category))
}

// DeleteCategory handles DELETE /product/categories/{id} requests
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, log, store.ErrCategoryNotFound)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
