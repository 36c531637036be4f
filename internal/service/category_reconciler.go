package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// CategoryReconciler links a product to categories given by name, resolving
// each name to the owner's existing category or creating it.
type CategoryReconciler struct {
	products   store.ProductStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewCategoryReconciler creates a CategoryReconciler.
func NewCategoryReconciler(
	products store.ProductStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) (*CategoryReconciler, error) {
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryReconciler{
		products:   products,
		categories: categories,
		logger:     logger.With(slog.String("component", "category_reconciler")),
	}, nil
}

// Reconcile attaches the named categories to an owned product within tx.
// Names must already be validated. With replace, existing links are removed
// first, so an empty names list clears the product's categories.
// Repeated names are linked once.
func (r *CategoryReconciler) Reconcile(
	ctx context.Context,
	tx *sql.Tx,
	ownerID uuid.UUID,
	productID int64,
	names []string,
	replace bool,
) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	products := r.products.WithTx(tx)
	categories := r.categories.WithTx(tx)

	if replace {
		if err := products.ClearCategories(ctx, ownerID, productID); err != nil {
			log.Error("failed to clear product categories",
				slog.String("error", err.Error()),
				slog.Int64("product_id", productID))
			return err
		}
	}

	for _, name := range names {
		category, err := categories.GetOrCreate(ctx, ownerID, name)
		if err != nil {
			log.Error("failed to resolve category",
				slog.String("error", err.Error()),
				slog.Int64("product_id", productID))
			return err
		}
		if err := products.AttachCategory(ctx, ownerID, productID, category.ID); err != nil {
			log.Error("failed to attach category",
				slog.String("error", err.Error()),
				slog.Int64("product_id", productID),
				slog.Int64("category_id", category.ID))
			return err
		}
	}

	log.Debug("product categories reconciled",
		slog.Int64("product_id", productID),
		slog.Int("category_count", len(names)),
		slog.Bool("replace", replace))
	return nil
}
