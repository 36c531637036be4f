package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
)

// ProductFilter narrows ProductStore.List. A product matches when it is
// linked to at least one of CategoryIDs; an empty slice means no filter.
type ProductFilter struct {
	CategoryIDs []int64
}

// ProductStore persists products and their category associations.
// Returned products carry their Categories and StockCount.
type ProductStore interface {
	// List returns the owner's products, newest ID first, each at most once.
	List(ctx context.Context, ownerID uuid.UUID, filter ProductFilter) ([]*domain.Product, error)

	// Get returns a single owned product.
	// Returns ErrProductNotFound if it does not exist or belongs to someone else.
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error)

	// Create inserts product and sets its ID and CreatedAt.
	Create(ctx context.Context, product *domain.Product) error

	// Update writes name, description and price of an owned product.
	// created_by is never modified.
	// Returns ErrProductNotFound if it does not exist or belongs to someone else.
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes an owned product, its category links and its stock row.
	// Returns ErrProductNotFound if it does not exist or belongs to someone else.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// AttachCategory links an owned product to an owned category. Linking
	// twice is a no-op, as is linking rows of another owner.
	AttachCategory(ctx context.Context, ownerID uuid.UUID, productID, categoryID int64) error

	// ClearCategories removes every category link of an owned product.
	ClearCategories(ctx context.Context, ownerID uuid.UUID, productID int64) error

	// WithTx returns a ProductStore bound to tx. Product writes and category
	// reconciliation must share one transaction.
	WithTx(tx *sql.Tx) ProductStore
}

// CategoryStore persists product categories.
type CategoryStore interface {
	// List returns the owner's categories ordered by name descending.
	// With assignedOnly, only categories linked to at least one product are returned.
	List(ctx context.Context, ownerID uuid.UUID, assignedOnly bool) ([]*domain.Category, error)

	// Get returns a single owned category.
	// Returns ErrCategoryNotFound if it does not exist or belongs to someone else.
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Category, error)

	// GetOrCreate returns the owner's category with exactly this name,
	// creating it when absent.
	GetOrCreate(ctx context.Context, ownerID uuid.UUID, name string) (*domain.Category, error)

	// Update renames an owned category.
	// Returns ErrCategoryNotFound for a foreign or missing category and
	// ErrCategoryExists when the owner already uses the new name.
	Update(ctx context.Context, category *domain.Category) error

	// Delete removes an owned category and its product links.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// WithTx returns a CategoryStore bound to tx.
	WithTx(tx *sql.Tx) CategoryStore
}

// StockStore persists per-product stock rows.
type StockStore interface {
	// List returns the owner's stock rows ordered by quantity descending.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Stock, error)

	// Get returns a single owned stock row.
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Stock, error)

	// Create inserts stock and sets its ID and CreatedAt.
	// Returns ErrStockExists when the product already has a stock row.
	Create(ctx context.Context, stock *domain.Stock) error

	// UpdateQuantity sets the quantity of an owned stock row.
	UpdateQuantity(ctx context.Context, ownerID uuid.UUID, id int64, quantity int) (*domain.Stock, error)

	// Delete removes an owned stock row. The product is left in place.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error

	// WithTx returns a StockStore bound to tx.
	WithTx(tx *sql.Tx) StockStore
}
