package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// PostgresProductStore implements store.ProductStore.
type PostgresProductStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProductStore creates a product store on a connection or transaction.
// If logger is nil, a default logger will be used.
func NewPostgresProductStore(db store.DBTX, logger *slog.Logger) *PostgresProductStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProductStore{
		db:     db,
		logger: logger.With(slog.String("component", "product_store")),
	}
}

var _ store.ProductStore = (*PostgresProductStore)(nil)

// WithTx implements store.ProductStore.WithTx
func (s *PostgresProductStore) WithTx(tx *sql.Tx) store.ProductStore {
	return &PostgresProductStore{db: tx, logger: s.logger}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.price, p.created_by, p.created_at,
	       COALESCE(s.quantity, 0)
	FROM products p
	LEFT JOIN product_stocks s ON s.product_id = p.id
	WHERE `

// List implements store.ProductStore.List
func (s *PostgresProductStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.ProductFilter,
) ([]*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := scopeToOwner("p", ownerID)
	if len(filter.CategoryIDs) > 0 {
		// EXISTS keeps each product once however many categories match.
		q.and(`EXISTS (SELECT 1 FROM product_categories pc WHERE pc.product_id = p.id AND pc.category_id IN (` +
			q.argList(filter.CategoryIDs) + `))`)
	}

	rows, err := s.db.QueryContext(ctx, productSelect+q.where()+` ORDER BY p.id DESC`, q.values()...)
	if err != nil {
		log.Error("failed to list products",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	products := []*domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	if err := s.loadCategories(ctx, ownerID, products); err != nil {
		return nil, err
	}

	log.Debug("products listed",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(products)))
	return products, nil
}

// Get implements store.ProductStore.Get
func (s *PostgresProductStore) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := scopeToOwner("p", ownerID).withID(id)
	p, err := scanProduct(s.db.QueryRowContext(ctx, productSelect+q.where(), q.values()...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("product not found",
				slog.Int64("product_id", id),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrProductNotFound
		}
		log.Error("failed to get product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, MapError(err)
	}

	if err := s.loadCategories(ctx, ownerID, []*domain.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// loadCategories fills Categories of each product with one query.
func (s *PostgresProductStore) loadCategories(ctx context.Context, ownerID uuid.UUID, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Product, len(products))
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		p.Categories = []domain.Category{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	q := scopeToOwner("c", ownerID).inList("pc.product_id", ids)
	query := `
		SELECT pc.product_id, c.id, c.name, c.created_by, c.created_at
		FROM product_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE ` + q.where() + `
		ORDER BY c.id`

	rows, err := s.db.QueryContext(ctx, query, q.values()...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to load product categories",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var productID int64
		var c domain.Category
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.CreatedBy, &c.CreatedAt); err != nil {
			return MapError(err)
		}
		if p, ok := byID[productID]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return MapError(rows.Err())
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.StockCount,
	); err != nil {
		return nil, err
	}
	p.Categories = []domain.Category{}
	return &p, nil
}

// Create implements store.ProductStore.Create
func (s *PostgresProductStore) Create(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO products (name, description, price, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := s.db.QueryRowContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.CreatedBy,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		log.Error("failed to create product",
			slog.String("error", err.Error()),
			slog.String("owner_id", product.CreatedBy.String()))
		return MapError(err)
	}

	if product.Categories == nil {
		product.Categories = []domain.Category{}
	}

	log.Info("product created",
		slog.Int64("product_id", product.ID),
		slog.String("owner_id", product.CreatedBy.String()))
	return nil
}

// Update implements store.ProductStore.Update
func (s *PostgresProductStore) Update(ctx context.Context, product *domain.Product) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := product.Validate(); err != nil {
		log.Warn("product validation failed during update", slog.String("error", err.Error()))
		return err
	}

	q := scopeToOwner("products", product.CreatedBy).withID(product.ID)
	query := `UPDATE products SET name = ` + q.arg(product.Name) +
		`, description = ` + q.arg(product.Description) +
		`, price = ` + q.arg(product.Price) +
		` WHERE ` + q.where()

	result, err := s.db.ExecContext(ctx, query, q.values()...)
	if err != nil {
		log.Error("failed to update product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", product.ID))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "product"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrProductNotFound
		}
		return err
	}

	log.Info("product updated", slog.Int64("product_id", product.ID))
	return nil
}

// Delete implements store.ProductStore.Delete
// Category links and the stock row are removed by ON DELETE CASCADE.
func (s *PostgresProductStore) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := scopeToOwner("products", ownerID).withID(id)
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE `+q.where(), q.values()...)
	if err != nil {
		log.Error("failed to delete product",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "product"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrProductNotFound
		}
		return err
	}

	log.Info("product deleted",
		slog.Int64("product_id", id),
		slog.String("owner_id", ownerID.String()))
	return nil
}

// AttachCategory implements store.ProductStore.AttachCategory
func (s *PostgresProductStore) AttachCategory(
	ctx context.Context,
	ownerID uuid.UUID,
	productID, categoryID int64,
) error {
	q := scopeToOwner("p", ownerID).withID(productID).alsoOwned("c")
	q.and("c.id = " + q.arg(categoryID))
	query := `
		INSERT INTO product_categories (product_id, category_id)
		SELECT p.id, c.id FROM products p, categories c
		WHERE ` + q.where() + `
		ON CONFLICT DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, q.values()...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to attach category",
			slog.String("error", err.Error()),
			slog.Int64("product_id", productID),
			slog.Int64("category_id", categoryID))
		return MapError(err)
	}
	return nil
}

// ClearCategories implements store.ProductStore.ClearCategories
func (s *PostgresProductStore) ClearCategories(ctx context.Context, ownerID uuid.UUID, productID int64) error {
	q := scopeToOwner("p", ownerID).withID(productID)
	query := `
		DELETE FROM product_categories pc
		USING products p
		WHERE pc.product_id = p.id AND ` + q.where()

	if _, err := s.db.ExecContext(ctx, query, q.values()...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to clear categories",
			slog.String("error", err.Error()),
			slog.Int64("product_id", productID))
		return MapError(err)
	}
	return nil
}
