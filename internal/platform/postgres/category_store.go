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

// PostgresCategoryStore implements store.CategoryStore.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a category store on a connection or transaction.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

const categorySelect = `SELECT c.id, c.name, c.created_by, c.created_at FROM categories c WHERE `

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	assignedOnly bool,
) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := scopeToOwner("c", ownerID)
	if assignedOnly {
		q.and(`EXISTS (SELECT 1 FROM product_categories pc WHERE pc.category_id = c.id)`)
	}

	rows, err := s.db.QueryContext(ctx, categorySelect+q.where()+` ORDER BY c.name DESC, c.id DESC`, q.values()...)
	if err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	categories := []*domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, MapError(err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return categories, nil
}

// Get implements store.CategoryStore.Get
func (s *PostgresCategoryStore) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Category, error) {
	q := scopeToOwner("c", ownerID).withID(id)
	c, err := scanCategory(s.db.QueryRowContext(ctx, categorySelect+q.where(), q.values()...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, MapError(err)
	}
	return c, nil
}

// GetOrCreate implements store.CategoryStore.GetOrCreate
// The insert is a no-op when the owner already has the name, so concurrent
// callers converge on a single row.
func (s *PostgresCategoryStore) GetOrCreate(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	name, err := domain.NormalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categories (name, created_by)
		VALUES ($1, $2)
		ON CONFLICT (created_by, name) DO NOTHING
	`, name, ownerID)
	if err != nil {
		log.Error("failed to insert category",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}

	q := scopeToOwner("c", ownerID)
	q.and("c.name = " + q.arg(name))
	c, err := scanCategory(s.db.QueryRowContext(ctx, categorySelect+q.where(), q.values()...))
	if err != nil {
		log.Error("failed to resolve category",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	return c, nil
}

// Update implements store.CategoryStore.Update
func (s *PostgresCategoryStore) Update(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	name, err := domain.NormalizeCategoryName(category.Name)
	if err != nil {
		return err
	}

	q := scopeToOwner("categories", category.CreatedBy).withID(category.ID)
	query := `UPDATE categories SET name = ` + q.arg(name) + ` WHERE ` + q.where() +
		` RETURNING id, name, created_by, created_at`

	updated, err := scanCategory(s.db.QueryRowContext(ctx, query, q.values()...))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return store.ErrCategoryNotFound
		case IsUniqueViolation(err):
			log.Debug("category name already in use", slog.Int64("category_id", category.ID))
			return MapUniqueViolation(err, store.ErrCategoryExists)
		}
		log.Error("failed to update category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", category.ID))
		return MapError(err)
	}

	*category = *updated
	log.Info("category updated", slog.Int64("category_id", category.ID))
	return nil
}

// Delete implements store.CategoryStore.Delete
// Product links are removed by ON DELETE CASCADE; products are untouched.
func (s *PostgresCategoryStore) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := scopeToOwner("categories", ownerID).withID(id)
	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE `+q.where(), q.values()...)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "category"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrCategoryNotFound
		}
		return err
	}

	log.Info("category deleted", slog.Int64("category_id", id))
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
