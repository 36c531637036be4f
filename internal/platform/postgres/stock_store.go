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

// PostgresStockStore implements store.StockStore.
type PostgresStockStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStockStore creates a stock store on a connection or transaction.
func NewPostgresStockStore(db store.DBTX, logger *slog.Logger) *PostgresStockStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStockStore{
		db:     db,
		logger: logger.With(slog.String("component", "stock_store")),
	}
}

var _ store.StockStore = (*PostgresStockStore)(nil)

// WithTx implements store.StockStore.WithTx
func (s *PostgresStockStore) WithTx(tx *sql.Tx) store.StockStore {
	return &PostgresStockStore{db: tx, logger: s.logger}
}

const (
	stockColumns = `id, product_id, quantity, created_by, created_at`
	stockSelect  = `SELECT s.id, s.product_id, s.quantity, s.created_by, s.created_at FROM product_stocks s WHERE `
)

// List implements store.StockStore.List
func (s *PostgresStockStore) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Stock, error) {
	q := scopeToOwner("s", ownerID)
	rows, err := s.db.QueryContext(ctx, stockSelect+q.where()+` ORDER BY s.quantity DESC, s.id DESC`, q.values()...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list stocks",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	stocks := []*domain.Stock{}
	for rows.Next() {
		st, err := scanStock(rows)
		if err != nil {
			return nil, MapError(err)
		}
		stocks = append(stocks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return stocks, nil
}

// Get implements store.StockStore.Get
func (s *PostgresStockStore) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Stock, error) {
	q := scopeToOwner("s", ownerID).withID(id)
	st, err := scanStock(s.db.QueryRowContext(ctx, stockSelect+q.where(), q.values()...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStockNotFound
		}
		return nil, MapError(err)
	}
	return st, nil
}

// Create implements store.StockStore.Create
func (s *PostgresStockStore) Create(ctx context.Context, stock *domain.Stock) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := stock.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO product_stocks (product_id, quantity, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, stock.ProductID, stock.Quantity, stock.CreatedBy).Scan(&stock.ID, &stock.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("product already has a stock row")
			return MapUniqueViolation(err, store.ErrStockExists)
		}
		log.Error("failed to create stock",
			slog.String("error", err.Error()),
			slog.String("owner_id", stock.CreatedBy.String()))
		return MapError(err)
	}

	log.Info("stock created", slog.Int64("stock_id", stock.ID))
	return nil
}

// UpdateQuantity implements store.StockStore.UpdateQuantity
func (s *PostgresStockStore) UpdateQuantity(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	quantity int,
) (*domain.Stock, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	q := scopeToOwner("product_stocks", ownerID).withID(id)
	query := `UPDATE product_stocks SET quantity = ` + q.arg(quantity) + ` WHERE ` + q.where() +
		` RETURNING ` + stockColumns

	st, err := scanStock(s.db.QueryRowContext(ctx, query, q.values()...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStockNotFound
		}
		log.Error("failed to update stock",
			slog.String("error", err.Error()),
			slog.Int64("stock_id", id))
		return nil, MapError(err)
	}

	log.Info("stock updated", slog.Int64("stock_id", id), slog.Int("quantity", quantity))
	return st, nil
}

// Delete implements store.StockStore.Delete
func (s *PostgresStockStore) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	q := scopeToOwner("product_stocks", ownerID).withID(id)
	result, err := s.db.ExecContext(ctx, `DELETE FROM product_stocks WHERE `+q.where(), q.values()...)
	if err != nil {
		log.Error("failed to delete stock",
			slog.String("error", err.Error()),
			slog.Int64("stock_id", id))
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "stock"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrStockNotFound
		}
		return err
	}

	log.Info("stock deleted", slog.Int64("stock_id", id))
	return nil
}

func scanStock(row rowScanner) (*domain.Stock, error) {
	var st domain.Stock
	var productID sql.NullInt64
	if err := row.Scan(&st.ID, &productID, &st.Quantity, &st.CreatedBy, &st.CreatedAt); err != nil {
		return nil, err
	}
	if productID.Valid {
		id := productID.Int64
		st.ProductID = &id
	}
	return &st, nil
}
