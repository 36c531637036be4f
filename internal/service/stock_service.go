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

// StockService provides the owner-scoped stock operations.
type StockService interface {
	// List returns the owner's stock rows by quantity descending.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Stock, error)

	// Create records the quantity of an owned product. A product has at
	// most one stock row.
	Create(ctx context.Context, ownerID uuid.UUID, productID *int64, quantity int) (*domain.Stock, error)

	// Update sets the quantity of an owned stock row.
	Update(ctx context.Context, ownerID uuid.UUID, id int64, quantity int) (*domain.Stock, error)

	// Delete removes an owned stock row. Its product remains and reports a
	// stock count of zero.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}

type stockServiceImpl struct {
	stocks   store.StockStore
	products store.ProductStore
	tx       store.Transactor
	logger   *slog.Logger
}

var _ StockService = (*stockServiceImpl)(nil)

// NewStockService creates a new StockService.
func NewStockService(
	stocks store.StockStore,
	products store.ProductStore,
	tx store.Transactor,
	logger *slog.Logger,
) (StockService, error) {
	if stocks == nil {
		return nil, domain.NewValidationError("stocks", "cannot be nil", domain.ErrValidation)
	}
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &stockServiceImpl{
		stocks:   stocks,
		products: products,
		tx:       tx,
		logger:   logger.With(slog.String("component", "stock_service")),
	}, nil
}

// List implements StockService.List
func (s *stockServiceImpl) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Stock, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	stocks, err := s.stocks.List(ctx, ownerID)
	if err != nil {
		return nil, wrapError("stock", "list", err)
	}
	return stocks, nil
}

// Create implements StockService.Create
// A missing or foreign product is a validation error on "product" rather
// than a not-found error: the stock collection itself exists.
func (s *stockServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	productID *int64,
	quantity int,
) (*domain.Stock, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	fields := map[string]string{}
	if productID == nil {
		fields["product"] = "is required"
	}
	if msg := domain.QuantityProblem(quantity); msg != "" {
		fields["quantity"] = msg
	}
	if err := domain.ValidationErrorFromFields(fields); err != nil {
		return nil, err
	}

	stock, err := domain.NewStock(ownerID, productID, quantity)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.products.WithTx(tx).Get(ctx, ownerID, *productID); err != nil {
			if store.IsNotFoundError(err) {
				return domain.NewValidationError("product", "does not exist", domain.ErrInvalidID)
			}
			return err
		}
		return s.stocks.WithTx(tx).Create(ctx, stock)
	})
	if err != nil {
		log.Debug("stock create failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", *productID))
		return nil, wrapError("stock", "create", err)
	}

	log.Info("stock created",
		slog.Int64("stock_id", stock.ID),
		slog.Int64("product_id", *productID))
	return stock, nil
}

// Update implements StockService.Update
func (s *stockServiceImpl) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	quantity int,
) (*domain.Stock, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if err := domain.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	stock, err := s.stocks.UpdateQuantity(ctx, ownerID, id, quantity)
	if err != nil {
		return nil, wrapError("stock", "update", err)
	}
	return stock, nil
}

// Delete implements StockService.Delete
func (s *stockServiceImpl) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if ownerID == uuid.Nil {
		return ErrMissingOwner
	}

	if err := s.stocks.Delete(ctx, ownerID, id); err != nil {
		return wrapError("stock", "delete", err)
	}
	return nil
}
