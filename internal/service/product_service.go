package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
	"github.com/shopspring/decimal"
)

// ProductInput carries the writable fields of a product write. A nil field
// was omitted by the client. Categories distinguishes omitted (nil) from an
// explicit empty list, which clears the product's categories on update.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Categories  *[]domain.CategoryDescriptor
}

// ProductService provides the owner-scoped product operations.
type ProductService interface {
	// List returns the owner's products, newest first. A non-empty
	// categoryIDs keeps only products linked to at least one of them.
	List(ctx context.Context, ownerID uuid.UUID, categoryIDs []int64) ([]*domain.Product, error)

	// Get returns one owned product.
	Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error)

	// Create stores a new product owned by ownerID and links its categories.
	// Name and Price are required.
	Create(ctx context.Context, ownerID uuid.UUID, input ProductInput) (*domain.Product, error)

	// Update modifies an owned product. Unless partial, Name and Price are
	// required. Omitted Description and Categories are left untouched.
	Update(
		ctx context.Context,
		ownerID uuid.UUID,
		id int64,
		input ProductInput,
		partial bool,
	) (*domain.Product, error)

	// Delete removes an owned product together with its stock row.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}

type productServiceImpl struct {
	products   store.ProductStore
	reconciler *CategoryReconciler
	tx         store.Transactor
	logger     *slog.Logger
}

var _ ProductService = (*productServiceImpl)(nil)

// NewProductService creates a new ProductService.
// It returns an error if any of the required dependencies are nil.
func NewProductService(
	products store.ProductStore,
	reconciler *CategoryReconciler,
	tx store.Transactor,
	logger *slog.Logger,
) (ProductService, error) {
	if products == nil {
		return nil, domain.NewValidationError("products", "cannot be nil", domain.ErrValidation)
	}
	if reconciler == nil {
		return nil, domain.NewValidationError("reconciler", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &productServiceImpl{
		products:   products,
		reconciler: reconciler,
		tx:         tx,
		logger:     logger.With(slog.String("component", "product_service")),
	}, nil
}

// List implements ProductService.List
func (s *productServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
	categoryIDs []int64,
) ([]*domain.Product, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	products, err := s.products.List(ctx, ownerID, store.ProductFilter{CategoryIDs: categoryIDs})
	if err != nil {
		return nil, wrapError("product", "list", err)
	}
	return products, nil
}

// Get implements ProductService.Get
func (s *productServiceImpl) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	product, err := s.products.Get(ctx, ownerID, id)
	if err != nil {
		return nil, wrapError("product", "get", err)
	}
	return product, nil
}

// Create implements ProductService.Create
func (s *productServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input ProductInput,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	names, err := validateProductInput(input, true)
	if err != nil {
		return nil, err
	}

	var description string
	if input.Description != nil {
		description = *input.Description
	}
	product, err := domain.NewProduct(ownerID, *input.Name, description, *input.Price)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.products.WithTx(tx).Create(ctx, product); err != nil {
			return err
		}
		if input.Categories == nil {
			return nil
		}
		return s.reconciler.Reconcile(ctx, tx, ownerID, product.ID, names, false)
	})
	if err != nil {
		log.Error("failed to create product", slog.String("error", err.Error()))
		return nil, wrapError("product", "create", err)
	}

	log.Info("product created", slog.Int64("product_id", product.ID))
	return s.reload(ctx, ownerID, product.ID, "create")
}

// Update implements ProductService.Update
func (s *productServiceImpl) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	input ProductInput,
	partial bool,
) (*domain.Product, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	names, err := validateProductInput(input, !partial)
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		products := s.products.WithTx(tx)

		product, err := products.Get(ctx, ownerID, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			product.Description = strings.TrimSpace(*input.Description)
		}
		if input.Price != nil {
			product.Price = *input.Price
		}
		if err := product.Validate(); err != nil {
			return err
		}

		if err := products.Update(ctx, product); err != nil {
			return err
		}
		if input.Categories == nil {
			return nil
		}
		return s.reconciler.Reconcile(ctx, tx, ownerID, id, names, true)
	})
	if err != nil {
		log.Debug("product update failed",
			slog.String("error", err.Error()),
			slog.Int64("product_id", id))
		return nil, wrapError("product", "update", err)
	}

	log.Info("product updated", slog.Int64("product_id", id), slog.Bool("partial", partial))
	return s.reload(ctx, ownerID, id, "update")
}

// Delete implements ProductService.Delete
func (s *productServiceImpl) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if ownerID == uuid.Nil {
		return ErrMissingOwner
	}

	if err := s.products.Delete(ctx, ownerID, id); err != nil {
		return wrapError("product", "delete", err)
	}
	return nil
}

// reload reads a product back after a committed write so that the result
// carries its categories and stock count.
func (s *productServiceImpl) reload(ctx context.Context, ownerID uuid.UUID, id int64, op string) (*domain.Product, error) {
	product, err := s.products.Get(ctx, ownerID, id)
	if err != nil {
		return nil, wrapError("product", op, err)
	}
	return product, nil
}

// validateProductInput checks the supplied fields of a product write and
// returns the trimmed category names. With requireAll, missing name or
// price are reported too.
func validateProductInput(input ProductInput, requireAll bool) ([]string, error) {
	fields := map[string]string{}

	if input.Name != nil {
		if msg := domain.NameProblem(strings.TrimSpace(*input.Name)); msg != "" {
			fields["name"] = msg
		}
	} else if requireAll {
		fields["name"] = "is required"
	}

	if input.Price != nil {
		if msg := domain.PriceProblem(*input.Price); msg != "" {
			fields["price"] = msg
		}
	} else if requireAll {
		fields["price"] = "is required"
	}

	var names []string
	if input.Categories != nil {
		var err error
		names, err = domain.ValidateCategoryDescriptors(*input.Categories)
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			for field, msg := range validationErr.Fields {
				fields[field] = msg
			}
		}
	}

	if err := domain.ValidationErrorFromFields(fields); err != nil {
		return nil, err
	}
	return names, nil
}
