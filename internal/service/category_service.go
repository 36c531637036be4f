package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/logger"
	"github.com/phrazzld/catalog-api/internal/store"
)

// CategoryService provides the owner-scoped category operations. Categories
// are created implicitly by product writes; there is no create operation.
type CategoryService interface {
	// List returns the owner's categories by name descending. With
	// assignedOnly, categories not linked to any product are left out.
	List(ctx context.Context, ownerID uuid.UUID, assignedOnly bool) ([]*domain.Category, error)

	// Update renames an owned category.
	Update(ctx context.Context, ownerID uuid.UUID, id int64, name string) (*domain.Category, error)

	// Delete removes an owned category. Linked products remain.
	Delete(ctx context.Context, ownerID uuid.UUID, id int64) error
}

type categoryServiceImpl struct {
	categories store.CategoryStore
	logger     *slog.Logger
}

var _ CategoryService = (*categoryServiceImpl)(nil)

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories store.CategoryStore, logger *slog.Logger) (CategoryService, error) {
	if categories == nil {
		return nil, domain.NewValidationError("categories", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &categoryServiceImpl{
		categories: categories,
		logger:     logger.With(slog.String("component", "category_service")),
	}, nil
}

// List implements CategoryService.List
func (s *categoryServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
	assignedOnly bool,
) ([]*domain.Category, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	categories, err := s.categories.List(ctx, ownerID, assignedOnly)
	if err != nil {
		return nil, wrapError("category", "list", err)
	}
	return categories, nil
}

// Update implements CategoryService.Update
func (s *categoryServiceImpl) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	name string,
) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}

	name, err := domain.NormalizeCategoryName(name)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{ID: id, Name: name, CreatedBy: ownerID}
	if err := s.categories.Update(ctx, category); err != nil {
		log.Debug("category update failed",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return nil, wrapError("category", "update", err)
	}
	return category, nil
}

// Delete implements CategoryService.Delete
func (s *categoryServiceImpl) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if ownerID == uuid.Nil {
		return ErrMissingOwner
	}

	if err := s.categories.Delete(ctx, ownerID, id); err != nil {
		return wrapError("category", "delete", err)
	}
	return nil
}
