package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service"
)

// MockProductService implements service.ProductService for testing
type MockProductService struct {
	ListFn   func(ctx context.Context, ownerID uuid.UUID, categoryIDs []int64) ([]*domain.Product, error)
	GetFn    func(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error)
	CreateFn func(ctx context.Context, ownerID uuid.UUID, input service.ProductInput) (*domain.Product, error)
	UpdateFn func(
		ctx context.Context,
		ownerID uuid.UUID,
		id int64,
		input service.ProductInput,
		partial bool,
	) (*domain.Product, error)
	DeleteFn func(ctx context.Context, ownerID uuid.UUID, id int64) error
}

var _ service.ProductService = (*MockProductService)(nil)

// List implements service.ProductService
func (m *MockProductService) List(
	ctx context.Context,
	ownerID uuid.UUID,
	categoryIDs []int64,
) ([]*domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, categoryIDs)
	}
	return []*domain.Product{}, nil
}

// Get implements service.ProductService
func (m *MockProductService) Get(ctx context.Context, ownerID uuid.UUID, id int64) (*domain.Product, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, ownerID, id)
	}
	return nil, nil
}

// Create implements service.ProductService
func (m *MockProductService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input service.ProductInput,
) (*domain.Product, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, input)
	}
	return nil, nil
}

// Update implements service.ProductService
func (m *MockProductService) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	input service.ProductInput,
	partial bool,
) (*domain.Product, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, input, partial)
	}
	return nil, nil
}

// Delete implements service.ProductService
func (m *MockProductService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return nil
}

// MockCategoryService implements service.CategoryService for testing
type MockCategoryService struct {
	ListFn   func(ctx context.Context, ownerID uuid.UUID, assignedOnly bool) ([]*domain.Category, error)
	UpdateFn func(ctx context.Context, ownerID uuid.UUID, id int64, name string) (*domain.Category, error)
	DeleteFn func(ctx context.Context, ownerID uuid.UUID, id int64) error
}

var _ service.CategoryService = (*MockCategoryService)(nil)

// List implements service.CategoryService
func (m *MockCategoryService) List(
	ctx context.Context,
	ownerID uuid.UUID,
	assignedOnly bool,
) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, assignedOnly)
	}
	return []*domain.Category{}, nil
}

// Update implements service.CategoryService
func (m *MockCategoryService) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	name string,
) (*domain.Category, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, name)
	}
	return nil, nil
}

// Delete implements service.CategoryService
func (m *MockCategoryService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return nil
}

// MockStockService implements service.StockService for testing
type MockStockService struct {
	ListFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Stock, error)
	CreateFn func(ctx context.Context, ownerID uuid.UUID, productID *int64, quantity int) (*domain.Stock, error)
	UpdateFn func(ctx context.Context, ownerID uuid.UUID, id int64, quantity int) (*domain.Stock, error)
	DeleteFn func(ctx context.Context, ownerID uuid.UUID, id int64) error
}

var _ service.StockService = (*MockStockService)(nil)

// List implements service.StockService
func (m *MockStockService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Stock, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID)
	}
	return []*domain.Stock{}, nil
}

// Create implements service.StockService
func (m *MockStockService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	productID *int64,
	quantity int,
) (*domain.Stock, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ownerID, productID, quantity)
	}
	return nil, nil
}

// Update implements service.StockService
func (m *MockStockService) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	id int64,
	quantity int,
) (*domain.Stock, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, id, quantity)
	}
	return nil, nil
}

// Delete implements service.StockService
func (m *MockStockService) Delete(ctx context.Context, ownerID uuid.UUID, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, id)
	}
	return nil
}

// MockUserService implements service.UserService for testing
type MockUserService struct {
	RegisterFn     func(ctx context.Context, email, name, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
	GetFn          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

var _ service.UserService = (*MockUserService)(nil)

// Register implements service.UserService
func (m *MockUserService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, name, password)
	}
	return nil, nil
}

// Authenticate implements service.UserService
func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, email, password)
	}
	return nil, nil
}

// Get implements service.UserService
func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, nil
}
