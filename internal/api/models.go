package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/service"
	"github.com/shopspring/decimal"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=5,max=72"`
	Name     string `json:"name"     validate:"max=255"`
}

// LoginRequest defines the payload for the token endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse defines the successful response for the token endpoint.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Token is the JWT used in the Authorization: Bearer header
	Token string `json:"token"`
}

// UserResponse is the public representation of a user. The password is
// never echoed.
type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// CategoryDescriptorRequest names a category in a product write.
type CategoryDescriptorRequest struct {
	Name string `json:"name"`
}

// ProductRequest is the body of product create, update and partial update.
// Pointer fields distinguish omitted (or null) from zero values. Price is
// accepted as a JSON number or string. Any created_by in the body is ignored.
type ProductRequest struct {
	Name        *string                      `json:"name"`
	Description *string                      `json:"description"`
	Price       *decimal.Decimal             `json:"price"`
	Categories  *[]CategoryDescriptorRequest `json:"categories"`
}

// CategoryRequest is the body of category update.
type CategoryRequest struct {
	Name *string `json:"name" validate:"required"`
}

// StockRequest is the body of stock create.
type StockRequest struct {
	Product  *int64 `json:"product"  validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,min=0,max=2147483647"`
}

// StockUpdateRequest is the body of stock update.
type StockUpdateRequest struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=2147483647"`
}

// CategoryResponse is the representation of a category, standalone and
// nested in products.
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductSummaryResponse is the list representation of a product.
// Price is serialized as a string.
type ProductSummaryResponse struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Price      decimal.Decimal    `json:"price"`
	Categories []CategoryResponse `json:"categories"`
	StockCount int                `json:"stock_count"`
	CreatedBy  uuid.UUID          `json:"created_by"`
	CreatedAt  time.Time          `json:"created_at"`
}

// ProductDetailResponse is the single-product representation.
type ProductDetailResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Categories  []CategoryResponse `json:"categories"`
	StockCount  int                `json:"stock_count"`
	CreatedBy   uuid.UUID          `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
}

// StockResponse is the representation of a stock row.
type StockResponse struct {
	ID        int64     `json:"id"`
	Product   *int64    `json:"product"`
	Quantity  int       `json:"quantity"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (req ProductRequest) toInput() service.ProductInput {
	input := service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.Categories != nil {
		descriptors := make([]domain.CategoryDescriptor, 0, len(*req.Categories))
		for _, c := range *req.Categories {
			descriptors = append(descriptors, domain.CategoryDescriptor{Name: c.Name})
		}
		input.Categories = &descriptors
	}
	return input
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func categoryToResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, CreatedBy: c.CreatedBy, CreatedAt: c.CreatedAt}
}

func categoriesToResponse(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryToResponse(c))
	}
	return out
}

func productToSummary(p *domain.Product) ProductSummaryResponse {
	return ProductSummaryResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Categories: categoriesToResponse(p.Categories),
		StockCount: p.StockCount,
		CreatedBy:  p.CreatedBy,
		CreatedAt:  p.CreatedAt,
	}
}

func productToDetail(p *domain.Product) ProductDetailResponse {
	return ProductDetailResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Categories:  categoriesToResponse(p.Categories),
		StockCount:  p.StockCount,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
	}
}

func stockToResponse(s *domain.Stock) StockResponse {
	return StockResponse{
		ID:        s.ID,
		Product:   s.ProductID,
		Quantity:  s.Quantity,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}
