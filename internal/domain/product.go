package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Catalog field limits.
const (
	MaxNameLength = 255
	// MaxPriceDigits is the number of significant digits a price may carry.
	// Prices are whole numbers (no decimal places).
	MaxPriceDigits = 6
)

// MaxPrice is the largest price representable with MaxPriceDigits digits.
var MaxPrice = decimal.New(999999, 0)

// Category is a product category owned by a single user. (name, created_by)
// is unique: writes resolve names to existing rows before creating new ones.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryDescriptor is a client-supplied reference to a category by name.
type CategoryDescriptor struct {
	Name string `json:"name"`
}

// Product is a catalog item. Categories and StockCount are read-side
// projections populated by the store; they are never written through Product.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Categories  []Category      `json:"categories"`
	StockCount  int             `json:"stock_count"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Stock records the on-hand quantity of at most one product.
// ProductID is nil when the stock row is not attached to a product.
type Stock struct {
	ID        int64     `json:"id"`
	ProductID *int64    `json:"product"`
	Quantity  int       `json:"quantity"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProduct creates a validated Product owned by owner. Name and description
// are trimmed.
func NewProduct(owner uuid.UUID, name, description string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Categories:  []Category{},
		CreatedBy:   owner,
		CreatedAt:   time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the writable fields of a Product.
func (p *Product) Validate() error {
	fields := map[string]string{}
	if p.CreatedBy == uuid.Nil {
		fields["created_by"] = "is required"
	}
	if msg := NameProblem(p.Name); msg != "" {
		fields["name"] = msg
	}
	if msg := PriceProblem(p.Price); msg != "" {
		fields["price"] = msg
	}
	return ValidationErrorFromFields(fields)
}

// PriceProblem describes why price is not acceptable, or returns "" when it is.
func PriceProblem(price decimal.Decimal) string {
	switch {
	case price.IsNegative():
		return "must not be negative"
	case !price.Equal(price.Truncate(0)):
		return "must not have decimal places"
	case price.GreaterThan(MaxPrice):
		return fmt.Sprintf("must have at most %d digits", MaxPriceDigits)
	default:
		return ""
	}
}

// NormalizeCategoryName trims a category name and validates it.
func NormalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if msg := NameProblem(name); msg != "" {
		return "", NewValidationError("name", msg, nil)
	}
	return name, nil
}

// ValidateCategoryDescriptors checks every descriptor of a write request and
// returns the trimmed names in input order. No descriptor is accepted unless
// all of them are valid.
func ValidateCategoryDescriptors(descriptors []CategoryDescriptor) ([]string, error) {
	fields := map[string]string{}
	names := make([]string, 0, len(descriptors))
	for i, d := range descriptors {
		name := strings.TrimSpace(d.Name)
		if msg := NameProblem(name); msg != "" {
			fields[fmt.Sprintf("categories[%d].name", i)] = msg
			continue
		}
		names = append(names, name)
	}
	if err := ValidationErrorFromFields(fields); err != nil {
		return nil, err
	}
	return names, nil
}

// NewStock creates a validated Stock owned by owner.
func NewStock(owner uuid.UUID, productID *int64, quantity int) (*Stock, error) {
	s := &Stock{
		ProductID: productID,
		Quantity:  quantity,
		CreatedBy: owner,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the writable fields of a Stock.
func (s *Stock) Validate() error {
	fields := map[string]string{}
	if s.CreatedBy == uuid.Nil {
		fields["created_by"] = "is required"
	}
	if msg := QuantityProblem(s.Quantity); msg != "" {
		fields["quantity"] = msg
	}
	return ValidationErrorFromFields(fields)
}

// MaxQuantity is the largest quantity the product_stocks.quantity column
// (INTEGER) can hold.
const MaxQuantity = math.MaxInt32

// QuantityProblem describes why a stock quantity is not acceptable, or
// returns "" when it is.
func QuantityProblem(quantity int) string {
	switch {
	case quantity < 0:
		return "must not be negative"
	case quantity > MaxQuantity:
		return "is too large"
	default:
		return ""
	}
}

// ValidateQuantity rejects negative stock quantities and quantities that do
// not fit the database column.
func ValidateQuantity(quantity int) error {
	if msg := QuantityProblem(quantity); msg != "" {
		return NewValidationError("quantity", msg, nil)
	}
	return nil
}

// NameProblem describes why a product or category name is not acceptable,
// or returns "" when it is. name is expected to be trimmed.
func NameProblem(name string) string {
	switch {
	case name == "":
		return "is required"
	case len([]rune(name)) > MaxNameLength:
		return "is too long"
	default:
		return ""
	}
}
