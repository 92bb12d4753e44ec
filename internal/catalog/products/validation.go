package products

import (
	"strings"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

func (s *Service) validateCreate(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return shared.Invalid("name", "product name is required")
	}
	if p.Price.IsNegative() {
		return shared.Invalid("price", "price must be a non-negative number")
	}
	if p.CategoryID <= 0 {
		return shared.Invalid("category_id", "category_id is required")
	}
	if p.StockQuantity < 0 {
		return shared.Invalid("stock_quantity", "stock quantity must be a non-negative integer")
	}
	return nil
}

// validateUpdate checks every provided field. Presence, not value,
// decides whether a field is validated: a stock quantity of zero still
// goes through the range check.
func (s *Service) validateUpdate(f UpdateFields) error {
	if f.Name != nil && strings.TrimSpace(*f.Name) == "" {
		return shared.Invalid("name", "product name must not be empty")
	}
	if f.Price != nil && f.Price.IsNegative() {
		return shared.Invalid("price", "price must be a non-negative number")
	}
	if f.CategoryID != nil && *f.CategoryID <= 0 {
		return shared.Invalid("category_id", "category_id must reference a category")
	}
	if f.StockQuantity != nil && *f.StockQuantity < 0 {
		return shared.Invalid("stock_quantity", "stock quantity must be a non-negative integer")
	}
	return nil
}
