package products

import (
	"github.com/shopspring/decimal"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

type createProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price" validate:"required"`
	CategoryID    *int64           `json:"category_id" validate:"required"`
	StockQuantity *int             `json:"stock_quantity"`
	ImageURL      *string          `json:"image_url"`
}

// updateProductRequest is sparse: absent fields stay untouched.
type updateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	CategoryID    *int64           `json:"category_id"`
	StockQuantity *int             `json:"stock_quantity"`
	ImageURL      *string          `json:"image_url"`
}

func (r updateProductRequest) fields() UpdateFields {
	return UpdateFields{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		CategoryID:    r.CategoryID,
		StockQuantity: r.StockQuantity,
		ImageURL:      r.ImageURL,
	}
}

type listResponse struct {
	Data       []Product         `json:"data"`
	Pagination shared.Pagination `json:"pagination"`
}
