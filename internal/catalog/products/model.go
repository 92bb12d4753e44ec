package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. CategoryName is populated on
// reads that join the categories table.
type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CategoryID    int64           `json:"category_id"`
	CategoryName  *string         `json:"category_name,omitempty"`
	StockQuantity int             `json:"stock_quantity"`
	ImageURL      *string         `json:"image_url"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
