package products

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

// ListParams carries the caller-controlled listing knobs. Sort column
// and direction are allow-listed before they reach query text; filter
// and pagination values travel as positional arguments only.
type ListParams struct {
	CategoryID *int64
	Page       int
	Limit      int
	SortBy     string
	SortOrder  string
}

const selectColumns = `p.id, p.name, p.description, p.price, p.category_id, c.name AS category_name, p.stock_quantity, p.image_url, p.created_at, p.updated_at`

// sortColumns is the fixed set of columns a caller may sort by.
// Anything else falls back to created_at.
var sortColumns = map[string]struct{}{
	"name":           {},
	"price":          {},
	"created_at":     {},
	"updated_at":     {},
	"stock_quantity": {},
}

func sortClause(sortBy, sortOrder string) string {
	column := "created_at"
	if _, ok := sortColumns[strings.ToLower(sortBy)]; ok {
		column = strings.ToLower(sortBy)
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "ASC") {
		dir = "ASC"
	}
	return "p." + column + " " + dir
}

func buildListQuery(p ListParams) (string, []any) {
	page := p.Page
	if page < 1 {
		page = shared.DefaultPage
	}
	limit := p.Limit
	if limit < 1 {
		limit = shared.DefaultLimit
	}

	query := `SELECT ` + selectColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id`
	args := []any{}
	argCount := 0

	if p.CategoryID != nil {
		argCount++
		query += ` WHERE p.category_id = $` + strconv.Itoa(argCount)
		args = append(args, *p.CategoryID)
	}

	query += ` ORDER BY ` + sortClause(p.SortBy, p.SortOrder)

	argCount++
	query += ` LIMIT $` + strconv.Itoa(argCount)
	args = append(args, limit)

	argCount++
	query += ` OFFSET $` + strconv.Itoa(argCount)
	args = append(args, (page-1)*limit)

	return query, args
}

// buildCountQuery shares the list filter so totals match the page rows.
func buildCountQuery(p ListParams) (string, []any) {
	query := `SELECT COUNT(*) FROM products`
	args := []any{}
	if p.CategoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *p.CategoryID)
	}
	return query, args
}

// UpdateFields is the fixed, code-enumerated set of updatable product
// fields. Only non-nil entries appear in the UPDATE statement; column
// names never derive from caller-supplied keys.
type UpdateFields struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	CategoryID    *int64
	StockQuantity *int
	ImageURL      *string
}

// Empty reports whether no field is set, in which case an update is a
// plain fetch.
func (f UpdateFields) Empty() bool {
	return f.Name == nil && f.Description == nil && f.Price == nil &&
		f.CategoryID == nil && f.StockQuantity == nil && f.ImageURL == nil
}

func buildUpdateQuery(id int64, f UpdateFields) (string, []any) {
	query := `UPDATE products SET updated_at = NOW()`
	var args []any
	argPos := 1

	set := func(column string, value any) {
		query += ", " + column + " = $" + strconv.Itoa(argPos)
		args = append(args, value)
		argPos++
	}

	if f.Name != nil {
		set("name", *f.Name)
	}
	if f.Description != nil {
		set("description", *f.Description)
	}
	if f.Price != nil {
		set("price", *f.Price)
	}
	if f.CategoryID != nil {
		set("category_id", *f.CategoryID)
	}
	if f.StockQuantity != nil {
		set("stock_quantity", *f.StockQuantity)
	}
	if f.ImageURL != nil {
		set("image_url", *f.ImageURL)
	}

	query += ` WHERE id = $` + strconv.Itoa(argPos) + ` RETURNING id`
	args = append(args, id)
	return query, args
}
