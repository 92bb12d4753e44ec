package products

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestBuildListQueryDefaults(t *testing.T) {
	query, args := buildListQuery(ListParams{})

	require.Contains(t, query, "ORDER BY p.created_at DESC")
	require.Contains(t, query, "LIMIT $1")
	require.Contains(t, query, "OFFSET $2")
	require.Equal(t, []any{10, 0}, args)
	require.NotContains(t, query, "WHERE")
}

func TestBuildListQueryCategoryFilter(t *testing.T) {
	categoryID := int64(7)
	query, args := buildListQuery(ListParams{CategoryID: &categoryID, Page: 3, Limit: 20})

	require.Contains(t, query, "WHERE p.category_id = $1")
	require.Contains(t, query, "LIMIT $2")
	require.Contains(t, query, "OFFSET $3")
	require.Equal(t, []any{int64(7), 20, 40}, args)
}

func TestSortColumnAllowList(t *testing.T) {
	cases := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"price", "asc", "p.price ASC"},
		{"name", "ASC", "p.name ASC"},
		{"stock_quantity", "desc", "p.stock_quantity DESC"},
		{"PRICE", "DeSc", "p.price DESC"},
		{"", "", "p.created_at DESC"},
		{"created_at", "sideways", "p.created_at DESC"},
		// Injection through the column position must fall back.
		{"malicious_column", "ASC", "p.created_at ASC"},
		{"price; DROP TABLE products", "ASC", "p.created_at ASC"},
	}

	for _, tc := range cases {
		query, _ := buildListQuery(ListParams{SortBy: tc.sortBy, SortOrder: tc.sortOrder})
		require.Contains(t, query, "ORDER BY "+tc.want, "sortBy=%q sortOrder=%q", tc.sortBy, tc.sortOrder)
	}
}

func TestBuildCountQuerySharesFilter(t *testing.T) {
	query, args := buildCountQuery(ListParams{})
	require.Equal(t, `SELECT COUNT(*) FROM products`, query)
	require.Empty(t, args)

	categoryID := int64(5)
	query, args = buildCountQuery(ListParams{CategoryID: &categoryID})
	require.Equal(t, `SELECT COUNT(*) FROM products WHERE category_id = $1`, query)
	require.Equal(t, []any{int64(5)}, args)
}

func TestBuildUpdateQuerySingleField(t *testing.T) {
	price := decimal.RequireFromString("19.99")
	query, args := buildUpdateQuery(42, UpdateFields{Price: &price})

	require.Equal(t, `UPDATE products SET updated_at = NOW(), price = $1 WHERE id = $2 RETURNING id`, query)
	require.Len(t, args, 2)
	require.True(t, price.Equal(args[0].(decimal.Decimal)))
	require.Equal(t, int64(42), args[1])
}

func TestBuildUpdateQueryAllFields(t *testing.T) {
	name := "Widget"
	description := "A widget"
	price := decimal.RequireFromString("5.00")
	categoryID := int64(3)
	stock := 0
	imageURL := "https://img.example/widget.png"

	query, args := buildUpdateQuery(1, UpdateFields{
		Name:          &name,
		Description:   &description,
		Price:         &price,
		CategoryID:    &categoryID,
		StockQuantity: &stock,
		ImageURL:      &imageURL,
	})

	for _, column := range []string{"name", "description", "price", "category_id", "stock_quantity", "image_url"} {
		require.Contains(t, query, column+" = $")
	}
	require.Contains(t, query, "WHERE id = $7")
	require.Len(t, args, 7)
	require.Equal(t, 0, args[4], "stock quantity of zero must still be applied")
}

func TestUpdateFieldsEmpty(t *testing.T) {
	require.True(t, UpdateFields{}.Empty())

	stock := 0
	require.False(t, UpdateFields{StockQuantity: &stock}.Empty())
}

func TestSelectColumnsJoinCategoryName(t *testing.T) {
	query, _ := buildListQuery(ListParams{})
	require.True(t, strings.Contains(query, "c.name AS category_name"))
	require.True(t, strings.Contains(query, "LEFT JOIN categories c ON c.id = p.category_id"))
}
