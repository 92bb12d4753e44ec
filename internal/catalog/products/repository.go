package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-commerce/atlas-commerce/internal/platform/db"
	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

type Repository interface {
	List(ctx context.Context, params ListParams) ([]Product, int, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, fields UpdateFields) (Product, error)
	Delete(ctx context.Context, id int64) (Product, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context, params ListParams) ([]Product, int, error) {
	countQuery, countArgs := buildCountQuery(params)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query, args := buildListQuery(params)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.CategoryName, &p.StockQuantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	query := `SELECT ` + selectColumns + ` FROM products p LEFT JOIN categories c ON c.id = p.category_id WHERE p.id = $1`
	var p Product
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID, &p.CategoryName, &p.StockQuantity, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.NotFound("product")
		}
		return Product{}, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price, category_id, stock_quantity, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		product.Name, product.Description, product.Price, product.CategoryID, product.StockQuantity, product.ImageURL,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return Product{}, translate(err)
	}
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, fields UpdateFields) (Product, error) {
	if fields.Empty() {
		return r.Get(ctx, id)
	}

	query, args := buildUpdateQuery(id, fields)
	var updatedID int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, shared.NotFound("product")
		}
		return Product{}, translate(err)
	}

	// Re-read so the response carries the joined category name.
	return r.Get(ctx, updatedID)
}

// Delete runs the order-item existence check and the delete in one
// transaction so no order can slip in between the two statements.
func (r *repository) Delete(ctx context.Context, id int64) (Product, error) {
	var deleted Product
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var referenced bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)`, id,
		).Scan(&referenced); err != nil {
			return err
		}
		if referenced {
			return shared.Conflict("id", "order_items_product_id_fkey", "cannot delete product: still referenced by order items")
		}

		err := tx.QueryRow(ctx,
			`DELETE FROM products WHERE id = $1
			 RETURNING id, name, description, price, category_id, stock_quantity, image_url, created_at, updated_at`, id,
		).Scan(&deleted.ID, &deleted.Name, &deleted.Description, &deleted.Price, &deleted.CategoryID, &deleted.StockQuantity, &deleted.ImageURL, &deleted.CreatedAt, &deleted.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.NotFound("product")
			}
			return translate(err)
		}
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return deleted, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			if pgErr.ConstraintName == "products_category_id_fkey" {
				return shared.InvalidReference("category_id", "invalid category_id: category does not exist")
			}
			return shared.Conflict("id", pgErr.ConstraintName, "cannot delete product: still referenced")
		case "23505":
			return shared.Conflict("name", pgErr.ConstraintName, "product already exists")
		}
	}
	return err
}
