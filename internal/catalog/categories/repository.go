package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id int64) (Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, id int64, category Category) (Category, error)
	Delete(ctx context.Context, id int64) (Category, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx, `SELECT id, name, description FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, shared.NotFound("category")
		}
		return Category{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, category Category) (Category, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, description) VALUES ($1, $2) RETURNING id, name, description`,
		category.Name, category.Description,
	).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		return Category{}, translate(err)
	}
	return category, nil
}

func (r *repository) Update(ctx context.Context, id int64, category Category) (Category, error) {
	err := r.pool.QueryRow(ctx,
		`UPDATE categories SET name = $1, description = $2 WHERE id = $3 RETURNING id, name, description`,
		category.Name, category.Description, id,
	).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, shared.NotFound("category")
		}
		return Category{}, translate(err)
	}
	return category, nil
}

// Delete relies on the foreign key from products: the constraint
// violation at delete time is the referential check.
func (r *repository) Delete(ctx context.Context, id int64) (Category, error) {
	var c Category
	err := r.pool.QueryRow(ctx,
		`DELETE FROM categories WHERE id = $1 RETURNING id, name, description`, id,
	).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, shared.NotFound("category")
		}
		return Category{}, translate(err)
	}
	return c, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return shared.Conflict("name", pgErr.ConstraintName, "category name already exists")
		case "23503":
			return shared.Conflict("id", pgErr.ConstraintName, "cannot delete category: still referenced by products")
		}
	}
	return err
}
