package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
	UpdateProfile(ctx context.Context, id int64, fields ProfileFields) (User, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Create(ctx context.Context, user User) (User, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, full_name, address)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.Address,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return User{}, translate(err)
	}
	return user, nil
}

// FindByEmail returns the full row including the password hash; it
// exists for login and must never be echoed to a client directly.
func (r *repository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findBy(ctx, `email = $1`, email)
}

func (r *repository) FindByUsername(ctx context.Context, username string) (User, error) {
	return r.findBy(ctx, `username = $1`, username)
}

func (r *repository) findBy(ctx context.Context, condition string, arg any) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, password_hash, full_name, address, created_at FROM users WHERE `+condition, arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.Address, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.NotFound("user")
		}
		return User{}, err
	}
	return u, nil
}

// FindByID omits the password hash at the query level.
func (r *repository) FindByID(ctx context.Context, id int64) (User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, full_name, address, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Address, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.NotFound("user")
		}
		return User{}, err
	}
	return u, nil
}

func (r *repository) UpdateProfile(ctx context.Context, id int64, fields ProfileFields) (User, error) {
	if fields.Empty() {
		return r.FindByID(ctx, id)
	}

	query, args := buildProfileUpdate(id, fields)
	var u User
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Address, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.NotFound("user")
		}
		return User{}, translate(err)
	}
	return u, nil
}

func translate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return shared.Conflict("username", pgErr.ConstraintName, "username already exists")
		case "users_email_key":
			return shared.Conflict("email", pgErr.ConstraintName, "email already registered")
		default:
			return shared.Conflict("", pgErr.ConstraintName, "user already exists")
		}
	}
	return err
}
