package users

import (
	"context"
	"errors"

	"github.com/atlas-commerce/atlas-commerce/internal/auth"
	"github.com/atlas-commerce/atlas-commerce/internal/shared"
)

// RegisterInput carries a registration request. Password arrives in
// plaintext here and is hashed before anything touches the store.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName *string
	Address  *string
}

// Service handles account business logic.
type Service struct {
	repo       Repository
	tokens     *auth.TokenIssuer
	bcryptCost int
}

// NewService builds Service instance.
func NewService(repo Repository, tokens *auth.TokenIssuer, bcryptCost int) *Service {
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// Register hashes the password and creates the account.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	created, err := s.repo.Create(ctx, User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
		Address:      input.Address,
	})
	if err != nil {
		return User{}, err
	}
	created.PasswordHash = ""
	return created, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var de *shared.DomainError
		if errors.As(err, &de) && de.Kind == shared.KindNotFound {
			return User{}, "", ErrInvalidCredentials
		}
		return User{}, "", err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return User{}, "", err
	}
	user.PasswordHash = ""
	return user, token, nil
}

// Profile returns the account without its password hash.
func (s *Service) Profile(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, shared.Invalid("id", "invalid user ID")
	}
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies a sparse profile change.
func (s *Service) UpdateProfile(ctx context.Context, id int64, fields ProfileFields) (User, error) {
	if id <= 0 {
		return User{}, shared.Invalid("id", "invalid user ID")
	}
	return s.repo.UpdateProfile(ctx, id, fields)
}
