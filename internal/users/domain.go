package users

import (
	"errors"
	"time"
)

// ErrInvalidCredentials indicates login failure. Deliberately the same
// answer for an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// User represents a customer account. The password hash never leaves
// the process: it is excluded from JSON and omitted from profile reads.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     *string   `json:"full_name"`
	Address      *string   `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}
