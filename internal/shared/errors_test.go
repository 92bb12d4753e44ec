package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructorKinds(t *testing.T) {
	require.Equal(t, KindNotFound, NotFound("product").Kind)
	require.Equal(t, KindConflict, Conflict("name", "categories_name_key", "category name already exists").Kind)
	require.Equal(t, KindInvalidReference, InvalidReference("category_id", "invalid category_id").Kind)
	require.Equal(t, KindValidation, Invalid("page", "page must be a positive integer").Kind)
	require.Equal(t, KindUnclassified, Unclassified("query failed", errors.New("boom")).Kind)
}

func TestDomainErrorAs(t *testing.T) {
	wrapped := fmt.Errorf("listing products: %w", NotFound("product"))

	var derr *DomainError
	require.ErrorAs(t, wrapped, &derr)
	require.Equal(t, KindNotFound, derr.Kind)
	require.Equal(t, "product not found", derr.Message)
}

func TestUnclassifiedUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unclassified("query failed", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "query failed: connection refused", err.Error())
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := Conflict("email", "users_email_key", "email already registered")
	require.Equal(t, "email already registered", err.Error())
	require.Equal(t, "users_email_key", err.Constraint)
}
