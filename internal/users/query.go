package users

import (
	"strconv"
	"strings"
)

// ProfileFields is the fixed set of profile fields a caller may change.
// Only non-nil entries appear in the UPDATE statement; column names
// never derive from caller-supplied keys.
type ProfileFields struct {
	FullName *string
	Address  *string
	Email    *string
	Username *string
}

// Empty reports whether no field is set.
func (f ProfileFields) Empty() bool {
	return f.FullName == nil && f.Address == nil && f.Email == nil && f.Username == nil
}

// buildProfileUpdate assumes at least one field is set; the repository
// short-circuits empty updates to a plain fetch.
func buildProfileUpdate(id int64, f ProfileFields) (string, []any) {
	var clauses []string
	var args []any
	argPos := 1

	set := func(column string, value any) {
		clauses = append(clauses, column+" = $"+strconv.Itoa(argPos))
		args = append(args, value)
		argPos++
	}

	if f.FullName != nil {
		set("full_name", *f.FullName)
	}
	if f.Address != nil {
		set("address", *f.Address)
	}
	if f.Email != nil {
		set("email", *f.Email)
	}
	if f.Username != nil {
		set("username", *f.Username)
	}

	query := `UPDATE users SET ` + strings.Join(clauses, ", ") +
		` WHERE id = $` + strconv.Itoa(argPos) +
		` RETURNING id, username, email, full_name, address, created_at`
	args = append(args, id)
	return query, args
}
