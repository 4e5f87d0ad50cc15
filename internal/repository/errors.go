// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios and pick the right
// HTTP status without parsing driver error strings.
package repository

import (
	"errors"
	"strings"
)

// ErrUserNotFound is returned when a user id or email resolves to no row.
var ErrUserNotFound = errors.New("usuario not found")

// ErrProductNotFound is returned when a product id resolves to no row.
var ErrProductNotFound = errors.New("produto not found")

// ErrCategoryNotFound is returned when a category id resolves to no row.
// Handlers translate this into 400 on product create/update (the reference
// must exist) and 404 on direct category lookups.
var ErrCategoryNotFound = errors.New("categoria not found")

// ErrEmailExists signals a violation of the unique email constraint.
var ErrEmailExists = errors.New("email already exists")

// ErrCPFExists signals that another user already registered the same CPF.
var ErrCPFExists = errors.New("cpf already exists")

// ErrCategoryExists signals a violation of the unique category name.
var ErrCategoryExists = errors.New("categoria already exists")

// isDuplicateKey detects a MySQL duplicate-entry error (code 1062) without
// importing driver internals.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
