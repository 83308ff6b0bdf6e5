package services

import (
	"errors"
	"fmt"

	"table_order/internal/auth"
	"table_order/internal/repository"
)

var (
	ErrNotFound        = repository.ErrNotFound
	ErrConflict        = errors.New("conflict")
	ErrInvalidOrder    = errors.New("invalid data")
	ErrUnauthorized    = auth.ErrUnauthorized
	ErrUnauthenticated = auth.ErrUnauthenticated
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError carries a user-facing message and matches ErrConflict.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

func (e ConflictError) Is(target error) bool { return target == ErrConflict }

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
