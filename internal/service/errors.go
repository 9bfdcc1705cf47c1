package service

import (
	"errors"
	"fmt"

	"lapados-backend/internal/db/query"
)

// Error taxonomy shared by all services. Controllers map these onto HTTP
// statuses; everything else surfaces as an internal error.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// asValidation downgrades a rejected filter field to a validation error so
// callers get a 400 instead of a 500.
func asValidation(err error) error {
	var unknown query.ErrUnknownField
	if errors.As(err, &unknown) {
		return fmt.Errorf("%w: %v", ErrValidation, unknown)
	}
	return err
}
