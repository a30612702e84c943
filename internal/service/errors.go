package service

import (
	"fmt"

	"gymwell/gym-app/internal/apperror"
)

// storeError wraps an unexpected repository failure.
func storeError(op string, err error) error {
	return apperror.Internal(fmt.Errorf("%s: %w", op, err))
}
