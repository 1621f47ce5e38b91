package database

import (
	"fmt"

	"github.com/thereayou/chatrooms/internal/errs"
)

func storageFault(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, errs.ErrStorageFault, err)
}

func invalid(op, field string) error {
	return fmt.Errorf("%s: %w: %s is empty", op, errs.ErrInvalidInput, field)
}
