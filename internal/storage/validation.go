package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/bednights/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidEntity = errors.New("invalid entity")
	ErrInvalidAction = errors.New("invalid mutation action")
	ErrInvalidLimit  = errors.New("limit must be positive")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateEntity(e model.Entity) error {
	if _, err := model.ParseEntity(string(e)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEntity, e)
	}
	return nil
}

func validateMutation(m Mutation) error {
	if err := validateEntity(m.Entity); err != nil {
		return err
	}
	switch m.Action {
	case ActionUpsert, ActionDelete:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, m.Action)
	}
}
