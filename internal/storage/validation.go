package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fraudlens/fraudlens/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrInvalidRecord = errors.New("invalid fraud record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord checks the fields the store itself depends on. The
// classification engine owns semantic consistency of score and factors.
func validateRecord(record *model.FraudRecord) error {
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if strings.TrimSpace(record.Timestamp) == "" {
		return fmt.Errorf("%w: missing timestamp", ErrInvalidRecord)
	}
	if !record.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidRecord, record.Status)
	}
	return nil
}
