package record

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// ValidationError names the first required field that was left blank.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks the fields a song cannot be saved without.
// Language and type are free text and never rejected.
func Validate(title, creator string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title"}
	}
	if strings.TrimSpace(creator) == "" {
		return &ValidationError{Field: "creator"}
	}
	return nil
}
