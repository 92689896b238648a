package models

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound matches every NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ValidationError is a caller mistake. Message is safe to return to clients
// verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseObjectID parses a 24-hex id, reporting malformed input as a
// ValidationError on field.
func ParseObjectID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, NewValidationError(field, "invalid %s", field)
	}
	return id, nil
}
