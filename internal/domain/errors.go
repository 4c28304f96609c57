package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound reports that no bookmark matches the requested id.
// It is an expected outcome, not a storage fault.
var ErrNotFound = errors.New("bookmark not found")

// RatingMessage is returned for any rating that is not an integer in range.
// It deliberately does not name the field.
const RatingMessage = "Rating must be a number between 1 and 5"

// ValidationError is a client-caused rejection of a write payload.
// Field is empty for rating range failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func missingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("'%s' is required", field)}
}

func notAString(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("'%s' must be a string", field)}
}

func invalidRating() *ValidationError {
	return &ValidationError{Message: RatingMessage}
}

// IsValidationError reports whether err is (or wraps) a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseID parses a path id. Anything but a positive base-10 integer
// cannot match a stored bookmark and is reported as ErrNotFound.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrNotFound
	}
	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
