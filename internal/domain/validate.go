package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RequiredFields is checked in this order; the first missing one is reported.
var RequiredFields = []string{"title", "url", "rating"}

// Validator turns a decoded write payload into a NewBookmark.
// It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator. Struct rules live on NewBookmark's tags.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return &Validator{v: v}
}

// ValidateNew checks presence, types and the rating range of a payload,
// failing fast on the first problem. Payload values are what
// encoding/json (with UseNumber) or yaml.v3 produce for a mapping.
func (val *Validator) ValidateNew(payload map[string]any) (NewBookmark, error) {
	for _, field := range RequiredFields {
		if !present(field, payload[field]) {
			return NewBookmark{}, missingField(field)
		}
	}

	title, ok := payload["title"].(string)
	if !ok {
		return NewBookmark{}, notAString("title")
	}
	url, ok := payload["url"].(string)
	if !ok {
		return NewBookmark{}, notAString("url")
	}

	var description *string
	if raw, present := payload["description"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			return NewBookmark{}, notAString("description")
		}
		description = &s
	}

	rating, ok := integer(payload["rating"])
	if !ok {
		return NewBookmark{}, invalidRating()
	}

	nb := NewBookmark{
		Title:       title,
		URL:         url,
		Description: description,
		Rating:      rating,
	}
	if err := val.Struct(nb); err != nil {
		return NewBookmark{}, err
	}
	return nb, nil
}

// Struct runs the tag rules on an already typed NewBookmark.
func (val *Validator) Struct(nb NewBookmark) error {
	return toValidationError(val.v.Struct(nb))
}

// toValidationError maps validator output to client messages. Validator's
// own error text never reaches a client.
func toValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	// Report in RequiredFields order, matching the presence check.
	for _, field := range RequiredFields {
		for _, fe := range fieldErrs {
			if fe.Field() != field {
				continue
			}
			if field == "rating" {
				return invalidRating()
			}
			return missingField(field)
		}
	}
	field := fieldErrs[0].Field()
	return &ValidationError{Field: field, Message: fmt.Sprintf("'%s' is invalid", field)}
}

// present reports whether a required field was supplied. A numeric rating
// always counts, so 0 is rejected by the range rule rather than as missing.
func present(field string, v any) bool {
	if field == "rating" {
		if _, ok := number(v); ok {
			return true
		}
	}
	return truthy(v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		if f, ok := number(v); ok {
			return f != 0 && !math.IsNaN(f)
		}
		return true
	}
}

// integer accepts numbers without a fractional part. 3.0 counts, "3" does not.
func integer(v any) (int, bool) {
	f, ok := number(v)
	if !ok || math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func number(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
