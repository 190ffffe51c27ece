package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators configures gin's validator so that errors report JSON
// field names instead of Go struct field names.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonFieldName)
		}
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// ValidationError represents a validation error
type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

// FormatValidationError flattens validator errors for logging
func FormatValidationError(err error) []ValidationError {
	var out []ValidationError
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			out = append(out, ValidationError{
				Field: e.Field(),
				Tag:   e.Tag(),
			})
		}
	}
	return out
}

// MissingFields returns the JSON names of the fields that failed validation
func MissingFields(err error) []string {
	var fields []string
	for _, e := range FormatValidationError(err) {
		fields = append(fields, e.Field)
	}
	return fields
}
