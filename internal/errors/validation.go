package errors

import (
	"fmt"
	"slices"
	"strings"
)

// validationMetaKey carries the per-field messages of a validation failure
const validationMetaKey = "validation_errors"

// fieldErrors keeps messages per field in the order fields were first reported,
// so the rendered message is stable
type fieldErrors struct {
	fields map[string][]string
	order  []string
}

func (f *fieldErrors) add(field, message string) {
	if f.fields == nil {
		f.fields = make(map[string][]string)
	}
	if _, seen := f.fields[field]; !seen {
		f.order = append(f.order, field)
	}
	f.fields[field] = append(f.fields[field], message)
}

func (f *fieldErrors) String() string {
	parts := make([]string, 0, len(f.order))
	for _, field := range f.order {
		parts = append(parts, field+": "+strings.Join(f.fields[field], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidationBuilder accumulates field-level problems. Build returns nil when
// nothing was reported, otherwise an InvalidArgument error whose meta holds
// the messages under "validation_errors".
type ValidationBuilder struct {
	errs fieldErrors
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{}
}

// Field records a message for field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.errs.add(field, message)
	return vb
}

// Fieldf records a formatted message for field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...interface{}) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records a missing field
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// Build returns the accumulated error, or nil
func (vb *ValidationBuilder) Build() error {
	if len(vb.errs.order) == 0 {
		return nil
	}
	return InvalidArgument(vb.errs.String()).WithMeta(validationMetaKey, vb.errs.fields)
}

// FieldErrors returns the per-field messages of a validation failure, or nil
// if err did not come from a ValidationBuilder
func FieldErrors(err error) map[string][]string {
	fields, _ := GetMeta(err)[validationMetaKey].(map[string][]string)
	return fields
}

// ValidateRequired reports field when value is blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange reports field when value is outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum reports field when value is not one of allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if !slices.Contains(allowed, value) {
		vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
	}
}
