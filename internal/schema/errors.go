package schema

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error types reported in FieldError.Type.
const (
	TypeMissing          = "missing"
	TypeJSONInvalid      = "json_invalid"
	TypeModelType        = "model_type"
	TypeDictType         = "dict_type"
	TypeFloatType        = "float_type"
	TypeFloatParsing     = "float_parsing"
	TypeFiniteNumber     = "finite_number"
	TypeStringType       = "string_type"
	TypeDatetimeType     = "datetime_type"
	TypeDatetimeParsing  = "datetime_parsing"
	TypeGreaterThanEqual = "greater_than_equal"
	TypeLessThanEqual    = "less_than_equal"
	TypeValueError       = "value_error"
)

// FieldError describes one rejected input value. Loc is the path to the
// value, starting with where it came from ("body" or "path").
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationError is returned when input does not match the expected schema.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, strings.Join(fe.Loc, ".")+": "+fe.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// fromValidator converts validator failures into field errors located under
// source.
func fromValidator(source string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return newValidationError(validatorErrors(source, verrs)...)
}

// validatorErrors drops the root struct name from each namespace.
func validatorErrors(source string, verrs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		loc := []string{source}
		ns := strings.Split(fe.Namespace(), ".")
		if len(ns) > 1 {
			loc = append(loc, ns[1:]...)
		}
		out = append(out, describe(loc, fe))
	}
	return out
}

func describe(loc []string, fe validator.FieldError) FieldError {
	switch fe.Tag() {
	case "required":
		return FieldError{Loc: loc, Msg: "Field required", Type: TypeMissing}
	case "gte":
		return FieldError{Loc: loc, Msg: "Input should be greater than or equal to " + fe.Param(), Type: TypeGreaterThanEqual}
	case "lte":
		return FieldError{Loc: loc, Msg: "Input should be less than or equal to " + fe.Param(), Type: TypeLessThanEqual}
	default:
		return FieldError{Loc: loc, Msg: fe.Error(), Type: TypeValueError}
	}
}
