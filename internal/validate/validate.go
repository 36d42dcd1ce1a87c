// Package validate wraps go-playground/validator for the form endpoints.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/richmanstudio/studio/internal/apperr"
)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// Struct validates s and returns an apperr validation error whose details map
// each failing field to its rule.
func (val *Validator) Struct(s any) error {
	return toAppErr(val.v.Struct(s))
}

// Partial validates only the named struct fields (Go field names).
func (val *Validator) Partial(s any, fields ...string) error {
	return toAppErr(val.v.StructPartial(s, fields...))
}

// FieldErrors flattens validator errors into field -> rule.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule = fmt.Sprintf("%s=%s", rule, fe.Param())
		}
		out[fe.Field()] = rule
	}
	return out
}

func toAppErr(err error) error {
	if err == nil {
		return nil
	}
	fields := FieldErrors(err)
	if fields == nil {
		return apperr.Internal("validation failed", err)
	}
	return apperr.Wrap(apperr.KindValidation, "validation failed", err).WithDetails(fields)
}
