package qr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxTextLength = 500

	DefaultBoxSize = 10
	MinBoxSize     = 1
	MaxBoxSize     = 20

	DefaultBorder = 4
	MinBorder     = 1
	MaxBorder     = 10

	DefaultFill = "black"
	DefaultBack = "white"

	DefaultFormat = FormatPNG

	maxColorLength = 64
)

var ErrInvalidOptions = errors.New("invalid qr options")

// Options describes one QR image. The param tags carry the public field names
// used in query strings and error details.
type Options struct {
	Text    string `param:"texto" validate:"required,max=500"`
	BoxSize int    `param:"box_size" validate:"min=1,max=20"`
	Border  int    `param:"border" validate:"min=1,max=10"`
	Fill    string `param:"fill_color" validate:"max=64"`
	Back    string `param:"back_color" validate:"max=64"`
	Format  Format `param:"format" validate:"oneof=png svg"`
}

func DefaultOptions(text string) Options {
	return Options{
		Text:    text,
		BoxSize: DefaultBoxSize,
		Border:  DefaultBorder,
		Fill:    DefaultFill,
		Back:    DefaultBack,
		Format:  DefaultFormat,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("param"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every rejected field. It matches ErrInvalidOptions.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid qr options: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidOptions }

// Has reports whether field already carries an error.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validate checks every field against its declared range.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range ves {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return fmt.Sprintf("failed on the '%s' check", fe.Tag())
	}
}
