package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// routeQuery is shared by the itinerary, route and map endpoints.
type routeQuery struct {
	CRNs   string `query:"crns" validate:"required,max=2000"`
	Day    string `query:"day" validate:"max=16"`
	Width  int    `query:"width" validate:"omitempty,min=64"`
	Height int    `query:"height" validate:"omitempty,min=64"`
}

type listQuery struct {
	Field  string `query:"field" validate:"omitempty,oneof=codes titles"`
	Offset int    `query:"offset" validate:"min=0"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// validationMessage flattens validator errors into one human-readable line.
func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ves))
	for _, e := range ves {
		msgs = append(msgs, formatValidationError(e))
	}
	return strings.Join(msgs, "; ")
}

func formatValidationError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param()
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}
