package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match what clients send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(nullableValue[string], Nullable[string]{})
	v.RegisterCustomTypeFunc(nullableValue[float64], Nullable[float64]{})
	return v
}

// validationMessage turns the first failed rule into the client-facing message.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "invalid request body"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Missing field '%s'", fe.Field())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Field '%s' must be at most %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("Field '%s' must be at most %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("Field '%s' is invalid", fe.Field())
	}
}

func (s *Server) validate(req any) error {
	if err := s.validator.Struct(req); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

func normalizeProductRequest(req *ProductRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.SKU = strings.TrimSpace(req.SKU)
	if req.Category.Value != nil {
		c := strings.TrimSpace(*req.Category.Value)
		req.Category.Value = &c
	}
}
