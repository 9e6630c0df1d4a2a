// Package validation checks decoded request bodies and path parameters
// before they reach the services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ndewijer/Nexus-Wealth-Backend/internal/apperrors"
	"github.com/ndewijer/Nexus-Wealth-Backend/internal/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates a request struct against its `validate` tags. Rule
// violations are returned as an *Error keyed by JSON field path.
func Struct(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = message(fe)
	}
	return &Error{Fields: fields}
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be %s characters or less", fe.Param())
		}
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	default:
		return fmt.Sprintf("failed %s rule", fe.Tag())
	}
}

// ValidateMarket parses a holdings table name.
func ValidateMarket(s string) (model.Market, error) {
	switch m := model.Market(strings.ToLower(strings.TrimSpace(s))); m {
	case model.MarketUS, model.MarketTW:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrInvalidMarket, s)
}
