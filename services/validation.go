package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return invalidf("%s", strings.Join(msgs, "; "))
}

func requirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return invalidf("%s must be greater than zero", field)
	}
	return nil
}

func requireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalidf("%s must not be negative", field)
	}
	return nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
