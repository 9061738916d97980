package shoppingcart

import (
	"math"
	"strings"

	pkgerrors "github.com/angelmondragon/shoppingcart/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidParameters = "Invalid parameters."
	msgProductNotFound   = "Product does not exist."

	// maxColumnInt is the largest value the INTEGER id and quantity columns hold.
	maxColumnInt = math.MaxInt32
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// AddProductInput is the argument set of one add-to-cart call.
type AddProductInput struct {
	CustomerName string `validate:"notblank"`
	ProductID    int    `validate:"min=1,max=2147483647"`
	Quantity     int    `validate:"min=1,max=2147483647"`
}

// Validate checks the fields in declaration order and reports the first violation.
func (in AddProductInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	typed := pkgerrors.New(pkgerrors.CodeValidation, msgInvalidParameters)
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return typed.WithDetails(map[string]any{"field": errs[0].Field(), "rule": errs[0].Tag()})
	}
	return typed
}
