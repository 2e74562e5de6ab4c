package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yacobolo/tokenkit/internal/scale"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator with the design-domain
// tags registered.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("csscolor", func(fl validator.FieldLevel) bool {
			return scale.ValidColor(fl.Field().String())
		})

		_ = v.RegisterValidation("ratio", func(fl validator.FieldLevel) bool {
			_, err := scale.LookupRatio(fl.Field().Float())
			return err == nil
		})

		_ = v.RegisterValidation("breakpoint", func(fl validator.FieldLevel) bool {
			_, err := scale.ParseBreakpoint(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("brand", func(fl validator.FieldLevel) bool {
			return scale.IsBrand(fl.Field().String())
		})

		_ = v.RegisterValidation("neutral", func(fl validator.FieldLevel) bool {
			return scale.IsNeutral(fl.Field().String())
		})

		_ = v.RegisterValidation("fontfamily", func(fl validator.FieldLevel) bool {
			_, ok := scale.LookupFontFamily(fl.Field().String())
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// Validator returns the shared validator for callers outside the package.
func Validator() *validator.Validate {
	return validatorInstance()
}

// convertValidationError turns the first validator failure into a
// readable error wrapping ErrInvalidValue.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := strings.ToLower(ve.Namespace())
		return fmt.Errorf("%w: %s failed validation for tag '%s'", ErrInvalidValue, field, ve.Tag())
	}
	return fmt.Errorf("%w: %w", ErrInvalidValue, err)
}
