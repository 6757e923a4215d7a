package main

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"flowedit/routing"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("label_position", func(fl validator.FieldLevel) bool {
		return routing.LabelPosition(fl.Field().String()).Valid()
	})
	validate.RegisterValidation("css_color", func(fl validator.FieldLevel) bool {
		_, err := parseColor(fl.Field().String())
		return err == nil
	})
}

// validateStruct runs the struct tags and reports the first failure in a
// readable form.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", e.Namespace())
		case "gt", "gte", "min":
			return fmt.Errorf("%s: must be at least %s", e.Namespace(), e.Param())
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", e.Namespace(), e.Param())
		case "css_color":
			return fmt.Errorf("%s: %q is not a color", e.Namespace(), e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Namespace(), e.Tag())
		}
	}
	return err
}
