package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator, reporting fields by their YAML names.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks required fields and allowed values.
func (c *Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		field := yamlFieldName(fe)
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", field)
		case "oneof":
			return fmt.Errorf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
		default:
			return fmt.Errorf("%s failed validation for tag '%s'", field, fe.Tag())
		}
	}
	return err
}

// yamlFieldName strips the root struct name from the namespace,
// e.g. "Config.apps[1].light_token" becomes "apps[1].light_token".
func yamlFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
