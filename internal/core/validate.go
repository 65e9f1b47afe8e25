package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	pcore "penplot/pkg/core"
)

// validate checks sketch configs and canvases. Field names in errors come
// from the `key` tag, falling back to `yaml`, so they match what users type.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"key", "yaml"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

// Validate runs struct-tag validation on v and reports the first failing
// field as a *pcore.ParamError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &pcore.ParamError{Name: fieldPath(fe), Value: fe.Value(), Reason: describe(fe)}
}

// fieldPath drops the top-level struct name: "Config.canvas.width" becomes
// "canvas.width".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "gtfield":
		return "must be greater than " + fe.Param()
	case "gtefield":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "required":
		return "is required"
	case "min":
		return "must have at least " + fe.Param() + " items"
	case "max":
		return "must have at most " + fe.Param() + " items"
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
