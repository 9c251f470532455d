package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	engine     *validator.Validate
	engineOnce sync.Once
)

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// Aliases for common semantics
	v.RegisterAlias("pwd", "min=8") // password minimum length
	v.RegisterAlias("nonneg", "gte=0")
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers notblank and the alias tags below.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

// Engine returns the standalone validator used by explicit shape checks.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		register(engine)
	})
	return engine
}

// Check runs tag against value and records a human-readable message under field
// in details when it fails. It returns false on failure.
func Check(details map[string]string, field string, value any, tag string) bool {
	err := Engine().Var(value, tag)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		details[field] = formatFieldError(verrs[0])
		return false
	}
	details[field] = "is invalid"
	return false
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be of type " + ute.Type.String()}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	// ===== PRESENCE =====
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"

	// ===== STRING CONTENT =====
	case "email":
		return "must be a valid email"
	case "contains":
		return "must contain '" + param + "'"

	// ===== SIZE/LENGTH =====
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(kind) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(kind) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"

	// ===== NUMERIC COMPARISON =====
	case "gte":
		if p, err := strconv.ParseFloat(param, 64); err == nil && p == 0 {
			return "must not be negative"
		}
		return "must be greater than or equal to " + param
	case "gt":
		return "must be greater than " + param
	case "lte":
		return "must be less than or equal to " + param
	case "lt":
		return "must be less than " + param
	case "numeric":
		return "must be numeric"

	// ===== CUSTOM ALIASES =====
	case "pwd":
		return "min length 8"
	case "nonneg":
		return "must not be negative"

	// ===== DEFAULT FALLBACK =====
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

// Helper functions
func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
