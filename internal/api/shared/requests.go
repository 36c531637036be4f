package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/catalog-api/internal/domain"
)

// MaxRequestBodyBytes bounds the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrInvalidRequestBody is returned by DecodeJSON for unreadable or
// malformed bodies.
var ErrInvalidRequestBody = errors.New("invalid request body")

// Global validator instance for reuse. Field errors are reported under the
// JSON name of the field.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
// Unknown fields are ignored; values of the wrong JSON type are reported as
// a *domain.ValidationError on that field.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field, "has an invalid type", nil)
		}
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package and
// converts failures into a *domain.ValidationError keyed by JSON field name.
func ValidateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = validationTagMessage(fe.Tag())
	}
	return domain.ValidationErrorFromFields(fields)
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "is not a valid email address"
	case "min", "gte":
		return "is too small"
	case "max", "lte":
		return "is too large"
	default:
		return "is invalid"
	}
}
