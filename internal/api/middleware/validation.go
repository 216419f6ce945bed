package middleware

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"twi-speech/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateRequest binds a JSON body and validates struct tags and domain rules
func ValidateRequest(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindError(err, "request", "invalid JSON format")
	}
	return validateDomain(req)
}

// ValidateQuery binds and validates query parameters
func ValidateQuery(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return bindError(err, "query", "invalid query parameters")
	}
	return validateDomain(req)
}

// ValidateForm binds and validates a multipart or urlencoded form
func ValidateForm(c *gin.Context, req interface{}, limit int64) error {
	if err := c.ShouldBind(req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.NewPayloadTooLargeError(limit)
		}
		return bindError(err, "form", "invalid form data")
	}
	return validateDomain(req)
}

func validateDomain(req interface{}) error {
	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func bindError(err error, fallbackField, fallbackMessage string) error {
	validationErrors := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		for _, fieldError := range validationErrs {
			field := toSnakeCase(fieldError.Field())

			switch fieldError.Tag() {
			case "required":
				validationErrors[field] = "is required"
			case "min", "gte":
				validationErrors[field] = "must be at least " + fieldError.Param()
			case "max", "lte":
				validationErrors[field] = "must be at most " + fieldError.Param()
			case "uuid":
				validationErrors[field] = "must be a valid UUID"
			default:
				validationErrors[field] = "is invalid"
			}
		}
	} else {
		validationErrors[fallbackField] = fallbackMessage
	}

	return errors.NewValidationError("Validation failed", validationErrors)
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
