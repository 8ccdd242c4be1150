package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const msgInvalidBody = "Invalid request body"

// bindJSON decodes the request body into req and pushes a ValidationError
// when it fails. It reports whether the handler should continue.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(bindingError(err))
		c.Abort()
		return false
	}
	return true
}

// bindingError turns gin binding failures into client-facing messages.
func bindingError(err error) error {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		// Every missing field is named at once; other rules report the first failure.
		var missing []string
		for _, fe := range vErrs {
			if fe.Tag() == "required" {
				missing = append(missing, strings.ToLower(fe.Field()))
			}
		}
		if len(missing) > 0 {
			return domain.NewValidationError("Please provide %s", joinFields(missing))
		}

		fe := vErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "email":
			return domain.NewValidationError("Please provide a valid email")
		case "oneof":
			return domain.NewValidationError("%s must be one of %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
		case "max":
			return domain.NewValidationError("%s must be at most %s characters", field, fe.Param())
		default:
			return domain.NewValidationError("%s is invalid", field)
		}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError("%s has the wrong type", typeErr.Field)
	}
	if errors.Is(err, io.EOF) {
		return domain.NewValidationError("Request body is required")
	}
	return domain.NewValidationError(msgInvalidBody)
}

// joinFields renders ["a", "b", "c"] as "a, b and c".
func joinFields(fields []string) string {
	if len(fields) == 1 {
		return fields[0]
	}
	return strings.Join(fields[:len(fields)-1], ", ") + " and " + fields[len(fields)-1]
}

// NotFound answers unmatched routes.
func NotFound(c *gin.Context) {
	_ = c.Error(domain.ErrRouteNotFound)
	c.Abort()
}
