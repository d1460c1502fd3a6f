package serverutils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks struct validate tags and maps the first failure
// to a 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return NewApiError(fiber.StatusBadRequest,
			fmt.Sprintf("Field '%s' failed validation '%s'", first.Field(), first.Tag()))
	}
	return NewApiError(fiber.StatusBadRequest, "Invalid request body")
}
