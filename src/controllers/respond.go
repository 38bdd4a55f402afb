package controllers

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/services"
)

// serviceError maps the service error taxonomy to HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(lib.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInactiveAccount):
		return c.Status(fiber.StatusUnauthorized).JSON(lib.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(lib.ErrorResponse(err.Error()))
	case errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidDecision),
		errors.Is(err, services.ErrAlreadyInactive):
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse(err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Internal server error"))
	}
}

// validationError renders a field -> message map for failed request
// validation.
func validationError(c *fiber.Ctx, err error) error {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[jsonField(fe.StructField())] = validationMessage(fe)
		}
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  fields,
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please provide a valid email address"
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("At least %s item is required", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("Cannot exceed %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "Invalid value"
	}
}

func jsonField(structField string) string {
	if structField == "" {
		return structField
	}
	runes := []rune(structField)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
