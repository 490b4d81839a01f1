package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RespondWithError sends the JSON error shape clients depend on:
// {"error": <message>}.
func RespondWithError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// FormatValidationErrors flattens validator/v10 errors into a single
// human-readable message.
func FormatValidationErrors(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msg := ""
	for i, verr := range verrs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("parameter '%s' failed on the '%s' rule", verr.Field(), verr.Tag())
		if verr.Param() != "" {
			msg += fmt.Sprintf(" (%s)", verr.Param())
		}
	}
	return msg
}
