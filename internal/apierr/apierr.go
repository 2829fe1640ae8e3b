package apierr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Error is an API-level failure carrying the HTTP status it maps to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func Validation(msg string) *Error { return &Error{Status: fiber.StatusBadRequest, Message: msg} }

// Conflict reports a duplicate username/email. The original API answers 400
// for these, not 409.
func Conflict(msg string) *Error { return &Error{Status: fiber.StatusBadRequest, Message: msg} }

func Unauthorized(msg string) *Error { return &Error{Status: fiber.StatusUnauthorized, Message: msg} }

func Forbidden(msg string) *Error { return &Error{Status: fiber.StatusForbidden, Message: msg} }

func NotFound(msg string) *Error { return &Error{Status: fiber.StatusNotFound, Message: msg} }

// Handler renders every error as {"error": message} JSON.
func Handler(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}
