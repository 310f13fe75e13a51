package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// StatusCoder is implemented by domain errors that know their HTTP status.
type StatusCoder interface {
	StatusCode() int
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFromError(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

func StatusFromError(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}

	var coder StatusCoder
	if errors.As(err, &coder) {
		return coder.StatusCode()
	}

	return fiber.StatusInternalServerError
}
