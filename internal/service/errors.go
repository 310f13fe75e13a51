package service

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrDegenerateRequest  = &statusError{code: fiber.StatusBadRequest, msg: "prompt or message history is required"}
	ErrServiceUnavailable = &statusError{code: fiber.StatusServiceUnavailable, msg: "AI service is unavailable, check the model backend configuration"}
	ErrPersistence        = &statusError{code: fiber.StatusInternalServerError, msg: "failed to store conversation data"}
	ErrUnsupportedFormat  = &statusError{code: fiber.StatusBadRequest, msg: "unsupported export format"}
	ErrEmptyExport        = &statusError{code: fiber.StatusBadRequest, msg: "nothing to export"}
)

type statusError struct {
	code int
	msg  string
}

func (e *statusError) Error() string   { return e.msg }
func (e *statusError) StatusCode() int { return e.code }

// GenerationError is returned when the model backend fails.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("AI generation failed: %v", e.Cause)
}

func (e *GenerationError) Unwrap() error   { return e.Cause }
func (e *GenerationError) StatusCode() int { return fiber.StatusInternalServerError }

func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
