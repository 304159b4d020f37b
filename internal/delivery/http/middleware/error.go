package middleware

import (
	"errors"
	"log"

	"github.com/farukalways/freelancing-platform-create/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Cause: cause}
}

type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// Middleware recovers panics and converts errors into the response shapes
// callers expect: {"message":...} for client errors, a bare 500 otherwise.
func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				if m != nil && m.logger != nil {
					m.logger.Printf("panic recovered: %v", r)
				}
				err = c.Status(fiber.StatusInternalServerError).SendString(response.MessageInternalServer)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) && appErr.StatusCode > 0 && appErr.StatusCode < 500 {
			return response.Message(c, appErr.StatusCode, appErr.Message)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code > 0 && fiberErr.Code < 500 {
			return response.Message(c, fiberErr.Code, fiberErr.Message)
		}

		if m != nil && m.logger != nil {
			m.logger.Printf("internal error | path=%s err=%v", c.Path(), err)
		}
		return c.Status(fiber.StatusInternalServerError).SendString(response.MessageInternalServer)
	}
}
