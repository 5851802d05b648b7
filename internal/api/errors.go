package api

import (
	"errors"

	"legaldesk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type errorBody struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// errorHandler renders every error returned by a handler as JSON.
func errorHandler(appLogger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := classify(err)
		if status >= fiber.StatusInternalServerError {
			appLogger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(body)
	}
}

func classify(err error) (int, errorBody) {
	var (
		fe *fiber.Error
		ve *service.ValidationError
		se *service.StoreError
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code, errorBody{Error: fe.Message, Code: fiberCode(fe.Code)}
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity, errorBody{Error: ve.Error(), Code: "validation_failed", Fields: ve.Fields}
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusUnprocessableEntity, errorBody{Error: err.Error(), Code: "validation_failed"}
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, errorBody{Error: err.Error(), Code: "unauthenticated"}
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden, errorBody{Error: err.Error(), Code: "forbidden"}
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, errorBody{Error: err.Error(), Code: "not_found"}
	case errors.Is(err, service.ErrAlreadyClaimed):
		return fiber.StatusConflict, errorBody{Error: err.Error(), Code: "already_claimed"}
	case errors.Is(err, service.ErrInvalidTransition):
		return fiber.StatusConflict, errorBody{Error: err.Error(), Code: "invalid_transition"}
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrUserExists):
		return fiber.StatusConflict, errorBody{Error: err.Error(), Code: "conflict"}
	case errors.As(err, &se):
		return fiber.StatusBadGateway, errorBody{Error: se.Error(), Code: "store_error"}
	default:
		return fiber.StatusInternalServerError, errorBody{Error: "internal server error", Code: "internal"}
	}
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthenticated"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusRequestEntityTooLarge:
		return "too_large"
	}
	if status >= fiber.StatusInternalServerError {
		return "internal"
	}
	return "error"
}
