package serverutils

import (
	"errors"

	"excel-analytics-be/internal/pkg/apperror"
	"excel-analytics-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusOf maps an error to its HTTP status and the message safe to return.
func StatusOf(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest, apperror.Message(err)
	case errors.Is(err, apperror.ErrNotFound):
		if message := apperror.Message(err); message != "" {
			return fiber.StatusNotFound, message
		}
		return fiber.StatusNotFound, "File not found"
	case errors.Is(err, apperror.ErrDecode):
		return fiber.StatusUnprocessableEntity, "Error processing spreadsheet"
	}
	return fiber.StatusInternalServerError, "Internal server error"
}

// ErrorHandler writes err as an error envelope. Unexpected failures are
// logged with their cause; the client only sees the generic message.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code, message := StatusOf(err)
		if code >= fiber.StatusInternalServerError && log != nil {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// ErrorHandlerMiddleware converts errors returned further down the chain so
// that outer middleware sees a written response.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return handle(ctx, err)
	}
}
