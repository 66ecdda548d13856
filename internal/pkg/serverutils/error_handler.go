package serverutils

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/redcow77/module-5-test/internal/pkg/logger"
)

// ErrorHandlerMiddleware renders errors returned by handlers in the standard
// envelope. Unknown errors become 500 and are logged; their text is not
// leaked to the client.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status, body := resolveError(err)
		if status >= fiber.StatusInternalServerError && log != nil {
			log.Error("HTTP", "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}
		return ctx.Status(status).JSON(body)
	}
}

func resolveError(err error) (int, *Response[any]) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		res := ErrorResponse(appErr.Code, appErr.Message)
		res.Data = appErr.Details
		return appErr.Code, res
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return fiber.StatusBadRequest, ErrorResponse(fiber.StatusBadRequest, "Invalid request body")
	}

	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, "Internal server error")
}
