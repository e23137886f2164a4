package serverutils

import (
	"errors"

	"chat-memory-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusClientClosedRequest mirrors nginx's non-standard code for a
// consumer that disconnected mid-response.
const StatusClientClosedRequest = 499

// ErrorHandlerMiddleware maps pipeline errors onto transport status codes.
// Generation failures are recovered inside the strategy and normally never
// reach this layer; when they do, both backends are gone.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
		}

		switch apperror.KindOf(err) {
		case apperror.KindValidation:
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: err.Error()})
		case apperror.KindStorage:
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Message: err.Error()})
		case apperror.KindGeneration:
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse{Message: err.Error()})
		case apperror.KindCancelled:
			return ctx.Status(StatusClientClosedRequest).JSON(ErrorResponse{Message: err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "internal server error"})
		}
	}
}
