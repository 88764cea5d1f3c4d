package serverutils

import (
	"strings"

	"ml-discovery-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates the error taxonomy into HTTP statuses.
// Controllers return errors raw; this is the single mapping point.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		kind := apperror.KindOf(err)
		status := statusForKind(kind)

		// Validation failures come through as plain errors from ValidateRequest
		if kind == apperror.KindUnknown && strings.HasPrefix(err.Error(), "validation failed") {
			status = fiber.StatusBadRequest
		}

		resp := APIError{
			Code:      status,
			Message:   err.Error(),
			Retryable: apperror.Retryable(err),
		}
		if kind != apperror.KindUnknown {
			resp.ErrorKind = kind.String()
		}

		return ctx.Status(status).JSON(resp)
	}
}

func statusForKind(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnsupportedFormat, apperror.KindEmptyContent:
		return fiber.StatusBadRequest
	case apperror.KindParseError:
		return fiber.StatusUnprocessableEntity
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindRateLimited:
		return fiber.StatusTooManyRequests
	case apperror.KindGenerationTimeout:
		return fiber.StatusGatewayTimeout
	case apperror.KindGenerationError, apperror.KindServiceUnavailable:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
