package serverutils

import (
	"errors"

	"ai-music-be/internal/pkg/keylock"
	"ai-music-be/internal/service"
	"ai-music-be/pkg/preference"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service-layer failures onto HTTP statuses.
// Anything unmapped is a 500 with a generic message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		switch {
		case errors.Is(err, service.ErrNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrUnsupportedTrigger),
			errors.Is(err, service.ErrDuplicateMember),
			errors.Is(err, service.ErrNotEnoughMembers),
			errors.Is(err, preference.ErrInvalidDocument):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrMissingUser),
			errors.Is(err, service.ErrInsufficientData):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrAlreadyMember),
			errors.Is(err, service.ErrNotAMember),
			errors.Is(err, service.ErrTriggerTypeActive):
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, keylock.ErrTimeout):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse("preference store busy, retry"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
		}
	}
}
