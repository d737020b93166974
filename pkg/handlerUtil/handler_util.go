package handlerUtil

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"Inkwell/pkg/response"
)

type HandlerUtil struct {
	log *logrus.Logger
}

func New(log *logrus.Logger) HandlerUtil {
	return HandlerUtil{log: log}
}

// HandleError maps coded errors onto their HTTP status. Anything without a
// code is an internal failure and is reported generically.
func (h HandlerUtil) HandleError(ctx *fiber.Ctx, requestID string, err error) error {
	var coded *response.Error
	if errors.As(err, &coded) {
		return ctx.Status(coded.Code).JSON(fiber.Map{
			"error": coded.Error(),
		})
	}

	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"error":      err.Error(),
	}).Error("Unhandled error reached the handler")

	return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "unexpected error",
	})
}

func (h HandlerUtil) HandleValidationError(ctx *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		details := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			details = append(details, fmt.Sprintf("field %s failed on %s", fieldError.Field(), fieldError.Tag()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "validation failed",
			"details": details,
		})
	}

	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (h HandlerUtil) HandleUnauthorized(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "unauthorized",
	})
}

func (h HandlerUtil) HandleForbidden(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"error": "forbidden",
	})
}

func (h HandlerUtil) HandleRequestTimeout(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusRequestTimeout).JSON(fiber.Map{
		"error": "request timed out",
	})
}

func (h HandlerUtil) HandleSuccess(ctx *fiber.Ctx, statusCode int, data interface{}) error {
	return ctx.Status(statusCode).JSON(fiber.Map{
		"data": data,
	})
}
