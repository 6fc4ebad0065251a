package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"userapi/internal/apperrors"
)

// NewErrorHandler returns the app-level Fiber error handler. It is the
// single place where errors are translated into HTTP status and body;
// handlers and repositories only raise tagged error values.
func NewErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": verr.Errors,
			})
		}

		var aerr *apperrors.APIError
		if errors.As(err, &aerr) {
			if aerr.Status >= 500 {
				log.WithError(err).Error("request failed")
			}
			return c.Status(aerr.Status).JSON(fiber.Map{
				"message": aerr.Message,
			})
		}

		var ferr *fiber.Error
		if errors.As(err, &ferr) {
			return c.Status(ferr.Code).JSON(fiber.Map{
				"message": ferr.Message,
			})
		}

		log.WithError(err).Error("unexpected error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": apperrors.ErrInternal.Message,
		})
	}
}

// HandleRouteNotFound is the terminal handler for unmatched routes. It
// raises a tagged 404 so the response still flows through the central
// error handler.
func HandleRouteNotFound(c *fiber.Ctx) error {
	return apperrors.RouteNotFound(c.OriginalURL())
}
