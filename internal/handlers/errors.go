package handlers

import (
	"stagestyle/internal/identity"
	"stagestyle/internal/repositories"
	"stagestyle/internal/services"
	"stagestyle/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// respondError maps a service error to its HTTP response.
// failure is the message used when the error is an infrastructure failure.
func respondError(c *fiber.Ctx, err error, notFound, failure string) error {
	if reason, ok := validation.ReasonOf(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": reason.Message(),
			"reason":  reason,
		})
	}

	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound,
		})
	case errors.Is(err, identity.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Email is already registered",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrInvalidOrderStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid order status",
			"error":   err.Error(),
		})
	}

	log.WithError(err).WithFields(log.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	}).Error(failure)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": failure,
		"error":   err.Error(),
	})
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.WithError(err).WithField("path", c.Path()).Debug("Error parsing request body")
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}
