package middleware

import (
	"stagestyle/internal/authz"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// SubjectKey is the Locals key holding the authenticated subject identifier.
const SubjectKey = "uid"

// Authenticate is a Fiber middleware that requires a valid bearer token.
func Authenticate(guard *authz.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := guard.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if !decision.Allowed() {
			if decision.Rejected {
				log.WithField("detail", decision.Detail).Warn("Authentication failed")
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
					"message": decision.Message,
					"error":   decision.Detail,
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": decision.Message,
			})
		}

		c.Locals(SubjectKey, decision.SubjectID)
		return c.Next()
	}
}

// RequireRole is a Fiber middleware that admits only subjects holding one of roles.
// It must run after Authenticate.
func RequireRole(guard *authz.Guard, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subjectID, _ := c.Locals(SubjectKey).(string)
		if subjectID == "" {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "User not identified.",
			})
		}

		decision, err := guard.Authorize(c.UserContext(), subjectID, roles)
		if err != nil {
			log.WithError(err).WithField("uid", subjectID).Error("Role check failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal error while checking permissions.",
				"error":   err.Error(),
			})
		}
		if !decision.Allowed() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": decision.Message,
			})
		}
		return c.Next()
	}
}
