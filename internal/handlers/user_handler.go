package handlers

import (
	"fmt"

	"stagestyle/internal/authz"
	"stagestyle/internal/middleware"
	"stagestyle/internal/models"
	"stagestyle/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the account routes. Only an Administrador creates accounts.
func (h *UserHandler) RegisterRoutes(router fiber.Router, guard *authz.Guard) {
	authenticate := middleware.Authenticate(guard)
	userRoutes := router.Group("/users")
	userRoutes.Post("/", authenticate, middleware.RequireRole(guard, models.RoleAdmin), h.HandleCreateUser)
	userRoutes.Get("/", authenticate, middleware.RequireRole(guard, models.RoleAdmin, models.RoleSeller), h.HandleGetUsers)
}

// HandleCreateUser creates the login and the stored account.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req services.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.service.CreateUser(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "", "Could not create user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"id":      user.ID,
	})
}

func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return respondError(c, err, "", "Could not retrieve users")
	}
	return c.JSON(users)
}

func validationFailed(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return invalidBody(c, err)
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
