package handlers

import (
	"stagestyle/internal/authz"
	"stagestyle/internal/middleware"
	"stagestyle/internal/models"
	"stagestyle/internal/services"
	"stagestyle/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes. Anyone may place an order; staff read and move them.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, guard *authz.Guard) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)

	staff := []fiber.Handler{
		middleware.Authenticate(guard),
		middleware.RequireRole(guard, models.RoleAdmin, models.RoleSeller),
	}
	orderRoutes.Get("/", append(staff, h.HandleGetOrders)...)
	orderRoutes.Patch("/:id/status", append(staff, h.HandleUpdateOrderStatus)...)
}

// HandleGetOrders retrieves all orders, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListOrders(c.UserContext())
	if err != nil {
		return respondError(c, err, "", "Could not retrieve orders")
	}
	return c.JSON(orders)
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var payload validation.Payload
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c, err)
	}

	createdOrder, err := h.service.CreateOrder(c.UserContext(), payload)
	if err != nil {
		return respondError(c, err, "", "Could not create order")
	}
	return c.Status(fiber.StatusCreated).JSON(createdOrder)
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return invalidBody(c, err)
	}
	if updateData.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	order, err := h.service.UpdateOrderStatus(c.UserContext(), orderID, updateData.Status)
	if err != nil {
		return respondError(c, err, "Order not found", "Could not update order status")
	}

	return c.JSON(fiber.Map{
		"message": "Order status updated successfully",
		"data":    order,
	})
}
