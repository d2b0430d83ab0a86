package handlers

import (
	"stagestyle/internal/authz"
	"stagestyle/internal/middleware"
	"stagestyle/internal/models"
	"stagestyle/internal/services"
	"stagestyle/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes. Reads are public; writes need an Administrador.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard *authz.Guard) {
	productRoutes := router.Group("/productos")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	adminOnly := []fiber.Handler{
		middleware.Authenticate(guard),
		middleware.RequireRole(guard, models.RoleAdmin),
	}
	productRoutes.Post("/", append(adminOnly, h.HandleCreateProduct)...)
	productRoutes.Put("/:id", append(adminOnly, h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", append(adminOnly, h.HandleDeleteProduct)...)
}

// HandleGetProducts lists products, optionally filtered by ?categoria=.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext(), c.Query("categoria"))
	if err != nil {
		return respondError(c, err, "", "Could not retrieve products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Product not found", "Could not retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var payload validation.Payload
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), payload)
	if err != nil {
		return respondError(c, err, "", "Could not create product")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Product created successfully",
		"id":      product.ID,
		"data":    product,
	})
}

// HandleUpdateProduct answers with the changed fields only.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var payload validation.Payload
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c, err)
	}

	patch, err := h.service.UpdateProduct(c.UserContext(), productID, payload)
	if err != nil {
		return respondError(c, err, "Product not found", "Could not update product")
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"id":      productID,
		"data":    patch,
	})
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err, "Product not found", "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
