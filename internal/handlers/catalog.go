package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hausmanager/api/internal/dto"
)

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// TokenizationKey exposes the Collect.js tokenization key. Tokenization keys
// only allow token creation, so handing them to the browser is safe.
func (h *Handler) TokenizationKey(c *fiber.Ctx) error {
	status := fiber.StatusOK
	if h.tokenizationKey == "" {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"key": h.tokenizationKey})
}

func (h *Handler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(h.ledger.Products(c.Query("search")))
}

func (h *Handler) CreateProduct(c *fiber.Ctx) error {
	req, err := dto.ParseProductRequest(c.Body())
	if err != nil {
		return clientError(c, err.Error())
	}
	if req.Name == "" || req.SKU == "" || req.Price == nil || req.Stock == nil || req.Category == "" {
		return clientError(c, "Missing required product fields")
	}
	product := h.ledger.AddProduct(req.Name, req.SKU, req.Category, *req.Price, *req.Stock)
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *Handler) ListInventory(c *fiber.Ctx) error {
	return c.JSON(h.ledger.Inventory())
}

func (h *Handler) ListOrders(c *fiber.Ctx) error {
	return c.JSON(h.ledger.Orders())
}

func (h *Handler) ListSubscriptions(c *fiber.Ctx) error {
	return c.JSON(h.ledger.Subscriptions())
}
