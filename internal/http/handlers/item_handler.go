package handlers

import (
	"errors"

	applog "annapurna/internal/log"
	"annapurna/internal/services"
	"annapurna/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ItemHandler struct {
	Catalog *services.CatalogService
}

// GET /items/all
func (h *ItemHandler) All(c *fiber.Ctx) error {
	items, err := h.Catalog.ListAllItems()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

// GET /items/available
func (h *ItemHandler) Available(c *fiber.Ctx) error {
	items, err := h.Catalog.ListAvailableToday()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": items})
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

// POST /items/create: find-or-create the catalog entry, stock it for today.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req createItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok || !validate.Quantity(req.Quantity) {
		return badRequest(c, "Item name and valid quantity are required")
	}

	vendor := currentUser(c)
	itemID, err := h.Catalog.AddItem(vendor.ID, name, req.Description, req.Category, req.Quantity)
	if err != nil {
		return err
	}

	applog.Audit(c, "items.create", map[string]any{"item_id": itemID, "quantity": req.Quantity})
	return c.JSON(fiber.Map{"message": "Item added successfully", "itemId": itemID})
}

// GET /items/daily
func (h *ItemHandler) Daily(c *fiber.Ctx) error {
	vendor := currentUser(c)
	rows, err := h.Catalog.ListVendorToday(vendor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": rows})
}

type restockRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// POST /items/daily: add stock for an existing catalog item.
func (h *ItemHandler) Restock(c *fiber.Ctx) error {
	var req restockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	itemID, ok := validate.ID(req.ItemID)
	if !ok || !validate.Quantity(req.Quantity) {
		return badRequest(c, "Valid item ID and quantity are required")
	}

	vendor := currentUser(c)
	if err := h.Catalog.Restock(vendor.ID, itemID, req.Quantity); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return badRequest(c, "Valid item ID and quantity are required")
		}
		return err
	}

	applog.Audit(c, "items.restock", map[string]any{"item_id": itemID, "quantity": req.Quantity})
	return c.JSON(fiber.Map{"message": "Daily item updated successfully"})
}
