package handlers

import (
	"errors"

	applog "annapurna/internal/log"
	"annapurna/internal/services"
	"annapurna/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type placeOrderRequest struct {
	DailyItemID string `json:"dailyItemId"`
}

// POST /orders/place
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	dailyItemID, ok := validate.ID(req.DailyItemID)
	if !ok {
		return badRequest(c, "Daily item ID is required")
	}

	customer := currentUser(c)
	orderID, err := h.Orders.Place(customer.ID, dailyItemID)
	if err != nil {
		if errors.Is(err, services.ErrOutOfStock) {
			return badRequest(c, "Item not available")
		}
		return err
	}

	applog.Audit(c, "orders.place", map[string]any{"order_id": orderID, "daily_item_id": dailyItemID})
	return c.JSON(fiber.Map{"message": "Order placed successfully", "orderId": orderID})
}

// GET /orders/my-orders
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	customer := currentUser(c)
	orders, err := h.Orders.ListForCustomer(customer.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// GET /orders/vendor
func (h *OrderHandler) VendorOrders(c *fiber.Ctx) error {
	vendor := currentUser(c)
	orders, err := h.Orders.ListForVendor(vendor.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": orders})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PUT /orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "Order ID is required")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.Orders.UpdateStatus(orderID, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return badRequest(c, "Invalid status")
		case errors.Is(err, services.ErrOrderNotFound):
			return notFound(c, "Order not found")
		}
		return err
	}

	applog.Audit(c, "orders.status", map[string]any{"order_id": orderID, "status": req.Status})
	return c.JSON(fiber.Map{"message": "Order status updated successfully"})
}
