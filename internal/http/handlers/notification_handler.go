package handlers

import (
	applog "annapurna/internal/log"
	"annapurna/internal/services"
	"annapurna/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	Notifs *services.NotificationService
}

// GET /notifications: latest 10, newest first. Clients poll this.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	u := currentUser(c)
	list, unread, err := h.Notifs.Recent(u.ID, 10)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"notifications": list, "unread": unread})
}

// PUT /notifications/:id/read silently ignores notifications the caller
// does not own.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "Notification ID is required")
	}
	u := currentUser(c)
	if err := h.Notifs.MarkRead(id, u.ID); err != nil {
		return err
	}
	applog.Info(c, "notifications.read", map[string]any{"notification_id": id})
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
