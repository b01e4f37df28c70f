package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lovestudio/models"
	"lovestudio/storage"
	"lovestudio/utils"
)

type NotificationHandler struct {
	prefs *storage.Preferences
}

func NewNotificationHandler(prefs *storage.Preferences) *NotificationHandler {
	return &NotificationHandler{prefs: prefs}
}

// Dismiss hides the desktop recommendation banner for good
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	if err := h.prefs.DismissNotification(); err != nil {
		return utils.InternalServerError(utils.T("error_500"), err)
	}

	next := c.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = models.ViewInput.Path()
	}
	return c.Redirect(next, fiber.StatusSeeOther)
}
