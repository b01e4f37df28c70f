package api

import (
	"github.com/gofiber/fiber/v2"

	"lovestudio/utils"
)

// clientMessages are the catalog entries page scripts may show
var clientMessages = []string{
	"form_error_required",
	"toolbar_print",
	"toolbar_save_pdf",
	"banner_title",
	"banner_body",
	"banner_hint",
	"banner_dismiss",
	"error_export_surface",
	"error_export_busy",
	"error_export_failed",
	"error_404",
	"error_500",
}

// GetMessages returns the message catalog entries used client-side
func GetMessages(c *fiber.Ctx) error {
	messages := make(map[string]string, len(clientMessages))
	for _, id := range clientMessages {
		messages[id] = utils.T(id)
	}
	return c.JSON(messages)
}
