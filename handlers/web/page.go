package web

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lovestudio/middleware"
	"lovestudio/render"
	"lovestudio/utils"
)

// HeartCount is the number of floating hearts behind every page
const HeartCount = 15

// page adds the values every full page layout reads
func page(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	data["Hearts"] = render.Hearts(HeartCount)
	data["ShowBanner"] = middleware.ShowBanner(c)
	data["CSRFToken"] = middleware.CSRFToken(c)
	data["Path"] = c.Path()
	return data
}

// IsAPIRequest reports whether the request targets the JSON API
func IsAPIRequest(c *fiber.Ctx) bool {
	if c == nil {
		return false
	}
	path := c.Path()
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// ErrorHandler renders errors as JSON for the API and as the error page otherwise
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := utils.T("error_500")

	var appErr *utils.AppError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &appErr):
		code = appErr.Code
		message = appErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
		if code == fiber.StatusNotFound {
			message = utils.T("error_404")
		}
	}

	if code >= fiber.StatusInternalServerError {
		utils.Log.Error("Application error on %s %s: %v", c.Method(), c.Path(), err)
	} else {
		utils.Log.Debug("Request error on %s %s: %v", c.Method(), c.Path(), err)
	}

	if IsAPIRequest(c) {
		return c.Status(code).JSON(fiber.Map{
			"error": message,
		})
	}

	return c.Status(code).Render("error", page(c, fiber.Map{
		"Error": message,
		"Code":  code,
	}))
}

// NotFound handles routes nothing else matched
func NotFound(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, utils.T("error_404"))
}
