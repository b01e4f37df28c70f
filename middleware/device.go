package middleware

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"lovestudio/utils"
)

var mobileAgent = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// DismissalChecker reports whether the desktop recommendation was dismissed
type DismissalChecker interface {
	NotificationDismissed() (bool, error)
}

// IsMobileAgent matches the user agents treated as mobile devices
func IsMobileAgent(userAgent string) bool {
	return mobileAgent.MatchString(userAgent)
}

// DeviceDetection flags mobile requests and decides whether the
// desktop recommendation banner is shown.
func DeviceDetection(prefs DismissalChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mobile := IsMobileAgent(c.Get(fiber.HeaderUserAgent))
		show := false

		if mobile {
			dismissed, err := prefs.NotificationDismissed()
			if err != nil {
				utils.Log.Warn("Failed to read banner preference: %v", err)
			}
			show = !dismissed
		}

		c.Locals("showBanner", show)

		return c.Next()
	}
}

// ShowBanner reads the banner decision made by DeviceDetection
func ShowBanner(c *fiber.Ctx) bool {
	show, _ := c.Locals("showBanner").(bool)
	return show
}
