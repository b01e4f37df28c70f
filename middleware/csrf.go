package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"github.com/gofiber/fiber/v2"

	"lovestudio/utils"
)

// CSRFConfig holds CSRF protection configuration
type CSRFConfig struct {
	TokenLength  int
	CookieName   string
	HeaderName   string
	FormField    string
	ContextKey   string
	CookieMaxAge int
	Skipper      func(*fiber.Ctx) bool
}

// DefaultCSRFConfig returns default CSRF configuration
func DefaultCSRFConfig() CSRFConfig {
	return CSRFConfig{
		TokenLength:  32,
		CookieName:   "csrf_token",
		HeaderName:   "X-CSRF-Token",
		FormField:    "_csrf",
		ContextKey:   "csrf",
		CookieMaxAge: 3600 * 12,
		Skipper:      nil,
	}
}

// CSRFProtection checks the cookie token against the header or form field
// on every state-changing request.
func CSRFProtection(config ...CSRFConfig) fiber.Handler {
	cfg := DefaultCSRFConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		if cfg.Skipper != nil && cfg.Skipper(c) {
			return c.Next()
		}

		// Safe methods only need a token issued
		if c.Method() == fiber.MethodGet ||
			c.Method() == fiber.MethodHead ||
			c.Method() == fiber.MethodOptions {
			GenerateCSRFToken(c, cfg)
			return c.Next()
		}

		cookieToken := c.Cookies(cfg.CookieName)
		requestToken := c.Get(cfg.HeaderName)
		if requestToken == "" && cfg.FormField != "" {
			requestToken = c.FormValue(cfg.FormField)
		}

		if cookieToken == "" || requestToken == "" {
			return utils.NewAppError(fiber.StatusForbidden, "CSRF token missing", nil)
		}
		if !tokensEqual(cookieToken, requestToken) {
			return utils.NewAppError(fiber.StatusForbidden, "CSRF token mismatch", nil)
		}

		c.Locals(cfg.ContextKey, cookieToken)
		return c.Next()
	}
}

// GenerateCSRFToken returns the request's token, issuing a new cookie when none is set
func GenerateCSRFToken(c *fiber.Ctx, config ...CSRFConfig) string {
	cfg := DefaultCSRFConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	if token, ok := c.Locals(cfg.ContextKey).(string); ok && token != "" {
		return token
	}

	token := c.Cookies(cfg.CookieName)
	if token == "" {
		token = generateToken(cfg.TokenLength)
		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			MaxAge:   cfg.CookieMaxAge,
			HTTPOnly: true,
			SameSite: "Strict",
		})
	}

	c.Locals(cfg.ContextKey, token)
	return token
}

// CSRFToken reads the token stored by the middleware
func CSRFToken(c *fiber.Ctx) string {
	token, _ := c.Locals(DefaultCSRFConfig().ContextKey).(string)
	return token
}

// generateToken generates a random token
func generateToken(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(b)
}

// tokensEqual performs constant-time comparison of tokens
func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
