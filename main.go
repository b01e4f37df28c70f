package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"lovestudio/config"
	"lovestudio/handlers/api"
	"lovestudio/handlers/web"
	"lovestudio/middleware"
	"lovestudio/render"
	"lovestudio/storage"
	"lovestudio/utils"
)

// services are the long-lived dependencies shared by the routes
type services struct {
	config   *config.Config
	cards    *storage.CardStore
	prefs    *storage.Preferences
	exporter web.Exporter
	reload   bool
}

func newApp(svc services) *fiber.App {
	engine := render.NewEngine(svc.reload)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          web.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Output: os.Stdout,
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())
	app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:;",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	cardHandler := web.NewCardHandler(svc.cards, svc.exporter)
	notificationHandler := web.NewNotificationHandler(svc.prefs)
	limiter := middleware.NewRateLimiter(svc.config.Export.RateLimit, time.Minute)
	app.Hooks().OnShutdown(func() error {
		limiter.Close()
		return nil
	})
	exportLimit := limiter.Handler()

	// API routes are JSON only. They are registered before the page group
	// so its form middleware never runs for them.
	apiCards := api.NewCardHandler(svc.cards)
	apiRoutes := app.Group("/api")
	{
		apiRoutes.Get("/card", apiCards.GetCard)
		apiRoutes.Put("/card", apiCards.PutCard)
		apiRoutes.Delete("/card", apiCards.DeleteCard)
		apiRoutes.Get("/themes", api.ListThemes)
		apiRoutes.Get("/occasions", api.ListOccasions)
		apiRoutes.Get("/messages", api.GetMessages)
	}

	pages := app.Group("",
		middleware.CSRFProtection(),
		middleware.DeviceDetection(svc.prefs),
	)
	{
		pages.Get("/", cardHandler.ShowInput)
		pages.Post("/", cardHandler.HandleGenerate)
		pages.Get("/card", cardHandler.ShowPreview)
		pages.Get("/card/print", exportLimit, cardHandler.ShowPrint)
		pages.Get("/card/pdf", exportLimit, cardHandler.DownloadPDF)
		pages.Post("/notification/dismiss", notificationHandler.Dismiss)
	}

	app.Use(web.NotFound)

	utils.Log.Debug("Routes registered")
	return app
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		utils.Log.Error("%v", err)
		os.Exit(1)
	}
}
