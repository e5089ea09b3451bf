package handlers

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const appName = "Resume ATS API"

type AppConfig struct {
	BodyLimit int
	// StaticDir is served under /uploads when set (local storage driver).
	StaticDir string
	// AccessLog receives the request log lines. Defaults to stdout.
	AccessLog io.Writer
}

// NewApp builds the fiber app with the shared middleware stack.
func NewApp(cfg AppConfig, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: newErrorHandler(log),
	})

	accessLog := cfg.AccessLog
	if accessLog == nil {
		accessLog = os.Stdout
	}

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     accessLog,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	if cfg.StaticDir != "" {
		app.Static("/uploads", cfg.StaticDir)
	}

	return app
}

// RegisterRoutes mounts the API endpoints.
func RegisterRoutes(app *fiber.App, analyze *AnalyzeHandler, history *HistoryHandler) {
	app.Post("/analyze", analyze.HandleAnalyze)
	app.Get("/history", history.HandleHistory)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": appName,
			"version": "1.0.0",
			"endpoints": []string{
				"POST /analyze",
				"GET /history",
				"GET /health",
			},
		})
	})
}

func newErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("❌ Unhandled request error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
