package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"annapurna/internal/config"
	"annapurna/internal/http/handlers"
	applog "annapurna/internal/log"
	"annapurna/internal/repos"
	"annapurna/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and keep internals out of the response
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, authSvc)

	// Credential endpoints are throttled harder than the rest.
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.auth.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})

	// ---------- Routes ----------
	app.Post("/auth/signup", authLimiter, deps.AuthHandler.Signup)
	app.Post("/auth/login", authLimiter, deps.AuthHandler.Login)
	app.Post("/auth/forgot-password", authLimiter, deps.AuthHandler.ForgotPassword)

	app.Get("/user/profile", handlers.RequireUser(authSvc), deps.AuthHandler.Profile)

	app.Get("/items/all", handlers.RequireUser(authSvc), deps.ItemHandler.All)
	app.Get("/items/available", handlers.RequireUser(authSvc), deps.ItemHandler.Available)
	app.Post("/items/create", handlers.RequireVendor(authSvc), deps.ItemHandler.Create)
	app.Get("/items/daily", handlers.RequireVendor(authSvc), deps.ItemHandler.Daily)
	app.Post("/items/daily", handlers.RequireVendor(authSvc), deps.ItemHandler.Restock)

	app.Get("/orders/my-orders", handlers.RequireCustomer(authSvc), deps.OrderHandler.MyOrders)
	app.Post("/orders/place", handlers.RequireCustomer(authSvc), deps.OrderHandler.Place)
	app.Get("/orders/vendor", handlers.RequireVendor(authSvc), deps.OrderHandler.VendorOrders)
	app.Put("/orders/:id/status", handlers.RequireVendor(authSvc), deps.OrderHandler.UpdateStatus)

	app.Get("/notifications", handlers.RequireUser(authSvc), deps.NotificationHandler.List)
	app.Put("/notifications/:id/read", handlers.RequireUser(authSvc), deps.NotificationHandler.MarkRead)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
