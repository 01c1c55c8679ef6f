package main

import (
	"fmt"
	"log"
	"time"

	"wardrobe-planner/internal/common/config"
	"wardrobe-planner/internal/common/middleware"
	"wardrobe-planner/internal/gateway/handlers"
	"wardrobe-planner/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

const apiPrefix = "/api/v1"

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "API Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("gateway"))
	app.Use(middleware.CORS(cfg.CORSOrigins))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", handlers.LivenessProbe)
	app.Get("/health/ready", handlers.ReadinessProbe(map[string]string{
		"planner": cfg.PlannerURL,
		"builds":  cfg.BuildsURL,
	}, 2*time.Second))
	app.Get("/health/startup", handlers.StartupProbe)

	docs := handlers.NewDocs("docs/wardrobe-planner.openapi.yaml", "/docs/openapi.yaml", "Wardrobe Planner API")
	app.Get("/docs", docs.UI)
	app.Get("/docs/openapi.yaml", docs.Spec)

	// ============================================================
	// API Routes
	// ============================================================

	api := app.Group(apiPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Wardrobe Planner API v1",
			"status":  "ok",
		})
	})

	// ============================================================
	// Service Routes (Proxy)
	// ============================================================

	px := proxy.New(time.Duration(cfg.WriteTimeout) * time.Second)

	// Planner Service
	planner := px.Pass(cfg.PlannerURL, apiPrefix)
	api.Post("/validate", planner)
	api.Post("/cut-list", planner)
	api.Post("/cut-list/export", planner)
	api.Post("/plinth", planner)
	api.Post("/report", planner)
	api.Post("/render", planner)
	api.Get("/materials", planner)

	// Builds Service
	builds := px.Pass(cfg.BuildsURL, apiPrefix)
	api.Post("/builds", builds)
	api.Get("/builds", builds)
	api.Get("/builds/:id", builds)
	api.Delete("/builds/:id", builds)
	api.Post("/builds/:id/revalidate", builds)
	api.Get("/builds/:id/export", builds)
	api.Get("/builds/:id/artifacts", builds)
	api.Get("/builds/:id/artifacts/:format", builds)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting API Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying planner routes to %s, builds routes to %s", cfg.PlannerURL, cfg.BuildsURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
