package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"wardrobe-planner/internal/common/config"
	"wardrobe-planner/internal/common/middleware"
	"wardrobe-planner/internal/planner/catalog"
	"wardrobe-planner/internal/planner/costing"
	"wardrobe-planner/internal/planner/handlers"
	"wardrobe-planner/internal/planner/report"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Planner Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3001"
	}

	materials, err := catalog.LoadOrDefault(cfg.MaterialsPath)
	if err != nil {
		log.Fatalf("load materials: %v", err)
	}

	costs := costing.Options{
		SheetWidth:   cfg.Costing.SheetWidth,
		SheetHeight:  cfg.Costing.SheetHeight,
		Kerf:         cfg.Costing.Kerf,
		WastePercent: cfg.Costing.WastePercent,
		BackingPrice: cfg.Costing.BackingPrice,
	}
	plannerHandler := handlers.NewPlannerHandler(report.NewBuilder(materials, costs))

	app := fiber.New(fiber.Config{
		ReadTimeout:     time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:    time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:         "Planner Service",
		StructValidator: middleware.NewStructValidator(),
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("planner"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Planner Routes
	// ============================================================

	plannerHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Planner Service on %s (env: %s, materials: %d)", addr, cfg.Environment, len(materials.All()))

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
