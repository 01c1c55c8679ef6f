package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"wardrobe-planner/internal/builds/handlers"
	"wardrobe-planner/internal/builds/repository"
	"wardrobe-planner/internal/builds/service"
	"wardrobe-planner/internal/common/config"
	"wardrobe-planner/internal/common/middleware"
	"wardrobe-planner/internal/planner/catalog"
	"wardrobe-planner/internal/planner/costing"
	"wardrobe-planner/internal/planner/report"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Builds Service
// ============================================================

func main() {
	cfg := config.Load()
	if os.Getenv("PORT") == "" {
		cfg.Port = "3002"
	}

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init db: %v", err)
	}

	store, err := service.NewArtifactStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("init artifact store: %v", err)
	}

	materials, err := catalog.LoadOrDefault(cfg.MaterialsPath)
	if err != nil {
		log.Fatalf("load materials: %v", err)
	}
	reports := report.NewBuilder(materials, costing.Options{
		SheetWidth:   cfg.Costing.SheetWidth,
		SheetHeight:  cfg.Costing.SheetHeight,
		Kerf:         cfg.Costing.Kerf,
		WastePercent: cfg.Costing.WastePercent,
		BackingPrice: cfg.Costing.BackingPrice,
	})

	buildsHandler := handlers.NewBuildsHandler(service.NewService(repo, reports, store))

	app := fiber.New(fiber.Config{
		ReadTimeout:     time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:    time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:         "Builds Service",
		StructValidator: middleware.NewStructValidator(),
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger("builds"))

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		if err := db.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not ready", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Builds Routes
	// ============================================================

	buildsHandler.Register(app)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Builds Service on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.DBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
