package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	"wardrobe-planner/internal/planner/cutlist"
	"wardrobe-planner/internal/planner/dimensions"
	"wardrobe-planner/internal/planner/mapper"
	"wardrobe-planner/internal/planner/parser"
	"wardrobe-planner/internal/planner/plinth"
	"wardrobe-planner/internal/planner/report"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Planner Handler
// ============================================================

type PlannerHandler struct {
	reports  *report.Builder
	renderer *mapper.Renderer
}

func NewPlannerHandler(reports *report.Builder) *PlannerHandler {
	return &PlannerHandler{
		reports:  reports,
		renderer: mapper.NewRenderer(),
	}
}

// Register вешает маршруты сервиса расчетов.
func (h *PlannerHandler) Register(r fiber.Router) {
	r.Post("/validate", h.Validate)
	r.Post("/cut-list", h.CutList)
	r.Post("/cut-list/export", h.ExportCutList)
	r.Post("/plinth", h.Plinth)
	r.Post("/report", h.Report)
	r.Post("/render", h.Render)
	r.Get("/materials", h.Materials)
}

// Validate проверяет размеры конфигурации. На невалидную конфигурацию
// отвечает 200 с valid=false, 400 только для битого JSON.
func (h *PlannerHandler) Validate(c fiber.Ctx) error {
	log.Printf("[PLANNER] Validate request, %d bytes", len(c.Body()))

	cfg, err := parser.ParseConfiguration(bytes.NewReader(c.Body()))
	if err != nil {
		return badRequest(c, err)
	}

	result := dimensions.Validate(*cfg)
	log.Printf("[PLANNER] Validation done: valid=%t errors=%d warnings=%d", result.Valid, len(result.Errors), len(result.Warnings))
	return c.JSON(result)
}

// CutList возвращает плоский список деталей.
func (h *PlannerHandler) CutList(c fiber.Ctx) error {
	cfg, err := parser.ParseConfiguration(bytes.NewReader(c.Body()))
	if err != nil {
		return badRequest(c, err)
	}

	return c.JSON(cutlist.Generate(*cfg))
}

// Plinth считает цоколь по телу {configuration, options}.
func (h *PlannerHandler) Plinth(c fiber.Ctx) error {
	cfg, opts, err := parser.ParsePlinthRequest(c.Body())
	if err != nil {
		return badRequest(c, err)
	}

	return c.JSON(plinth.Calculate(*cfg, opts))
}

// Report отдает валидацию, раскрой, цоколь и смету одним ответом.
func (h *PlannerHandler) Report(c fiber.Ctx) error {
	cfg, opts, err := parser.ParsePlinthRequest(c.Body())
	if err != nil {
		return badRequest(c, err)
	}

	return c.JSON(h.reports.Build(*cfg, opts))
}

// Render рисует фасад в SVG.
func (h *PlannerHandler) Render(c fiber.Ctx) error {
	cfg, opts, err := parser.ParseRenderRequest(c.Body())
	if err != nil {
		return badRequest(c, err)
	}

	svg, err := h.renderer.Render(cfg, opts)
	if err != nil {
		log.Printf("[PLANNER] Render error: %v", err)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

// Materials отдает справочник материалов.
func (h *PlannerHandler) Materials(c fiber.Ctx) error {
	return c.JSON(h.reports.Catalog().All())
}

func badRequest(c fiber.Ctx, err error) error {
	msg := "invalid JSON payload"
	if errors.Is(err, parser.ErrEmptyBody) {
		msg = "body required"
	}
	log.Printf("[PLANNER] Decode error: %v", err)
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error":   msg,
		"details": err.Error(),
	})
}
