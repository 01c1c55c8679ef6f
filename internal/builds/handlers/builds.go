package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"wardrobe-planner/internal/builds/repository"
	"wardrobe-planner/internal/builds/service"
	"wardrobe-planner/internal/common/middleware"
	"wardrobe-planner/internal/planner/export"
	planner "wardrobe-planner/internal/planner/models"
	"wardrobe-planner/internal/planner/parser"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Builds Handler
// ============================================================

type BuildsHandler struct {
	builds *service.Service
}

func NewBuildsHandler(builds *service.Service) *BuildsHandler {
	return &BuildsHandler{builds: builds}
}

type createBuildRequest struct {
	Name          string                 `json:"name" validate:"required,max=120"`
	Configuration *planner.Configuration `json:"configuration" validate:"required"`
	Options       json.RawMessage        `json:"options"`
}

type listQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Register вешает маршруты сервиса сборок.
func (h *BuildsHandler) Register(r fiber.Router) {
	r.Post("/builds", h.Create)
	r.Get("/builds", h.List)
	r.Get("/builds/:id", h.Get)
	r.Delete("/builds/:id", h.Delete)
	r.Post("/builds/:id/revalidate", h.Revalidate)
	r.Get("/builds/:id/export", h.Export)
	r.Get("/builds/:id/artifacts", h.Artifacts)
	r.Get("/builds/:id/artifacts/:format", h.Download)
}

// Create сохраняет сборку и сразу считает по ней отчет.
func (h *BuildsHandler) Create(c fiber.Ctx) error {
	log.Printf("[BUILDS] Create request, %d bytes", len(c.Body()))

	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "body required"})
	}

	var req createBuildRequest
	if err := c.Bind().Body(&req); err != nil {
		log.Printf("[BUILDS] Bind error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid request",
			"details": middleware.ValidationMessage(err),
		})
	}

	opts, err := parser.ParsePlinthOptions(req.Options)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid plinth options",
			"details": err.Error(),
		})
	}

	build, err := h.builds.Create(c.Context(), req.Name, *req.Configuration, opts)
	if err != nil {
		return internalError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(build)
}

// List отдает сборки от новых к старым, ?limit=1..100.
func (h *BuildsHandler) List(c fiber.Ctx) error {
	var q listQuery
	if err := c.Bind().Query(&q); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid query",
			"details": middleware.ValidationMessage(err),
		})
	}

	builds, err := h.builds.List(c.Context(), q.Limit)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(builds)
}

func (h *BuildsHandler) Get(c fiber.Ctx) error {
	build, err := h.builds.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(build)
}

func (h *BuildsHandler) Delete(c fiber.Ctx) error {
	if err := h.builds.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// Revalidate пересчитывает сохраненную сборку.
func (h *BuildsHandler) Revalidate(c fiber.Ctx) error {
	build, err := h.builds.Revalidate(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(build)
}

// Export отдает файл сборки: ?format=csv (по умолчанию), xlsx или svg.
func (h *BuildsHandler) Export(c fiber.Ctx) error {
	format := c.Query("format", export.FormatCSV)

	artifact, data, err := h.builds.Export(c.Context(), c.Params("id"), format)
	if err != nil {
		return h.fail(c, err)
	}

	if format != service.FormatSVG {
		c.Attachment(fmt.Sprintf("%s-%s", artifact.BuildID, service.Filename(format)))
	}
	c.Set("Content-Type", artifact.ContentType)
	return c.Send(data)
}

func (h *BuildsHandler) Artifacts(c fiber.Ctx) error {
	artifacts, err := h.builds.Artifacts(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(artifacts)
}

// Download отдает сохраненный файл выгрузки без пересчета.
func (h *BuildsHandler) Download(c fiber.Ctx) error {
	format := c.Params("format")

	artifact, data, err := h.builds.Download(c.Context(), c.Params("id"), format)
	if err != nil {
		return h.fail(c, err)
	}

	if format != service.FormatSVG {
		c.Attachment(fmt.Sprintf("%s-%s", artifact.BuildID, service.Filename(format)))
	}
	c.Set("Content-Type", artifact.ContentType)
	return c.Send(data)
}

// ============================================================
// Errors
// ============================================================

func (h *BuildsHandler) fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "build not found"})
	case errors.Is(err, service.ErrArtifactNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedFormat):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotRenderable):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	return internalError(c, err)
}

func internalError(c fiber.Ctx, err error) error {
	log.Printf("[BUILDS] Internal error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}
