package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"wardrobe-planner/internal/planner/cutlist"
	"wardrobe-planner/internal/planner/export"
	"wardrobe-planner/internal/planner/parser"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Export Handler
// ============================================================

// ExportCutList отдает раскрой файлом: ?format=csv (по умолчанию) или xlsx.
func (h *PlannerHandler) ExportCutList(c fiber.Ctx) error {
	format := c.Query("format", export.FormatCSV)
	if format != export.FormatCSV && format != export.FormatXLSX {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unsupported format"})
	}

	cfg, err := parser.ParseConfiguration(bytes.NewReader(c.Body()))
	if err != nil {
		return badRequest(c, err)
	}

	entries := cutlist.Generate(*cfg)

	var buf bytes.Buffer
	switch format {
	case export.FormatXLSX:
		estimate := h.reports.Estimate(*cfg)
		f, err := export.XLSX(entries, &estimate)
		if err != nil {
			log.Printf("[PLANNER] XLSX export error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
		}
		defer f.Close()
		if err := f.Write(&buf); err != nil {
			log.Printf("[PLANNER] XLSX write error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
		}
	default:
		if err := export.CSV(&buf, entries); err != nil {
			log.Printf("[PLANNER] CSV export error: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "export failed"})
		}
	}

	c.Attachment(fmt.Sprintf("cut-list.%s", format))
	c.Set("Content-Type", export.ContentType(format))
	return c.Send(buf.Bytes())
}
