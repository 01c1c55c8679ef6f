package mapper

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"wardrobe-planner/internal/planner/layout"
	"wardrobe-planner/internal/planner/models"
	"wardrobe-planner/internal/planner/plinth"
)

// ============================================================
// Elevation Renderer
// ============================================================

const margin = 20.0

var interiorFill = map[string]string{
	models.InteriorDrawers:    "#f4e3c1",
	models.InteriorRail:       "#dde8f3",
	models.InteriorDoubleRail: "#c9daea",
	models.InteriorShelves:    "#e4efd9",
	models.InteriorEmpty:      "#ffffff",
}

// Слои SVG в порядке отрисовки, по одной группе <g> на вид блока
var layers = []string{
	layout.KindSection,
	layout.KindCarcass,
	layout.KindInterior,
	layout.KindPlinth,
	layout.KindScribing,
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render собирает SVG фасада шкафа. opts == nil: без цоколя.
func (r *Renderer) Render(cfg *models.Configuration, opts *models.PlinthOptions) (string, error) {
	if cfg == nil {
		return "", fmt.Errorf("configuration is nil")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", fmt.Errorf("configuration has no envelope")
	}

	var calc *models.PlinthCalc
	if opts != nil {
		c := plinth.Calculate(*cfg, *opts)
		calc = &c
	}
	elevation := layout.Build(*cfg, calc)

	width := elevation.Width + 2*margin
	height := elevation.Height + 2*margin

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="%s %s %s %s">`,
		formatFloat(width), formatFloat(height), formatFloat(-margin), formatFloat(-margin), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	for _, kind := range layers {
		blocks := elevation.Filter(kind)
		if len(blocks) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf(`  <g id="layer-%s">`, kind))
		builder.WriteString("\n")
		for _, block := range blocks {
			for _, elem := range r.renderBlock(block) {
				builder.WriteString("    ")
				builder.WriteString(elem)
				builder.WriteString("\n")
			}
		}
		builder.WriteString("  </g>\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Block renderers
// ============================================================

func (r *Renderer) renderBlock(b layout.Block) []string {
	switch b.Kind {
	case layout.KindSection:
		return []string{rect(b.ID, b.Rect, "none", "#999", `stroke-dasharray="8 4"`)}
	case layout.KindCarcass:
		return []string{rect(b.ID, b.Rect, "#fafafa", "#000", fmt.Sprintf(`stroke-width="%s"`, formatFloat(b.Thickness)))}
	case layout.KindInterior:
		return r.renderInterior(b)
	case layout.KindPlinth:
		return []string{rect(b.ID, b.Rect, "#555", "#000", "")}
	case layout.KindScribing:
		return []string{rect(b.ID, b.Rect, "none", "#000", `stroke-dasharray="4 4"`)}
	}
	return nil
}

func (r *Renderer) renderInterior(b layout.Block) []string {
	fill, ok := interiorFill[b.Type]
	if !ok {
		fill = "#ffffff"
	}

	out := []string{rect(b.ID, b.Rect, fill, "#666", "")}

	switch b.Type {
	case models.InteriorShelves:
		// N полок делят высоту на N+1 промежутков
		for i := 1; i <= b.Count; i++ {
			y := b.Y + b.Height*float64(i)/float64(b.Count+1)
			out = append(out, hline(b.X, b.X+b.Width, y, "#2ca02c"))
		}
	case models.InteriorDrawers:
		for i := 1; i < b.Count; i++ {
			y := b.Y + b.Height*float64(i)/float64(b.Count)
			out = append(out, hline(b.X, b.X+b.Width, y, "#8c564b"))
		}
	case models.InteriorRail:
		out = append(out, hline(b.X+10, b.X+b.Width-10, b.Y+60, "#1f77b4"))
	case models.InteriorDoubleRail:
		out = append(out, hline(b.X+10, b.X+b.Width-10, b.Y+60, "#1f77b4"))
		out = append(out, hline(b.X+10, b.X+b.Width-10, b.Y+b.Height/2+60, "#1f77b4"))
	}

	out = append(out, fmt.Sprintf(`<text x="%s" y="%s" font-size="40" text-anchor="middle">%s</text>`,
		formatFloat(b.X+b.Width/2), formatFloat(b.Y+b.Height/2), html.EscapeString(b.Label)))
	return out
}

// ============================================================
// Formatting helpers
// ============================================================

func rect(id string, r layout.Rect, fill, stroke, extra string) string {
	if extra != "" {
		extra = " " + extra
	}
	return fmt.Sprintf(`<rect id="%s" x="%s" y="%s" width="%s" height="%s" fill="%s" stroke="%s"%s />`,
		id, formatFloat(r.X), formatFloat(r.Y), formatFloat(r.Width), formatFloat(r.Height), fill, stroke, extra)
}

func hline(x1, x2, y float64, stroke string) string {
	return fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" />`,
		formatFloat(x1), formatFloat(y), formatFloat(x2), formatFloat(y), stroke)
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
