package layout

import (
	"fmt"

	"wardrobe-planner/internal/planner/cutlist"
	"wardrobe-planner/internal/planner/dimensions"
	"wardrobe-planner/internal/planner/models"
)

// ============================================================
// Front Elevation Layout
// ============================================================

const (
	KindSection  = "section"
	KindCarcass  = "carcass"
	KindInterior = "interior"
	KindPlinth   = "plinth"
	KindScribing = "scribing"
)

// Rect: прямоугольник на фасаде: X слева, Y сверху, мм.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type Block struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Type      string  `json:"type,omitempty"`
	Label     string  `json:"label"`
	Thickness float64 `json:"thickness,omitempty"`
	Count     int     `json:"count,omitempty"`
	External  bool    `json:"external,omitempty"`
	Rect
}

type Elevation struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Blocks []Block `json:"blocks"`
}

// Build раскладывает конфигурацию на фасадные прямоугольники.
// Секции идут слева направо, короба и внутренние секции сверху вниз,
// цоколь (если передан) рисуется под шкафом.
func Build(cfg models.Configuration, plinthCalc *models.PlinthCalc) Elevation {
	elevation := Elevation{
		Width:  cfg.Width,
		Height: cfg.Height,
		Blocks: []Block{},
	}

	var x float64
	for i, section := range cfg.Sections {
		sectionID := fmt.Sprintf("s%d", i+1)
		elevation.Blocks = append(elevation.Blocks, Block{
			ID:    sectionID,
			Kind:  KindSection,
			Label: fmt.Sprintf("Section %d", i+1),
			Rect:  Rect{X: x, Y: 0, Width: section.Width, Height: cfg.Height},
		})

		var y float64
		for j, carcass := range section.Carcasses {
			elevation.Blocks = append(elevation.Blocks, carcassBlocks(cfg, section, carcass, sectionID, j+1, x, y)...)
			y += carcass.Height
		}

		x += section.Width
	}

	if plinthCalc != nil && plinthCalc.Plinth.Height > 0 {
		elevation.Blocks = append(elevation.Blocks, Block{
			ID:    "plinth",
			Kind:  KindPlinth,
			Label: "Plinth",
			Rect:  Rect{X: 0, Y: cfg.Height, Width: cfg.Width, Height: plinthCalc.Plinth.Height},
		})
		elevation.Height = plinthCalc.AdjustedWardrobeHeight
	}

	if plinthCalc != nil && plinthCalc.Scribing != nil {
		// Фальшпанель закрывает цоколь снизу, поднимаясь от пола
		top := elevation.Height - plinthCalc.Scribing.Height
		elevation.Blocks = append(elevation.Blocks, Block{
			ID:        "scribing",
			Kind:      KindScribing,
			Label:     "Scribing",
			Thickness: plinthCalc.Scribing.Thickness,
			Rect:      Rect{X: 0, Y: top, Width: plinthCalc.Scribing.Width, Height: plinthCalc.Scribing.Height},
		})
	}

	return elevation
}

func carcassBlocks(cfg models.Configuration, section models.Section, carcass models.Carcass, sectionID string, carcassNum int, x, y float64) []Block {
	thickness := models.ThicknessOf(carcass.Material)
	if thickness == 0 {
		thickness = cutlist.DefaultThickness
	}

	external := dimensions.ExternalDimensions(cfg, section, carcass)
	internal := dimensions.InternalDimensions(external, thickness)
	carcassID := fmt.Sprintf("%s-c%d", sectionID, carcassNum)

	blocks := []Block{{
		ID:        carcassID,
		Kind:      KindCarcass,
		Label:     fmt.Sprintf("Carcass %d", carcassNum),
		Thickness: thickness,
		Rect:      Rect{X: x, Y: y, Width: external.Width, Height: external.Height},
	}}

	offset := y + thickness
	for k, interior := range carcass.InteriorSections {
		block := Block{
			ID:       fmt.Sprintf("%s-i%d", carcassID, k+1),
			Kind:     KindInterior,
			Type:     interior.Type,
			Label:    interiorLabel(interior),
			External: interior.IsExternal,
			Rect:     Rect{X: x + thickness, Y: offset, Width: internal.Width, Height: interior.Height},
		}
		switch interior.Type {
		case models.InteriorDrawers:
			block.Count = interior.Drawers
		case models.InteriorShelves:
			block.Count = interior.ShelfCount
		}
		blocks = append(blocks, block)
		offset += interior.Height
	}

	return blocks
}

func interiorLabel(interior models.InteriorSection) string {
	switch interior.Type {
	case models.InteriorDrawers:
		return fmt.Sprintf("%d drawers", interior.Drawers)
	case models.InteriorShelves:
		return fmt.Sprintf("%d shelves", interior.ShelfCount)
	case models.InteriorRail:
		return "Hanging rail"
	case models.InteriorDoubleRail:
		return "Double rail"
	case models.InteriorEmpty:
		return "Empty"
	}
	return interior.Type
}

// Filter возвращает блоки заданного вида в исходном порядке.
func (e Elevation) Filter(kind string) []Block {
	var out []Block
	for _, b := range e.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}
