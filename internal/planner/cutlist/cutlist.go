package cutlist

import (
	"fmt"

	"wardrobe-planner/internal/planner/dimensions"
	"wardrobe-planner/internal/planner/models"
)

// ============================================================
// Cut List Generator
// ============================================================

const DefaultThickness = 18.0  // Толщина, если у короба не задан материал
const BackPanelThickness = 6.0 // Задняя стенка всегда из ДВП
const ShelfClearance = 4.0     // Зазор полки по ширине и глубине
const BackingMaterial = "Backing material"
const UnknownMaterial = "Unknown"

const (
	ComponentTop       = models.ComponentTop
	ComponentBottom    = models.ComponentBottom
	ComponentLeftSide  = models.ComponentLeftSide
	ComponentRightSide = models.ComponentRightSide
	ComponentBack      = models.ComponentBack
)

// Generate возвращает список деталей для всех коробов конфигурации.
// Конфигурация должна быть заранее проверена: недостающая толщина
// молча заменяется на DefaultThickness.
func Generate(cfg models.Configuration) []models.CutListEntry {
	entries := []models.CutListEntry{}

	for i, section := range cfg.Sections {
		for j, carcass := range section.Carcasses {
			entries = append(entries, carcassPanels(cfg, section, carcass, i+1, j+1)...)
		}
	}

	return entries
}

func carcassPanels(cfg models.Configuration, section models.Section, carcass models.Carcass, sectionNum, carcassNum int) []models.CutListEntry {
	thickness := models.ThicknessOf(carcass.Material)
	if thickness == 0 {
		thickness = DefaultThickness
	}
	material := UnknownMaterial
	if carcass.Material != nil && carcass.Material.Material != "" {
		material = carcass.Material.Material
	}

	external := dimensions.ExternalDimensions(cfg, section, carcass)
	internal := dimensions.InternalDimensions(external, thickness)

	panel := func(component string) models.CutListEntry {
		return models.CutListEntry{
			Section:   sectionNum,
			Carcass:   carcassNum,
			Component: component,
			Thickness: thickness,
			Material:  material,
			Quantity:  1,
		}
	}

	top := panel(ComponentTop)
	top.Width, top.Depth = external.Width, external.Depth

	bottom := panel(ComponentBottom)
	bottom.Width, bottom.Depth = external.Width, external.Depth

	// Боковины стоят между крышкой и дном
	left := panel(ComponentLeftSide)
	left.Height, left.Depth = internal.Height, external.Depth

	right := panel(ComponentRightSide)
	right.Height, right.Depth = internal.Height, external.Depth

	back := panel(ComponentBack)
	back.Width, back.Height = internal.Width, internal.Height
	back.Thickness = BackPanelThickness
	back.Material = BackingMaterial

	entries := []models.CutListEntry{top, bottom, left, right, back}

	for _, interior := range carcass.InteriorSections {
		if interior.Type != models.InteriorShelves || interior.ShelfCount <= 0 {
			continue
		}
		shelves := panel(fmt.Sprintf("Shelves (%dx)", interior.ShelfCount))
		shelves.Width = internal.Width - ShelfClearance
		shelves.Depth = internal.Depth - ShelfClearance
		shelves.Quantity = interior.ShelfCount
		entries = append(entries, shelves)
	}

	return entries
}

// TotalPanels считает количество деталей с учетом Quantity.
func TotalPanels(entries []models.CutListEntry) int {
	var total int
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}
