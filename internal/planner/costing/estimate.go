package costing

import (
	"math"

	"wardrobe-planner/internal/planner/catalog"
	"wardrobe-planner/internal/planner/cutlist"
	"wardrobe-planner/internal/planner/models"
)

// ============================================================
// Cost Estimate
// ============================================================

type Options struct {
	SheetWidth   float64 // мм
	SheetHeight  float64 // мм
	Kerf         float64 // ширина пропила, добавляется к каждой стороне детали
	WastePercent float64 // запас на отходы, %
	BackingPrice float64 // цена листа задней стенки; 0: брать из справочника
}

func DefaultOptions() Options {
	return Options{
		SheetWidth:   2440,
		SheetHeight:  1220,
		Kerf:         3,
		WastePercent: 10,
	}
}

type lineKey struct {
	material  string
	thickness float64
}

// Estimate считает, сколько листов каждого материала нужно на раскрой
// и во что это обойдется. Цена листа берется из материала короба,
// затем из справочника.
func Estimate(cfg models.Configuration, entries []models.CutListEntry, cat *catalog.Catalog, opts Options) models.CostEstimate {
	prices := materialPrices(cfg, cat)

	var order []lineKey
	lines := make(map[lineKey]*models.CostLine)

	for _, e := range entries {
		key := lineKey{material: e.Material, thickness: e.Thickness}
		line, ok := lines[key]
		if !ok {
			line = &models.CostLine{Material: e.Material, Thickness: e.Thickness}
			if m, found := prices[key]; found {
				line.SKU = m.SKU
				line.PricePerSheet = m.Price
			}
			if e.Material == cutlist.BackingMaterial && opts.BackingPrice > 0 {
				line.PricePerSheet = opts.BackingPrice
			}
			lines[key] = line
			order = append(order, key)
		}

		a, b := e.Sides()
		line.Area += (a + opts.Kerf) * (b + opts.Kerf) * float64(e.Quantity)
		line.Panels += e.Quantity
	}

	estimate := models.CostEstimate{
		Lines:        make([]models.CostLine, 0, len(order)),
		SheetWidth:   opts.SheetWidth,
		SheetHeight:  opts.SheetHeight,
		Kerf:         opts.Kerf,
		WastePercent: opts.WastePercent,
	}

	sheetArea := opts.SheetWidth * opts.SheetHeight
	wasteFactor := 1.0 + opts.WastePercent/100.0

	for _, key := range order {
		line := lines[key]
		if sheetArea > 0 {
			line.SheetsExact = line.Area / sheetArea
			minSheets := int(math.Ceil(line.SheetsExact))
			line.Sheets = int(math.Ceil(line.SheetsExact * wasteFactor))
			if line.Sheets < minSheets {
				line.Sheets = minSheets
			}
		}
		line.Cost = float64(line.Sheets) * line.PricePerSheet

		estimate.TotalArea += line.Area
		estimate.TotalSheets += line.Sheets
		estimate.Total += line.Cost
		estimate.Lines = append(estimate.Lines, *line)
	}

	return estimate
}

// materialPrices собирает цены по материалу и толщине: материал короба
// важнее справочника.
func materialPrices(cfg models.Configuration, cat *catalog.Catalog) map[lineKey]models.Material {
	prices := make(map[lineKey]models.Material)

	if cat != nil {
		backing, ok := cat.Find(cutlist.BackingMaterial, cutlist.BackPanelThickness)
		if !ok {
			backing, ok = cat.FindByName(cutlist.BackingMaterial)
		}
		if ok {
			prices[lineKey{cutlist.BackingMaterial, cutlist.BackPanelThickness}] = backing
		}
	}

	for _, section := range cfg.Sections {
		for _, carcass := range section.Carcasses {
			m := carcass.Material
			if m == nil || m.Material == "" {
				continue
			}
			thickness := models.ThicknessOf(m)
			if thickness == 0 {
				thickness = cutlist.DefaultThickness
			}
			key := lineKey{m.Material, thickness}
			if _, seen := prices[key]; seen {
				continue
			}
			resolved := *m
			if cat != nil {
				resolved.Price = cat.PriceFor(m)
				if resolved.SKU == "" {
					if found, ok := cat.Resolve(m); ok && found.ThicknessNum == thickness {
						resolved.SKU = found.SKU
					}
				}
			}
			prices[key] = resolved
		}
	}

	return prices
}
