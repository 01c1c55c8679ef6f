package dimensions

import (
	"fmt"
	"math"
	"strconv"

	"wardrobe-planner/internal/planner/models"
)

// ============================================================
// Dimension Validator
// ============================================================

const WidthTolerance = 1.0    // Допуск суммы ширин секций, мм
const HeightTolerance = 1.0   // Допуск суммы высот коробов, мм
const InteriorSlack = 5.0     // Сколько внутренней высоты можно не использовать без предупреждения
const MinDrawerHeight = 100.0 // Минимальная высота ящика
const MinShelfSpacing = 200.0 // Минимальное расстояние между полками

// Tolerances позволяет переопределить пороги проверки.
type Tolerances struct {
	Width           float64
	Height          float64
	InteriorSlack   float64
	MinDrawerHeight float64
	MinShelfSpacing float64
}

func DefaultTolerances() Tolerances {
	return Tolerances{
		Width:           WidthTolerance,
		Height:          HeightTolerance,
		InteriorSlack:   InteriorSlack,
		MinDrawerHeight: MinDrawerHeight,
		MinShelfSpacing: MinShelfSpacing,
	}
}

// Validate проверяет геометрию конфигурации с порогами по умолчанию.
func Validate(cfg models.Configuration) models.ValidationResult {
	return ValidateWith(cfg, DefaultTolerances())
}

// ValidateWith проверяет геометрию конфигурации. Ошибки и предупреждения
// возвращаются данными, функция не паникует на неполном вводе.
func ValidateWith(cfg models.Configuration, tol Tolerances) models.ValidationResult {
	res := &models.ValidationResult{
		Errors:       []string{},
		Warnings:     []string{},
		Calculations: []models.CarcassCalc{},
	}

	if cfg.Width == 0 || cfg.Height == 0 || cfg.Depth == 0 {
		res.Errors = append(res.Errors, "Configuration must have width, height, and depth")
		return *res
	}

	if len(cfg.Sections) == 0 {
		res.Errors = append(res.Errors, "Configuration must have at least one section")
		return *res
	}

	var totalWidth float64
	for _, section := range cfg.Sections {
		totalWidth += section.Width
	}
	if math.Abs(totalWidth-cfg.Width) > tol.Width {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Total section widths (%smm) don't match configuration width (%smm)",
			mm(totalWidth), mm(cfg.Width)))
	}

	for i, section := range cfg.Sections {
		sectionNum := i + 1

		if len(section.Carcasses) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Section %d has no carcasses", sectionNum))
			continue
		}

		var totalHeight float64
		for _, carcass := range section.Carcasses {
			totalHeight += carcass.Height
		}
		if math.Abs(totalHeight-cfg.Height) > tol.Height {
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"Section %d: total carcass heights (%smm) don't match configuration height (%smm)",
				sectionNum, mm(totalHeight), mm(cfg.Height)))
		}

		for j, carcass := range section.Carcasses {
			validateCarcass(res, cfg, section, carcass, sectionNum, j+1, tol)
		}
	}

	res.Valid = len(res.Errors) == 0
	return *res
}

// ============================================================
// Carcass checks
// ============================================================

// ValidateCarcass проверяет один короб вне контекста всей конфигурации.
// Section и carcass в сообщениях нумеруются с 1.
func ValidateCarcass(cfg models.Configuration, section models.Section, carcass models.Carcass, sectionNum, carcassNum int) models.ValidationResult {
	res := &models.ValidationResult{
		Errors:       []string{},
		Warnings:     []string{},
		Calculations: []models.CarcassCalc{},
	}
	validateCarcass(res, cfg, section, carcass, sectionNum, carcassNum, DefaultTolerances())
	res.Valid = len(res.Errors) == 0
	return *res
}

func validateCarcass(res *models.ValidationResult, cfg models.Configuration, section models.Section, carcass models.Carcass, sectionNum, carcassNum int, tol Tolerances) {
	prefix := fmt.Sprintf("Section %d, Carcass %d", sectionNum, carcassNum)

	thickness := models.ThicknessOf(carcass.Material)
	if thickness == 0 {
		res.Errors = append(res.Errors, prefix+": missing material thickness")
		return
	}

	external := ExternalDimensions(cfg, section, carcass)
	internal := InternalDimensions(external, thickness)

	res.Calculations = append(res.Calculations, models.CarcassCalc{
		Section:   sectionNum,
		Carcass:   carcassNum,
		Material:  carcass.Material.Material,
		Thickness: thickness,
		External:  external,
		Internal:  internal,
		PanelThickness: models.PanelThickness{
			Sides:     thickness * 2,
			TopBottom: thickness * 2,
			Back:      thickness,
		},
	})

	if len(carcass.InteriorSections) > 0 {
		var interiorHeight float64
		for _, interior := range carcass.InteriorSections {
			interiorHeight += interior.Height
		}

		switch {
		case interiorHeight > internal.Height:
			res.Errors = append(res.Errors, fmt.Sprintf(
				"%s: interior sections (%smm) exceed internal height (%smm)",
				prefix, mm(interiorHeight), mm(internal.Height)))
		case internal.Height-interiorHeight > tol.InteriorSlack:
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s: interior sections don't use full internal height (%smm unused)",
				prefix, mm(internal.Height-interiorHeight)))
		}
	}

	for k, interior := range carcass.InteriorSections {
		switch {
		case interior.Type == models.InteriorDrawers && interior.Drawers > 0:
			drawerHeight := interior.Height / float64(interior.Drawers)
			if drawerHeight < tol.MinDrawerHeight {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s, Interior %d: drawer height (%smm) is below the minimum of %smm",
					prefix, k+1, mm(drawerHeight), mm(tol.MinDrawerHeight)))
			}
		case interior.Type == models.InteriorShelves && interior.ShelfCount > 0:
			// N полок дают N+1 промежутков
			spacing := interior.Height / float64(interior.ShelfCount+1)
			if spacing < tol.MinShelfSpacing {
				res.Warnings = append(res.Warnings, fmt.Sprintf(
					"%s, Interior %d: shelf spacing (%smm) is below the recommended %smm",
					prefix, k+1, mm(spacing), mm(tol.MinShelfSpacing)))
			}
		}
	}
}

// ============================================================
// Geometry
// ============================================================

// ExternalDimensions возвращает внешний габарит короба с учетом
// наследования ширины от секции и глубины от конфигурации.
func ExternalDimensions(cfg models.Configuration, section models.Section, carcass models.Carcass) models.Dimensions {
	width := carcass.Width
	if width == 0 {
		width = section.Width
	}
	depth := carcass.Depth
	if depth == 0 {
		depth = cfg.Depth
	}
	return models.Dimensions{
		Width:  width,
		Height: carcass.Height,
		Depth:  depth,
	}
}

// InternalDimensions вычитает толщину панелей: боковины и крышка/дно
// с двух сторон, по глубине только задняя стенка (фронт открыт).
func InternalDimensions(external models.Dimensions, thickness float64) models.Dimensions {
	return models.Dimensions{
		Width:  external.Width - 2*thickness,
		Height: external.Height - 2*thickness,
		Depth:  external.Depth - thickness,
	}
}

func mm(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
