package dimensions

import (
	"testing"

	"wardrobe-planner/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(thickness float64) *models.Material {
	return &models.Material{Material: "White Melamine", Thickness: "18mm", ThicknessNum: thickness, Price: 45, SKU: "MEL-18-W"}
}

// singleCarcass строит конфигурацию из одной секции с одним коробом.
func singleCarcass(height float64, interiors ...models.InteriorSection) models.Configuration {
	return models.Configuration{
		Width:  1000,
		Height: height,
		Depth:  600,
		Sections: []models.Section{{
			ID:    "s1",
			Width: 1000,
			Carcasses: []models.Carcass{{
				ID:               "c1",
				Height:           height,
				Material:         board(18),
				InteriorSections: interiors,
			}},
		}},
	}
}

func TestValidate_MissingEnvelope(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.Configuration
	}{
		{"no width", models.Configuration{Height: 2400, Depth: 600, Sections: []models.Section{{Width: 1}}}},
		{"no height", models.Configuration{Width: 2400, Depth: 600, Sections: []models.Section{{Width: 1}}}},
		{"no depth", models.Configuration{Width: 2400, Height: 2400, Sections: []models.Section{{Width: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Validate(tt.cfg)
			assert.False(t, res.Valid)
			assert.Equal(t, []string{"Configuration must have width, height, and depth"}, res.Errors)
			assert.Empty(t, res.Warnings)
			assert.Empty(t, res.Calculations)
		})
	}
}

func TestValidate_NoSections(t *testing.T) {
	res := Validate(models.Configuration{Width: 2400, Height: 2400, Depth: 600})

	assert.False(t, res.Valid)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "at least one section")
	assert.NotNil(t, res.Calculations)
}

func TestValidate_InternalDimensions(t *testing.T) {
	res := Validate(singleCarcass(1036, models.InteriorSection{Type: models.InteriorRail, Height: 1000}))

	require.True(t, res.Valid)
	require.Len(t, res.Calculations, 1)

	calc := res.Calculations[0]
	assert.Equal(t, 1, calc.Section)
	assert.Equal(t, 1, calc.Carcass)
	assert.Equal(t, "White Melamine", calc.Material)
	assert.Equal(t, models.Dimensions{Width: 1000, Height: 1036, Depth: 600}, calc.External)
	assert.Equal(t, models.Dimensions{Width: 964, Height: 1000, Depth: 582}, calc.Internal)
	assert.Equal(t, models.PanelThickness{Sides: 36, TopBottom: 36, Back: 18}, calc.PanelThickness)
}

func TestInternalDimensions_ThicknessRoundTrip(t *testing.T) {
	for _, h := range []float64{300, 720, 1036, 2400} {
		for _, th := range []float64{12, 16, 18, 25} {
			internal := InternalDimensions(models.Dimensions{Width: 800, Height: h, Depth: 560}, th)
			assert.Equal(t, h-2*th, internal.Height)
			assert.Equal(t, h, internal.Height+2*th)
		}
	}
}

func TestValidate_InteriorHeight(t *testing.T) {
	tests := []struct {
		name         string
		interior     float64
		wantValid    bool
		wantErrors   int
		wantWarnings int
	}{
		{"overflow by 1mm", 1001, false, 1, 0},
		{"under-use 10mm", 990, true, 0, 1},
		{"within slack 3mm", 997, true, 0, 0},
		{"exactly at slack 5mm", 995, true, 0, 0},
		{"exact fit", 1000, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 1036 - 2*18 = 1000 внутренней высоты
			res := Validate(singleCarcass(1036, models.InteriorSection{Type: models.InteriorEmpty, Height: tt.interior}))

			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Len(t, res.Errors, tt.wantErrors)
			assert.Len(t, res.Warnings, tt.wantWarnings)
			if tt.wantErrors > 0 {
				assert.Contains(t, res.Errors[0], "Section 1, Carcass 1")
				assert.Contains(t, res.Errors[0], "exceed internal height (1000mm)")
			}
		})
	}
}

func TestValidate_MissingThicknessIsFatalPerCarcass(t *testing.T) {
	cfg := models.Configuration{
		Width:  1000,
		Height: 2000,
		Depth:  600,
		Sections: []models.Section{{
			Width: 1000,
			Carcasses: []models.Carcass{
				{Height: 1000},
				{Height: 500, Material: &models.Material{Material: "Oak"}},
				{Height: 500, Material: board(18)},
			},
		}},
	}

	res := Validate(cfg)

	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Section 1, Carcass 1: missing material thickness",
		"Section 1, Carcass 2: missing material thickness",
	}, res.Errors)
	require.Len(t, res.Calculations, 1)
	assert.Equal(t, 3, res.Calculations[0].Carcass)
}

func TestValidate_SumWarnings(t *testing.T) {
	cfg := models.Configuration{
		Width:  2400,
		Height: 2400,
		Depth:  600,
		Sections: []models.Section{
			{Width: 1200, Carcasses: []models.Carcass{{Height: 2400, Material: board(18)}}},
			{Width: 1100, Carcasses: []models.Carcass{{Height: 2390, Material: board(18)}}},
			{Width: 99.5},
		},
	}

	res := Validate(cfg)

	// 2399.5 укладывается в допуск 1мм
	assert.True(t, res.Valid)
	assert.Equal(t, []string{
		"Section 2: total carcass heights (2390mm) don't match configuration height (2400mm)",
		"Section 3 has no carcasses",
	}, res.Warnings)

	cfg.Sections[2].Width = 90
	res = Validate(cfg)
	assert.Equal(t, "Total section widths (2390mm) don't match configuration width (2400mm)", res.Warnings[0])
}

func TestValidate_WidthWithinTolerance(t *testing.T) {
	cfg := singleCarcass(2400)
	cfg.Sections[0].Width = 999.2

	res := Validate(cfg)

	assert.Empty(t, res.Warnings)
}

func TestValidate_EmptySectionSkipped(t *testing.T) {
	cfg := models.Configuration{
		Width:  2000,
		Height: 2400,
		Depth:  600,
		Sections: []models.Section{
			{Width: 1000},
			{Width: 1000, Carcasses: []models.Carcass{{Height: 2400, Material: board(18)}}},
		},
	}

	res := Validate(cfg)

	assert.True(t, res.Valid)
	assert.Equal(t, []string{"Section 1 has no carcasses"}, res.Warnings)
	require.Len(t, res.Calculations, 1)
	assert.Equal(t, 2, res.Calculations[0].Section)
}

func TestValidate_CarcassInheritsWidthAndDepth(t *testing.T) {
	cfg := models.Configuration{
		Width:  900,
		Height: 2000,
		Depth:  580,
		Sections: []models.Section{{
			Width:     900,
			Carcasses: []models.Carcass{{Height: 2000, Depth: 400, Material: board(16)}},
		}},
	}

	res := Validate(cfg)

	require.Len(t, res.Calculations, 1)
	assert.Equal(t, models.Dimensions{Width: 900, Height: 2000, Depth: 400}, res.Calculations[0].External)
	assert.Equal(t, models.Dimensions{Width: 868, Height: 1968, Depth: 384}, res.Calculations[0].Internal)
}

func TestValidate_DrawerAndShelfSpacing(t *testing.T) {
	res := Validate(singleCarcass(1036,
		models.InteriorSection{Type: models.InteriorDrawers, Height: 300, Drawers: 4},
		models.InteriorSection{Type: models.InteriorDrawers, Height: 300, Drawers: 3},
		models.InteriorSection{Type: models.InteriorShelves, Height: 400, ShelfCount: 2},
	))

	assert.True(t, res.Valid)
	assert.Equal(t, []string{
		"Section 1, Carcass 1, Interior 1: drawer height (75mm) is below the minimum of 100mm",
		"Section 1, Carcass 1, Interior 3: shelf spacing (133.33mm) is below the recommended 200mm",
	}, res.Warnings)
}

func TestValidate_ShelfSpacingBoundary(t *testing.T) {
	// 600 / (2+1) = 200, ровно на пороге
	res := Validate(singleCarcass(1036,
		models.InteriorSection{Type: models.InteriorShelves, Height: 600, ShelfCount: 2},
		models.InteriorSection{Type: models.InteriorRail, Height: 400},
	))

	assert.Empty(t, res.Warnings)
}

func TestValidateWith_CustomTolerances(t *testing.T) {
	tol := DefaultTolerances()
	tol.InteriorSlack = 20

	res := ValidateWith(singleCarcass(1036, models.InteriorSection{Type: models.InteriorEmpty, Height: 990}), tol)

	assert.Empty(t, res.Warnings)
}

func TestValidateCarcass(t *testing.T) {
	cfg := singleCarcass(1036)
	carcass := models.Carcass{Height: 1036, Material: board(18), InteriorSections: []models.InteriorSection{{Type: models.InteriorRail, Height: 1200}}}

	res := ValidateCarcass(cfg, cfg.Sections[0], carcass, 2, 3)

	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "Section 2, Carcass 3")
	assert.Len(t, res.Calculations, 1)
}

func TestValidate_FullHeightRailScenario(t *testing.T) {
	cfg := models.Configuration{
		Width:  2400,
		Height: 2400,
		Depth:  600,
		Sections: []models.Section{{
			Width: 2400,
			Carcasses: []models.Carcass{{
				Height:           2400,
				Width:            2400,
				Material:         &models.Material{ThicknessNum: 18},
				InteriorSections: []models.InteriorSection{{Type: models.InteriorRail, Height: 2400}},
			}},
		}},
	}

	res := Validate(cfg)

	// 2400 внутри короба с внутренней высотой 2364: переполнение
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"Section 1, Carcass 1: interior sections (2400mm) exceed internal height (2364mm)"}, res.Errors)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Calculations, 1)
	assert.Equal(t, 2364.0, res.Calculations[0].Internal.Height)

	cfg.Sections[0].Carcasses[0].InteriorSections[0].Height = 2364
	res = Validate(cfg)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)

	cfg.Sections[0].Carcasses[0].InteriorSections[0].Height = 2328
	res = Validate(cfg)
	assert.True(t, res.Valid)
	assert.Equal(t, []string{"Section 1, Carcass 1: interior sections don't use full internal height (36mm unused)"}, res.Warnings)
}
