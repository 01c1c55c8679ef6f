package plinth

import (
	"wardrobe-planner/internal/planner/models"
)

// ============================================================
// Plinth Calculator
// ============================================================

const ScribingThickness = 18.0

const (
	ComponentFront       = "front"
	ComponentLeftReturn  = "left_return"
	ComponentRightReturn = "right_return"
)

func DefaultOptions() models.PlinthOptions {
	return models.PlinthOptions{
		Height:         100,
		Depth:          50,
		HasLeft:        true,
		HasRight:       true,
		HasScribing:    false,
		ScribingHeight: 150,
	}
}

// Calculate считает цоколь по габариту шкафа. Входные данные не проверяются.
func Calculate(cfg models.Configuration, opts models.PlinthOptions) models.PlinthCalc {
	components := []models.PlinthComponent{{
		Type:   ComponentFront,
		Width:  cfg.Width,
		Height: opts.Height,
		Depth:  opts.Depth,
	}}

	// Боковые возвраты идут от фасада цоколя до стены
	returnWidth := cfg.Depth - opts.Depth
	if opts.HasLeft {
		components = append(components, models.PlinthComponent{
			Type:   ComponentLeftReturn,
			Width:  returnWidth,
			Height: opts.Height,
			Depth:  opts.Depth,
		})
	}
	if opts.HasRight {
		components = append(components, models.PlinthComponent{
			Type:   ComponentRightReturn,
			Width:  returnWidth,
			Height: opts.Height,
			Depth:  opts.Depth,
		})
	}

	var scribing *models.Scribing
	if opts.HasScribing {
		scribing = &models.Scribing{
			Width:     cfg.Width,
			Height:    opts.ScribingHeight,
			Thickness: ScribingThickness,
		}
	}

	return models.PlinthCalc{
		Plinth: models.Plinth{
			Height:     opts.Height,
			Depth:      opts.Depth,
			Components: components,
		},
		Scribing:               scribing,
		AdjustedWardrobeHeight: cfg.Height + opts.Height,
	}
}
