package plinth

import (
	"encoding/json"
	"testing"

	"wardrobe-planner/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wardrobe = models.Configuration{Width: 2400, Height: 2300, Depth: 600}

func TestCalculate_Defaults(t *testing.T) {
	calc := Calculate(wardrobe, DefaultOptions())

	require.Len(t, calc.Plinth.Components, 3)
	assert.Equal(t, models.PlinthComponent{Type: ComponentFront, Width: 2400, Height: 100, Depth: 50}, calc.Plinth.Components[0])
	assert.Equal(t, models.PlinthComponent{Type: ComponentLeftReturn, Width: 550, Height: 100, Depth: 50}, calc.Plinth.Components[1])
	assert.Equal(t, models.PlinthComponent{Type: ComponentRightReturn, Width: 550, Height: 100, Depth: 50}, calc.Plinth.Components[2])
	assert.Nil(t, calc.Scribing)
	assert.Equal(t, 2400.0, calc.AdjustedWardrobeHeight)
	assert.Equal(t, 100.0, calc.Plinth.Height)
	assert.Equal(t, 50.0, calc.Plinth.Depth)
}

func TestCalculate_FrontOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.HasLeft = false
	opts.HasRight = false

	calc := Calculate(wardrobe, opts)

	require.Len(t, calc.Plinth.Components, 1)
	assert.Equal(t, ComponentFront, calc.Plinth.Components[0].Type)
}

func TestCalculate_SingleReturn(t *testing.T) {
	opts := DefaultOptions()
	opts.HasLeft = false
	opts.Depth = 80

	calc := Calculate(wardrobe, opts)

	require.Len(t, calc.Plinth.Components, 2)
	assert.Equal(t, ComponentRightReturn, calc.Plinth.Components[1].Type)
	assert.Equal(t, 520.0, calc.Plinth.Components[1].Width)
}

func TestCalculate_Scribing(t *testing.T) {
	opts := DefaultOptions()
	opts.HasScribing = true
	opts.ScribingHeight = 120
	opts.Height = 150

	calc := Calculate(wardrobe, opts)

	require.NotNil(t, calc.Scribing)
	assert.Equal(t, models.Scribing{Width: 2400, Height: 120, Thickness: ScribingThickness}, *calc.Scribing)
	assert.Equal(t, 2450.0, calc.AdjustedWardrobeHeight)
}

func TestCalculate_JSONShape(t *testing.T) {
	data, err := json.Marshal(Calculate(wardrobe, DefaultOptions()))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Contains(t, out, "plinth")
	assert.Contains(t, out, "adjustedWardrobeHeight")
	assert.Nil(t, out["scribing"])
	plinth := out["plinth"].(map[string]any)
	assert.Len(t, plinth["components"], 3)
}
