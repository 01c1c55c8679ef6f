package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"wardrobe-planner/internal/planner/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	m, ok := c.FindBySKU("PLY-BIR-25")
	require.True(t, ok)
	assert.Equal(t, 25.0, m.ThicknessNum)

	_, ok = c.FindBySKU("nope")
	assert.False(t, ok)

	all := c.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "Backing material", all[0].Material)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"material":"Ash","thickness":"19mm","thicknessNum":19,"price":88,"sku":"ASH-19"}]`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	m, ok := c.FindByName("Ash")
	require.True(t, ok)
	assert.Equal(t, 88.0, m.Price)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o644))
	_, err = Load(empty)
	assert.Error(t, err)

	c, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.All())
}

func TestPriceFor(t *testing.T) {
	c := Default()

	assert.Equal(t, 10.0, c.PriceFor(&models.Material{Material: "Oak Veneer MDF", Price: 10}))
	assert.Equal(t, 96.0, c.PriceFor(&models.Material{SKU: "VEN-OAK-18"}))
	assert.Equal(t, 42.0, c.PriceFor(&models.Material{Material: "White Melamine"}))
	assert.Zero(t, c.PriceFor(&models.Material{Material: "Marble"}))
	assert.Zero(t, c.PriceFor(nil))
}

func TestResolve_NameAndThickness(t *testing.T) {
	c := Default()

	m, ok := c.Resolve(&models.Material{Material: "White Melamine", ThicknessNum: 16})
	require.True(t, ok)
	assert.Equal(t, "MEL-W-16", m.SKU)
	assert.Equal(t, 38.0, c.PriceFor(&models.Material{Material: "White Melamine", ThicknessNum: 16}))

	// неизвестная толщина: берем первую позицию с таким названием
	m, ok = c.Resolve(&models.Material{Material: "White Melamine", ThicknessNum: 12})
	require.True(t, ok)
	assert.Equal(t, "MEL-W-18", m.SKU)

	_, ok = c.Find("Birch Plywood", 16)
	assert.False(t, ok)
}
