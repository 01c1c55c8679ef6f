package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"wardrobe-planner/internal/planner/models"
)

// ============================================================
// Material Catalog
// ============================================================

// Catalog: справочник материалов. После создания не меняется,
// поэтому читать его можно из нескольких горутин.
type Catalog struct {
	materials []models.Material
	bySKU     map[string]models.Material
	byName    map[string]models.Material
	bySize    map[sizeKey]models.Material
}

type sizeKey struct {
	name      string
	thickness float64
}

func New(materials []models.Material) *Catalog {
	c := &Catalog{
		materials: append([]models.Material(nil), materials...),
		bySKU:     make(map[string]models.Material, len(materials)),
		byName:    make(map[string]models.Material, len(materials)),
		bySize:    make(map[sizeKey]models.Material, len(materials)),
	}
	for _, m := range c.materials {
		if m.SKU != "" {
			c.bySKU[m.SKU] = m
		}
		if _, ok := c.byName[m.Material]; !ok {
			c.byName[m.Material] = m
		}
		key := sizeKey{m.Material, m.ThicknessNum}
		if _, ok := c.bySize[key]; !ok {
			c.bySize[key] = m
		}
	}
	sort.SliceStable(c.materials, func(i, j int) bool {
		if c.materials[i].Material != c.materials[j].Material {
			return c.materials[i].Material < c.materials[j].Material
		}
		return c.materials[i].ThicknessNum < c.materials[j].ThicknessNum
	})
	return c
}

// Default возвращает встроенный справочник.
func Default() *Catalog {
	return New([]models.Material{
		{Material: "White Melamine", Thickness: "18mm", ThicknessNum: 18, Price: 42, SKU: "MEL-W-18"},
		{Material: "White Melamine", Thickness: "16mm", ThicknessNum: 16, Price: 38, SKU: "MEL-W-16"},
		{Material: "Grey Melamine", Thickness: "18mm", ThicknessNum: 18, Price: 46, SKU: "MEL-G-18"},
		{Material: "Oak Veneer MDF", Thickness: "18mm", ThicknessNum: 18, Price: 96, SKU: "VEN-OAK-18"},
		{Material: "Walnut Veneer MDF", Thickness: "18mm", ThicknessNum: 18, Price: 128, SKU: "VEN-WAL-18"},
		{Material: "Birch Plywood", Thickness: "18mm", ThicknessNum: 18, Price: 74, SKU: "PLY-BIR-18"},
		{Material: "Birch Plywood", Thickness: "25mm", ThicknessNum: 25, Price: 99, SKU: "PLY-BIR-25"},
		{Material: "Backing material", Thickness: "6mm", ThicknessNum: 6, Price: 14, SKU: "HDF-6"},
	})
}

// Load читает справочник из JSON-файла (массив материалов).
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var materials []models.Material
	if err := json.Unmarshal(data, &materials); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(materials) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	return New(materials), nil
}

// LoadOrDefault читает файл, если путь задан, иначе отдает встроенный справочник.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func (c *Catalog) All() []models.Material {
	return append([]models.Material(nil), c.materials...)
}

func (c *Catalog) FindBySKU(sku string) (models.Material, bool) {
	m, ok := c.bySKU[sku]
	return m, ok
}

func (c *Catalog) FindByName(name string) (models.Material, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Find ищет материал по названию и толщине.
func (c *Catalog) Find(name string, thickness float64) (models.Material, bool) {
	m, ok := c.bySize[sizeKey{name, thickness}]
	return m, ok
}

// Resolve подбирает позицию справочника для материала короба:
// по SKU, затем по названию и толщине, затем только по названию.
func (c *Catalog) Resolve(m *models.Material) (models.Material, bool) {
	if m == nil {
		return models.Material{}, false
	}
	if m.SKU != "" {
		if found, ok := c.FindBySKU(m.SKU); ok {
			return found, true
		}
	}
	if m.ThicknessNum > 0 {
		if found, ok := c.Find(m.Material, m.ThicknessNum); ok {
			return found, true
		}
	}
	return c.FindByName(m.Material)
}

// PriceFor отдает цену листа: своя цена материала важнее справочника.
func (c *Catalog) PriceFor(m *models.Material) float64 {
	if m == nil {
		return 0
	}
	if m.Price > 0 {
		return m.Price
	}
	if found, ok := c.Resolve(m); ok {
		return found.Price
	}
	return 0
}
