package report

import (
	"wardrobe-planner/internal/planner/catalog"
	"wardrobe-planner/internal/planner/costing"
	"wardrobe-planner/internal/planner/cutlist"
	"wardrobe-planner/internal/planner/dimensions"
	"wardrobe-planner/internal/planner/models"
	"wardrobe-planner/internal/planner/plinth"
)

// ============================================================
// Report
// ============================================================

// Report: все расчеты по одной конфигурации.
type Report struct {
	Validation models.ValidationResult `json:"dimension_validation"`
	CutList    []models.CutListEntry   `json:"cut_list"`
	Plinth     models.PlinthCalc       `json:"plinth"`
	Costs      models.CostEstimate     `json:"costs"`
}

// Builder хранит справочник и параметры сметы, общие для всех запросов.
type Builder struct {
	catalog *catalog.Catalog
	costs   costing.Options
}

func NewBuilder(cat *catalog.Catalog, costs costing.Options) *Builder {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Builder{catalog: cat, costs: costs}
}

func (b *Builder) Catalog() *catalog.Catalog {
	return b.catalog
}

// Build прогоняет валидатор, раскрой, цоколь и смету.
// Раскрой и смета считаются даже для невалидной конфигурации.
func (b *Builder) Build(cfg models.Configuration, plinthOpts models.PlinthOptions) Report {
	cuts := cutlist.Generate(cfg)
	return Report{
		Validation: dimensions.Validate(cfg),
		CutList:    cuts,
		Plinth:     plinth.Calculate(cfg, plinthOpts),
		Costs:      costing.Estimate(cfg, cuts, b.catalog, b.costs),
	}
}

// Estimate считает только смету.
func (b *Builder) Estimate(cfg models.Configuration) models.CostEstimate {
	return costing.Estimate(cfg, cutlist.Generate(cfg), b.catalog, b.costs)
}
