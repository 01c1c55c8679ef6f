package models

import (
	planner "wardrobe-planner/internal/planner/models"
	"wardrobe-planner/internal/planner/report"
)

// ============================================================
// Build Model
// ============================================================

// Build: сохраненная конфигурация шкафа вместе с результатами расчетов
// на момент последнего пересчета.
type Build struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Configuration planner.Configuration `json:"configuration"`
	PlinthOptions planner.PlinthOptions `json:"plinth_options"`
	report.Report
	Valid     bool   `json:"valid"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Summary: строка списка сборок.
type Summary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Valid     bool    `json:"valid"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// Artifact: выгруженный файл сборки (раскрой, фасад) в хранилище.
type Artifact struct {
	BuildID     string `json:"build_id"`
	Format      string `json:"format"`
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	CreatedAt   string `json:"created_at"`
}
