package models

import "encoding/json"

// ============================================================
// Configuration tree
// ============================================================

// Типы внутренних секций корпуса
const (
	InteriorDrawers    = "drawers"
	InteriorRail       = "rail"
	InteriorDoubleRail = "double_rail"
	InteriorShelves    = "shelves"
	InteriorEmpty      = "empty"
)

// Configuration: внешний габарит изделия (мм) и вертикальные секции.
type Configuration struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Depth    float64   `json:"depth"`
	Sections []Section `json:"sections"`
}

// Section: вертикальный срез на всю высоту шкафа.
type Section struct {
	ID        string    `json:"id,omitempty"`
	Width     float64   `json:"width"`
	Carcasses []Carcass `json:"carcasses"`
}

// Carcass: короб: крышка, дно, две боковины и задняя стенка.
// Нулевые Width/Depth берутся из секции и конфигурации.
type Carcass struct {
	ID               string            `json:"id,omitempty"`
	Height           float64           `json:"height"`
	Width            float64           `json:"width,omitempty"`
	Depth            float64           `json:"depth,omitempty"`
	Material         *Material         `json:"material,omitempty"`
	InteriorSections []InteriorSection `json:"interiorSections"`
}

type InteriorSection struct {
	ID         string  `json:"id,omitempty"`
	Type       string  `json:"type"`
	Height     float64 `json:"height"`
	Drawers    int     `json:"drawers,omitempty"`
	ShelfCount int     `json:"shelfCount,omitempty"`
	IsExternal bool    `json:"isExternal,omitempty"`
}

// Material: листовой материал с ценой за лист.
type Material struct {
	Material     string  `json:"material"`
	Thickness    string  `json:"thickness"`
	ThicknessNum float64 `json:"thicknessNum"`
	Price        float64 `json:"price"`
	SKU          string  `json:"sku"`
}

// ThicknessOf возвращает толщину материала или 0, если материал не задан.
func ThicknessOf(m *Material) float64 {
	if m == nil {
		return 0
	}
	return m.ThicknessNum
}

// ============================================================
// Validation result
// ============================================================

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type PanelThickness struct {
	Sides     float64 `json:"sides"`
	TopBottom float64 `json:"topBottom"`
	Back      float64 `json:"back"`
}

// CarcassCalc: расчет внешних и внутренних размеров одного короба.
// Section и Carcass нумеруются с 1.
type CarcassCalc struct {
	Section        int            `json:"section"`
	Carcass        int            `json:"carcass"`
	Material       string         `json:"material"`
	Thickness      float64        `json:"thickness"`
	External       Dimensions     `json:"external"`
	Internal       Dimensions     `json:"internal"`
	PanelThickness PanelThickness `json:"panelThickness"`
}

type ValidationResult struct {
	Valid        bool          `json:"valid"`
	Errors       []string      `json:"errors"`
	Warnings     []string      `json:"warnings"`
	Calculations []CarcassCalc `json:"calculations"`
}

// ============================================================
// Cut list
// ============================================================

// Виды деталей короба. Полки называются "Shelves (Nx)".
const (
	ComponentTop       = "Top"
	ComponentBottom    = "Bottom"
	ComponentLeftSide  = "Left Side"
	ComponentRightSide = "Right Side"
	ComponentBack      = "Back"
)

// CutListEntry: одна деталь раскроя. В зависимости от детали
// заполняются width×depth, height×depth или width×height.
type CutListEntry struct {
	Section   int     `json:"section"`
	Carcass   int     `json:"carcass"`
	Component string  `json:"component"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Depth     float64 `json:"depth,omitempty"`
	Thickness float64 `json:"thickness"`
	Material  string  `json:"material"`
	Quantity  int     `json:"quantity"`
}

// Axes говорит, какие размеры есть у детали такого вида.
func (e CutListEntry) Axes() (width, height, depth bool) {
	switch e.Component {
	case ComponentLeftSide, ComponentRightSide:
		return false, true, true
	case ComponentBack:
		return true, true, false
	default:
		return true, false, true
	}
}

// Sides возвращает две стороны детали по ее виду, даже если одна из них 0.
func (e CutListEntry) Sides() (float64, float64) {
	w, h, _ := e.Axes()
	switch {
	case !w:
		return e.Height, e.Depth
	case h:
		return e.Width, e.Height
	default:
		return e.Width, e.Depth
	}
}

// MarshalJSON пишет размеры, которые есть у детали, включая нулевые.
func (e CutListEntry) MarshalJSON() ([]byte, error) {
	type entry CutListEntry
	out := struct {
		entry
		Width  *float64 `json:"width,omitempty"`
		Height *float64 `json:"height,omitempty"`
		Depth  *float64 `json:"depth,omitempty"`
	}{entry: entry(e)}

	w, h, d := e.Axes()
	if w {
		out.Width = &e.Width
	}
	if h {
		out.Height = &e.Height
	}
	if d {
		out.Depth = &e.Depth
	}
	return json.Marshal(out)
}

// Area возвращает площадь одной детали, мм².
func (e CutListEntry) Area() float64 {
	a, b := e.Sides()
	return a * b
}

// ============================================================
// Plinth
// ============================================================

type PlinthOptions struct {
	Height         float64 `json:"height"`
	Depth          float64 `json:"depth"`
	HasLeft        bool    `json:"hasLeft"`
	HasRight       bool    `json:"hasRight"`
	HasScribing    bool    `json:"hasScribing"`
	ScribingHeight float64 `json:"scribingHeight"`
}

type PlinthComponent struct {
	Type   string  `json:"type"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type Plinth struct {
	Height     float64           `json:"height"`
	Depth      float64           `json:"depth"`
	Components []PlinthComponent `json:"components"`
}

type Scribing struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
}

type PlinthCalc struct {
	Plinth                 Plinth    `json:"plinth"`
	Scribing               *Scribing `json:"scribing"`
	AdjustedWardrobeHeight float64   `json:"adjustedWardrobeHeight"`
}

// ============================================================
// Costs
// ============================================================

type CostLine struct {
	Material      string  `json:"material"`
	SKU           string  `json:"sku,omitempty"`
	Thickness     float64 `json:"thickness"`
	Panels        int     `json:"panels"`
	Area          float64 `json:"area"`
	SheetsExact   float64 `json:"sheetsExact"`
	Sheets        int     `json:"sheets"`
	PricePerSheet float64 `json:"pricePerSheet"`
	Cost          float64 `json:"cost"`
}

type CostEstimate struct {
	Lines        []CostLine `json:"lines"`
	SheetWidth   float64    `json:"sheetWidth"`
	SheetHeight  float64    `json:"sheetHeight"`
	Kerf         float64    `json:"kerf"`
	WastePercent float64    `json:"wastePercent"`
	TotalArea    float64    `json:"totalArea"`
	TotalSheets  int        `json:"totalSheets"`
	Total        float64    `json:"total"`
}
