package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"wardrobe-planner/internal/planner/cutlist"
	"wardrobe-planner/internal/planner/models"

	"github.com/xuri/excelize/v2"
)

// ============================================================
// Cut List Export
// ============================================================

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	cutListSheet = "Cut List"
	costsSheet   = "Costs"
)

var cutListHeaders = []string{
	"Section", "Carcass", "Component", "Width", "Height", "Depth", "Thickness", "Material", "Quantity",
}

var costHeaders = []string{
	"Material", "SKU", "Thickness", "Panels", "Area (m²)", "Sheets", "Price / sheet", "Cost",
}

// ContentType возвращает MIME-тип для формата выгрузки.
func ContentType(format string) string {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

// CSV пишет таблицу раскроя. Размеры, которых у детали нет, выводятся
// пустыми ячейками.
func CSV(w io.Writer, entries []models.CutListEntry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(cutListHeaders); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, e := range entries {
		hasWidth, hasHeight, hasDepth := e.Axes()
		record := []string{
			strconv.Itoa(e.Section),
			strconv.Itoa(e.Carcass),
			e.Component,
			dimension(e.Width, hasWidth),
			dimension(e.Height, hasHeight),
			dimension(e.Depth, hasDepth),
			dimension(e.Thickness, true),
			e.Material,
			strconv.Itoa(e.Quantity),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// XLSX собирает книгу с листом раскроя и, если передана смета, листом затрат.
func XLSX(entries []models.CutListEntry, estimate *models.CostEstimate) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", cutListSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	// Заголовок: жирный с заливкой
	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create style: %w", err)
	}

	writeHeader(f, cutListSheet, cutListHeaders, boldStyle)

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(cutListSheet, fmt.Sprintf("A%d", row), e.Section)
		f.SetCellValue(cutListSheet, fmt.Sprintf("B%d", row), e.Carcass)
		f.SetCellValue(cutListSheet, fmt.Sprintf("C%d", row), e.Component)
		hasWidth, hasHeight, hasDepth := e.Axes()
		setDimension(f, cutListSheet, fmt.Sprintf("D%d", row), e.Width, hasWidth)
		setDimension(f, cutListSheet, fmt.Sprintf("E%d", row), e.Height, hasHeight)
		setDimension(f, cutListSheet, fmt.Sprintf("F%d", row), e.Depth, hasDepth)
		f.SetCellValue(cutListSheet, fmt.Sprintf("G%d", row), e.Thickness)
		f.SetCellValue(cutListSheet, fmt.Sprintf("H%d", row), e.Material)
		f.SetCellValue(cutListSheet, fmt.Sprintf("I%d", row), e.Quantity)
	}

	summaryRow := len(entries) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellValue(cutListSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(cutListSheet, fmt.Sprintf("I%d", summaryRow), cutlist.TotalPanels(entries))
	f.SetCellStyle(cutListSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("I%d", summaryRow), summaryStyle)

	setColWidths(f, cutListSheet, []float64{9, 9, 18, 10, 10, 10, 10, 22, 9})

	if estimate != nil {
		if err := writeCosts(f, estimate, boldStyle, summaryStyle); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeCosts(f *excelize.File, estimate *models.CostEstimate, headerStyle, summaryStyle int) error {
	if _, err := f.NewSheet(costsSheet); err != nil {
		return fmt.Errorf("create costs sheet: %w", err)
	}

	writeHeader(f, costsSheet, costHeaders, headerStyle)

	for i, line := range estimate.Lines {
		row := i + 2
		f.SetCellValue(costsSheet, fmt.Sprintf("A%d", row), line.Material)
		f.SetCellValue(costsSheet, fmt.Sprintf("B%d", row), line.SKU)
		f.SetCellValue(costsSheet, fmt.Sprintf("C%d", row), line.Thickness)
		f.SetCellValue(costsSheet, fmt.Sprintf("D%d", row), line.Panels)
		f.SetCellValue(costsSheet, fmt.Sprintf("E%d", row), line.Area/1e6)
		f.SetCellValue(costsSheet, fmt.Sprintf("F%d", row), line.Sheets)
		f.SetCellValue(costsSheet, fmt.Sprintf("G%d", row), line.PricePerSheet)
		f.SetCellValue(costsSheet, fmt.Sprintf("H%d", row), line.Cost)
	}

	summaryRow := len(estimate.Lines) + 2
	f.SetCellValue(costsSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(costsSheet, fmt.Sprintf("E%d", summaryRow), estimate.TotalArea/1e6)
	f.SetCellValue(costsSheet, fmt.Sprintf("F%d", summaryRow), estimate.TotalSheets)
	f.SetCellValue(costsSheet, fmt.Sprintf("H%d", summaryRow), estimate.Total)
	f.SetCellStyle(costsSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	setColWidths(f, costsSheet, []float64{22, 14, 10, 8, 10, 8, 12, 12})
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func setColWidths(f *excelize.File, sheet string, widths []float64) {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
}

func setDimension(f *excelize.File, sheet, cell string, v float64, has bool) {
	if has {
		f.SetCellValue(sheet, cell, v)
	}
}

func dimension(v float64, has bool) string {
	if !has {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
