// Package export renders computed reports as XLSX and PDF documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"baureport/internal/report"
	"baureport/internal/taxonomy"
)

// BuildReportPDF renders a minimal PDF for a computed report.
func BuildReportPDF(r report.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Mengen- und Kostenauswertung")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if r.Meta.Name != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Projekt: %s", r.Meta.Name))
		pdf.Ln(5)
	}
	if r.Meta.Number != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Projektnummer: %s", r.Meta.Number))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Gewerk: %s", filterLabel(r.Filter.Discipline)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Bauteile: %d", r.RecordCount))
	pdf.Ln(8)

	// Discipline rollup table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(40, 6, "Gewerk", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Anzahl", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Länge (mm)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Fläche (m²)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Kosten", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range r.ByDiscipline {
		name := taxonomy.Discipline(row.Key).DisplayName()
		pdf.CellFormat(40, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", row.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.0f", row.TotalLength), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", row.TotalArea), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", r.DisciplineCosts[name]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Gewerk", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Ist", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Budget", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Abweichung", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Honorar", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, row := range r.BudgetRows {
		pdf.CellFormat(50, 6, row.Discipline, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%.2f", row.Actual), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, floatOrNA(row.Planned), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, floatOrNA(row.Deviation), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.FeeAmount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders a workbook with rollup, cost and budget sheets.
func BuildReportXLSX(r report.Report) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "übersicht"
	componentSheet := "bauteile"
	disciplineSheet := "gewerke"
	budgetSheet := "budget"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(componentSheet)
	f.NewSheet(disciplineSheet)
	f.NewSheet(budgetSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Mengen- und Kostenauswertung")
	_ = f.SetCellValue(summarySheet, "A3", "Projekt")
	_ = f.SetCellValue(summarySheet, "B3", r.Meta.Name)
	_ = f.SetCellValue(summarySheet, "A4", "Projektnummer")
	_ = f.SetCellValue(summarySheet, "B4", r.Meta.Number)
	_ = f.SetCellValue(summarySheet, "A5", "Bauherr")
	_ = f.SetCellValue(summarySheet, "B5", r.Meta.Client)
	_ = f.SetCellValue(summarySheet, "A6", "Gewerk")
	_ = f.SetCellValue(summarySheet, "B6", filterLabel(r.Filter.Discipline))
	_ = f.SetCellValue(summarySheet, "A7", "Bauteile")
	_ = f.SetCellValue(summarySheet, "B7", r.RecordCount)

	_ = f.SetCellValue(componentSheet, "A1", "Bauteilcode")
	_ = f.SetCellValue(componentSheet, "B1", "Anzahl")
	_ = f.SetCellValue(componentSheet, "C1", "Länge (mm)")
	_ = f.SetCellValue(componentSheet, "D1", "Fläche (m²)")
	_ = f.SetCellValue(componentSheet, "E1", "Volumen (m³)")
	for i, row := range r.ByComponentCode {
		n := i + 2
		_ = f.SetCellValue(componentSheet, fmt.Sprintf("A%d", n), row.Key)
		_ = f.SetCellValue(componentSheet, fmt.Sprintf("B%d", n), row.Count)
		_ = f.SetCellValue(componentSheet, fmt.Sprintf("C%d", n), row.TotalLength)
		_ = f.SetCellValue(componentSheet, fmt.Sprintf("D%d", n), row.TotalArea)
		_ = f.SetCellValue(componentSheet, fmt.Sprintf("E%d", n), row.TotalVolume)
	}

	_ = f.SetCellValue(disciplineSheet, "A1", "Gewerk")
	_ = f.SetCellValue(disciplineSheet, "B1", "Anzahl")
	_ = f.SetCellValue(disciplineSheet, "C1", "Kosten")
	for i, row := range r.ByDiscipline {
		n := i + 2
		name := taxonomy.Discipline(row.Key).DisplayName()
		_ = f.SetCellValue(disciplineSheet, fmt.Sprintf("A%d", n), name)
		_ = f.SetCellValue(disciplineSheet, fmt.Sprintf("B%d", n), row.Count)
		_ = f.SetCellValue(disciplineSheet, fmt.Sprintf("C%d", n), r.DisciplineCosts[name])
	}

	_ = f.SetCellValue(budgetSheet, "A1", "Gewerk")
	_ = f.SetCellValue(budgetSheet, "B1", "Ist")
	_ = f.SetCellValue(budgetSheet, "C1", "Budget")
	_ = f.SetCellValue(budgetSheet, "D1", "Abweichung")
	_ = f.SetCellValue(budgetSheet, "E1", "Honoraranteil (%)")
	_ = f.SetCellValue(budgetSheet, "F1", "Honorar")
	for i, row := range r.BudgetRows {
		n := i + 2
		_ = f.SetCellValue(budgetSheet, fmt.Sprintf("A%d", n), row.Discipline)
		_ = f.SetCellValue(budgetSheet, fmt.Sprintf("B%d", n), row.Actual)
		if row.Planned != nil {
			_ = f.SetCellValue(budgetSheet, fmt.Sprintf("C%d", n), *row.Planned)
		}
		if row.Deviation != nil {
			_ = f.SetCellValue(budgetSheet, fmt.Sprintf("D%d", n), *row.Deviation)
		} else {
			_ = f.SetCellValue(budgetSheet, fmt.Sprintf("D%d", n), "n/a")
		}
		_ = f.SetCellValue(budgetSheet, fmt.Sprintf("E%d", n), row.FeeSharePct)
		_ = f.SetCellValue(budgetSheet, fmt.Sprintf("F%d", n), row.FeeAmount)
	}

	if len(r.CostDetail) > 0 {
		costSheet := "kosten"
		f.NewSheet(costSheet)
		_ = f.SetCellValue(costSheet, "A1", "Bauteilcode")
		_ = f.SetCellValue(costSheet, "B1", "Menge")
		_ = f.SetCellValue(costSheet, "C1", "Einheit")
		_ = f.SetCellValue(costSheet, "D1", "Einheitspreis")
		_ = f.SetCellValue(costSheet, "E1", "Kosten")
		for i, row := range r.CostDetail {
			n := i + 2
			_ = f.SetCellValue(costSheet, fmt.Sprintf("A%d", n), row.Key)
			if !row.IsTotalRow {
				_ = f.SetCellValue(costSheet, fmt.Sprintf("B%d", n), row.Quantity)
				_ = f.SetCellValue(costSheet, fmt.Sprintf("C%d", n), string(row.Unit))
				_ = f.SetCellValue(costSheet, fmt.Sprintf("D%d", n), row.UnitPrice)
			}
			_ = f.SetCellValue(costSheet, fmt.Sprintf("E%d", n), row.TotalCost)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func filterLabel(discipline string) string {
	switch discipline {
	case "", taxonomy.FilterAll, taxonomy.FilterExpandAll:
		return taxonomy.FilterAll
	}
	return taxonomy.Discipline(discipline).DisplayName()
}

func floatOrNA(value *float64) string {
	if value == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *value)
}
