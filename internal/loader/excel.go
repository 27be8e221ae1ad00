// Package loader adapts tabular workbook data into the typed record batch.
// It is the only place that knows the literal source column names; everything
// downstream works on takeoff.ComponentRecord.
package loader

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"baureport/internal/observability/metrics"
	"baureport/internal/takeoff"
)

// Literal column headers of the source sheets. Matching is case-insensitive
// and whitespace-trimmed.
const (
	colLabelCode   = "label code"
	colLabelName   = "label name"
	colType        = "type"
	colFloor       = "floor"
	colSourceModel = "file name"
	colLength      = "length"
	colArea        = "area (m²)"
	colVolume      = "volume (m³)"
)

// ErrNoSheet is returned for a workbook without any sheet.
var ErrNoSheet = errors.New("loader: workbook has no sheet")

// Stats summarizes one load.
type Stats struct {
	Loaded  int
	Skipped int // fully empty rows
}

// ReadFile loads the record batch from a workbook on disk.
func ReadFile(path string) ([]takeoff.ComponentRecord, Stats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()
	return readWorkbook(f)
}

// Read loads the record batch from workbook bytes.
func Read(r io.Reader) ([]takeoff.ComponentRecord, Stats, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, Stats{}, err
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]takeoff.ComponentRecord, Stats, error) {
	start := time.Now()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, Stats{}, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, Stats{}, err
	}
	if len(rows) == 0 {
		return []takeoff.ComponentRecord{}, Stats{}, nil
	}

	columns := headerIndex(rows[0])
	var stats Stats
	records := make([]takeoff.ComponentRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if emptyRow(row) {
			stats.Skipped++
			continue
		}
		records = append(records, takeoff.ComponentRecord{
			LabelCode:   cell(row, columns, colLabelCode),
			LabelName:   cell(row, columns, colLabelName),
			Type:        cell(row, columns, colType),
			Floor:       cell(row, columns, colFloor),
			SourceModel: cell(row, columns, colSourceModel),
			Length:      numericCell(row, columns, colLength),
			Area:        numericCell(row, columns, colArea),
			Volume:      numericCell(row, columns, colVolume),
		})
		stats.Loaded++
	}

	metrics.ObserveLoad(stats.Loaded, stats.Skipped, time.Since(start))
	return records, stats, nil
}

func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, seen := columns[key]; !seen {
			columns[key] = i
		}
	}
	return columns
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// numericCell parses a quantity cell. Missing or non-numeric values resolve
// to zero, never to an error. Comma decimal separators are accepted.
func numericCell(row []string, columns map[string]int, name string) float64 {
	raw := cell(row, columns, name)
	if raw == "" {
		return 0
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

func emptyRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
