// Package budget compares priced discipline totals against the planned
// budget table and allocates the planning fee.
package budget

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"baureport/internal/taxonomy"
)

// FeeKey is the distinguished budget key holding the planning-fee total.
// It is not a discipline and never enters discipline-cost summations.
const FeeKey = "Honorar"

// TotalKey marks the synthetic total row.
const TotalKey = "Gesamt"

// Table is the externally supplied planned budget: discipline display name to
// planned cost, plus the FeeKey line.
type Table struct {
	Lines map[string]float64 `yaml:"lines"`
}

// Fee returns the planning-fee total.
func (t Table) Fee() float64 { return t.Lines[FeeKey] }

// PlannedTotal sums all planned discipline costs, excluding the fee line.
func (t Table) PlannedTotal() float64 {
	var total float64
	for name, planned := range t.Lines {
		if name == FeeKey {
			continue
		}
		total += planned
	}
	return total
}

// LoadTable reads a budget table from a yaml file.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("budget: read table: %w", err)
	}
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, fmt.Errorf("budget: parse table: %w", err)
	}
	return table, nil
}

// Row is one line of the variance report. Pointer fields are nil when the
// figure is not applicable: a discipline with actual cost but no budget line
// has no deviation, which is distinct from a deviation of zero.
type Row struct {
	Discipline   string
	Actual       float64
	Planned      *float64
	Deviation    *float64
	DeviationPct *float64
	FeeSharePct  float64
	FeeAmount    float64
	IsTotalRow   bool
}

// Compare produces the variance report for every discipline present in the
// budget table or in the actuals, followed by a synthetic total row. Total
// figures are recomputed from the raw sums, never from per-row values, so row
// rounding can never drift the totals.
func Compare(actual map[string]float64, table Table) []Row {
	totalPlanned := table.PlannedTotal()
	fee := table.Fee()

	rows := make([]Row, 0, len(table.Lines)+1)
	var totalActual float64
	for _, name := range rowOrder(actual, table) {
		row := Row{Discipline: name, Actual: actual[name]}
		totalActual += row.Actual
		if planned, ok := table.Lines[name]; ok {
			p := planned
			deviation := row.Actual - p
			row.Planned = &p
			row.Deviation = &deviation
			if p != 0 {
				pct := deviation / p * 100
				row.DeviationPct = &pct
			}
			if totalPlanned != 0 {
				row.FeeSharePct = p / totalPlanned * 100
				row.FeeAmount = row.FeeSharePct / 100 * fee
			}
		}
		rows = append(rows, row)
	}

	total := Row{Discipline: TotalKey, Actual: totalActual, IsTotalRow: true}
	tp := totalPlanned
	total.Planned = &tp
	deviation := totalActual - totalPlanned
	total.Deviation = &deviation
	if totalPlanned != 0 {
		pct := deviation / totalPlanned * 100
		total.DeviationPct = &pct
		total.FeeSharePct = 100
		total.FeeAmount = fee
	}
	return append(rows, total)
}

// rowOrder yields every discipline named by the budget table or the actuals:
// known disciplines first in display order, unknown names sorted after.
func rowOrder(actual map[string]float64, table Table) []string {
	present := make(map[string]bool, len(actual)+len(table.Lines))
	for name := range actual {
		present[name] = true
	}
	for name := range table.Lines {
		if name != FeeKey {
			present[name] = true
		}
	}

	var out []string
	for _, d := range taxonomy.Disciplines() {
		name := d.DisplayName()
		if present[name] {
			out = append(out, name)
			delete(present, name)
		}
	}
	rest := make([]string, 0, len(present))
	for name := range present {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
