// Package aggregate rolls filtered record sets up into per-group quantity
// rows. Every variant is a single linear pass over the records.
package aggregate

import (
	"sort"

	"baureport/internal/classify"
	"baureport/internal/takeoff"
)

// Synthetic group keys. Neither is a real taxonomy node.
const (
	GroupUnclassified = "Unklassifiziert"
	GroupDiverse      = "Diverse"
)

// Row is one rollup group: record count plus summed quantities.
type Row struct {
	Key         string
	Count       int
	TotalLength float64 // mm
	TotalArea   float64 // m²
	TotalVolume float64 // m³
}

// accumulate performs the shared single-pass grouping. keyFn returns the
// group key for a record, or false to leave the record out of this grouping.
// Groups keep first-seen order.
func accumulate(records []takeoff.ComponentRecord, keyFn func(takeoff.ComponentRecord) (string, bool)) []Row {
	index := make(map[string]int)
	rows := make([]Row, 0)
	for _, r := range records {
		key, ok := keyFn(r)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(rows)
			index[key] = i
			rows = append(rows, Row{Key: key})
		}
		rows[i].Count++
		rows[i].TotalLength += r.Length
		rows[i].TotalArea += r.Area
		rows[i].TotalVolume += r.Volume
	}
	return rows
}

// ByComponentCode groups records by their component code. Records without a
// parseable code land in the explicit Unklassifiziert bucket, so group counts
// always sum to the input record count.
func ByComponentCode(records []takeoff.ComponentRecord) []Row {
	return accumulate(records, func(r takeoff.ComponentRecord) (string, bool) {
		if cls, ok := classify.FromCode(r); ok {
			return cls.ComponentCode, true
		}
		return GroupUnclassified, true
	})
}

// ByDiscipline groups records by their discipline prefix. Records with no
// code or an unrecognized prefix are excluded from this discipline-scoped
// view; they stay visible to ByComponentCode.
func ByDiscipline(records []takeoff.ComponentRecord) []Row {
	return accumulate(records, func(r takeoff.ComponentRecord) (string, bool) {
		cls, ok := classify.FromCode(r)
		if !ok || !cls.Discipline.IsKnown() {
			return "", false
		}
		return string(cls.Discipline), true
	})
}

// ByFamily groups records by their heuristic name family for the discipline
// type overview. Callers narrow the records to the discipline in focus first;
// records matching no family are left out of the bucketing but were still
// counted by the other rollups.
func ByFamily(records []takeoff.ComponentRecord) []Row {
	return accumulate(records, func(r takeoff.ComponentRecord) (string, bool) {
		family, ok := classify.MatchFamily(r.LabelName)
		if !ok {
			return "", false
		}
		return string(family), true
	})
}

// TopWithRemainder ranks rows by count descending (key ascending on ties) and
// folds everything past the first n rows into a synthetic Diverse row. The
// conventional display threshold is 4.
func TopWithRemainder(rows []Row, n int) []Row {
	ranked := make([]Row, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Key < ranked[j].Key
	})
	if n < 0 || len(ranked) <= n {
		return ranked
	}
	out := ranked[:n:n]
	rest := Row{Key: GroupDiverse}
	for _, row := range ranked[n:] {
		rest.Count += row.Count
		rest.TotalLength += row.TotalLength
		rest.TotalArea += row.TotalArea
		rest.TotalVolume += row.TotalVolume
	}
	return append(out, rest)
}
