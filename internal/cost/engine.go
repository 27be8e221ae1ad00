// Package cost prices quantity rollups against the unit-price catalog.
package cost

import (
	"errors"
	"strings"

	"baureport/internal/aggregate"
	"baureport/internal/classify"
	"baureport/internal/takeoff"
	"baureport/internal/taxonomy"
)

// TotalKey marks the synthetic trailing row summing all priced rows.
const TotalKey = "Gesamt"

// FallbackPolicy decides what an uncataloged component code costs. The source
// behavior diverges between reports, so the policy is an explicit constructor
// choice, never inferred.
type FallbackPolicy int

const (
	// FallbackZero prices unknown codes at zero. Used by the all-disciplines
	// overview and by budget actuals.
	FallbackZero FallbackPolicy = iota
	// FallbackDisciplineDefault prices unknown codes with the discipline's
	// default catalog entry. Used by the single-discipline detail report.
	FallbackDisciplineDefault
)

// ErrNilCatalog is returned when an engine is constructed without a catalog.
var ErrNilCatalog = errors.New("cost: nil catalog")

// Row is one priced group. IsTotalRow marks the synthetic trailing sum, which
// participates in no further aggregation.
type Row struct {
	Key        string
	Quantity   float64
	Unit       taxonomy.Unit
	UnitPrice  float64
	TotalCost  float64
	IsTotalRow bool
}

// Engine prices rollups and records against a catalog under one fallback
// policy.
type Engine struct {
	catalog  *taxonomy.Catalog
	fallback FallbackPolicy
}

// Option configures the engine.
type Option func(*Engine)

// WithFallback sets the fallback policy for uncataloged codes.
func WithFallback(policy FallbackPolicy) Option {
	return func(e *Engine) { e.fallback = policy }
}

// NewEngine constructs a pricing engine. The default fallback policy is
// FallbackZero.
func NewEngine(catalog *taxonomy.Catalog, opts ...Option) (*Engine, error) {
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	e := &Engine{catalog: catalog, fallback: FallbackZero}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// resolve finds the catalog entry for a component code under the engine's
// fallback policy. The boolean is false when the group prices at zero.
func (e *Engine) resolve(componentCode string) (taxonomy.Entry, bool) {
	if entry, ok := e.catalog.Lookup(componentCode); ok {
		return entry, true
	}
	if e.fallback == FallbackDisciplineDefault {
		d := disciplineOf(componentCode)
		if d.IsKnown() {
			if entry, ok := e.catalog.LookupDefault(d); ok {
				return entry, true
			}
		}
	}
	return taxonomy.Entry{}, false
}

func disciplineOf(componentCode string) taxonomy.Discipline {
	if i := strings.IndexByte(componentCode, '.'); i >= 0 {
		return taxonomy.Discipline(componentCode[:i])
	}
	return taxonomy.Discipline(componentCode)
}

// quantityFor selects the unit-dependent quantity of a rollup row. Lengths
// arrive in mm and are priced per meter.
func quantityFor(unit taxonomy.Unit, row aggregate.Row) float64 {
	switch unit {
	case taxonomy.UnitLength:
		return row.TotalLength / 1000
	case taxonomy.UnitArea:
		return row.TotalArea
	default:
		return float64(row.Count)
	}
}

// PriceRows prices every rollup group and appends the synthetic total row.
// Groups without a catalog entry under the policy contribute exactly zero
// cost but remain listed. An empty input yields only a zero total row.
func (e *Engine) PriceRows(rows []aggregate.Row) []Row {
	out := make([]Row, 0, len(rows)+1)
	var total float64
	for _, row := range rows {
		priced := Row{Key: row.Key, Unit: taxonomy.UnitCount, Quantity: float64(row.Count)}
		if entry, ok := e.resolve(row.Key); ok {
			priced.Unit = entry.Unit
			priced.UnitPrice = entry.UnitPrice
			priced.Quantity = quantityFor(entry.Unit, row)
			priced.TotalCost = priced.Quantity * entry.UnitPrice
		}
		total += priced.TotalCost
		out = append(out, priced)
	}
	return append(out, Row{Key: TotalKey, TotalCost: total, IsTotalRow: true})
}

// recordCost prices a single record under the engine's policy.
func (e *Engine) recordCost(r takeoff.ComponentRecord) float64 {
	cls, ok := classify.FromCode(r)
	if !ok {
		return 0
	}
	entry, ok := e.resolve(cls.ComponentCode)
	if !ok {
		return 0
	}
	switch entry.Unit {
	case taxonomy.UnitLength:
		return r.Length / 1000 * entry.UnitPrice
	case taxonomy.UnitArea:
		return r.Area * entry.UnitPrice
	default:
		return entry.UnitPrice
	}
}

// DisciplineTotals sums the cost of every record per known discipline, keyed
// by discipline display name. Records without a recognized discipline prefix
// are excluded; records without a catalog entry contribute per the policy.
func (e *Engine) DisciplineTotals(records []takeoff.ComponentRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		cls, ok := classify.FromCode(r)
		if !ok || !cls.Discipline.IsKnown() {
			continue
		}
		totals[cls.Discipline.DisplayName()] += e.recordCost(r)
	}
	return totals
}
