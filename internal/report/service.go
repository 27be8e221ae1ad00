// Package report composes the takeoff pipeline stages into decision-ready
// reports. Every report is a pure function of the immutable record batch, the
// filter set and the static reference tables; there is no hidden state and no
// incremental recomputation.
package report

import (
	"time"

	"baureport/internal/aggregate"
	"baureport/internal/budget"
	"baureport/internal/classify"
	"baureport/internal/cost"
	"baureport/internal/observability/metrics"
	"baureport/internal/takeoff"
	"baureport/internal/taxonomy"
)

// defaultTopComponents is the conventional display threshold before the
// remainder folds into the Diverse row.
const defaultTopComponents = 4

// ProjectMeta is free-text project information passed through verbatim.
type ProjectMeta struct {
	Name      string `yaml:"name"`
	Number    string `yaml:"number"`
	Client    string `yaml:"client"`
	Architect string `yaml:"architect"`
}

// Report is one computed snapshot for a filter set. All slices are plain data
// for the presentation layer; numbers are unformatted.
type Report struct {
	Filter      takeoff.FilterSet
	ExpandAll   bool
	Meta        ProjectMeta
	RecordCount int

	ByComponentCode []aggregate.Row
	TopComponents   []aggregate.Row
	ByDiscipline    []aggregate.Row

	// TypeOverview buckets the focused discipline's records by heuristic
	// name family. Empty unless the filter focuses one known discipline.
	TypeOverview []aggregate.Row

	// CostDetail breaks the focused discipline down by component code with
	// unit, unit price and quantity per code, priced with the discipline
	// default fallback. Empty unless one known discipline is in focus.
	CostDetail []cost.Row

	// DisciplineCosts holds the all-disciplines actuals by discipline display
	// name, priced with the zero fallback.
	DisciplineCosts map[string]float64

	BudgetRows    []budget.Row
	Disagreements []classify.Disagreement
}

// Service computes reports against fixed reference data.
type Service struct {
	catalog  *taxonomy.Catalog
	budget   budget.Table
	meta     ProjectMeta
	topN     int
	overview *cost.Engine
	detail   *cost.Engine
}

// Option configures the service.
type Option func(*Service)

// WithMeta sets the verbatim project metadata.
func WithMeta(meta ProjectMeta) Option {
	return func(s *Service) { s.meta = meta }
}

// WithTopComponents overrides the top-N threshold of the component ranking.
func WithTopComponents(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// NewService builds a report service. The all-disciplines overview prices
// unknown codes at zero; the single-discipline detail falls back to the
// discipline default entry. Both policies are fixed here, per report kind.
func NewService(catalog *taxonomy.Catalog, table budget.Table, opts ...Option) (*Service, error) {
	overview, err := cost.NewEngine(catalog)
	if err != nil {
		return nil, err
	}
	detail, err := cost.NewEngine(catalog, cost.WithFallback(cost.FallbackDisciplineDefault))
	if err != nil {
		return nil, err
	}
	s := &Service{
		catalog:  catalog,
		budget:   table,
		topN:     defaultTopComponents,
		overview: overview,
		detail:   detail,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Compute runs the full pipeline for one filter set. It never fails on data:
// malformed records degrade to zero/absent values and an empty filtered set
// yields an all-zero report.
func (s *Service) Compute(batch []takeoff.ComponentRecord, filter takeoff.FilterSet) Report {
	start := time.Now()

	filtered := takeoff.Apply(batch, filter)
	byCode := aggregate.ByComponentCode(filtered)

	r := Report{
		Filter:          filter,
		ExpandAll:       filter.ExpandAll(),
		Meta:            s.meta,
		RecordCount:     len(filtered),
		ByComponentCode: byCode,
		TopComponents:   aggregate.TopWithRemainder(byCode, s.topN),
		ByDiscipline:    aggregate.ByDiscipline(filtered),
		DisciplineCosts: s.overview.DisciplineTotals(filtered),
		Disagreements:   classify.Disagreements(filtered, s.catalog),
	}
	r.BudgetRows = budget.Compare(r.DisciplineCosts, s.budget)

	if d := taxonomy.Discipline(filter.Discipline); d.IsKnown() {
		r.TypeOverview = aggregate.ByFamily(s.typeOverviewPool(batch, filter, d))
		r.CostDetail = s.detail.PriceRows(byCode)
	}

	metrics.ObserveReportRun(len(filtered), time.Since(start))
	return r
}

// typeOverviewPool selects the records feeding the discipline type overview.
// Records without a label code cannot match the discipline constraint by code
// but stay visible to the name-heuristic path, so they are kept alongside the
// discipline's coded records (all other constraints still apply).
func (s *Service) typeOverviewPool(batch []takeoff.ComponentRecord, filter takeoff.FilterSet, d taxonomy.Discipline) []takeoff.ComponentRecord {
	rest := filter
	rest.Discipline = ""
	pool := make([]takeoff.ComponentRecord, 0)
	for _, r := range takeoff.Apply(batch, rest) {
		if !r.HasCode() || r.LabelDiscipline() == string(d) {
			pool = append(pool, r)
		}
	}
	return pool
}
