package takeoff

import "baureport/internal/taxonomy"

// FilterSet is an explicit, serializable selection over a record batch.
// An empty field means "no constraint" for that dimension. Filtering with a
// FilterSet is commutative, associative and idempotent; callers may apply
// filters one at a time or merged, in any order, with identical results.
type FilterSet struct {
	Discipline    string `yaml:"discipline"`
	SourceModel   string `yaml:"source_model"`
	Floor         string `yaml:"floor"`
	Type          string `yaml:"type"`
	ComponentName string `yaml:"component_name"`
}

// IsZero reports whether no constraint is set.
func (f FilterSet) IsZero() bool {
	return f.disciplineConstraint() == "" && f.SourceModel == "" &&
		f.Floor == "" && f.Type == "" && f.ComponentName == ""
}

// ExpandAll reports whether the discipline field carries the expanded-view
// flag. The flag changes grouping downstream and never filters records.
func (f FilterSet) ExpandAll() bool {
	return f.Discipline == taxonomy.FilterExpandAll
}

// disciplineConstraint maps the meta values "Alle" and "ExpandAll" to
// "no constraint"; anything else is a literal discipline prefix.
func (f FilterSet) disciplineConstraint() string {
	switch f.Discipline {
	case "", taxonomy.FilterAll, taxonomy.FilterExpandAll:
		return ""
	}
	return f.Discipline
}

// Merge unions two filter sets. Fields set on other replace fields set on f,
// so merging disjoint sets is the filter union used by the pipeline algebra.
func (f FilterSet) Merge(other FilterSet) FilterSet {
	merged := f
	if other.Discipline != "" {
		merged.Discipline = other.Discipline
	}
	if other.SourceModel != "" {
		merged.SourceModel = other.SourceModel
	}
	if other.Floor != "" {
		merged.Floor = other.Floor
	}
	if other.Type != "" {
		merged.Type = other.Type
	}
	if other.ComponentName != "" {
		merged.ComponentName = other.ComponentName
	}
	return merged
}

// Matches reports whether a single record satisfies every set constraint.
func (f FilterSet) Matches(r ComponentRecord) bool {
	if want := f.disciplineConstraint(); want != "" && r.LabelDiscipline() != want {
		return false
	}
	if f.SourceModel != "" && r.SourceModel != f.SourceModel {
		return false
	}
	if f.Floor != "" && r.Floor != f.Floor {
		return false
	}
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.ComponentName != "" && r.LabelName != f.ComponentName {
		return false
	}
	return true
}

// Apply returns the subset of records satisfying the filter set. The input
// slice is never mutated; record order is preserved.
func Apply(records []ComponentRecord, filter FilterSet) []ComponentRecord {
	if filter.IsZero() {
		out := make([]ComponentRecord, len(records))
		copy(out, records)
		return out
	}
	out := make([]ComponentRecord, 0, len(records))
	for _, r := range records {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
