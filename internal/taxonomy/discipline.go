// Package taxonomy holds the static reference data of the takeoff pipeline:
// the discipline table and the unit-price catalog.
package taxonomy

// Discipline is a top-level trade prefix of a component code.
type Discipline string

// Known disciplines.
const (
	DisciplineKO  Discipline = "KO"
	DisciplineSN  Discipline = "SN"
	DisciplineEL  Discipline = "EL"
	DisciplineSPR Discipline = "SPR"
	DisciplineHZ  Discipline = "HZ"
	DisciplineKT  Discipline = "KT"
	DisciplineLF  Discipline = "LF"
)

// Meta filter values. FilterAll means "no discipline constraint". FilterExpandAll
// is a view-mode flag for expanded grouping and must never constrain records.
const (
	FilterAll       = "Alle"
	FilterExpandAll = "ExpandAll"
)

// DisciplineInfo carries the presentation attributes of a discipline.
type DisciplineInfo struct {
	DisplayName string
	Color       string
}

var disciplineTable = map[Discipline]DisciplineInfo{
	DisciplineKO:  {DisplayName: "Konstruktion", Color: "#8d99ae"},
	DisciplineSN:  {DisplayName: "Sanitär", Color: "#1f77b4"},
	DisciplineEL:  {DisplayName: "Elektro", Color: "#ff7f0e"},
	DisciplineSPR: {DisplayName: "Sprinkler", Color: "#d62728"},
	DisciplineHZ:  {DisplayName: "Heizung", Color: "#e377c2"},
	DisciplineKT:  {DisplayName: "Kälte", Color: "#17becf"},
	DisciplineLF:  {DisplayName: "Lüftung", Color: "#2ca02c"},
}

// disciplineOrder fixes the display order of discipline-keyed reports.
var disciplineOrder = []Discipline{
	DisciplineKO, DisciplineSN, DisciplineEL, DisciplineSPR,
	DisciplineHZ, DisciplineKT, DisciplineLF,
}

// Disciplines returns all known disciplines in display order.
func Disciplines() []Discipline {
	out := make([]Discipline, len(disciplineOrder))
	copy(out, disciplineOrder)
	return out
}

// IsKnown reports whether d is one of the real disciplines. The meta values
// "Alle" and "ExpandAll" are not disciplines.
func (d Discipline) IsKnown() bool {
	_, ok := disciplineTable[d]
	return ok
}

// Info returns display name and color for a known discipline.
func (d Discipline) Info() (DisciplineInfo, bool) {
	info, ok := disciplineTable[d]
	return info, ok
}

// DisplayName returns the human-readable trade name, or the raw prefix for an
// unrecognized discipline.
func (d Discipline) DisplayName() string {
	if info, ok := disciplineTable[d]; ok {
		return info.DisplayName
	}
	return string(d)
}

// ByDisplayName resolves a discipline from its display name.
func ByDisplayName(name string) (Discipline, bool) {
	for d, info := range disciplineTable {
		if info.DisplayName == name {
			return d, true
		}
	}
	return "", false
}
