// Package classify assigns component records to taxonomy nodes. Two
// independent paths exist on purpose: the authoritative code path used for
// catalog-priced reports, and the name-heuristic family path used for
// discipline type overviews. They may disagree; Disagreements surfaces the
// conflicts instead of reconciling them.
package classify

import (
	"regexp"

	"baureport/internal/takeoff"
	"baureport/internal/taxonomy"
)

// Classification is the code-derived taxonomy position of a record.
type Classification struct {
	Discipline    taxonomy.Discipline
	ComponentCode string
}

// FromCode classifies a record by its label code alone. The boolean is false
// when the record carries no parseable code; such records stay visible to
// counts and to the name-heuristic path but are excluded from code-based
// grouping and catalog-priced costing.
func FromCode(r takeoff.ComponentRecord) (Classification, bool) {
	if !r.HasCode() {
		return Classification{}, false
	}
	return Classification{
		Discipline:    taxonomy.Discipline(r.LabelDiscipline()),
		ComponentCode: r.ComponentCode(),
	}, true
}

// Family is a heuristic component family derived from the record name. It is
// not a taxonomy node and never feeds catalog-priced costing.
type Family string

// Known component families.
const (
	FamilyRohr        Family = "Rohr"
	FamilyTStueck     Family = "T-Stück"
	FamilyBogen       Family = "Bogen"
	FamilyVentil      Family = "Ventil"
	FamilyKabeltrasse Family = "Kabeltrasse"
	FamilyPumpe       Family = "Pumpe"
)

type familyPattern struct {
	family  Family
	pattern *regexp.Regexp
}

// familyPatterns is ordered; the first match wins so family assignment is
// deterministic for names matching several synonym sets.
var familyPatterns = []familyPattern{
	{FamilyRohr, regexp.MustCompile(`(?i)rohr|pipe|leitung|wasserrohr`)},
	{FamilyTStueck, regexp.MustCompile(`(?i)t-stück|t-piece`)},
	{FamilyBogen, regexp.MustCompile(`(?i)bogen|bend|bögen|curve|elbow`)},
	{FamilyVentil, regexp.MustCompile(`(?i)ventil|valve`)},
	{FamilyKabeltrasse, regexp.MustCompile(`(?i)kabeltrasse|cable tray`)},
	{FamilyPumpe, regexp.MustCompile(`(?i)pumpe|pump`)},
}

// MatchFamily resolves the heuristic family of a free-text component name.
// The boolean is false when no synonym set matches.
func MatchFamily(labelName string) (Family, bool) {
	if labelName == "" {
		return "", false
	}
	for _, fp := range familyPatterns {
		if fp.pattern.MatchString(labelName) {
			return fp.family, true
		}
	}
	return "", false
}

// Disagreement marks a record whose code-derived family and name-derived
// family point at different component families.
type Disagreement struct {
	Record     takeoff.ComponentRecord
	CodeFamily Family
	NameFamily Family
}

// Disagreements reports every record where the catalog entry behind the code
// and the record name resolve to different families. The code family is read
// off the catalog display name with the same synonym sets, so both sides of
// the comparison share one pattern table. Records where either side has no
// family are not conflicts.
func Disagreements(records []takeoff.ComponentRecord, catalog *taxonomy.Catalog) []Disagreement {
	var out []Disagreement
	for _, r := range records {
		cls, ok := FromCode(r)
		if !ok {
			continue
		}
		entry, ok := catalog.Lookup(cls.ComponentCode)
		if !ok {
			continue
		}
		codeFamily, ok := MatchFamily(entry.DisplayName)
		if !ok {
			continue
		}
		nameFamily, ok := MatchFamily(r.LabelName)
		if !ok {
			continue
		}
		if codeFamily != nameFamily {
			out = append(out, Disagreement{Record: r, CodeFamily: codeFamily, NameFamily: nameFamily})
		}
	}
	return out
}
