package classify

import (
	"testing"

	"baureport/internal/takeoff"
	"baureport/internal/taxonomy"
)

func TestFromCodeIsPureInLabelCode(t *testing.T) {
	a := takeoff.ComponentRecord{LabelCode: "SN.05", LabelName: "Rohrleitung", Type: "x"}
	b := takeoff.ComponentRecord{LabelCode: "SN.05", LabelName: "völlig anders", Floor: "OG3"}

	clsA, okA := FromCode(a)
	clsB, okB := FromCode(b)
	if !okA || !okB {
		t.Fatal("records with codes must classify")
	}
	if clsA != clsB {
		t.Fatalf("classification must depend on the label code alone: %+v vs %+v", clsA, clsB)
	}
	if clsA.Discipline != taxonomy.DisciplineSN || clsA.ComponentCode != "SN.05" {
		t.Fatalf("unexpected classification %+v", clsA)
	}
}

func TestFromCodeWithoutCode(t *testing.T) {
	if _, ok := FromCode(takeoff.ComponentRecord{LabelName: "Absperrventil"}); ok {
		t.Fatal("a record without a label code has no code classification")
	}
}

func TestMatchFamilySynonyms(t *testing.T) {
	cases := map[string]Family{
		"Absperrventil":     FamilyVentil,
		"VALVE DN50":        FamilyVentil,
		"Wasserrohr 22mm":   FamilyRohr,
		"supply pipe":       FamilyRohr,
		"T-Stück 45°":       FamilyTStueck,
		"Rohrbogen 90°":     FamilyRohr, // pipe synonyms win over bend, first match is deterministic
		"Bogen 90°":         FamilyBogen,
		"cable tray":        FamilyKabeltrasse,
		"Umwälzpumpe":       FamilyPumpe,
		"elbow fitting":     FamilyBogen,
		"KABELTRASSE breit": FamilyKabeltrasse,
	}
	for name, want := range cases {
		got, ok := MatchFamily(name)
		if !ok {
			t.Fatalf("expected %q to match a family", name)
		}
		if got != want {
			t.Fatalf("%q matched %q, want %q", name, got, want)
		}
	}

	if _, ok := MatchFamily("Betonstütze"); ok {
		t.Fatal("unrelated name must not match any family")
	}
	if _, ok := MatchFamily(""); ok {
		t.Fatal("empty name must not match")
	}
}

func TestDisagreements(t *testing.T) {
	catalog, err := taxonomy.NewCatalog(map[string]taxonomy.Entry{
		"SN.05": {Unit: taxonomy.UnitCount, UnitPrice: 120, DisplayName: "Ventil"},
		"SN.01": {Unit: taxonomy.UnitLength, UnitPrice: 75, DisplayName: "Rohrleitung"},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	records := []takeoff.ComponentRecord{
		{LabelCode: "SN.05", LabelName: "Absperrventil"},    // code and name agree
		{LabelCode: "SN.05", LabelName: "Bogen 90°"},        // valve code, bend name
		{LabelCode: "SN.01", LabelName: "Rohrleitung DN40"}, // agree
		{LabelCode: "SN.05", LabelName: "Sonderbauteil"},    // name has no family, no conflict
		{LabelName: "Ventil ohne Code"},                     // no code, no conflict
	}

	got := Disagreements(records, catalog)
	if len(got) != 1 {
		t.Fatalf("expected exactly one disagreement, got %d", len(got))
	}
	if got[0].CodeFamily != FamilyVentil || got[0].NameFamily != FamilyBogen {
		t.Fatalf("unexpected disagreement %+v", got[0])
	}
}
