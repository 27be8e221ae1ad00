package aggregate

import (
	"testing"

	"baureport/internal/takeoff"
)

func TestByComponentCodeRollup(t *testing.T) {
	records := []takeoff.ComponentRecord{
		{LabelCode: "SN.01", Length: 2000},
		{LabelCode: "SN.01", Length: 3000},
	}
	rows := ByComponentCode(records)
	if len(rows) != 1 {
		t.Fatalf("expected one group, got %d", len(rows))
	}
	if rows[0].Key != "SN.01" || rows[0].Count != 2 || rows[0].TotalLength != 5000 {
		t.Fatalf("unexpected rollup %+v", rows[0])
	}
}

func TestByComponentCodeConservation(t *testing.T) {
	records := []takeoff.ComponentRecord{
		{LabelCode: "SN.01", Length: 1000},
		{LabelCode: "EL.01"},
		{LabelName: "Ventil ohne Code", Area: 2},
		{LabelCode: "SN.01"},
		{},
	}
	rows := ByComponentCode(records)

	var total int
	var unclassified *Row
	for i := range rows {
		total += rows[i].Count
		if rows[i].Key == GroupUnclassified {
			unclassified = &rows[i]
		}
	}
	if total != len(records) {
		t.Fatalf("group counts sum to %d, want %d: every record lands in exactly one group", total, len(records))
	}
	if unclassified == nil || unclassified.Count != 2 {
		t.Fatalf("expected 2 records in the explicit unclassified bucket, got %+v", unclassified)
	}
}

func TestByComponentCodeKeepsFirstSeenOrder(t *testing.T) {
	records := []takeoff.ComponentRecord{
		{LabelCode: "EL.02"},
		{LabelCode: "SN.01"},
		{LabelCode: "EL.02"},
	}
	rows := ByComponentCode(records)
	if rows[0].Key != "EL.02" || rows[1].Key != "SN.01" {
		t.Fatalf("groups must keep first-seen order, got %v", rows)
	}
}

func TestByDisciplineExcludesUnknownPrefix(t *testing.T) {
	records := []takeoff.ComponentRecord{
		{LabelCode: "SN.05"},
		{LabelCode: "SN.05"},
		{LabelCode: "XX.99"},
		{LabelName: "kein Code"},
	}
	rows := ByDiscipline(records)
	if len(rows) != 1 {
		t.Fatalf("expected only the SN group, got %v", rows)
	}
	if rows[0].Key != "SN" || rows[0].Count != 2 {
		t.Fatalf("unexpected discipline rollup %+v", rows[0])
	}
}

func TestByFamilyBucketsHeuristically(t *testing.T) {
	records := []takeoff.ComponentRecord{
		{LabelCode: "SN.01", LabelName: "Rohrleitung DN40", Length: 4000},
		{LabelName: "Absperrventil"}, // codeless, still bucketed by name
		{LabelName: "Sonderbauteil"}, // no family, left out
	}
	rows := ByFamily(records)
	if len(rows) != 2 {
		t.Fatalf("expected Rohr and Ventil buckets, got %v", rows)
	}
	byKey := map[string]Row{}
	for _, row := range rows {
		byKey[row.Key] = row
	}
	if byKey["Rohr"].TotalLength != 4000 {
		t.Fatalf("unexpected Rohr bucket %+v", byKey["Rohr"])
	}
	if byKey["Ventil"].Count != 1 {
		t.Fatalf("codeless valve must count in the Ventil bucket, got %+v", byKey["Ventil"])
	}
}

func TestAggregateEmptySet(t *testing.T) {
	if rows := ByComponentCode(nil); len(rows) != 0 {
		t.Fatalf("empty input must yield empty rollup, got %v", rows)
	}
	if rows := ByDiscipline([]takeoff.ComponentRecord{}); len(rows) != 0 {
		t.Fatalf("empty input must yield empty rollup, got %v", rows)
	}
}

func TestMissingQuantitiesCountAsZero(t *testing.T) {
	rows := ByComponentCode([]takeoff.ComponentRecord{
		{LabelCode: "SN.01"},
		{LabelCode: "SN.01", Length: 500, Area: 1.5, Volume: 0.2},
	})
	row := rows[0]
	if row.Count != 2 || row.TotalLength != 500 || row.TotalArea != 1.5 || row.TotalVolume != 0.2 {
		t.Fatalf("absent quantities must sum as zero, got %+v", row)
	}
}

func TestTopWithRemainder(t *testing.T) {
	rows := []Row{
		{Key: "SN.03", Count: 4},
		{Key: "SN.01", Count: 10},
		{Key: "SN.02", Count: 4},
		{Key: "EL.01", Count: 7},
		{Key: "HZ.01", Count: 2, TotalLength: 100},
		{Key: "LF.01", Count: 1, TotalArea: 3},
	}
	got := TopWithRemainder(rows, 4)
	if len(got) != 5 {
		t.Fatalf("expected top 4 plus Diverse, got %d rows", len(got))
	}
	wantOrder := []string{"SN.01", "EL.01", "SN.02", "SN.03", GroupDiverse}
	for i, key := range wantOrder {
		if got[i].Key != key {
			t.Fatalf("rank %d = %q, want %q (count desc, key asc on ties)", i, got[i].Key, key)
		}
	}
	diverse := got[4]
	if diverse.Count != 3 || diverse.TotalLength != 100 || diverse.TotalArea != 3 {
		t.Fatalf("Diverse must sum the remainder, got %+v", diverse)
	}
}

func TestTopWithRemainderShortInput(t *testing.T) {
	rows := []Row{{Key: "SN.01", Count: 1}, {Key: "EL.01", Count: 5}}
	got := TopWithRemainder(rows, 4)
	if len(got) != 2 {
		t.Fatalf("no Diverse row expected below the threshold, got %v", got)
	}
	if got[0].Key != "EL.01" {
		t.Fatalf("expected count-descending order, got %v", got)
	}
}
