package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupFailsClosed(t *testing.T) {
	catalog, err := NewCatalog(map[string]Entry{
		"SN.01": {Unit: UnitLength, UnitPrice: 75, DisplayName: "Rohrleitung"},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	entry, ok := catalog.Lookup("SN.01")
	if !ok {
		t.Fatal("expected SN.01 to resolve")
	}
	if entry.Unit != UnitLength || entry.UnitPrice != 75 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, ok := catalog.Lookup("XX.99"); ok {
		t.Fatal("expected absent entry for unknown code, not an error and not a hit")
	}
}

func TestLookupDefaultFallsBackToGlobal(t *testing.T) {
	catalog, err := NewCatalog(map[string]Entry{
		"SN.default": {Unit: UnitCount, UnitPrice: 50, DisplayName: "Sanitär Sonstiges"},
		"default":    {Unit: UnitCount, UnitPrice: 25, DisplayName: "Sonstiges"},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}

	entry, ok := catalog.LookupDefault(DisciplineSN)
	if !ok || entry.UnitPrice != 50 {
		t.Fatalf("expected SN default at 50, got %+v ok=%v", entry, ok)
	}

	entry, ok = catalog.LookupDefault(DisciplineEL)
	if !ok || entry.UnitPrice != 25 {
		t.Fatalf("expected global default at 25, got %+v ok=%v", entry, ok)
	}
}

func TestNewCatalogRejectsUnknownUnit(t *testing.T) {
	_, err := NewCatalog(map[string]Entry{
		"SN.01": {Unit: "pieces", UnitPrice: 10},
	})
	if err == nil {
		t.Fatal("expected unknown unit to fail fast at load time")
	}
}

func TestLoadCatalogOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	overlay := "entries:\n  SN.01: {unit: length, price: 99, name: Spezialrohr}\n  ZZ.01: {unit: area, price: 12, name: Sonderfläche}\n"
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	entry, ok := catalog.Lookup("SN.01")
	if !ok || entry.UnitPrice != 99 || entry.DisplayName != "Spezialrohr" {
		t.Fatalf("expected overlay to replace built-in SN.01, got %+v", entry)
	}
	if _, ok := catalog.Lookup("ZZ.01"); !ok {
		t.Fatal("expected overlay-only entry to be present")
	}
	if _, ok := catalog.Lookup("SN.05"); !ok {
		t.Fatal("expected untouched built-in entry to remain")
	}
}

func TestLoadCatalogRejectsBadOverlayUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("entries:\n  SN.01: {unit: stk, price: 1}\n"), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected overlay with unknown unit to fail")
	}
}

func TestDisciplineTable(t *testing.T) {
	if !DisciplineSN.IsKnown() {
		t.Fatal("SN must be a known discipline")
	}
	if Discipline(FilterAll).IsKnown() || Discipline(FilterExpandAll).IsKnown() {
		t.Fatal("meta filter values are not disciplines")
	}
	if got := DisciplineSN.DisplayName(); got != "Sanitär" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := Discipline("XX").DisplayName(); got != "XX" {
		t.Fatalf("unknown discipline should fall back to raw prefix, got %q", got)
	}
	if d, ok := ByDisplayName("Sanitär"); !ok || d != DisciplineSN {
		t.Fatalf("display name lookup failed: %v %v", d, ok)
	}
	if len(Disciplines()) != 7 {
		t.Fatalf("expected 7 disciplines, got %d", len(Disciplines()))
	}
}
