package taxonomy

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Unit selects which quantity of a rollup a catalog price applies to.
type Unit string

// Supported pricing units.
const (
	UnitLength Unit = "length" // priced per meter, lengths arrive in mm
	UnitArea   Unit = "area"   // priced per m²
	UnitCount  Unit = "count"  // priced per piece
)

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	switch u {
	case UnitLength, UnitArea, UnitCount:
		return true
	}
	return false
}

// Entry is one priced line of the catalog.
type Entry struct {
	Unit        Unit    `yaml:"unit"`
	UnitPrice   float64 `yaml:"price"`
	DisplayName string  `yaml:"name"`
}

// defaultKey marks discipline-level and global fallback entries.
const defaultKey = "default"

// Catalog maps component codes to catalog entries. Lookups fail closed:
// an absent code is a first-class outcome, never an error.
type Catalog struct {
	entries map[string]Entry
}

// NewCatalog builds a catalog from explicit entries. An entry with an
// unsupported unit is a static-configuration bug and fails immediately.
func NewCatalog(entries map[string]Entry) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]Entry, len(entries))}
	for code, entry := range entries {
		if !entry.Unit.Valid() {
			return nil, fmt.Errorf("taxonomy: entry %q has unknown unit %q", code, entry.Unit)
		}
		c.entries[code] = entry
	}
	return c, nil
}

// Lookup resolves a component code, reporting absence explicitly.
func (c *Catalog) Lookup(componentCode string) (Entry, bool) {
	entry, ok := c.entries[componentCode]
	return entry, ok
}

// LookupDefault returns the discipline's default entry, falling back to the
// global default. The boolean is false only when neither exists.
func (c *Catalog) LookupDefault(d Discipline) (Entry, bool) {
	if entry, ok := c.entries[string(d)+"."+defaultKey]; ok {
		return entry, true
	}
	entry, ok := c.entries[defaultKey]
	return entry, ok
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.entries) }

// catalogFile is the yaml overlay format.
type catalogFile struct {
	Entries map[string]Entry `yaml:"entries"`
}

// LoadCatalog returns the built-in catalog, overlaid with entries from the
// yaml file at path when path is non-empty. Overlay entries replace built-in
// entries with the same code.
func LoadCatalog(path string) (*Catalog, error) {
	entries := make(map[string]Entry, len(builtinEntries))
	for code, entry := range builtinEntries {
		entries[code] = entry
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("taxonomy: read catalog: %w", err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("taxonomy: parse catalog: %w", err)
		}
		for code, entry := range file.Entries {
			entries[strings.TrimSpace(code)] = entry
		}
	}
	return NewCatalog(entries)
}

// builtinEntries seeds the catalog so the pipeline prices sensibly without an
// overlay file. Prices are per meter, per m² or per piece depending on unit.
var builtinEntries = map[string]Entry{
	"SN.01": {Unit: UnitLength, UnitPrice: 75, DisplayName: "Rohrleitung"},
	"SN.02": {Unit: UnitCount, UnitPrice: 40, DisplayName: "T-Stück"},
	"SN.03": {Unit: UnitCount, UnitPrice: 35, DisplayName: "Bogen"},
	"SN.05": {Unit: UnitCount, UnitPrice: 120, DisplayName: "Ventil"},
	"SN." + defaultKey: {Unit: UnitCount, UnitPrice: 50, DisplayName: "Sanitär Sonstiges"},

	"HZ.01": {Unit: UnitLength, UnitPrice: 85, DisplayName: "Heizungsrohr"},
	"HZ.02": {Unit: UnitCount, UnitPrice: 420, DisplayName: "Heizkörper"},
	"HZ." + defaultKey: {Unit: UnitCount, UnitPrice: 60, DisplayName: "Heizung Sonstiges"},

	"KT.01": {Unit: UnitLength, UnitPrice: 95, DisplayName: "Kälteleitung"},
	"KT.02": {Unit: UnitCount, UnitPrice: 310, DisplayName: "Umwälzpumpe"},
	"KT." + defaultKey: {Unit: UnitCount, UnitPrice: 70, DisplayName: "Kälte Sonstiges"},

	"LF.01": {Unit: UnitArea, UnitPrice: 110, DisplayName: "Lüftungskanal"},
	"LF.02": {Unit: UnitCount, UnitPrice: 380, DisplayName: "Volumenstromregler"},
	"LF." + defaultKey: {Unit: UnitArea, UnitPrice: 90, DisplayName: "Lüftung Sonstiges"},

	"EL.01": {Unit: UnitLength, UnitPrice: 65, DisplayName: "Kabeltrasse"},
	"EL.02": {Unit: UnitCount, UnitPrice: 150, DisplayName: "Leuchte"},
	"EL." + defaultKey: {Unit: UnitCount, UnitPrice: 45, DisplayName: "Elektro Sonstiges"},

	"SPR.01": {Unit: UnitLength, UnitPrice: 80, DisplayName: "Sprinklerrohr"},
	"SPR.02": {Unit: UnitCount, UnitPrice: 55, DisplayName: "Sprinklerkopf"},
	"SPR." + defaultKey: {Unit: UnitCount, UnitPrice: 40, DisplayName: "Sprinkler Sonstiges"},

	"KO.01": {Unit: UnitArea, UnitPrice: 180, DisplayName: "Wand"},
	"KO.02": {Unit: UnitArea, UnitPrice: 160, DisplayName: "Decke"},
	"KO." + defaultKey: {Unit: UnitArea, UnitPrice: 120, DisplayName: "Konstruktion Sonstiges"},

	defaultKey: {Unit: UnitCount, UnitPrice: 25, DisplayName: "Sonstiges"},
}
