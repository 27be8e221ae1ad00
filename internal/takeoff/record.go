// Package takeoff defines the immutable component record batch and the
// composable filter pipeline that selects subsets of it.
package takeoff

import "strings"

// ComponentRecord is one row of loaded model data. Records are created once
// by the loader and never mutated; quantity fields default to zero and text
// fields to empty when the source row has no value.
type ComponentRecord struct {
	LabelCode   string // dotted hierarchical code, e.g. "SN.01"; may be empty
	LabelName   string // free-text component name; may be empty
	Type        string // category string; may be empty
	Floor       string
	SourceModel string // originating model/file name

	Length float64 // mm
	Area   float64 // m²
	Volume float64 // m³
}

// HasCode reports whether the record carries a parseable label code.
func (r ComponentRecord) HasCode() bool {
	return firstSegment(r.LabelCode) != ""
}

// LabelDiscipline derives the discipline prefix: the first dot-segment of the
// label code. Empty when no code is present.
func (r ComponentRecord) LabelDiscipline() string {
	return firstSegment(r.LabelCode)
}

// ComponentCode derives the component code: the first two dot-segments joined.
// A code without a second segment yields just the first segment; no code
// yields the empty string.
func (r ComponentRecord) ComponentCode() string {
	code := strings.TrimSpace(r.LabelCode)
	if code == "" {
		return ""
	}
	segments := strings.SplitN(code, ".", 3)
	if len(segments) == 1 {
		return segments[0]
	}
	return segments[0] + "." + segments[1]
}

func firstSegment(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if i := strings.IndexByte(code, '.'); i >= 0 {
		return code[:i]
	}
	return code
}
