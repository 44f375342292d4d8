package types

// Severity is the operator response level for a finding.
type Severity string

const (
	SevError   Severity = "error"   // dangerous: immediate action required
	SevWarning Severity = "warning" // review recommended
	SevInfo    Severity = "info"    // reference only
)

// Finding describes one suspicious pattern reported by a detector.
// Location is "source:line", with line 0 when unknown. MatchedText is the
// offending text; for error-level secret matches it is stored masked.
type Finding struct {
	Detector    string   `json:"detector"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Location    string   `json:"location"`
	MatchedText string   `json:"matched_text"`
}

// ExtractedData is the structured result of parsing one Blender extraction
// report. Every field may be empty; the parser never fails.
type ExtractedData struct {
	// TextBlocks maps block name to full content. BlockOrder preserves the
	// order blocks appeared in the report for display purposes.
	TextBlocks map[string]string `json:"text_blocks"`
	BlockOrder []string          `json:"block_order,omitempty"`

	// DriverExpressions holds raw expression-description lines as emitted
	// by the export script, not split into object/path/expression fields.
	DriverExpressions []string `json:"driver_expressions"`

	NodeScripts  []string          `json:"node_scripts"`
	Metadata     map[string]string `json:"metadata"`
	ExternalRefs []string          `json:"external_refs"`
}

// NewExtractedData returns an ExtractedData with initialized maps.
func NewExtractedData() ExtractedData {
	return ExtractedData{
		TextBlocks: map[string]string{},
		Metadata:   map[string]string{},
	}
}

// IsEmpty reports whether nothing at all was extracted.
func (e ExtractedData) IsEmpty() bool {
	return len(e.TextBlocks) == 0 &&
		len(e.DriverExpressions) == 0 &&
		len(e.NodeScripts) == 0 &&
		len(e.Metadata) == 0 &&
		len(e.ExternalRefs) == 0
}

// ScanResult aggregates the extracted data and all detector findings for a
// single scan. Findings keep detector iteration order, then item order;
// they are not sorted by severity.
type ScanResult struct {
	Extracted ExtractedData `json:"extracted"`
	Findings  []Finding     `json:"findings"`

	// BanditOutput is the raw human-readable bandit report, present only
	// when the bandit adapter ran.
	BanditOutput string `json:"bandit_output,omitempty"`
}

// HasErrors reports whether any error-level finding exists.
func (r ScanResult) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any warning-level finding exists.
func (r ScanResult) HasWarnings() bool {
	for _, f := range r.Findings {
		if f.Severity == SevWarning {
			return true
		}
	}
	return false
}

// BySeverity returns findings of the given severity in stable order.
func (r ScanResult) BySeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// ByDetector returns findings produced by the named detector in stable order.
func (r ScanResult) ByDetector(name string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Detector == name {
			out = append(out, f)
		}
	}
	return out
}
