package report

import (
	"encoding/json"
	"fmt"
	"os"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/demitas1/blender-files/internal/types"
)

// DefaultBaselinePath is where scan/baseline commands look by default.
const DefaultBaselinePath = "blendscan.baseline.json"

// Baseline is a set of accepted finding fingerprints. Findings whose
// fingerprint is present are suppressed on later scans.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline file; a missing file is an error the caller
// may ignore, a corrupt one degrades to an empty baseline.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(raw, &b)
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline writes the fingerprints of the given findings.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[Fingerprint(f)] = true
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0o644)
}

// FilterNew drops findings already present in the baseline, keeping order.
func FilterNew(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[Fingerprint(f)] {
			out = append(out, f)
		}
	}
	return out
}

// Fingerprint identifies a finding across scans. MatchedText participates
// so a changed secret at the same location is surfaced again; severity does
// not, since rule tiers may be retuned without invalidating baselines.
func Fingerprint(f types.Finding) string {
	h := xxhash.New()
	_, _ = h.WriteString(f.Detector)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.Location)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(f.MatchedText)
	return fmt.Sprintf("%016x", h.Sum64())
}
