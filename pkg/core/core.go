package core

import (
	"github.com/demitas1/blender-files/internal/engine"
	"github.com/demitas1/blender-files/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Finding = types.Finding
type Severity = types.Severity
type ScanResult = types.ScanResult
type ExtractedData = types.ExtractedData

const (
	SevError   = types.SevError
	SevWarning = types.SevWarning
	SevInfo    = types.SevInfo
)

// Scan is the stable entrypoint for other programs: it scans one .blend
// file with the configured detectors and returns the aggregated result.
func Scan(cfg Config, blendFile string) (ScanResult, error) {
	o, err := engine.New(cfg)
	if err != nil {
		return ScanResult{}, err
	}
	return o.Scan(blendFile)
}

// DetectorIDs returns the available detector names.
// Exposed for convenience to avoid importing internals directly.
func DetectorIDs() []string { return engine.DetectorIDs() }
