// Package engine orchestrates one scan: extraction via Blender, parsing,
// and every configured detector over every relevant extracted item.
package engine

import (
	"sort"
	"time"

	"github.com/demitas1/blender-files/internal/detectors"
	"github.com/demitas1/blender-files/internal/extract"
	"github.com/demitas1/blender-files/internal/scanner/bandit"
	"github.com/demitas1/blender-files/internal/types"
)

// Extractor produces the raw line-oriented extraction report for a .blend
// file. The Blender runner is the production implementation; tests inject
// fakes.
type Extractor interface {
	Extract(blendFile string) (string, error)
}

// Config controls which Blender install is used and which detectors run.
type Config struct {
	BlenderVersion string
	BlenderPath    string // explicit executable, overrides version lookup
	DisableAddons  bool
	Timeout        time.Duration // per-subprocess bound; zero = unlimited

	// Detectors to run; nil means the default malware + privacy pair.
	Detectors []detectors.Detector

	// EnableBandit runs the bandit adapter over text blocks when the tool
	// is installed. Its absence is reported, not treated as a failure.
	EnableBandit bool
	BanditPath   string

	// Extractor overrides the Blender runner (tests).
	Extractor Extractor
}

// Orchestrator owns the extraction collaborator and the active detector
// set for the lifetime of one or more scans.
type Orchestrator struct {
	extractor Extractor
	detectors []detectors.Detector
	bandit    *bandit.Scanner
}

// New builds an Orchestrator. A missing Blender install is a configuration
// error and fails here, before any scan attempt. A missing bandit binary is
// not: the adapter is simply left out.
func New(cfg Config) (*Orchestrator, error) {
	ext := cfg.Extractor
	if ext == nil {
		runner, err := extract.NewRunner(cfg.BlenderVersion, cfg.BlenderPath, cfg.DisableAddons)
		if err != nil {
			return nil, err
		}
		runner.Timeout = cfg.Timeout
		ext = runner
	}

	ds := cfg.Detectors
	if ds == nil {
		ds = detectors.Defaults()
	}

	o := &Orchestrator{extractor: ext, detectors: ds}
	if cfg.EnableBandit {
		if s, err := bandit.New(cfg.BanditPath); err == nil {
			s.Timeout = cfg.Timeout
			o.bandit = s
		}
	}
	return o, nil
}

// BanditActive reports whether the bandit adapter will run.
func (o *Orchestrator) BanditActive() bool { return o.bandit != nil }

// Scan extracts, parses, and runs every detector over the target file.
// Findings keep a fixed order: detector by detector, and within one
// detector text blocks, then drivers, then (for reference-capable
// detectors) external refs and metadata, all in extraction order. Bandit
// findings come last, with the raw tool report captured separately.
func (o *Orchestrator) Scan(blendFile string) (types.ScanResult, error) {
	raw, err := o.extractor.Extract(blendFile)
	if err != nil {
		return types.ScanResult{Extracted: types.NewExtractedData()}, err
	}

	data := extract.Parse(raw)
	result := types.ScanResult{
		Extracted: data,
		Findings:  o.runDetectors(data),
	}

	if o.bandit != nil && len(data.TextBlocks) > 0 {
		// A bandit workspace failure loses only bandit's findings; the
		// rule-based detectors' results above are already in place.
		if fs, err := o.bandit.ScanBlocks(data.TextBlocks, data.BlockOrder); err == nil {
			result.Findings = append(result.Findings, fs...)
		}
		if out, err := o.bandit.RawOutput(data.TextBlocks, data.BlockOrder); err == nil {
			result.BanditOutput = out
		}
	}

	return result, nil
}

func (o *Orchestrator) runDetectors(data types.ExtractedData) []types.Finding {
	var findings []types.Finding

	for _, d := range o.detectors {
		for _, name := range blockOrder(data) {
			findings = append(findings, d.Scan(data.TextBlocks[name], name)...)
		}
		for _, expr := range data.DriverExpressions {
			findings = append(findings, d.Scan(expr, "driver")...)
		}

		rs, ok := d.(detectors.ReferenceScanner)
		if !ok || !rs.ScanReferences() {
			continue
		}
		for _, ref := range data.ExternalRefs {
			findings = append(findings, d.Scan(ref, "external_ref")...)
		}
		for _, key := range metadataKeys(data) {
			findings = append(findings, d.Scan(data.Metadata[key], "metadata:"+key)...)
		}
	}

	return findings
}

// blockOrder yields text block names in extraction order, covering any
// stragglers not recorded there in sorted order.
func blockOrder(data types.ExtractedData) []string {
	seen := make(map[string]bool, len(data.TextBlocks))
	var names []string
	for _, n := range data.BlockOrder {
		if _, ok := data.TextBlocks[n]; ok && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	var rest []string
	for n := range data.TextBlocks {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// metadataKeys returns metadata keys sorted, keeping finding order
// deterministic across runs.
func metadataKeys(data types.ExtractedData) []string {
	keys := make([]string, 0, len(data.Metadata))
	for k := range data.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DetectorIDs lists the rule-based detector names plus the external bandit
// adapter.
func DetectorIDs() []string {
	var ids []string
	for _, d := range detectors.Defaults() {
		ids = append(ids, d.Name())
	}
	return append(ids, bandit.Name)
}
