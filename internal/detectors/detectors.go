package detectors

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/demitas1/blender-files/internal/types"
)

// Detector classifies text content against a rule set and reports findings.
// Scan never fails: malformed input is data, not an exceptional condition.
// Every finding's location is "source:line" with the source label passed in.
type Detector interface {
	Name() string
	Description() string
	Scan(content, source string) []types.Finding
}

// ReferenceScanner is implemented by detectors that also want to see
// external reference paths and metadata values, not just script content.
// The orchestrator dispatches on this capability instead of checking
// concrete detector types.
type ReferenceScanner interface {
	ScanReferences() bool
}

// Rule is one (pattern, severity, message) entry of a detector's ordered
// rule table. All rules matching a line fire independently; nothing is
// deduplicated and no rule cancels another.
type Rule struct {
	Pattern  *regexp.Regexp
	Severity types.Severity
	Message  string
}

// Defaults returns the detectors enabled when none are selected explicitly.
func Defaults() []Detector {
	return []Detector{NewMalware(), NewPrivacy()}
}

// ByName resolves a rule-based detector by its name.
func ByName(name string) (Detector, bool) {
	switch name {
	case "malware":
		return NewMalware(), true
	case "privacy":
		return NewPrivacy(), true
	}
	return nil, false
}

// scanRules runs an ordered rule table over content, line by line
// (1-indexed). mask, when non-nil, rewrites the matched line before it is
// stored; detectors use it to redact secrets at error level.
func scanRules(detector, content, source string, rules []Rule, mask func(types.Severity, string) string) []types.Finding {
	var out []types.Finding
	for i, line := range strings.Split(content, "\n") {
		for _, r := range rules {
			if !r.Pattern.MatchString(line) {
				continue
			}
			matched := strings.TrimSpace(line)
			if mask != nil {
				matched = mask(r.Severity, matched)
			}
			out = append(out, types.Finding{
				Detector:    detector,
				Severity:    r.Severity,
				Message:     r.Message,
				Location:    location(source, i+1),
				MatchedText: matched,
			})
		}
	}
	return out
}

func location(source string, line int) string {
	return source + ":" + strconv.Itoa(line)
}
