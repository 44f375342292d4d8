// Package bandit adapts the bandit static-analysis tool as an optional
// detector. Extracted text blocks are written into a scoped temporary
// directory, bandit is invoked over it, and its JSON report is translated
// into findings. Absence of the tool is a normal condition, not an error.
package bandit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/demitas1/blender-files/internal/types"
)

// Name is the detector name attached to findings produced here.
const Name = "bandit"

// Scanner runs the bandit binary over extracted script content.
type Scanner struct {
	binaryPath string
	version    string

	// Timeout bounds each bandit invocation; zero means no limit.
	Timeout time.Duration
}

// New resolves and version-checks the bandit binary. It fails with
// actionable guidance when the tool is missing or too old.
func New(customPath string) (*Scanner, error) {
	binaryPath, err := FindBinary(customPath)
	if err != nil {
		return nil, err
	}
	version, err := Version(binaryPath)
	if err != nil {
		version = "unknown"
	}
	if err := checkVersion(version); err != nil {
		return nil, err
	}
	return &Scanner{binaryPath: binaryPath, version: version}, nil
}

func (s *Scanner) Description() string {
	return "Python static analysis via the bandit tool"
}

// BinaryVersion returns the detected bandit version.
func (s *Scanner) BinaryVersion() string { return s.version }

// report is the bandit -f json output shape.
type report struct {
	Results []result `json:"results"`
}

type result struct {
	TestID        string `json:"test_id"`
	IssueText     string `json:"issue_text"`
	IssueSeverity string `json:"issue_severity"`
	Filename      string `json:"filename"`
	LineNumber    int    `json:"line_number"`
	Code          string `json:"code"`
}

// ScanBlocks runs bandit over every text block and returns the translated
// findings. order fixes the file layout for deterministic reports; block
// names missing from order are appended sorted. I/O failures setting up the
// workspace are fatal for this invocation only.
func (s *Scanner) ScanBlocks(blocks map[string]string, order []string) ([]types.Finding, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	tmpDir, cleanup, err := s.writeWorkspace(blocks, order)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	stdout, _ := s.run("-r", "-f", "json", tmpDir)
	return parseReport(stdout), nil
}

// RawOutput runs bandit in human-readable mode for passthrough display.
func (s *Scanner) RawOutput(blocks map[string]string, order []string) (string, error) {
	if len(blocks) == 0 {
		return "", nil
	}
	tmpDir, cleanup, err := s.writeWorkspace(blocks, order)
	if err != nil {
		return "", err
	}
	defer cleanup()

	stdout, stderr := s.run("-r", tmpDir)
	return string(stdout) + string(stderr), nil
}

// run invokes bandit and returns stdout and stderr separately. bandit exits
// non-zero when it finds issues, so the exit status is deliberately ignored;
// whatever was printed is the result.
func (s *Scanner) run(args ...string) ([]byte, []byte) {
	ctx := context.Background()
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, s.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	_ = cmd.Run()
	return stdout.Bytes(), stderr.Bytes()
}

// writeWorkspace materializes blocks as .py files in a fresh temp directory.
// The returned cleanup removes the directory on every exit path.
func (s *Scanner) writeWorkspace(blocks map[string]string, order []string) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "blendscan-bandit-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create bandit workspace: %w", err)
	}
	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}
	if err := os.Chmod(tmpDir, 0o700); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to secure bandit workspace: %w", err)
	}
	for _, name := range blockNames(blocks, order) {
		content := "# Source: " + name + "\n" + blocks[name]
		path := filepath.Join(tmpDir, safeFilename(name))
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("failed to write bandit input: %w", err)
		}
	}
	return tmpDir, cleanup, nil
}

// blockNames returns every block name exactly once, following order first.
func blockNames(blocks map[string]string, order []string) []string {
	seen := make(map[string]bool, len(blocks))
	var names []string
	for _, n := range order {
		if _, ok := blocks[n]; ok && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	var rest []string
	for n := range blocks {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// safeFilename strips path separators and colons out of a block name and
// ensures a .py extension so bandit picks the file up.
func safeFilename(name string) string {
	safe := strings.ReplaceAll(name, "/", "__")
	safe = strings.ReplaceAll(safe, "\\", "__")
	safe = strings.ReplaceAll(safe, ":", "__")
	if !strings.HasSuffix(safe, ".py") {
		safe += ".py"
	}
	return safe
}

// parseReport translates bandit JSON into findings. Empty or malformed
// output yields no findings: a broken tool run is recovered locally, never
// propagated.
func parseReport(output []byte) []types.Finding {
	if len(bytes.TrimSpace(output)) == 0 {
		return nil
	}
	var rep report
	if err := json.Unmarshal(output, &rep); err != nil {
		return nil
	}
	var findings []types.Finding
	for _, r := range rep.Results {
		testID := r.TestID
		if testID == "" {
			testID = "B000"
		}
		issue := r.IssueText
		if issue == "" {
			issue = "Unknown issue"
		}
		filename := r.Filename
		if filename == "" {
			filename = "unknown"
		}
		findings = append(findings, types.Finding{
			Detector:    Name,
			Severity:    mapSeverity(r.IssueSeverity),
			Message:     "[" + testID + "] " + issue,
			Location:    filename + ":" + strconv.Itoa(r.LineNumber),
			MatchedText: strings.TrimSpace(r.Code),
		})
	}
	return findings
}

// mapSeverity translates bandit's scale onto ours; anything unrecognized
// lands at info.
func mapSeverity(s string) types.Severity {
	switch strings.ToUpper(s) {
	case "HIGH":
		return types.SevError
	case "MEDIUM":
		return types.SevWarning
	case "LOW":
		return types.SevInfo
	}
	return types.SevInfo
}
