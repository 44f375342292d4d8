package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/demitas1/blender-files/internal/types"
)

func resultWith(findings ...types.Finding) types.ScanResult {
	data := types.NewExtractedData()
	data.TextBlocks["main.py"] = "print('hi')"
	data.BlockOrder = []string{"main.py"}
	return types.ScanResult{Extracted: data, Findings: findings}
}

func TestPrintCleanResult(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, resultWith(), Options{NoColor: true, BanditAvailable: true})
	out := buf.String()
	if !strings.Contains(out, "No issues found") {
		t.Fatalf("expected clean summary; got: %q", out)
	}
	if !strings.Contains(out, "Text blocks") {
		t.Fatalf("expected extracted-data summary; got: %q", out)
	}
	if !strings.Contains(out, "main.py") {
		t.Fatalf("expected block name listed; got: %q", out)
	}
}

func TestPrintGroupsBySeverity(t *testing.T) {
	var buf bytes.Buffer
	res := resultWith(
		types.Finding{Detector: "malware", Severity: types.SevError, Message: "bad", Location: "main.py:1", MatchedText: "os.system('x')"},
		types.Finding{Detector: "privacy", Severity: types.SevWarning, Message: "email", Location: "main.py:2", MatchedText: "a@b.co"},
	)
	Print(&buf, res, Options{NoColor: true, BanditAvailable: true})
	out := buf.String()
	if !strings.Contains(out, "[ERROR] 1 dangerous pattern(s) detected!") {
		t.Fatalf("expected error group header; got: %q", out)
	}
	if !strings.Contains(out, "[WARNING] 1 pattern(s) requiring review") {
		t.Fatalf("expected warning group header; got: %q", out)
	}
	if strings.Index(out, "[ERROR]") > strings.Index(out, "[WARNING]") {
		t.Fatalf("errors must render before warnings")
	}
	if !strings.Contains(out, "[malware] main.py:1") {
		t.Fatalf("expected detector/location line; got: %q", out)
	}
	if !strings.Contains(out, "1 error(s), 1 warning(s)") {
		t.Fatalf("expected summary footer; got: %q", out)
	}
}

func TestPrintInfoOnlyWhenVerbose(t *testing.T) {
	res := resultWith(
		types.Finding{Detector: "privacy", Severity: types.SevInfo, Message: "Public IP address detected", Location: "main.py:1", MatchedText: "8.8.8.8"},
	)
	var quiet bytes.Buffer
	Print(&quiet, res, Options{NoColor: true, BanditAvailable: true})
	if strings.Contains(quiet.String(), "[INFO]") {
		t.Fatalf("info findings must be hidden without verbose")
	}
	var verbose bytes.Buffer
	Print(&verbose, res, Options{NoColor: true, Verbose: true, BanditAvailable: true})
	if !strings.Contains(verbose.String(), "[INFO] 1 informational finding(s)") {
		t.Fatalf("info findings must render with verbose; got %q", verbose.String())
	}
}

func TestPrintBanditNote(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, resultWith(), Options{NoColor: true, BanditAvailable: false})
	if !strings.Contains(buf.String(), "bandit is not installed") {
		t.Fatalf("expected bandit note; got %q", buf.String())
	}

	res := resultWith()
	res.BanditOutput = "Run started\nNo issues identified."
	buf.Reset()
	Print(&buf, res, Options{NoColor: true, BanditAvailable: true})
	if !strings.Contains(buf.String(), "[Bandit Security Scan]") {
		t.Fatalf("expected bandit passthrough section; got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "No issues identified.") {
		t.Fatalf("expected raw bandit output; got %q", buf.String())
	}
}

func TestHighlightPythonNoColorPassthrough(t *testing.T) {
	code := "import os\nos.system('x')"
	if got := highlightPython(code, true); got != code {
		t.Fatalf("no-color highlight must be verbatim: %q", got)
	}
}
