package extract

import (
	"strings"
	"testing"
)

func TestParseSingleTextBlockRoundTrip(t *testing.T) {
	content := "import os\n\nos.system('ls')"
	raw := "=== Text Block: script.py ===\n" + content + "\n============\n"
	d := Parse(raw)
	if len(d.TextBlocks) != 1 {
		t.Fatalf("expected 1 text block, got %d", len(d.TextBlocks))
	}
	got := d.TextBlocks["script.py"]
	if got != content {
		t.Fatalf("block content mismatch:\nwant %q\ngot  %q", content, got)
	}
}

func TestParseBlankLinesPreservedInsideBlock(t *testing.T) {
	raw := "=== Text Block: a ===\nline1\n\n\nline4\n=== Metadata ===\n"
	d := Parse(raw)
	if got := d.TextBlocks["a"]; got != "line1\n\n\nline4" {
		t.Fatalf("internal blank lines lost: %q", got)
	}
}

func TestParseSectionIsolation(t *testing.T) {
	raw := strings.Join([]string{
		"noise before any header",
		"password = \"leaked\"",
		"=== External References ===",
		"//textures/wood.png",
		"====================",
		"trailing noise after terminator",
	}, "\n")
	d := Parse(raw)
	if len(d.ExternalRefs) != 1 || d.ExternalRefs[0] != "//textures/wood.png" {
		t.Fatalf("unexpected refs: %+v", d.ExternalRefs)
	}
	if len(d.TextBlocks) != 0 || len(d.Metadata) != 0 || len(d.DriverExpressions) != 0 {
		t.Fatalf("lines outside sections must not be captured: %+v", d)
	}
}

func TestParseMetadataSplitsOnFirstColon(t *testing.T) {
	raw := "=== Metadata ===\nScene: Main: extra\nfilepath: /tmp/x.blend\n"
	d := Parse(raw)
	if d.Metadata["Scene"] != "Main: extra" {
		t.Fatalf("first-colon split broken: %q", d.Metadata["Scene"])
	}
	if d.Metadata["filepath"] != "/tmp/x.blend" {
		t.Fatalf("metadata value mismatch: %q", d.Metadata["filepath"])
	}
}

func TestParseMetadataLastWriteWins(t *testing.T) {
	raw := "=== Metadata ===\nversion: 4.2\nversion: 5.0\n"
	d := Parse(raw)
	if d.Metadata["version"] != "5.0" {
		t.Fatalf("expected last write to win, got %q", d.Metadata["version"])
	}
}

func TestParseDriverExpressionsLooseMatch(t *testing.T) {
	raw := strings.Join([]string{
		"=== Driver Expressions ===",
		"Object: Cube, Path: location",
		"  Expression: frame * 0.1",
		"Object: Sphere, Path: scale  Expression: eval(x)",
		"",
	}, "\n")
	d := Parse(raw)
	if len(d.DriverExpressions) != 2 {
		t.Fatalf("expected 2 expression lines, got %d: %+v", len(d.DriverExpressions), d.DriverExpressions)
	}
	// Captured whole, including any prefix on the same line.
	if d.DriverExpressions[1] != "Object: Sphere, Path: scale  Expression: eval(x)" {
		t.Fatalf("expression line not captured whole: %q", d.DriverExpressions[1])
	}
	// The Object/Path pairing line without an expression is discarded.
	for _, e := range d.DriverExpressions {
		if e == "Object: Cube, Path: location" {
			t.Fatalf("object line without Expression: must be discarded")
		}
	}
}

func TestParseNodeScriptsSkipBlank(t *testing.T) {
	raw := "=== Node Scripts ===\nNodeGroup: G, Node: Script\n\n  Script: osl_shader.py\n"
	d := Parse(raw)
	if len(d.NodeScripts) != 2 {
		t.Fatalf("expected 2 node script lines, got %d", len(d.NodeScripts))
	}
}

func TestParseUnrecognizedDelimitedLineTerminates(t *testing.T) {
	raw := strings.Join([]string{
		"=== Text Block: keep ===",
		"content",
		"=== Extraction Complete ===",
		"this line is outside any section",
	}, "\n")
	d := Parse(raw)
	if got := d.TextBlocks["keep"]; got != "content" {
		t.Fatalf("block not closed by generic terminator: %q", got)
	}
	if strings.Contains(d.TextBlocks["keep"], "outside") {
		t.Fatalf("content captured past terminator")
	}
}

func TestParseEmptyBlockStillRecorded(t *testing.T) {
	raw := "=== Text Block: empty.py ===\n=== Metadata ===\n"
	d := Parse(raw)
	got, ok := d.TextBlocks["empty.py"]
	if !ok {
		t.Fatalf("empty block must still be recorded")
	}
	if got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
}

func TestParseUnterminatedBlockFlushedAtEOF(t *testing.T) {
	raw := "=== Text Block: tail.py ===\nlast line"
	d := Parse(raw)
	if d.TextBlocks["tail.py"] != "last line" {
		t.Fatalf("open block not flushed at end of input: %+v", d.TextBlocks)
	}
}

func TestParseEmptyInput(t *testing.T) {
	d := Parse("")
	if !d.IsEmpty() {
		t.Fatalf("empty input must yield empty data: %+v", d)
	}
}

func TestParseBlockOrderPreserved(t *testing.T) {
	raw := "=== Text Block: b.py ===\nx\n=== Text Block: a.py ===\ny\n======\n"
	d := Parse(raw)
	if len(d.BlockOrder) != 2 || d.BlockOrder[0] != "b.py" || d.BlockOrder[1] != "a.py" {
		t.Fatalf("block order not preserved: %+v", d.BlockOrder)
	}
}
