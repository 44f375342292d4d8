package bandit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demitas1/blender-files/internal/types"
)

func TestParseReport(t *testing.T) {
	output := []byte(`{
		"results": [
			{"test_id": "B602", "issue_text": "subprocess call with shell=True",
			 "issue_severity": "HIGH", "filename": "evil.py", "line_number": 3,
			 "code": "subprocess.call(cmd, shell=True)\n"},
			{"test_id": "B110", "issue_text": "try/except/pass",
			 "issue_severity": "LOW", "filename": "meh.py", "line_number": 9,
			 "code": "pass"}
		]
	}`)
	fs := parseReport(output)
	require.Len(t, fs, 2)
	assert.Equal(t, Name, fs[0].Detector)
	assert.Equal(t, types.SevError, fs[0].Severity)
	assert.Equal(t, "[B602] subprocess call with shell=True", fs[0].Message)
	assert.Equal(t, "evil.py:3", fs[0].Location)
	assert.Equal(t, "subprocess.call(cmd, shell=True)", fs[0].MatchedText)
	assert.Equal(t, types.SevInfo, fs[1].Severity)
}

func TestParseReportDefaults(t *testing.T) {
	fs := parseReport([]byte(`{"results": [{"issue_severity": "MEDIUM"}]}`))
	require.Len(t, fs, 1)
	assert.Equal(t, "[B000] Unknown issue", fs[0].Message)
	assert.Equal(t, "unknown:0", fs[0].Location)
	assert.Equal(t, types.SevWarning, fs[0].Severity)
}

func TestParseReportMalformed(t *testing.T) {
	assert.Nil(t, parseReport(nil))
	assert.Nil(t, parseReport([]byte("  \n")))
	assert.Nil(t, parseReport([]byte("not json {")))
	assert.Nil(t, parseReport([]byte(`{"results": []}`)))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, types.SevError, mapSeverity("HIGH"))
	assert.Equal(t, types.SevWarning, mapSeverity("medium"))
	assert.Equal(t, types.SevInfo, mapSeverity("LOW"))
	assert.Equal(t, types.SevInfo, mapSeverity("BOGUS"))
	assert.Equal(t, types.SevInfo, mapSeverity(""))
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "scripts__init.py", safeFilename("scripts/init.py"))
	assert.Equal(t, "rig__driver.py", safeFilename("rig:driver"))
	assert.Equal(t, "plain.py", safeFilename("plain.py"))
	assert.Equal(t, "win__path.py", safeFilename(`win\path`))
}

func TestBlockNamesDeterministic(t *testing.T) {
	blocks := map[string]string{"c": "", "a": "", "b": ""}
	names := blockNames(blocks, []string{"b"})
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestFindBinaryCustomPath(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "bandit")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755))

	path, err := FindBinary(fake)
	require.NoError(t, err)
	assert.Equal(t, fake, path)

	_, err = FindBinary(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion("1.7.5"))
	assert.NoError(t, checkVersion("garbage"))
	assert.Error(t, checkVersion("1.4.0"))
}

func TestNewWithFakeBinary(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "bandit")
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--version\" ]; then echo 'bandit 1.7.5'; exit 0; fi\n" +
		"exit 1\n"
	require.NoError(t, os.WriteFile(fake, []byte(script), 0o755))

	s, err := New(fake)
	require.NoError(t, err)
	assert.Equal(t, "1.7.5", s.BinaryVersion())
}

func TestScanBlocksWithFakeBinary(t *testing.T) {
	// The fake bandit records the files it was pointed at and emits one
	// HIGH finding as JSON.
	dir := t.TempDir()
	fake := filepath.Join(dir, "bandit")
	script := "#!/bin/sh\n" +
		"if [ \"$1\" = \"--version\" ]; then echo 'bandit 1.7.5'; exit 0; fi\n" +
		"if [ \"$2\" = \"-f\" ]; then\n" +
		"  echo '{\"results\":[{\"test_id\":\"B602\",\"issue_text\":\"bad\",\"issue_severity\":\"HIGH\",\"filename\":\"x.py\",\"line_number\":1,\"code\":\"x\"}]}'\n" +
		"else\n" +
		"  echo 'Run started'\n" +
		"fi\n"
	require.NoError(t, os.WriteFile(fake, []byte(script), 0o755))

	s, err := New(fake)
	require.NoError(t, err)

	blocks := map[string]string{"evil.py": "import os\nos.system('id')\n"}
	fs, err := s.ScanBlocks(blocks, []string{"evil.py"})
	require.NoError(t, err)
	require.Len(t, fs, 1)
	assert.Equal(t, types.SevError, fs[0].Severity)

	raw, err := s.RawOutput(blocks, []string{"evil.py"})
	require.NoError(t, err)
	assert.Contains(t, raw, "Run started")
}

func TestScanBlocksEmpty(t *testing.T) {
	s := &Scanner{binaryPath: "/nonexistent"}
	fs, err := s.ScanBlocks(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, fs)
}
