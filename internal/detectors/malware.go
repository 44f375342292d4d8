package detectors

import (
	"regexp"

	"github.com/demitas1/blender-files/internal/types"
)

// malwareRules is evaluated in order for every line. Error-level entries are
// dangerous-call indicators; eval sits at warning level because drivers and
// rigging scripts use it legitimately.
var malwareRules = []Rule{
	{regexp.MustCompile(`os\.(system|popen)\s*\(`), types.SevError, "OS command execution detected"},
	{regexp.MustCompile(`subprocess\.(Popen|call|run|check_call|check_output)\s*\(`), types.SevError, "Process spawning detected"},
	{regexp.MustCompile(`\bexec\s*\(`), types.SevError, "Dynamic code execution detected"},
	{regexp.MustCompile(`socket\.(socket|create_connection)\s*\(`), types.SevError, "Raw socket access detected"},
	{regexp.MustCompile(`(urllib\.request\.urlopen|requests\.(get|post|put|delete|head|request))\s*\(`), types.SevError, "HTTP client usage detected"},
	{regexp.MustCompile(`shutil\.rmtree\s*\(`), types.SevError, "Recursive file tree deletion detected"},
	{regexp.MustCompile(`(__import__|importlib\.import_module)\s*\(`), types.SevError, "Dynamic module import detected"},
	{regexp.MustCompile(`\beval\s*\(`), types.SevWarning, "Dynamic expression evaluation detected (common in drivers, review recommended)"},
}

// Malware flags dangerous-call patterns in embedded scripts and driver
// expressions.
type Malware struct{}

func NewMalware() *Malware { return &Malware{} }

func (m *Malware) Name() string { return "malware" }

func (m *Malware) Description() string {
	return "Detects dangerous calls: command execution, sockets, dynamic code"
}

// Scan reports one finding per matching rule per line. Matched text is the
// trimmed raw line; malware matches are not secrets, so nothing is masked.
func (m *Malware) Scan(content, source string) []types.Finding {
	return scanRules(m.Name(), content, source, malwareRules, nil)
}
