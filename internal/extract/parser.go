package extract

import (
	"regexp"
	"strings"

	"github.com/demitas1/blender-files/internal/types"
)

// section is the parser state: which part of the extraction report the
// current line belongs to.
type section int

const (
	secNone section = iota
	secTextBlock
	secDrivers
	secNodes
	secMetadata
	secExternalRefs
)

const (
	headerDrivers      = "=== Driver Expressions ==="
	headerNodes        = "=== Node Scripts ==="
	headerMetadata     = "=== Metadata ==="
	headerExternalRefs = "=== External References ==="
)

var reTextBlockHeader = regexp.MustCompile(`^=== Text Block: (.+) ===$`)

// Parse converts the combined stdout/stderr of a Blender extraction run into
// structured data. It is a forgiving line-oriented scanner: malformed or
// truncated input yields a partially populated (possibly empty) result,
// never an error.
//
// Section boundaries are triple-equals-delimited lines. There is no explicit
// end marker; any unrecognized "===...===" line terminates the current
// section. Everything outside a recognized section is discarded.
func Parse(raw string) types.ExtractedData {
	out := types.NewExtractedData()

	state := secNone
	blockName := ""
	var blockContent []string

	flush := func() {
		if blockName == "" {
			return
		}
		if _, seen := out.TextBlocks[blockName]; !seen {
			out.BlockOrder = append(out.BlockOrder, blockName)
		}
		out.TextBlocks[blockName] = strings.Join(blockContent, "\n")
	}

	for _, line := range strings.Split(raw, "\n") {
		if m := reTextBlockHeader.FindStringSubmatch(line); m != nil {
			flush()
			blockName = m[1]
			blockContent = nil
			state = secTextBlock
			continue
		}

		switch line {
		case headerDrivers:
			flush()
			blockName = ""
			state = secDrivers
			continue
		case headerNodes:
			flush()
			blockName = ""
			state = secNodes
			continue
		case headerMetadata:
			flush()
			blockName = ""
			state = secMetadata
			continue
		case headerExternalRefs:
			flush()
			blockName = ""
			state = secExternalRefs
			continue
		}

		// Any other delimited line ends the current section. This is how
		// the end of the report is recognized.
		if strings.HasPrefix(line, "===") && strings.HasSuffix(line, "===") {
			flush()
			blockName = ""
			state = secNone
			continue
		}

		switch state {
		case secTextBlock:
			if blockName != "" {
				blockContent = append(blockContent, line)
			}
		case secDrivers:
			// The export format pairs an "Object: ..., Path: ..." line with
			// an "  Expression: ..." line; only lines carrying the
			// expression are captured, whole.
			if strings.Contains(line, "Expression:") {
				out.DriverExpressions = append(out.DriverExpressions, line)
			}
		case secNodes:
			if strings.TrimSpace(line) != "" {
				out.NodeScripts = append(out.NodeScripts, line)
			}
		case secMetadata:
			if strings.Contains(line, ":") {
				key, value, _ := strings.Cut(line, ":")
				out.Metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
			}
		case secExternalRefs:
			if t := strings.TrimSpace(line); t != "" {
				out.ExternalRefs = append(out.ExternalRefs, t)
			}
		}
	}

	// Input may end while a text block is still open.
	flush()

	return out
}
