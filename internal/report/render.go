// Package report renders scan results for terminals and manages finding
// baselines. It is the only consumer-facing view of a ScanResult; grouping
// is by severity first, detector shown per finding.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/demitas1/blender-files/internal/types"
)

var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleSection = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Options controls rendering.
type Options struct {
	Verbose bool
	NoColor bool

	// BanditAvailable toggles the informational note when no bandit output
	// is present; absence of the tool is reported, never treated as a
	// scan failure.
	BanditAvailable bool
}

func (o Options) paint(st lipgloss.Style, s string) string {
	if o.NoColor {
		return s
	}
	return st.Render(s)
}

// Print writes the full scan report in the fixed layout: extracted-data
// summary, optional script dump, findings grouped error, warning, info
// (info only when verbose), bandit passthrough, summary footer.
func Print(w io.Writer, res types.ScanResult, opts Options) {
	bar := strings.Repeat("=", 60)
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w, "Blender Security Scanner")
	fmt.Fprintln(w, bar)
	fmt.Fprintln(w)

	printExtractedSummary(w, res.Extracted, opts)

	if opts.Verbose {
		printScripts(w, res.Extracted, opts)
	}

	errors := res.BySeverity(types.SevError)
	warnings := res.BySeverity(types.SevWarning)
	infos := res.BySeverity(types.SevInfo)

	if len(errors) > 0 {
		fmt.Fprintln(w, opts.paint(styleError, fmt.Sprintf("[ERROR] %d dangerous pattern(s) detected!", len(errors))))
		fmt.Fprintln(w)
		printFindings(w, errors)
	}
	if len(warnings) > 0 {
		fmt.Fprintln(w, opts.paint(styleWarning, fmt.Sprintf("[WARNING] %d pattern(s) requiring review", len(warnings))))
		fmt.Fprintln(w)
		printFindings(w, warnings)
	}
	if len(infos) > 0 && opts.Verbose {
		fmt.Fprintln(w, opts.paint(styleInfo, fmt.Sprintf("[INFO] %d informational finding(s)", len(infos))))
		fmt.Fprintln(w)
		printFindings(w, infos)
	}

	if res.BanditOutput != "" {
		fmt.Fprintln(w, opts.paint(styleSection, "[Bandit Security Scan]"))
		fmt.Fprintln(w, res.BanditOutput)
	} else if !opts.BanditAvailable {
		fmt.Fprintln(w, opts.paint(styleWarning, "Note: bandit is not installed"))
		fmt.Fprintln(w, "Install: pip install bandit")
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, bar)
	switch {
	case len(errors) > 0:
		fmt.Fprintln(w, opts.paint(styleError, fmt.Sprintf("Scan complete: %d error(s), %d warning(s)", len(errors), len(warnings))))
	case len(warnings) > 0:
		fmt.Fprintln(w, opts.paint(styleWarning, fmt.Sprintf("Scan complete: %d warning(s)", len(warnings))))
	default:
		fmt.Fprintln(w, opts.paint(styleOK, "Scan complete: No issues found"))
	}
}

func printExtractedSummary(w io.Writer, data types.ExtractedData, opts Options) {
	fmt.Fprintln(w, opts.paint(styleSection, "[Extracted Data]"))

	table := tablewriter.NewWriter(w)
	table.Header("Item", "Count")
	table.Append([]string{"Text blocks", fmt.Sprint(len(data.TextBlocks))})
	table.Append([]string{"Driver expressions", fmt.Sprint(len(data.DriverExpressions))})
	table.Append([]string{"Node scripts", fmt.Sprint(len(data.NodeScripts))})
	table.Append([]string{"Metadata entries", fmt.Sprint(len(data.Metadata))})
	table.Append([]string{"External references", fmt.Sprint(len(data.ExternalRefs))})
	_ = table.Render()

	for _, name := range data.BlockOrder {
		fmt.Fprintf(w, "    - %s\n", name)
	}
	fmt.Fprintln(w)
}

func printScripts(w io.Writer, data types.ExtractedData, opts Options) {
	fmt.Fprintln(w, opts.paint(styleSection, "[Extracted Scripts]"))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, name := range data.BlockOrder {
		fmt.Fprintf(w, "=== %s ===\n", name)
		fmt.Fprintln(w, highlightPython(data.TextBlocks[name], opts.NoColor))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintln(w)

	if len(data.ExternalRefs) > 0 {
		fmt.Fprintln(w, opts.paint(styleSection, "[External References]"))
		for _, ref := range data.ExternalRefs {
			fmt.Fprintf(w, "  %s\n", ref)
		}
		fmt.Fprintln(w)
	}
}

func printFindings(w io.Writer, findings []types.Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "  [%s] %s\n", f.Detector, f.Location)
		fmt.Fprintf(w, "    %s\n", f.Message)
		fmt.Fprintf(w, "    %s\n", f.MatchedText)
		fmt.Fprintln(w)
	}
}
