package blendscan

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errFindings signals that the scan ran to completion but found
// error-severity issues. It maps to exit code 1; every other command error
// is a usage or configuration problem and maps to exit code 2.
var errFindings = errors.New("scan found errors")

var (
	flagJSON    bool
	flagNoColor bool
	flagVerbose bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the blendscan CLI.
var rootCmd = &cobra.Command{
	Use:           "blendscan",
	Short:         "Security scanner for Blender files",
	Long:          "blendscan extracts embedded scripts, driver expressions, metadata and external references from .blend files and checks them for malicious patterns and leaked secrets.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the blendscan CLI. It should be called by the main package.
func Execute() {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFindings) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFindings):
		return 1
	default:
		return 2
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON instead of the text report")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show extracted script contents and info-level findings")
}
