package blendscan

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/demitas1/blender-files/internal/detectors"
	"github.com/demitas1/blender-files/internal/scanner/bandit"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "detectors",
		Short: "List available detectors and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Detector", "Status", "Description")
			for _, d := range detectors.Defaults() {
				table.Append([]string{d.Name(), "built-in", d.Description()})
			}

			status := "not installed"
			if path, err := bandit.FindBinary(""); err == nil {
				if v, err := bandit.Version(path); err == nil {
					status = "v" + v
				} else {
					status = "installed"
				}
			}
			table.Append([]string{bandit.Name, status, "Python static analysis of embedded text blocks (external tool)"})
			if err := table.Render(); err != nil {
				return err
			}
			if status == "not installed" {
				fmt.Println("\nInstall bandit with: pip install bandit")
			}
			return nil
		},
	})
}
