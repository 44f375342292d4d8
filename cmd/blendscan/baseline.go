package blendscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/demitas1/blender-files/internal/engine"
	"github.com/demitas1/blender-files/internal/report"
	"github.com/demitas1/blender-files/internal/types"
)

var flagBaselineOut string

func init() {
	baselineCmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage the accepted-findings baseline",
	}
	updateCmd := &cobra.Command{
		Use:   "update <file.blend|directory>",
		Short: "Record current findings as accepted, suppressing them on later scans",
		Args:  cobra.ExactArgs(1),
		RunE:  runBaselineUpdate,
	}
	updateCmd.Flags().StringVarP(&flagBaselineOut, "output", "o", report.DefaultBaselinePath, "baseline file to write")
	baselineCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(baselineCmd)
}

func runBaselineUpdate(cmd *cobra.Command, args []string) error {
	gcfg, lcfg := loadConfigs()
	cfg, _, _, err := buildEngineConfig(gcfg, lcfg)
	if err != nil {
		return err
	}
	o, err := engine.New(cfg)
	if err != nil {
		return err
	}
	files, err := engine.FindBlendFiles(args[0], flagGlob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .blend files found under %s", args[0])
	}

	var all []types.Finding
	for _, file := range files {
		res, err := o.Scan(file)
		if err != nil {
			return err
		}
		all = append(all, res.Findings...)
	}
	if err := report.SaveBaseline(flagBaselineOut, all); err != nil {
		return err
	}
	fmt.Printf("Recorded %d finding(s) from %d file(s) to %s\n", len(all), len(files), flagBaselineOut)
	return nil
}
