package blendscan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/demitas1/blender-files/internal/config"
	"github.com/demitas1/blender-files/internal/detectors"
	"github.com/demitas1/blender-files/internal/engine"
	"github.com/demitas1/blender-files/internal/report"
	"github.com/demitas1/blender-files/internal/scanner/bandit"
	"github.com/demitas1/blender-files/internal/types"
)

var (
	flagBlenderVersion string
	flagBlenderPath    string
	flagWithAddons     bool
	flagScanners       string
	flagGlob           string
	flagTimeout        time.Duration
	flagBaseline       string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan <file.blend|directory>",
		Short: "Scan Blender files for security issues",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagBlenderVersion, "blender-version", "b", "", "Blender version to use (default: blender-5)")
	cmd.Flags().StringVar(&flagBlenderPath, "blender-path", "", "explicit path to the Blender executable")
	cmd.Flags().BoolVar(&flagWithAddons, "with-addons", false, "run Blender with user addons enabled")
	cmd.Flags().StringVarP(&flagScanners, "scanners", "s", "", "comma-separated scanners to run (default: malware,privacy,bandit)")
	cmd.Flags().StringVar(&flagGlob, "glob", "", "glob for .blend discovery under a directory (default: **/*.blend)")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "bound each subprocess invocation (0 = no limit)")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "suppress findings recorded in this baseline file")
}

func runScan(cmd *cobra.Command, args []string) error {
	target := args[0]
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("file not found: %s", target)
	}

	gcfg, lcfg := loadConfigs()
	cfg, enableBandit, banditPath, err := buildEngineConfig(gcfg, lcfg)
	if err != nil {
		return err
	}

	o, err := engine.New(cfg)
	if err != nil {
		return err
	}

	files, err := engine.FindBlendFiles(target, flagGlob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .blend files found under %s", target)
	}

	noColor := flagNoColor || pickBool(false, lcfg.NoColor, gcfg.NoColor) || !stdoutIsTerminal()
	baselinePath := pickString(flagBaseline, lcfg.Baseline, gcfg.Baseline)

	var results []types.ScanResult
	exitErrors := false
	for _, file := range files {
		if !flagJSON {
			fmt.Printf("Target file: %s\n", file)
			if !flagWithAddons {
				fmt.Println("(Addons disabled)")
			}
			fmt.Println()
			fmt.Println("Extracting and scanning...")
		}

		res, err := o.Scan(file)
		if err != nil {
			return err
		}
		if baselinePath != "" {
			if base, err := report.LoadBaseline(baselinePath); err == nil {
				res.Findings = report.FilterNew(res.Findings, base)
			}
		}

		if !flagJSON {
			if res.Extracted.IsEmpty() {
				fmt.Println("Warning: No data extracted. Check Blender output.")
			}
			fmt.Println("Extraction complete")
			fmt.Println()
			report.Print(os.Stdout, res, report.Options{
				Verbose:         flagVerbose,
				NoColor:         noColor,
				BanditAvailable: enableBandit && bandit.IsAvailable(banditPath),
			})
		}
		if res.HasErrors() {
			exitErrors = true
		}
		results = append(results, res)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if len(results) == 1 {
			if err := enc.Encode(results[0]); err != nil {
				return err
			}
		} else if err := enc.Encode(results); err != nil {
			return err
		}
	}

	if exitErrors {
		return errFindings
	}
	return nil
}

// buildEngineConfig merges flags and config files into an engine config.
// It also reports whether the bandit pass is wanted and which binary to use.
func buildEngineConfig(gcfg, lcfg config.FileConfig) (engine.Config, bool, string, error) {
	timeout := flagTimeout
	if timeout == 0 {
		if s := pickString("", lcfg.Timeout, gcfg.Timeout); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				timeout = d
			}
		}
	}

	selected, enableBandit, err := selectDetectors(pickString(flagScanners, lcfg.Scanners, gcfg.Scanners))
	if err != nil {
		return engine.Config{}, false, "", err
	}
	banditPath := lcfg.BanditBinary()
	if banditPath == "" {
		banditPath = gcfg.BanditBinary()
	}
	if lcfg.BanditDisabled() || gcfg.BanditDisabled() {
		enableBandit = false
	}

	cfg := engine.Config{
		BlenderVersion: pickString(flagBlenderVersion, lcfg.BlenderVersion, gcfg.BlenderVersion),
		BlenderPath:    pickString(flagBlenderPath, lcfg.BlenderPath, gcfg.BlenderPath),
		DisableAddons:  !(flagWithAddons || pickBool(false, lcfg.WithAddons, gcfg.WithAddons)),
		Timeout:        timeout,
		Detectors:      selected,
		EnableBandit:   enableBandit,
		BanditPath:     banditPath,
	}
	return cfg, enableBandit, banditPath, nil
}

// selectDetectors parses the -s list. Empty means all rule-based detectors
// plus bandit. Naming bandit explicitly keeps it on; leaving it out of an
// explicit list turns it off.
func selectDetectors(list string) ([]detectors.Detector, bool, error) {
	if strings.TrimSpace(list) == "" {
		return nil, true, nil
	}
	var selected []detectors.Detector
	enableBandit := false
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == bandit.Name {
			enableBandit = true
			continue
		}
		d, ok := detectors.ByName(name)
		if !ok {
			return nil, false, fmt.Errorf("unknown scanner %q (available: %s)", name, strings.Join(engine.DetectorIDs(), ", "))
		}
		selected = append(selected, d)
	}
	if selected == nil {
		selected = []detectors.Detector{}
	}
	return selected, enableBandit, nil
}

func loadConfigs() (gcfg, lcfg config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if wd, err := os.Getwd(); err == nil {
		if c, err := config.LoadLocal(wd); err == nil {
			lcfg = c
		}
	}
	return gcfg, lcfg
}
