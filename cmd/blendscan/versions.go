package blendscan

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/demitas1/blender-files/internal/extract"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "versions",
		Short: "List installed Blender versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			versions := extract.ListVersions()
			if len(versions) == 0 {
				return fmt.Errorf("no Blender installs found under %s (set BLENDER_BASE_DIR to override)", extract.BaseDir())
			}
			for _, v := range versions {
				marker := "  "
				if v == extract.DefaultVersion {
					marker = "* "
				}
				fmt.Println(marker + v)
			}
			return nil
		},
	})
}
