// Package core is the public entry point for embedding the Blender file
// scanner in other programs. It wraps the internal engine behind a small,
// stable surface: configure once, scan a file, inspect findings.
//
//	res, err := core.Scan(core.Config{}, "suspect.blend")
//	if err != nil {
//		// configuration problem, e.g. Blender not installed
//	}
//	if res.HasErrors() {
//		for _, f := range res.BySeverity(core.SevError) {
//			fmt.Println(f.Location, f.Message)
//		}
//	}
package core
