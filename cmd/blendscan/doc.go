// Package blendscan provides the command-line interface for the Blender
// file scanner. It configures subcommands (scan, versions, detectors,
// baseline), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/demitas1/blender-files/cmd/blendscan"
//	func main() { blendscan.Execute() }
package blendscan
