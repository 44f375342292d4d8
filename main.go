package main

import "github.com/demitas1/blender-files/cmd/blendscan"

func main() { blendscan.Execute() }
