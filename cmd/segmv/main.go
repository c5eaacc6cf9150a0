// Command segmv is the CLI entrypoint for the segmv batch renamer.
//
// It moves every entry of a source directory into a destination directory,
// renaming each entry to the second hyphen-delimited segment of its name.
package main

import (
	"fmt"
	"os"

	"segmv/cmd/segmv/commands"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build", these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	if err := commands.Execute(version, commit); err != nil {
		fmt.Fprintf(os.Stderr, "segmv: %v\n", err)
		os.Exit(1)
	}
}
