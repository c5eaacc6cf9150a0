package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner prints the ASCII art banner.
func PrintBanner() {
	_, _ = bannerColor.Fprint(os.Stdout, ` ___  ___  __ _ _ __ _____   __
/ __|/ _ \/ _`+"`"+` | '_ `+"`"+` _ \ \ / /
\__ \  __/ (_| | | | | | \ V /
|___/\___|\__, |_| |_| |_|\_/
          |___/
`)
	fmt.Fprintln(os.Stdout)
}
