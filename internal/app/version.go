package app

import (
	"fmt"
	"io"
)

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/pygym/pygym/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether the argument list requests the version.
//
// Parameters:
//   - args: The command-line arguments without the program name.
//
// Returns:
//   - bool: true when a version flag is present.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "pygym version %s\n", Version)
}
