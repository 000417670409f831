// Package version carries the adapter's build metadata, stamped in
// at link time.
package version

import "fmt"

// Name is the binary name, used in version banners and log fields.
const Name = "gracket"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String returns the full banner for --version output, including the
// binary name so the line stands on its own in bug reports.
func String() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", Name, Version, Commit, BuildDate)
}
