package racket

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gracket/internal/config"
)

// MinimumVersion is the oldest Racket release the support code runs
// on. The process supervisor is expected to run VersionCommand and
// refuse anything older.
const MinimumVersion = "6.0"

// VersionCommand is the form the supervisor evaluates to learn the
// REPL's version.
const VersionCommand = "(version)"

// StartupArgs builds the argument vector the REPL process is spawned
// with. Order matters: the interactive flags first, then the search
// path entries, variant flags, the user's init file when readable,
// and always last the adapter's bootstrap script so it wins.
func StartupArgs(cfg config.Config) []string {
	args := []string{"-i", "-q", "-S", filepath.Join(cfg.SupportDir, "racket")}
	for _, dir := range cfg.CollectDirs {
		args = append(args, "-S", dir)
	}
	if cfg.UseGUIBinary {
		args = append(args, "-z")
	}
	args = append(args, cfg.ExtraFlags...)
	if cfg.InitFile != "" && readable(cfg.InitFile) {
		args = append(args, "-f", cfg.InitFile)
	}
	return append(args, "-f", BootstrapScript(cfg))
}

// BootstrapScript returns the path of the startup script that loads
// the adapter's REPL-side support code.
func BootstrapScript(cfg config.Config) string {
	return filepath.Join(cfg.SupportDir, "racket", "geiser", "startup.rkt")
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// VersionAtLeast compares two dotted version strings numerically,
// component by component. Non-numeric trailing junk in a component is
// ignored, which copes with versions like "8.11.1-cs".
func VersionAtLeast(version, minimum string) bool {
	vs := versionParts(version)
	ms := versionParts(minimum)
	for i := 0; i < len(vs) || i < len(ms); i++ {
		v, m := 0, 0
		if i < len(vs) {
			v = vs[i]
		}
		if i < len(ms) {
			m = ms[i]
		}
		if v != m {
			return v > m
		}
	}
	return true
}

func versionParts(s string) []int {
	var parts []int
	for _, p := range strings.Split(strings.TrimSpace(s), ".") {
		digits := p
		for j, r := range p {
			if r < '0' || r > '9' {
				digits = p[:j]
				break
			}
		}
		n, _ := strconv.Atoi(digits)
		parts = append(parts, n)
	}
	return parts
}
