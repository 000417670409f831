package racket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gracket/internal/config"
)

func TestStartupArgs(t *testing.T) {
	cfg := config.Config{SupportDir: "/opt/gracket"}
	want := []string{
		"-i", "-q",
		"-S", "/opt/gracket/racket",
		"-f", "/opt/gracket/racket/geiser/startup.rkt",
	}
	if diff := cmp.Diff(want, StartupArgs(cfg)); diff != "" {
		t.Errorf("StartupArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestStartupArgsFull(t *testing.T) {
	initFile := filepath.Join(t.TempDir(), "init.rkt")
	if err := os.WriteFile(initFile, []byte("(displayln 'hi)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Config{
		SupportDir:   "/opt/gracket",
		CollectDirs:  []string{"/home/user/collects", "/srv/collects"},
		UseGUIBinary: true,
		ExtraFlags:   []string{"-W", "debug"},
		InitFile:     initFile,
	}
	want := []string{
		"-i", "-q",
		"-S", "/opt/gracket/racket",
		"-S", "/home/user/collects",
		"-S", "/srv/collects",
		"-z",
		"-W", "debug",
		"-f", initFile,
		"-f", "/opt/gracket/racket/geiser/startup.rkt",
	}
	if diff := cmp.Diff(want, StartupArgs(cfg)); diff != "" {
		t.Errorf("StartupArgs() mismatch (-want +got):\n%s", diff)
	}
}

func TestStartupArgsSkipsUnreadableInitFile(t *testing.T) {
	cfg := config.Config{
		SupportDir: "/opt/gracket",
		InitFile:   filepath.Join(t.TempDir(), "missing.rkt"),
	}
	for _, arg := range StartupArgs(cfg) {
		if arg == cfg.InitFile {
			t.Errorf("StartupArgs() included unreadable init file %s", cfg.InitFile)
		}
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		version string
		minimum string
		want    bool
	}{
		{"8.11", "6.0", true},
		{"6.0", "6.0", true},
		{"5.3.6", "6.0", false},
		{"6.0.1", "6.0", true},
		{"8.11.1-cs", "8.11", true},
		{"10.0", "9.9", true},
		{"6", "6.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.version+" vs "+tt.minimum, func(t *testing.T) {
			if got := VersionAtLeast(tt.version, tt.minimum); got != tt.want {
				t.Errorf("VersionAtLeast(%q, %q) = %v, want %v", tt.version, tt.minimum, got, tt.want)
			}
		})
	}
}
