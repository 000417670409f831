package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gracket/internal/config"
	"gracket/internal/version"
)

var configFile string
var debug bool

var rootCmd = &cobra.Command{
	Use:   version.Name,
	Short: "Racket REPL adapter for interactive evaluation front-ends",
	Long: `gracket teaches a generic interactive-evaluation front-end how to
launch, talk to, and interpret output from a Racket REPL: it builds the
textual commands the REPL understands, parses the replies, and renders
remote errors with adapter-internal stack frames filtered out.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultConfigFile, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable protocol debug logging")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the configured YAML file, falling back to defaults
// when it is absent.
func loadConfig() (config.Config, error) {
	return config.Load(configFile)
}

// newLogger builds the protocol tracer: a development logger with
// --debug, a nop logger otherwise.
func newLogger() *zap.Logger {
	if !debug {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
