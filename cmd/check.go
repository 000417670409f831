package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gracket/internal/racket"
	"gracket/internal/session"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the Racket installation meets the version gate",
	Long: `Spawn the configured Racket binary, ask it for its version, and
compare against the minimum the adapter's support code needs. This is
the same gate the front-end's process supervisor enforces at session
start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		proc, err := session.Start(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to start %s: %w", cfg.BinaryName(), err)
		}
		sess := session.New(cfg, proc, logger)
		defer sess.Exit()

		ctx := cmd.Context()
		proc.Reply(ctx) // discard the banner

		got, err := sess.Version(ctx)
		if err != nil {
			return err
		}
		if !racket.VersionAtLeast(got, racket.MinimumVersion) {
			return fmt.Errorf("%s %s is older than the minimum supported %s",
				cfg.BinaryName(), got, racket.MinimumVersion)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s OK (minimum %s)\n",
			cfg.BinaryName(), got, racket.MinimumVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
