package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gracket/internal/session"
)

var docCmd = &cobra.Command{
	Use:   "doc <identifier> [module]",
	Short: "Look up documentation for an identifier",
	Long: `Ask the Racket help system for documentation on an identifier,
optionally scoped to a module. When the reply points at a different
providing module the lookup is retried there once. Not finding
documentation is reported as a status, not a failure.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		proc, err := session.Start(cfg, logger)
		if err != nil {
			return err
		}
		sess := session.New(cfg, proc, logger)
		defer sess.Exit()

		ctx := cmd.Context()
		proc.Reply(ctx) // discard the banner

		module := ""
		if len(args) == 2 {
			module = args[1]
		}
		found, err := sess.LookupHelp(ctx, args[0], module)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintf(cmd.OutOrStdout(), "No documentation found for %s\n", args[0])
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Documentation for %s opened in browser\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
}
