package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gracket/internal/adapter"
	"gracket/internal/racket"
	"gracket/internal/session"
)

var evalFile string
var evalDryRun bool

var evalCmd = &cobra.Command{
	Use:   "eval <form>...",
	Short: "Evaluate forms in a one-shot Racket session",
	Long: `Evaluate the given forms in the module resolved from --file. With
--dry-run the marshalled wire command is printed instead of being sent,
which is handy for inspecting what the REPL would receive.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		src := racket.Source{Cursor: -1}
		if evalFile != "" {
			text, err := os.ReadFile(evalFile)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", evalFile, err)
			}
			src = racket.Source{Text: string(text), Path: evalFile, Cursor: -1}
		}

		if evalDryRun {
			op := racket.Operation{
				Op:   racket.OpEvaluate,
				Args: append([]string{racket.ResolveModule(src).LoadForm()}, args...),
			}
			fmt.Fprintln(cmd.OutOrStdout(), racket.Marshal(op, src))
			return nil
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

		reply, err := sess.Eval(ctx, src, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printReply(cmd.OutOrStdout(), adapter.NewRacket(cfg), reply)
		if reply.Failed {
			return fmt.Errorf("evaluation failed: %s", reply.ErrorKey)
		}
		return nil
	},
}

func init() {
	evalCmd.Flags().StringVarP(&evalFile, "file", "f", "", "Source file the forms are resolved against")
	evalCmd.Flags().BoolVar(&evalDryRun, "dry-run", false, "Print the wire command instead of sending it")
	rootCmd.AddCommand(evalCmd)
}
