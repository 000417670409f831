package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"gracket/internal/adapter"
	"gracket/internal/racket"
	"gracket/internal/session"
	"gracket/internal/trace"
)

var replFile string

var promptStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("81"))

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Racket session through the adapter",
	Long: `Start the Racket REPL with the adapter's startup parameters and route
every input line through the command marshaller. Lines starting with a
comma are sent as-is; everything else is evaluated in the module
resolved from --file (or no module at all).`,
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
		impl := adapter.NewRacket(cfg)
		defer sess.Exit()

		ctx := cmd.Context()
		if banner, err := proc.Reply(ctx); err == nil {
			fmt.Fprintln(cmd.OutOrStdout(), banner)
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		for {
			fmt.Fprint(out, promptStyle.Render("racket> "))
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == ",q" || line == ",quit" {
				break
			}

			reply, err := replRequest(ctx, sess, line)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			printReply(out, impl, reply)
		}
		return scanner.Err()
	},
}

// replRequest routes one input line: raw protocol commands go through
// untouched, anything else becomes an evaluation request against the
// current source snapshot.
func replRequest(ctx context.Context, sess *session.Session, line string) (racket.Reply, error) {
	if strings.HasPrefix(line, ",") {
		return sess.Request(ctx, line)
	}
	src, err := snapshot()
	if err != nil {
		return racket.Reply{}, err
	}
	return sess.Eval(ctx, src, line)
}

// printReply shows values and output, or renders a remote error
// through the presenter.
func printReply(out io.Writer, impl *adapter.Racket, reply racket.Reply) {
	if reply.Failed {
		trace.Display(out, impl.RenderError("", reply.ErrorKey, reply.ErrorMessage))
		return
	}
	if reply.Output != "" {
		fmt.Fprintln(out, reply.Output)
	}
	for _, v := range reply.Values {
		fmt.Fprintln(out, "=>", v)
	}
	if len(reply.Values) == 0 && reply.Output == "" && strings.TrimSpace(reply.Raw) != "" {
		fmt.Fprintln(out, reply.Raw)
	}
}

// snapshot rereads the --file buffer so module and language detection
// see its current contents on every request.
func snapshot() (racket.Source, error) {
	if replFile == "" {
		return racket.Source{Cursor: -1}, nil
	}
	text, err := os.ReadFile(replFile)
	if err != nil {
		return racket.Source{}, fmt.Errorf("failed to read %s: %w", replFile, err)
	}
	return racket.Source{Text: string(text), Path: replFile, Cursor: -1}, nil
}

func init() {
	replCmd.Flags().StringVarP(&replFile, "file", "f", "", "Source file evaluations are resolved against")
	rootCmd.AddCommand(replCmd)
}
