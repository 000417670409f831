// Package session drives the subordinate REPL process: it sends the
// marshalled command lines and waits, with a bounded timeout, for the
// reply text that precedes the next prompt.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"gracket/internal/config"
	"gracket/internal/racket"
)

// Transport is the byte-level connection to a live REPL. Exactly one
// request is in flight at a time; Reply returns everything printed up
// to the next prompt. Send discards any reply left unconsumed by an
// earlier timed-out request, so replies stay paired with the commands
// that caused them.
type Transport interface {
	Send(line string) error
	Reply(ctx context.Context) (string, error)
	Close() error
}

// promptPattern matches the prompt both binaries print when they are
// ready for the next command.
var promptPattern = regexp.MustCompile(`(?:racket|mzscheme)@[^\n]*> $`)

// Process is the Transport over a spawned REPL subprocess.
type Process struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	replies   chan string
	done      chan struct{}
	closeOnce sync.Once
	readErr   error
	logger    *zap.Logger
}

// Start spawns the REPL with the adapter's startup parameters and
// begins pumping its output. The first reply available on the
// transport is the banner printed before the first prompt.
func Start(cfg config.Config, logger *zap.Logger) (*Process, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cmd := exec.Command(cfg.BinaryName(), racket.StartupArgs(cfg)...)
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", cfg.BinaryName(), err)
	}
	logger.Debug("repl started",
		zap.String("binary", cfg.BinaryName()),
		zap.Strings("args", cmd.Args[1:]),
	)

	p := &Process{
		cmd:     cmd,
		stdin:   stdin,
		replies: make(chan string, 1),
		done:    make(chan struct{}),
		logger:  logger,
	}
	go p.pump(stdout)
	return p, nil
}

// Send writes one command line to the REPL. A reply still buffered
// here belongs to a command that timed out earlier; pairing it with
// the command being sent now would shift every reply after it by one,
// so it is dropped first.
func (p *Process) Send(line string) error {
drain:
	for {
		select {
		case stale, ok := <-p.replies:
			if !ok {
				break drain
			}
			p.logger.Debug("dropped stale reply", zap.Int("bytes", len(stale)))
		default:
			break drain
		}
	}
	if _, err := io.WriteString(p.stdin, line+"\n"); err != nil {
		return fmt.Errorf("failed to write to repl: %w", err)
	}
	return nil
}

// Reply returns the next complete reply, or an error when the context
// expires first.
func (p *Process) Reply(ctx context.Context) (string, error) {
	select {
	case reply, ok := <-p.replies:
		if !ok {
			if p.readErr != nil {
				return "", fmt.Errorf("repl output closed: %w", p.readErr)
			}
			return "", fmt.Errorf("repl output closed")
		}
		return reply, nil
	case <-ctx.Done():
		return "", fmt.Errorf("timed out waiting for repl reply: %w", ctx.Err())
	}
}

// Close shuts the process down by closing its stdin and waiting for
// it to exit. It also releases the pump if it is blocked handing over
// a reply nobody will read.
func (p *Process) Close() error {
	p.closeOnce.Do(func() { close(p.done) })
	p.stdin.Close()
	return p.cmd.Wait()
}

// pump accumulates subprocess output and emits a reply every time the
// buffered tail ends in a prompt. The prompt itself is stripped.
func (p *Process) pump(r io.Reader) {
	defer close(p.replies)

	reader := bufio.NewReader(r)
	var buf strings.Builder
	chunk := make([]byte, 4096)
	for {
		n, err := reader.Read(chunk)
		if n > 0 {
			buf.WriteString(string(chunk[:n]))
			if loc := promptPattern.FindStringIndex(buf.String()); loc != nil {
				reply := buf.String()[:loc[0]]
				buf.Reset()
				select {
				case p.replies <- strings.TrimRight(reply, "\n"):
				case <-p.done:
					return
				}
			}
		}
		if err != nil {
			if err != io.EOF {
				p.readErr = err
			}
			return
		}
	}
}
