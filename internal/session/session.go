package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"gracket/internal/config"
	"gracket/internal/racket"
)

// Session is the request/reply layer over a transport. All methods
// are synchronous and single-flight: the caller blocks until the REPL
// answers or the reply timeout expires. A wedged process costs one
// timeout, never an indefinite hang.
type Session struct {
	cfg    config.Config
	t      Transport
	logger *zap.Logger
}

// New builds a session over an already-started transport. A nil
// logger disables tracing.
func New(cfg config.Config, t Transport, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{cfg: cfg, t: t, logger: logger}
}

// Request sends one command and waits for the parsed reply. When the
// context carries no deadline of its own, the configured reply
// timeout bounds the wait.
func (s *Session) Request(ctx context.Context, command string) (racket.Reply, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ReplyTimeout.Std())
		defer cancel()
	}

	s.logger.Debug("request", zap.String("command", command))
	if err := s.t.Send(command); err != nil {
		return racket.Reply{}, err
	}
	raw, err := s.t.Reply(ctx)
	if err != nil {
		return racket.Reply{}, err
	}
	s.logger.Debug("reply", zap.Int("bytes", len(raw)))
	return racket.ParseReply(raw), nil
}

// Eval evaluates forms against the module resolved from the source
// snapshot.
func (s *Session) Eval(ctx context.Context, src racket.Source, forms ...string) (racket.Reply, error) {
	ref := racket.ResolveModule(src)
	s.logger.Debug("eval", zap.Stringer("module", ref))
	args := append([]string{ref.LoadForm()}, forms...)
	return s.Request(ctx, racket.Marshal(racket.Operation{Op: racket.OpEvaluate, Args: args}, src))
}

// LoadFile loads the file behind the source snapshot.
func (s *Session) LoadFile(ctx context.Context, src racket.Source) (racket.Reply, error) {
	return s.Request(ctx, racket.Marshal(racket.Operation{Op: racket.OpLoadFile}, src))
}

// EnterModule switches the REPL's current module to the one resolved
// from the source snapshot.
func (s *Session) EnterModule(ctx context.Context, src racket.Source) (racket.Reply, error) {
	return s.Request(ctx, racket.EnterCommand(racket.ResolveModule(src)))
}

// Import requires a module into the current namespace. An empty name
// means there is nothing to send, which is not an error.
func (s *Session) Import(ctx context.Context, name string) (racket.Reply, error) {
	cmd, ok := racket.ImportCommand(name)
	if !ok {
		return racket.Reply{}, nil
	}
	return s.Request(ctx, cmd)
}

// NoValues tells the REPL the last evaluation produced no values.
func (s *Session) NoValues(ctx context.Context) (racket.Reply, error) {
	return s.Request(ctx, racket.Marshal(racket.Operation{Op: racket.OpNoValues}, racket.Source{}))
}

// Version asks the running REPL for its version string.
func (s *Session) Version(ctx context.Context) (string, error) {
	reply, err := s.Request(ctx, racket.VersionCommand)
	if err != nil {
		return "", err
	}
	if len(reply.Values) > 0 {
		return reply.Values[0], nil
	}
	// Without the support code loaded the REPL echoes the version
	// in its write form, quotes included.
	return strings.Trim(firstLine(reply.Raw), `" `), nil
}

// Exit asks the REPL to shut down and closes the transport. The
// reply, if any, is not waited for.
func (s *Session) Exit() error {
	if err := s.t.Send(racket.Marshal(racket.Operation{Op: racket.OpExit}, racket.Source{})); err != nil {
		s.logger.Debug("exit send failed", zap.Error(err))
	}
	return s.t.Close()
}

func firstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
