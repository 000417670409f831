package session

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"gracket/internal/racket"
)

// browserAck is the text the help system prints once it has handed a
// documentation page to the browser.
const browserAck = "Sending to web browser"

// providedByPattern spots the hint that an identifier's docs live
// under a different module than the one asked about.
var providedByPattern = regexp.MustCompile(`but provided by:\s*\n?\s*([^\s,)]+)`)

// LookupHelp asks the REPL for documentation on identifier within the
// hinted module. When the reply says the identifier is provided by
// another module, the request is retried once against that module.
// found is false when neither reply opened a documentation page; that
// is a soft answer, not an error.
func (s *Session) LookupHelp(ctx context.Context, identifier, module string) (found bool, err error) {
	reply, err := s.Request(ctx, racket.HelpCommand(identifier, module))
	if err != nil {
		return false, err
	}
	if m := providedByPattern.FindStringSubmatch(reply.Raw); m != nil {
		s.logger.Debug("help retry",
			zap.String("identifier", identifier),
			zap.String("module", m[1]),
		)
		reply, err = s.Request(ctx, racket.HelpCommand(identifier, m[1]))
		if err != nil {
			return false, err
		}
	}
	return strings.Contains(reply.Raw, browserAck), nil
}
