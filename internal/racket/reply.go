package racket

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Patterns over the association-list shaped retort the REPL
	// prints for every request.
	errorKeyPattern = regexp.MustCompile(`\(error\s+\(key\s+\.?\s*([^\s()]+)\)`)
	errorMsgPattern = regexp.MustCompile(`\(msg\s+\.?\s*"((?:[^"\\]|\\.)*)"`)
	resultPattern   = regexp.MustCompile(`\(result\s+((?:"(?:[^"\\]|\\.)*"\s*)+)\)`)
	outputPattern   = regexp.MustCompile(`\(output\s+\.?\s*"((?:[^"\\]|\\.)*)"`)

	quotedString = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// Reply is the structured view of one raw output blob from the REPL.
type Reply struct {
	// Values are the printed evaluation results, in order.
	Values []string

	// Output is whatever the evaluated code wrote to its ports.
	Output string

	// ErrorKey and ErrorMessage carry a remote error report. They
	// are only meaningful when Failed is true.
	ErrorKey     string
	ErrorMessage string
	Failed       bool

	// Raw is the blob the reply was parsed from, kept for callers
	// that scan it for fixed acknowledgement texts.
	Raw string
}

// ParseReply extracts structured results from a raw output blob.
// Parsing never fails: a blob that matches nothing comes back as a
// reply with only Raw set, which is how free-form output (help text,
// banners) flows through.
func ParseReply(blob string) Reply {
	reply := Reply{Raw: blob}

	if m := errorKeyPattern.FindStringSubmatch(blob); m != nil {
		reply.Failed = true
		reply.ErrorKey = m[1]
	}
	if m := errorMsgPattern.FindStringSubmatch(blob); m != nil {
		reply.Failed = true
		reply.ErrorMessage = unquote(m[0][strings.Index(m[0], `"`):])
	}
	if m := resultPattern.FindStringSubmatch(blob); m != nil {
		for _, q := range quotedString.FindAllString(m[1], -1) {
			reply.Values = append(reply.Values, unquote(q))
		}
	}
	if m := outputPattern.FindStringSubmatch(blob); m != nil {
		reply.Output = unquote(m[0][strings.Index(m[0], `"`):])
	}
	return reply
}

// unquote undoes the write-form escaping of a double-quoted string.
// Racket's escapes are close enough to Go's that strconv does the
// work; if it balks we strip the quotes and keep the rest verbatim.
func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
