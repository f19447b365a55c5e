// internal/changes/engine.go
//
// The scan-rewrite engine. It repeatedly finds the next change command in the
// document, pulls out its brace arguments, asks a Source what to do with the
// change, and splices the resulting text back in. The loop ends when no
// unresolved command remains.

package changes

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Decision is the resolution applied to one change occurrence.
type Decision int

const (
	// DecisionAccept applies the change (the command's accept rendering).
	DecisionAccept Decision = iota
	// DecisionReject discards the change (the command's reject rendering).
	DecisionReject
	// DecisionKeep leaves the command markup in the document untouched.
	DecisionKeep
)

// String returns the lowercase name of the decision.
func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	case DecisionKeep:
		return "keep"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// ErrAborted is returned (possibly wrapped) by a Source when the user cancels
// the run. Process stops immediately and performs no further splices.
var ErrAborted = errors.New("changes: review aborted")

// Source supplies one decision per resolvable change occurrence, in the order
// the engine encounters them. The call may block indefinitely, e.g. on a
// human answering a prompt.
type Source interface {
	GetDecisionForChange(cmd Command, args []string) (Decision, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(cmd Command, args []string) (Decision, error)

// GetDecisionForChange calls f.
func (f SourceFunc) GetDecisionForChange(cmd Command, args []string) (Decision, error) {
	return f(cmd, args)
}

// Diagnostics receives warnings about malformed commands the engine had to
// drop. Leaving it nil changes observability only, never the output.
type Diagnostics interface {
	Warn(format string, args ...any)
}

// commandPattern matches any registered command name after a backslash,
// followed by optional bracket groups. Bracket groups are skipped opaquely;
// their contents are never parsed.
var commandPattern = regexp.MustCompile(
	`\\(` + strings.Join(Names(), "|") + `)((?:\s*\[[^\]]*\])*)`,
)

// CountOccurrences reports how many change-command tokens appear in text.
// It bounds the number of decisions a run can need, so callers can show
// progress before any decision is made.
func CountOccurrences(text string) int {
	return len(commandPattern.FindAllStringIndex(text, -1))
}

// Processor rewrites a document by resolving its change commands.
type Processor struct {
	source Source
	diag   Diagnostics
}

// Option customizes a Processor.
type Option func(*Processor)

// WithDiagnostics routes malformed-command warnings to d.
func WithDiagnostics(d Diagnostics) Option {
	return func(p *Processor) { p.diag = d }
}

// NewProcessor builds a Processor that consults src for every change.
func NewProcessor(src Source, opts ...Option) *Processor {
	p := &Processor{source: src}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Process resolves every change command in text and returns the rewritten
// document. The input is never mutated. A kept command stays in the output
// verbatim and is not offered again. If the source returns an error the run
// stops at once and no partial document is returned.
//
// Termination: every iteration either resolves one command (accept/reject
// splice), moves the resolved cursor past one kept command, or deletes one
// malformed command token, so the loop is bounded by the number of command
// occurrences in the input.
func (p *Processor) Process(text string) (string, error) {
	buf := text

	// Everything before resolved is final: kept commands live there and
	// must not be offered to the source again. The scan never restarts
	// before it, and accept/reject splices always happen at or after it.
	resolved := 0

	for {
		loc := commandPattern.FindStringSubmatchIndex(buf[resolved:])
		if loc == nil {
			return buf, nil
		}
		start := resolved + loc[0]
		nameEnd := resolved + loc[1] // past the name and any [..] groups
		name := buf[resolved+loc[2] : resolved+loc[3]]
		cmd, ok := Lookup(name)
		if !ok {
			// Unreachable: the pattern is built from the registry.
			return "", fmt.Errorf("changes: matched unregistered command %q", name)
		}

		args := make([]string, 0, cmd.NumArgs)
		pos := nameEnd
		malformed := false
		for i := 0; i < cmd.NumArgs; i++ {
			content, next, ok := MatchBraces(buf, pos)
			if !ok {
				malformed = true
				break
			}
			args = append(args, content)
			pos = next
		}

		if malformed {
			// Drop just the command token so it cannot match again.
			// Any argument text already consumed stays in place.
			p.warn("malformed \\%s at offset %d: expected %d brace group(s)", name, start, cmd.NumArgs)
			buf = buf[:start] + buf[nameEnd:]
			continue
		}

		decision, err := p.source.GetDecisionForChange(cmd, args)
		if err != nil {
			return "", err
		}

		var replacement string
		switch decision {
		case DecisionAccept:
			replacement = cmd.Accept(args)
		case DecisionReject:
			replacement = cmd.Reject(args)
		case DecisionKeep:
			replacement = buf[start:pos]
		default:
			return "", fmt.Errorf("changes: source returned invalid decision %v for \\%s", decision, name)
		}

		buf = buf[:start] + replacement + buf[pos:]
		if decision == DecisionKeep {
			resolved = start + len(replacement)
		}
	}
}

func (p *Processor) warn(format string, args ...any) {
	if p.diag == nil {
		return
	}
	p.diag.Warn(format, args...)
}
