// internal/decision/decision.go
//
// Non-interactive decision sources. The interactive one lives in
// internal/tui; everything here answers without prompting, which is what
// batch runs and tests want.

package decision

import (
	"fmt"

	"github.com/latexmerge/latexmerge/internal/changes"
)

// Policy is a configured answer for a command: one of the three decisions,
// or Ask to defer to another source.
type Policy int

const (
	Ask Policy = iota
	Accept
	Reject
	Keep
)

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(value string) (Policy, error) {
	switch value {
	case "", "ask":
		return Ask, nil
	case "accept":
		return Accept, nil
	case "reject":
		return Reject, nil
	case "keep":
		return Keep, nil
	default:
		return Ask, fmt.Errorf("decision: unknown policy %q (want ask, accept, reject or keep)", value)
	}
}

func (p Policy) decision() (changes.Decision, bool) {
	switch p {
	case Accept:
		return changes.DecisionAccept, true
	case Reject:
		return changes.DecisionReject, true
	case Keep:
		return changes.DecisionKeep, true
	default:
		return 0, false
	}
}

// PolicySource answers from a per-command policy table, falling back to a
// default policy and finally to another source for anything left on Ask.
type PolicySource struct {
	Default  Policy
	Commands map[string]Policy

	// Fallback handles occurrences whose effective policy is Ask. It must
	// be set when any policy can resolve to Ask.
	Fallback changes.Source
}

// GetDecisionForChange resolves cmd against the policy table.
func (s *PolicySource) GetDecisionForChange(cmd changes.Command, args []string) (changes.Decision, error) {
	policy := s.Default
	if override, ok := s.Commands[cmd.Name]; ok {
		policy = override
	}
	if d, ok := policy.decision(); ok {
		return d, nil
	}
	if s.Fallback == nil {
		return 0, fmt.Errorf("decision: \\%s is configured to ask but no interactive source is attached", cmd.Name)
	}
	return s.Fallback.GetDecisionForChange(cmd, args)
}

// ScriptSource replays a fixed sequence of decisions, one per occurrence, in
// encounter order. It errors once the script runs dry.
type ScriptSource struct {
	steps []changes.Decision
	next  int
}

// NewScriptSource builds a source from a script string, one letter per
// occurrence: a=accept, r=reject, k=keep.
func NewScriptSource(script string) (*ScriptSource, error) {
	steps := make([]changes.Decision, 0, len(script))
	for i, r := range script {
		switch r {
		case 'a':
			steps = append(steps, changes.DecisionAccept)
		case 'r':
			steps = append(steps, changes.DecisionReject)
		case 'k':
			steps = append(steps, changes.DecisionKeep)
		default:
			return nil, fmt.Errorf("decision: script position %d: unknown step %q (want a, r or k)", i, string(r))
		}
	}
	return &ScriptSource{steps: steps}, nil
}

// GetDecisionForChange returns the next scripted step.
func (s *ScriptSource) GetDecisionForChange(cmd changes.Command, args []string) (changes.Decision, error) {
	if s.next >= len(s.steps) {
		return 0, fmt.Errorf("decision: script exhausted after %d step(s), \\%s still unresolved", len(s.steps), cmd.Name)
	}
	d := s.steps[s.next]
	s.next++
	return d, nil
}

// Remaining reports how many scripted steps are still unused.
func (s *ScriptSource) Remaining() int {
	return len(s.steps) - s.next
}
