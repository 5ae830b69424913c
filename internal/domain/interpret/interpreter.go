package interpret

import (
	"context"

	"github.com/appcanvas/engine/internal/infrastructure/monitoring"
	"github.com/appcanvas/engine/internal/shared/types"
)

// Context is the bounded editing context sent with a prompt: the
// active screen, the current selection if any, and app hints. The
// interpreter only ever reads it and returns proposed operations; it
// owns no document state, which is what makes strategies safe to swap
// at runtime.
type Context struct {
	AppName  string        `json:"app_name,omitempty"`
	Industry string        `json:"industry,omitempty"`
	Screen   *types.Screen `json:"screen,omitempty"`
	Selected *types.Node   `json:"selected,omitempty"`
}

// Reply is the interpretation outcome: zero or more operations plus a
// human-readable message. An empty operation list is a valid reply
// (the strategy understood the prompt but deferred to a clarifying
// message).
type Reply struct {
	Operations []types.Operation `json:"operations"`
	Message    string            `json:"message"`
}

// Interpreter turns a free-text instruction plus editing context into
// typed operations. Implementations: Remote (assistant-backed) and
// Rules (deterministic local fallback).
type Interpreter interface {
	Interpret(ctx context.Context, prompt string, ec Context) (*Reply, error)
}

// Selector composes the two strategies: remote first, local rules when
// the remote call fails or proposes nothing. Degradation is surfaced
// through the reply message rather than an error, so the command bar
// always has something to show.
type Selector struct {
	remote  Interpreter
	rules   Interpreter
	metrics *monitoring.Metrics
}

// NewSelector builds a selector; remote may be nil when no assistant
// endpoint is configured.
func NewSelector(remote, rules Interpreter) *Selector {
	return &Selector{remote: remote, rules: rules}
}

// WithMetrics attaches a metrics collector.
func (s *Selector) WithMetrics(metrics *monitoring.Metrics) *Selector {
	s.metrics = metrics
	return s
}

// Interpret implements Interpreter.
func (s *Selector) Interpret(ctx context.Context, prompt string, ec Context) (*Reply, error) {
	if s.remote != nil {
		reply, err := s.remote.Interpret(ctx, prompt, ec)
		if err == nil && len(reply.Operations) > 0 {
			s.metrics.RecordInterpretation("remote", "ok")
			return reply, nil
		}
		if err != nil {
			s.metrics.RecordInterpretation("remote", "error")
		} else {
			s.metrics.RecordInterpretation("remote", "empty")
		}

		fallback, ferr := s.rules.Interpret(ctx, prompt, ec)
		if ferr != nil {
			s.metrics.RecordInterpretation("rules", "error")
			return nil, ferr
		}
		s.metrics.RecordInterpretation("rules", "fallback")
		if err != nil {
			fallback.Message = "The assistant is unreachable, so a local rule was applied. " + fallback.Message
		}
		return fallback, nil
	}

	reply, err := s.rules.Interpret(ctx, prompt, ec)
	if err != nil {
		s.metrics.RecordInterpretation("rules", "error")
		return nil, err
	}
	s.metrics.RecordInterpretation("rules", "ok")
	return reply, nil
}
