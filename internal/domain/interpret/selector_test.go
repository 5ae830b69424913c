package interpret

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/appcanvas/engine/internal/shared/types"
)

type stubInterpreter struct {
	reply *Reply
	err   error
	calls int
}

func (s *stubInterpreter) Interpret(context.Context, string, Context) (*Reply, error) {
	s.calls++
	return s.reply, s.err
}

func TestSelectorPrefersRemote(t *testing.T) {
	remote := &stubInterpreter{reply: &Reply{
		Operations: []types.Operation{types.AddOp(types.KindHero, nil, "scr_1")},
		Message:    "Added a hero.",
	}}
	rules := &stubInterpreter{reply: &Reply{Message: "local"}}

	reply, err := NewSelector(remote, rules).Interpret(context.Background(), "add a hero", Context{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.Operations) != 1 || rules.calls != 0 {
		t.Error("remote reply with operations should be returned without fallback")
	}
}

func TestSelectorFallsBackOnRemoteError(t *testing.T) {
	remote := &stubInterpreter{err: ErrUnavailable}
	rules := &stubInterpreter{reply: &Reply{
		Operations: []types.Operation{types.AddOp(types.KindButton, nil, "scr_1")},
		Message:    "Added a button.",
	}}

	reply, err := NewSelector(remote, rules).Interpret(context.Background(), "add a button", Context{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.Operations) != 1 {
		t.Fatal("fallback operations should be returned")
	}
	if !strings.Contains(reply.Message, "unreachable") {
		t.Errorf("degradation should be surfaced in the message, got %q", reply.Message)
	}
}

func TestSelectorFallsBackOnEmptyRemoteReply(t *testing.T) {
	remote := &stubInterpreter{reply: &Reply{Message: "I made no changes."}}
	rules := &stubInterpreter{reply: &Reply{
		Operations: []types.Operation{types.AddOp(types.KindText, nil, "scr_1")},
		Message:    "Added a text.",
	}}

	reply, err := NewSelector(remote, rules).Interpret(context.Background(), "add a text", Context{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.Operations) != 1 {
		t.Error("zero remote operations should trigger the local fallback")
	}
	if strings.Contains(reply.Message, "unreachable") {
		t.Error("no degradation notice when the remote answered successfully")
	}
}

func TestSelectorWithoutRemote(t *testing.T) {
	rules := &stubInterpreter{reply: &Reply{Message: "local only"}}

	reply, err := NewSelector(nil, rules).Interpret(context.Background(), "hello", Context{})
	if err != nil {
		t.Fatal(err)
	}
	if reply.Message != "local only" {
		t.Error("selector without a remote should use rules directly")
	}
}

func TestSelectorPropagatesRulesError(t *testing.T) {
	remote := &stubInterpreter{err: ErrUnavailable}
	rules := &stubInterpreter{err: errors.New("rules broke")}

	if _, err := NewSelector(remote, rules).Interpret(context.Background(), "x", Context{}); err == nil {
		t.Error("expected error when both strategies fail")
	}
}
