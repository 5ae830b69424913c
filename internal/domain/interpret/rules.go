package interpret

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/appcanvas/engine/internal/domain/tree"
	"github.com/appcanvas/engine/internal/shared/types"
)

// Rules is the deterministic pattern-matching fallback interpreter.
// It recognizes two command families and never guesses: a recognized
// intent with a missing required argument yields a clarifying message
// and zero operations.
type Rules struct{}

// NewRules creates the local rule interpreter.
func NewRules() *Rules {
	return &Rules{}
}

var (
	addVerbRe    = regexp.MustCompile(`(?i)\b(add|insert|create)\b`)
	changeVerbRe = regexp.MustCompile(`(?i)\b(change|set|update|make)\b`)
	quotedRe     = regexp.MustCompile(`"([^"]*)"|“([^”]*)”|'([^']*)'`)
	hexColorRe   = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
)

// addableKinds are the kind keywords the add family recognizes, most
// specific first.
var addableKinds = []types.Kind{
	types.KindHero,
	types.KindButton,
	types.KindHeading,
	types.KindDivider,
	types.KindSpacer,
	types.KindText,
}

var namedColors = map[string]string{
	"black":  "#000000",
	"white":  "#ffffff",
	"red":    "#ef4444",
	"green":  "#22c55e",
	"blue":   "#3b82f6",
	"yellow": "#eab308",
	"orange": "#f97316",
	"purple": "#a855f7",
	"pink":   "#ec4899",
	"gray":   "#6b7280",
	"grey":   "#6b7280",
	"teal":   "#14b8a6",
	"indigo": "#6366f1",
}

// Interpret implements Interpreter.
func (r *Rules) Interpret(_ context.Context, prompt string, ec Context) (*Reply, error) {
	lower := strings.ToLower(prompt)

	// Change takes priority: "make this button say ..." contains no
	// add verb, but "add" prompts never carry change verbs, so order
	// only matters for prompts like "update ... add ..." where the
	// leading intent wins.
	switch {
	case changeVerbRe.MatchString(lower) && !strings.HasPrefix(strings.TrimSpace(lower), "add"):
		return r.change(prompt, lower, ec), nil
	case addVerbRe.MatchString(lower):
		return r.add(prompt, lower, ec), nil
	}

	return &Reply{
		Message: "I didn't recognize that command. Try \"add a hero section\" or select a component and say \"change the text to ...\".",
	}, nil
}

func (r *Rules) add(prompt, lower string, ec Context) *Reply {
	var kind types.Kind
	for _, k := range addableKinds {
		if strings.Contains(lower, string(k)) {
			kind = k
			break
		}
	}
	if kind == "" {
		return &Reply{
			Message: "Tell me what to add: hero, button, heading, text, divider, or spacer.",
		}
	}

	var screenID string
	if ec.Screen != nil {
		screenID = ec.Screen.ID
	}

	var props types.Props
	if quoted, ok := quotedArg(prompt); ok {
		if key, hasText := tree.PrimaryTextKey(kind); hasText {
			props = types.Props{key: quoted}
		}
	}

	return &Reply{
		Operations: []types.Operation{types.AddOp(kind, props, screenID)},
		Message:    fmt.Sprintf("Added a %s.", kind),
	}
}

func (r *Rules) change(prompt, lower string, ec Context) *Reply {
	// Any change command targets the selection; never pick an
	// arbitrary node.
	if ec.Selected == nil {
		return &Reply{
			Message: "Select a component first, then tell me what to change.",
		}
	}
	selected := ec.Selected

	if strings.Contains(lower, "color") || strings.Contains(lower, "colour") ||
		strings.Contains(lower, "background") {
		color, ok := colorArg(prompt, lower)
		if !ok {
			return &Reply{
				Message: "Which color? Use a name like blue or a hex value like #3b82f6.",
			}
		}
		return &Reply{
			Operations: []types.Operation{types.UpdateSelectedOp(types.Props{"backgroundColor": color})},
			Message:    fmt.Sprintf("Changed the %s background to %s.", selected.Kind, color),
		}
	}

	if strings.Contains(lower, "subtitle") {
		quoted, ok := quotedArg(prompt)
		if !ok {
			return &Reply{Message: "What should the subtitle say? Put the new text in quotes."}
		}
		return &Reply{
			Operations: []types.Operation{types.UpdateSelectedOp(types.Props{"subtitle": quoted})},
			Message:    "Updated the subtitle.",
		}
	}

	if strings.Contains(lower, "text") || strings.Contains(lower, "label") ||
		strings.Contains(lower, "title") {
		key, hasText := tree.PrimaryTextKey(selected.Kind)
		if !hasText {
			return &Reply{
				Message: fmt.Sprintf("A %s has no text to change.", selected.Kind),
			}
		}
		quoted, ok := quotedArg(prompt)
		if !ok {
			return &Reply{Message: "What should it say? Put the new text in quotes."}
		}
		return &Reply{
			Operations: []types.Operation{types.UpdateSelectedOp(types.Props{key: quoted})},
			Message:    fmt.Sprintf("Updated the %s text.", selected.Kind),
		}
	}

	return &Reply{
		Message: "I can change text, labels, titles, and background colors. What would you like to change?",
	}
}

// quotedArg extracts the first quoted string from the prompt,
// accepting straight and typographic quotes.
func quotedArg(prompt string) (string, bool) {
	m := quotedRe.FindStringSubmatch(prompt)
	if m == nil {
		return "", false
	}
	for _, group := range m[1:] {
		if group != "" {
			return group, true
		}
	}
	return "", false
}

// colorArg resolves a color argument: a quoted value, a hex literal,
// or a recognized color name anywhere in the prompt.
func colorArg(prompt, lower string) (string, bool) {
	if quoted, ok := quotedArg(prompt); ok {
		q := strings.ToLower(strings.TrimSpace(quoted))
		if hexColorRe.MatchString(q) {
			return q, true
		}
		if hex, ok := namedColors[q]; ok {
			return hex, true
		}
		return "", false
	}
	if hex := hexColorRe.FindString(prompt); hex != "" {
		return strings.ToLower(hex), true
	}
	for name, hex := range namedColors {
		if containsWord(lower, name) {
			return hex, true
		}
	}
	return "", false
}

func containsWord(s, word string) bool {
	idx := strings.Index(s, word)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(s[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(s) || !isWordByte(s[afterIdx])
		if before && after {
			return true
		}
		rest := strings.Index(s[idx+1:], word)
		if rest < 0 {
			return false
		}
		idx = idx + 1 + rest
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
