package interpret

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/appcanvas/engine/internal/shared/types"
)

// strict strips all markup from string values coming back from the
// remote assistant before they reach the document.
var strict = bluemonday.StrictPolicy()

// CanonicalKey maps a property-key synonym onto the single canonical
// key the component kind actually uses, so both interpretation
// strategies and direct UI edits converge on one vocabulary per kind.
// Unrecognized keys pass through unchanged.
func CanonicalKey(kind types.Kind, key string) string {
	flat := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(key))

	switch flat {
	case "background", "backgroundcolor", "backgroundcolour", "bg", "bgcolor":
		return "backgroundColor"
	case "textcolor", "textcolour", "fontcolor", "foreground", "fg":
		switch kind {
		case types.KindText, types.KindHeading:
			return "color"
		default:
			return "textColor"
		}
	case "fontsize", "size":
		if kind == types.KindText {
			return "fontSize"
		}
	case "placeholdertext":
		if kind == types.KindInput {
			return "placeholder"
		}
	case "label", "caption", "content", "value", "text", "title":
		if primary, ok := primaryFor(kind); ok {
			return primary
		}
	case "tagline", "subheading", "subtitle":
		if kind == types.KindHero {
			return "subtitle"
		}
	}
	return key
}

func primaryFor(kind types.Kind) (string, bool) {
	switch kind {
	case types.KindButton, types.KindText, types.KindHeading:
		return "text", true
	case types.KindHero, types.KindForm:
		return "title", true
	case types.KindInput:
		return "label", true
	}
	return "", false
}

// CanonicalProps rewrites a property bag onto the canonical vocabulary
// for a kind. When two synonyms collide, the later key wins, matching
// shallow-merge semantics.
func CanonicalProps(kind types.Kind, props types.Props) types.Props {
	if props == nil {
		return nil
	}
	out := make(types.Props, len(props))
	for k, v := range props {
		out[CanonicalKey(kind, k)] = v
	}
	return out
}

// SanitizeProps strips markup from every string value in the bag.
// Applied to remote replies only; local rules and direct UI edits
// produce plain text by construction.
func SanitizeProps(props types.Props) types.Props {
	if props == nil {
		return nil
	}
	out := make(types.Props, len(props))
	for k, v := range props {
		if s, ok := v.(string); ok {
			out[k] = strict.Sanitize(s)
		} else {
			out[k] = v
		}
	}
	return out
}
