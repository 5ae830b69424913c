package tree

import "github.com/appcanvas/engine/internal/shared/types"

// Defaults returns the total default property bag for a kind, or false
// for a kind outside the catalog. AddNode never constructs a node with
// missing required keys: unknown kinds are rejected, not defaulted.
//
// A fresh map is returned on every call so callers can merge overrides
// without mutating shared state.
func Defaults(kind types.Kind) (types.Props, bool) {
	switch kind {
	case types.KindButton:
		return types.Props{
			"text":            "Button",
			"backgroundColor": "#2563eb",
			"textColor":       "#ffffff",
			"action":          "",
		}, true
	case types.KindText:
		return types.Props{
			"text":     "Text",
			"fontSize": 16,
			"align":    "left",
			"color":    "#111827",
		}, true
	case types.KindHeading:
		return types.Props{
			"text":  "Heading",
			"level": 2,
			"align": "left",
		}, true
	case types.KindImage:
		return types.Props{
			"src": "",
			"alt": "",
			"fit": "cover",
		}, true
	case types.KindContainer:
		return types.Props{
			"layout":  "vertical",
			"gap":     8,
			"padding": 16,
		}, true
	case types.KindHero:
		return types.Props{
			"title":           "Welcome",
			"subtitle":        "",
			"backgroundColor": "#111827",
			"textColor":       "#ffffff",
			"image":           "",
		}, true
	case types.KindForm:
		return types.Props{
			"title":       "Form",
			"submitLabel": "Submit",
		}, true
	case types.KindInput:
		return types.Props{
			"label":       "Field",
			"placeholder": "",
			"inputType":   "text",
			"required":    false,
		}, true
	case types.KindList:
		return types.Props{
			"itemStyle": "row",
			"emptyText": "Nothing here yet",
		}, true
	case types.KindTable:
		return types.Props{
			"columns": []interface{}{},
			"striped": true,
		}, true
	case types.KindDivider:
		return types.Props{
			"thickness": 1,
			"color":     "#e5e7eb",
		}, true
	case types.KindSpacer:
		return types.Props{
			"height": 16,
		}, true
	case types.KindNavbar:
		return types.Props{
			"style":           "tabs",
			"backgroundColor": "#ffffff",
		}, true
	}
	return nil, false
}

// PrimaryTextKey returns the property that free-text commands treat as
// the node's main text, or false for kinds with no text surface.
func PrimaryTextKey(kind types.Kind) (string, bool) {
	switch kind {
	case types.KindButton, types.KindText, types.KindHeading:
		return "text", true
	case types.KindHero:
		return "title", true
	case types.KindForm:
		return "title", true
	case types.KindInput:
		return "label", true
	case types.KindImage, types.KindContainer, types.KindList,
		types.KindTable, types.KindDivider, types.KindSpacer, types.KindNavbar:
		return "", false
	}
	return "", false
}
