package interpret

import (
	"testing"

	"github.com/appcanvas/engine/internal/shared/types"
)

func TestCanonicalKeySynonyms(t *testing.T) {
	cases := []struct {
		kind types.Kind
		in   string
		want string
	}{
		{types.KindButton, "label", "text"},
		{types.KindButton, "title", "text"},
		{types.KindButton, "bg", "backgroundColor"},
		{types.KindButton, "background_color", "backgroundColor"},
		{types.KindButton, "background-color", "backgroundColor"},
		{types.KindButton, "text_color", "textColor"},
		{types.KindText, "text_color", "color"},
		{types.KindText, "size", "fontSize"},
		{types.KindHero, "tagline", "subtitle"},
		{types.KindHero, "label", "title"},
		{types.KindInput, "placeholder_text", "placeholder"},
		// Unrecognized keys pass through untouched.
		{types.KindButton, "customProp", "customProp"},
		// Kinds with no text surface keep text-ish keys as-is.
		{types.KindDivider, "label", "label"},
	}

	for _, c := range cases {
		if got := CanonicalKey(c.kind, c.in); got != c.want {
			t.Errorf("CanonicalKey(%s, %q) = %q, want %q", c.kind, c.in, got, c.want)
		}
	}
}

func TestCanonicalProps(t *testing.T) {
	props := CanonicalProps(types.KindButton, types.Props{
		"label": "Go",
		"bg":    "#000000",
	})

	if props["text"] != "Go" {
		t.Errorf("label should canonicalize to text, got %v", props)
	}
	if props["backgroundColor"] != "#000000" {
		t.Errorf("bg should canonicalize to backgroundColor, got %v", props)
	}
	if _, ok := props["label"]; ok {
		t.Error("synonym key should be replaced, not duplicated")
	}
}

func TestCanonicalPropsNil(t *testing.T) {
	if CanonicalProps(types.KindButton, nil) != nil {
		t.Error("nil props stay nil")
	}
}

func TestSanitizePropsStripsMarkup(t *testing.T) {
	props := SanitizeProps(types.Props{
		"text":  `<script>alert(1)</script>Book now`,
		"count": 3,
	})

	if props["text"] != "Book now" {
		t.Errorf("markup should be stripped, got %v", props["text"])
	}
	if props["count"] != 3 {
		t.Error("non-string values pass through unchanged")
	}
}
