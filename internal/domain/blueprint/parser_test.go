package blueprint

import (
	"errors"
	"testing"

	"github.com/appcanvas/engine/internal/shared/types"
)

const threeScreensJSON = `{
  "schema": "appcanvas/blueprint",
  "version": "1",
  "name": "Barber Booking",
  "screens": [
    {"title": "Home", "icon": "🏠", "home": true, "blocks": [
      {"kind": "hero", "props": {"title": "Fresh cuts"}},
      {"kind": "button", "props": {"text": "Book now"}}
    ]},
    {"title": "Services", "blocks": [
      {"kind": "list"},
      "Walk-ins welcome"
    ]},
    {"title": "Contact", "nav": false, "blocks": [
      {"kind": "form", "blocks": [
        {"kind": "input", "props": {"label": "Name"}}
      ]}
    ]}
  ]
}`

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not json":     "{nope",
		"wrong schema": `{"schema": "other", "version": "1", "screens": [{"title": "A"}]}`,
		"no version":   `{"schema": "appcanvas/blueprint", "screens": [{"title": "A"}]}`,
		"no screens":   `{"schema": "appcanvas/blueprint", "version": "1", "screens": []}`,
		"untitled":     `{"schema": "appcanvas/blueprint", "version": "1", "screens": [{"blocks": []}]}`,
	}
	for name, content := range cases {
		if _, err := Parse([]byte(content)); !errors.Is(err, ErrMalformed) {
			t.Errorf("%s: expected ErrMalformed, got %v", name, err)
		}
	}
}

func TestImportThreeScreens(t *testing.T) {
	result, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(result.Screens) != 3 {
		t.Fatalf("expected 3 screens, got %d", len(result.Screens))
	}
	names := []string{"Home", "Services", "Contact"}
	for i, want := range names {
		if result.Screens[i].Name != want {
			t.Errorf("screen %d: got %q want %q", i, result.Screens[i].Name, want)
		}
	}

	home := result.Screens[0]
	if !home.IsHome {
		t.Error("home flag lost on import")
	}
	if len(home.Nodes) != 2 {
		t.Fatalf("home should hold 2 nodes, got %d", len(home.Nodes))
	}
	if home.Nodes[0].Kind != types.KindHero || home.Nodes[0].Props["title"] != "Fresh cuts" {
		t.Error("hero block not built with declared props")
	}
	if home.Nodes[0].Props["backgroundColor"] == nil {
		t.Error("declared props should merge over kind defaults")
	}
}

func TestImportStringShorthandBecomesText(t *testing.T) {
	result, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatal(err)
	}
	services := result.Screens[1]
	if len(services.Nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(services.Nodes))
	}
	if services.Nodes[1].Kind != types.KindText || services.Nodes[1].Props["text"] != "Walk-ins welcome" {
		t.Error("string block should become a text node")
	}
}

func TestImportNestedBlocks(t *testing.T) {
	result, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatal(err)
	}
	contact := result.Screens[2]
	form := contact.Nodes[0]
	if form.Kind != types.KindForm || len(form.Children) != 1 {
		t.Fatal("form should carry its declared child")
	}
	if form.Children[0].Kind != types.KindInput || form.Children[0].Props["label"] != "Name" {
		t.Error("nested input not built")
	}
}

func TestImportSkipsUnknownBlockKinds(t *testing.T) {
	content := `{
	  "schema": "appcanvas/blueprint",
	  "version": "1",
	  "screens": [{"title": "A", "blocks": [
	    {"kind": "carousel"},
	    {"kind": "button"}
	  ]}]
	}`
	result, err := Import([]byte(content))
	if err != nil {
		t.Fatalf("unknown block kinds must not abort the import: %v", err)
	}
	if len(result.Screens[0].Nodes) != 1 {
		t.Fatalf("expected unknown kind skipped, got %d nodes", len(result.Screens[0].Nodes))
	}
	if result.Screens[0].Nodes[0].Kind != types.KindButton {
		t.Error("recognized block should survive")
	}
}

func TestImportAssignsFreshUniqueIDs(t *testing.T) {
	first, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatal(err)
	}
	second, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	var walk func(nodes []*types.Node)
	walk = func(nodes []*types.Node) {
		for _, n := range nodes {
			if seen[n.ID] {
				t.Fatalf("duplicate node id across imports: %s", n.ID)
			}
			seen[n.ID] = true
			walk(n.Children)
		}
	}
	for _, s := range append(first.Screens, second.Screens...) {
		if seen[s.ID] {
			t.Fatalf("duplicate screen id: %s", s.ID)
		}
		seen[s.ID] = true
		walk(s.Nodes)
	}
}

func TestNavigationDerivation(t *testing.T) {
	result, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatal(err)
	}
	// Contact declares nav: false, so only two tabs, in declared order.
	if len(result.Navigation.Tabs) != 2 {
		t.Fatalf("expected 2 tabs, got %d", len(result.Navigation.Tabs))
	}
	if result.Navigation.Tabs[0].Label != "Home" || result.Navigation.Tabs[1].Label != "Services" {
		t.Error("tabs should follow declared screen order")
	}
	if result.Navigation.Tabs[0].ScreenID != result.Screens[0].ID {
		t.Error("tab should reference the built screen id")
	}
}

func TestHomeNormalization(t *testing.T) {
	content := `{
	  "schema": "appcanvas/blueprint",
	  "version": "1",
	  "screens": [
	    {"title": "A", "blocks": []},
	    {"title": "B", "home": true, "blocks": []},
	    {"title": "C", "home": true, "blocks": []}
	  ]
	}`
	result, err := Import([]byte(content))
	if err != nil {
		t.Fatal(err)
	}
	flagged := 0
	for _, s := range result.Screens {
		if s.IsHome {
			flagged++
		}
	}
	if flagged != 1 {
		t.Errorf("expected exactly one home flag after normalization, got %d", flagged)
	}
	if !result.Screens[1].IsHome {
		t.Error("first declared home flag should win")
	}
}

func TestParseYAML(t *testing.T) {
	content := `
schema: appcanvas/blueprint
version: "1"
screens:
  - title: Home
    home: true
    blocks:
      - kind: hero
        props:
          title: Hello
      - Plain paragraph
`
	result, err := Import([]byte(content))
	if err != nil {
		t.Fatalf("yaml blueprint failed: %v", err)
	}
	if len(result.Screens) != 1 || len(result.Screens[0].Nodes) != 2 {
		t.Fatal("yaml blueprint not built")
	}
	if result.Screens[0].Nodes[1].Props["text"] != "Plain paragraph" {
		t.Error("yaml string shorthand should become a text node")
	}
}

func TestImportPatchSerializable(t *testing.T) {
	result, err := Import([]byte(threeScreensJSON))
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Patch) == 0 {
		t.Error("import should produce a persistable patch")
	}
}
