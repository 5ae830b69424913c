package blueprint

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/appcanvas/engine/internal/shared/id"
	"github.com/appcanvas/engine/internal/shared/types"

	"github.com/appcanvas/engine/internal/domain/tree"
)

// Result is the outcome of a blueprint import: a ready-to-edit screen
// set, the navigation derived from it, and a serializable patch for
// the persistence layer. The caller persists the patch and, on
// success, swaps the screens in as the current document and resets
// history. Until then the current document is untouched.
type Result struct {
	Screens    []*types.Screen  `json:"screens"`
	Navigation types.Navigation `json:"navigation"`
	Patch      []byte           `json:"-"`
}

// Build constructs screens and navigation from a parsed blueprint.
// Every node receives a freshly generated id; identifiers the
// blueprint may carry are never reused, preserving document-wide id
// uniqueness. Blocks with unrecognized kinds are skipped. Children
// declared on leaf kinds are dropped with the same skip policy.
func Build(bp *Blueprint) (*Result, error) {
	screens := make([]*types.Screen, 0, len(bp.Screens))
	for _, decl := range bp.Screens {
		screen := &types.Screen{
			ID:     id.NewScreenID().String(),
			Name:   decl.Title,
			Icon:   decl.Icon,
			IsHome: decl.Home,
			Nodes:  buildNodes(decl.Blocks),
		}
		screens = append(screens, screen)
	}

	normalizeHome(screens)

	nav := types.Navigation{Style: "tabs"}
	for i, decl := range bp.Screens {
		if decl.Nav != nil && !*decl.Nav {
			continue
		}
		nav.Tabs = append(nav.Tabs, types.NavItem{
			ScreenID: screens[i].ID,
			Label:    screens[i].Name,
			Icon:     screens[i].Icon,
		})
	}

	result := &Result{Screens: screens, Navigation: nav}

	patch, err := sonic.Marshal(struct {
		Screens    []*types.Screen  `json:"screens"`
		Navigation types.Navigation `json:"navigation"`
	}{screens, nav})
	if err != nil {
		return nil, fmt.Errorf("encode import patch: %w", err)
	}
	result.Patch = patch

	return result, nil
}

// Import parses and builds in one step.
func Import(content []byte) (*Result, error) {
	bp, err := Parse(content)
	if err != nil {
		return nil, err
	}
	return Build(bp)
}

func buildNodes(blocks []Block) []*types.Node {
	nodes := make([]*types.Node, 0, len(blocks))
	for _, block := range blocks {
		if node := buildNode(block); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func buildNode(block Block) *types.Node {
	kind, ok := types.ParseKind(block.Kind)
	if !ok {
		return nil
	}
	props, _ := tree.Defaults(kind)
	for k, v := range block.Props {
		props[k] = v
	}
	node := &types.Node{
		ID:    id.NewNodeID().String(),
		Kind:  kind,
		Props: props,
	}
	if kind.Container() && len(block.Blocks) > 0 {
		node.Children = buildNodes(block.Blocks)
	}
	return node
}

// normalizeHome keeps the home flag advisory but unambiguous: the
// first flagged screen wins, later flags are cleared, and when nothing
// is flagged the first screen is marked.
func normalizeHome(screens []*types.Screen) {
	found := false
	for _, s := range screens {
		if s.IsHome {
			if found {
				s.IsHome = false
			}
			found = true
		}
	}
	if !found && len(screens) > 0 {
		screens[0].IsHome = true
	}
}
