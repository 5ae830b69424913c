package types

// Kind identifies a component type in the screen tree.
//
// The set is closed: every site that interprets a kind (defaults,
// container classification, property normalization) switches
// exhaustively over these values, so adding a kind is a single-point
// change.
type Kind string

const (
	KindButton    Kind = "button"
	KindText      Kind = "text"
	KindHeading   Kind = "heading"
	KindImage     Kind = "image"
	KindContainer Kind = "container"
	KindHero      Kind = "hero"
	KindForm      Kind = "form"
	KindInput     Kind = "input"
	KindList      Kind = "list"
	KindTable     Kind = "table"
	KindDivider   Kind = "divider"
	KindSpacer    Kind = "spacer"
	KindNavbar    Kind = "navbar"
)

// Kinds returns every component kind in the catalog.
func Kinds() []Kind {
	return []Kind{
		KindButton, KindText, KindHeading, KindImage, KindContainer,
		KindHero, KindForm, KindInput, KindList, KindTable,
		KindDivider, KindSpacer, KindNavbar,
	}
}

// ParseKind resolves a kind string against the catalog.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	switch k {
	case KindButton, KindText, KindHeading, KindImage, KindContainer,
		KindHero, KindForm, KindInput, KindList, KindTable,
		KindDivider, KindSpacer, KindNavbar:
		return k, true
	}
	return "", false
}

// Container reports whether nodes of this kind may hold children.
// Leaf kinds must never be given children.
func (k Kind) Container() bool {
	switch k {
	case KindContainer, KindHero, KindForm, KindList:
		return true
	case KindButton, KindText, KindHeading, KindImage, KindInput,
		KindTable, KindDivider, KindSpacer, KindNavbar:
		return false
	}
	return false
}

// Props is the open property bag of a component node. Valid keys and
// value types are determined by the node's kind.
type Props map[string]interface{}

// Clone returns a shallow copy of the property bag.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Node is a single element in a screen's tree. The parent exclusively
// owns Children; nodes are never shared between parents, so the
// structure is a tree by construction.
type Node struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Props    Props   `json:"props"`
	Children []*Node `json:"children,omitempty"`
}

// Screen is one page of the app being built. It owns an ordered list
// of top-level component nodes.
type Screen struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Icon   string  `json:"icon,omitempty"`
	IsHome bool    `json:"is_home,omitempty"`
	Nodes  []*Node `json:"nodes"`
}

// NavItem is one entry in the derived navigation configuration.
type NavItem struct {
	ScreenID string `json:"screen_id"`
	Label    string `json:"label"`
	Icon     string `json:"icon,omitempty"`
}

// Navigation is the bottom-tab configuration derived from a blueprint
// import: all navigable screens become tabs in declared order.
type Navigation struct {
	Style string    `json:"style"`
	Tabs  []NavItem `json:"tabs"`
}
