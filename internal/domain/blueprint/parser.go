package blueprint

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
)

// SchemaTag is the required schema marker of a blueprint document.
const SchemaTag = "appcanvas/blueprint"

// ErrMalformed reports blueprint text that is not parseable structured
// data or is missing required top-level fields. It is surfaced to the
// user before any mutation occurs.
var ErrMalformed = errors.New("malformed blueprint")

// Blueprint is the external, versioned document describing desired
// screens and navigation. It is consumed once to construct a document
// and then discarded; nothing links back to it after import.
type Blueprint struct {
	Schema  string       `json:"schema" yaml:"schema"`
	Version string       `json:"version" yaml:"version"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Screens []ScreenDecl `json:"screens" yaml:"screens"`
}

// ScreenDecl declares one screen and its ordered content blocks.
type ScreenDecl struct {
	Title  string  `json:"title" yaml:"title"`
	Icon   string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Home   bool    `json:"home,omitempty" yaml:"home,omitempty"`
	Nav    *bool   `json:"nav,omitempty" yaml:"nav,omitempty"`
	Blocks []Block `json:"blocks" yaml:"blocks"`
}

// Block declares one content block. Kind strings outside the component
// catalog are skipped at build time rather than aborting the import.
// A bare string in the blocks array is shorthand for a text block.
type Block struct {
	Kind   string                 `json:"kind" yaml:"kind"`
	Props  map[string]interface{} `json:"props,omitempty" yaml:"props,omitempty"`
	Blocks []Block                `json:"blocks,omitempty" yaml:"blocks,omitempty"`
}

// UnmarshalJSON accepts either a block object or a plain string.
func (b *Block) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*b = Block{Kind: "text", Props: map[string]interface{}{"text": s}}
		return nil
	}
	type alias Block
	var a alias
	if err := sonic.Unmarshal(data, &a); err != nil {
		return err
	}
	*b = Block(a)
	return nil
}

// UnmarshalYAML mirrors the JSON shorthand for YAML sources.
func (b *Block) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		*b = Block{Kind: "text", Props: map[string]interface{}{"text": s}}
		return nil
	}
	type alias Block
	var a alias
	if err := unmarshal(&a); err != nil {
		return err
	}
	*b = Block(a)
	return nil
}

// Parse decodes and validates a blueprint document. JSON and YAML are
// both accepted; the format is sniffed from the first non-space byte.
// Any structural problem fails the whole parse with no partial result.
func Parse(content []byte) (*Blueprint, error) {
	trimmed := bytes.TrimLeft(content, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}

	var bp Blueprint
	var err error
	if trimmed[0] == '{' {
		err = sonic.Unmarshal(content, &bp)
	} else {
		err = yaml.Unmarshal(content, &bp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if bp.Schema != SchemaTag {
		return nil, fmt.Errorf("%w: schema must be %q, got %q", ErrMalformed, SchemaTag, bp.Schema)
	}
	if bp.Version == "" {
		return nil, fmt.Errorf("%w: version is required", ErrMalformed)
	}
	if len(bp.Screens) == 0 {
		return nil, fmt.Errorf("%w: at least one screen is required", ErrMalformed)
	}
	for i, s := range bp.Screens {
		if s.Title == "" {
			return nil, fmt.Errorf("%w: screens[%d] is missing a title", ErrMalformed, i)
		}
	}

	return &bp, nil
}
