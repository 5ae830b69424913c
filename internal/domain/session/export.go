package session

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
)

// Format selects an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format string; empty defaults to JSON.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// ExportDocument serializes the whole document.
func (s *Session) ExportDocument(format Format) ([]byte, error) {
	s.mu.Lock()
	screens := s.doc.Clone().Screens
	s.mu.Unlock()
	return encode(map[string]any{"screens": screens}, format)
}

// ExportScreen serializes a single screen.
func (s *Session) ExportScreen(screenID string, format Format) ([]byte, error) {
	doc := s.Document()
	screen, ok := doc.Screen(screenID)
	if !ok {
		return nil, fmt.Errorf("screen %s not found", screenID)
	}
	return encode(screen, format)
}

// ExportSelection serializes the selected subtree; it fails when
// nothing is selected.
func (s *Session) ExportSelection(format Format) ([]byte, error) {
	s.mu.Lock()
	selection := s.selection
	s.mu.Unlock()
	if selection == "" {
		return nil, fmt.Errorf("no selection to export")
	}

	doc := s.Document()
	node, ok := doc.FindNode(selection)
	if !ok {
		return nil, fmt.Errorf("selected node %s not found", selection)
	}
	return encode(node, format)
}

func encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(v)
	default:
		return sonic.MarshalIndent(v, "", "  ")
	}
}
