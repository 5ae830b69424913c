package id

import (
	"strings"
	"testing"
)

func TestPrefixes(t *testing.T) {
	if !strings.HasPrefix(NewScreenID().String(), "scr_") {
		t.Error("screen id missing scr_ prefix")
	}
	if !strings.HasPrefix(NewNodeID().String(), "node_") {
		t.Error("node id missing node_ prefix")
	}
	if !strings.HasPrefix(NewSnapshotID().String(), "snap_") {
		t.Error("snapshot id missing snap_ prefix")
	}
	if !strings.HasPrefix(NewRequestID().String(), "req_") {
		t.Error("request id missing req_ prefix")
	}
}

func TestUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		nodeID := NewNodeID().String()
		if seen[nodeID] {
			t.Fatalf("duplicate id generated: %s", nodeID)
		}
		seen[nodeID] = true
	}
}

func TestGenerateBatch(t *testing.T) {
	ids := Default().GenerateBatch(NodePrefix, 50)
	if len(ids) != 50 {
		t.Fatalf("expected 50 ids, got %d", len(ids))
	}
	seen := make(map[string]bool)
	for _, v := range ids {
		if !strings.HasPrefix(v, "node_") {
			t.Errorf("batch id missing prefix: %s", v)
		}
		if seen[v] {
			t.Fatalf("duplicate batch id: %s", v)
		}
		seen[v] = true
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(NewNodeID().String()) {
		t.Error("generated id should be valid")
	}
	if IsValid("node_not-a-ulid") {
		t.Error("garbage payload should be invalid")
	}
}
