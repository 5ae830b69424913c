// Package id provides centralized ID generation for the editing engine.
//
// Every identifier in the document is a prefixed ULID:
//   - Lexicographic sortability: nodes and screens sort in creation order
//   - Prefixed types: scr_*, node_*, snap_*, req_* make logs readable
//   - Uniqueness: ids are unique across the whole document, not per screen,
//     which is what lets update/delete locate a node anywhere in the tree
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ScreenID identifies a screen in the document.
type ScreenID string

// NodeID identifies a component node anywhere in the document.
type NodeID string

// SnapshotID identifies a persisted document snapshot.
type SnapshotID string

// RequestID identifies an interpretation or API request.
type RequestID string

const (
	ScreenPrefix   = "scr"
	NodePrefix     = "node"
	SnapshotPrefix = "snap"
	RequestPrefix  = "req"
)

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand entropy.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy
// source, useful for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// GenerateBatch generates count ULID strings sharing one timestamp.
// Blueprint import uses this to assign fresh ids to every imported
// node in one pass.
func (g *Generator) GenerateBatch(prefix string, count int) []string {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	now := ulid.Timestamp(time.Now())
	ids := make([]string, count)
	for i := 0; i < count; i++ {
		ids[i] = fmt.Sprintf("%s_%s", prefix, ulid.MustNew(now, g.entropy).String())
	}
	return ids
}

// NewScreenID generates a screen id.
func NewScreenID() ScreenID {
	return ScreenID(Default().GenerateWithPrefix(ScreenPrefix))
}

// NewNodeID generates a node id.
func NewNodeID() NodeID {
	return NodeID(Default().GenerateWithPrefix(NodePrefix))
}

// NewSnapshotID generates a snapshot id.
func NewSnapshotID() SnapshotID {
	return SnapshotID(Default().GenerateWithPrefix(SnapshotPrefix))
}

// NewRequestID generates a request id.
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id ScreenID) String() string   { return string(id) }
func (id NodeID) String() string     { return string(id) }
func (id SnapshotID) String() string { return string(id) }
func (id RequestID) String() string  { return string(id) }

// IsValid checks whether the payload of a prefixed id parses as a ULID.
func IsValid(id string) bool {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '_' {
			id = id[i+1:]
			break
		}
	}
	_, err := ulid.Parse(id)
	return err == nil
}
