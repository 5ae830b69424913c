package storage

import (
	"github.com/appcanvas/engine/internal/shared/types"
)

// Persisted is the on-disk document shape. The format is versioned so
// later layouts can migrate on load.
type Persisted struct {
	Version int             `json:"version"`
	SavedAt string          `json:"saved_at"`
	Screens []*types.Screen `json:"screens"`
}

// FormatVersion is written into every persisted document.
const FormatVersion = 1

// SnapshotInfo describes a named snapshot without its payload.
type SnapshotInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SavedAt string `json:"saved_at"`
}

// Store persists the working document and named snapshots of it.
// Load returns (nil, nil) when nothing has been saved yet so callers
// can fall back to a fresh document without sentinel errors.
type Store interface {
	Load() (*Persisted, error)
	Save(doc *Persisted) error

	SaveSnapshot(name string, doc *Persisted) (*SnapshotInfo, error)
	ListSnapshots() ([]*SnapshotInfo, error)
	LoadSnapshot(id string) (*Persisted, error)
	DeleteSnapshot(id string) error
}
