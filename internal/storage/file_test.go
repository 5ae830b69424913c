package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appcanvas/engine/internal/shared/types"
)

func testDoc(name string) *Persisted {
	return &Persisted{
		Screens: []*types.Screen{
			{
				ID:     "scr_home",
				Name:   name,
				IsHome: true,
				Nodes: []*types.Node{
					{ID: "node_a", Kind: types.KindButton, Props: types.Props{"text": "Go"}},
				},
			},
		},
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc != nil {
		t.Fatal("load of a fresh store should return nil, nil")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Save(testDoc("Home")); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc == nil {
		t.Fatal("expected a document")
	}
	if doc.Version != FormatVersion {
		t.Fatalf("version = %d, want %d", doc.Version, FormatVersion)
	}
	if doc.SavedAt == "" {
		t.Fatal("saved_at should be stamped")
	}
	if len(doc.Screens) != 1 || doc.Screens[0].Name != "Home" {
		t.Fatalf("unexpected screens %+v", doc.Screens)
	}
	if doc.Screens[0].Nodes[0].Props["text"] != "Go" {
		t.Fatal("node props lost in round trip")
	}
}

func TestSaveIsCompressed(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(testDoc("Home")); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(root, "document.json.gz"))
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 2 || raw[0] != 0x1f || raw[1] != 0x8b {
		t.Fatal("saved file should carry the gzip magic bytes")
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	first, err := store.SaveSnapshot("before redesign", testDoc("Home"))
	if err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if !strings.HasPrefix(first.ID, "snap_") {
		t.Fatalf("snapshot id = %s, want snap_ prefix", first.ID)
	}

	second, err := store.SaveSnapshot("after redesign", testDoc("Home v2"))
	if err != nil {
		t.Fatal(err)
	}

	infos, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(infos))
	}

	doc, err := store.LoadSnapshot(second.ID)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if doc.Screens[0].Name != "Home v2" {
		t.Fatalf("screen name = %s, want Home v2", doc.Screens[0].Name)
	}

	if err := store.DeleteSnapshot(first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	infos, _ = store.ListSnapshots()
	if len(infos) != 1 || infos[0].ID != second.ID {
		t.Fatalf("after delete, snapshots = %+v", infos)
	}

	if _, err := store.LoadSnapshot(first.ID); err == nil {
		t.Fatal("loading a deleted snapshot should fail")
	}
	if err := store.DeleteSnapshot(first.ID); err == nil {
		t.Fatal("deleting twice should fail")
	}
}

func TestSnapshotIDCannotEscapeRoot(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.LoadSnapshot("../../etc/passwd"); err == nil {
		t.Fatal("path traversal in a snapshot id should not resolve")
	}
}
