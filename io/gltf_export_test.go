package io

import (
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"

	"kusama-scene/bubbles"
	"kusama-scene/config"
)

func testGroups(t *testing.T, count int) []*bubbles.Group {
	t.Helper()
	cfg := config.Default()
	cfg.Population.Count = count
	cfg.Bubble.Segments = 8
	cfg.Bubble.DiskSegments = 6

	palette, err := bubbles.Palette(cfg.Bubble)
	if err != nil {
		t.Fatal(err)
	}
	geo := bubbles.NewGeometry(cfg.Bubble)
	return bubbles.Populate(rand.New(rand.NewSource(21)), cfg, geo, palette)
}

func TestBuildSnapshotStructure(t *testing.T) {
	groups := testGroups(t, 3)
	doc := BuildSnapshot(groups)

	if got := len(doc.Scenes[0].Nodes); got != 3 {
		t.Errorf("expected 3 root nodes, got %d", got)
	}
	// group + sphere + six disks per group
	if got := len(doc.Nodes); got != 3*8 {
		t.Errorf("expected %d nodes, got %d", 3*8, got)
	}
	// Geometry is shared: one sphere and one disk accessor set.
	if got := len(doc.Accessors); got != 6 {
		t.Errorf("expected 6 accessors (2 geometries x position/normal/index), got %d", got)
	}
	// Clear shell plus at most one frosted material per palette colour.
	if got := len(doc.Materials); got < 2 || got > 6 {
		t.Errorf("unexpected material count %d", got)
	}

	root := doc.Nodes[doc.Scenes[0].Nodes[0]]
	if len(root.Children) != 7 {
		t.Errorf("expected 7 children under a group, got %d", len(root.Children))
	}
	p := groups[0].Node.Transform.Position
	if math.Abs(root.Translation[0]-float64(p.X)) > 1e-6 || math.Abs(root.Translation[1]-float64(p.Y)) > 1e-6 {
		t.Errorf("root translation %v does not match group position %v", root.Translation, p)
	}
}

func TestExportSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.glb")
	if err := ExportSnapshot(path, testGroups(t, 2)); err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := len(doc.Nodes); got != 16 {
		t.Errorf("expected 16 nodes after reload, got %d", got)
	}
	for _, m := range doc.Materials {
		if m.AlphaMode != gltf.AlphaBlend {
			t.Errorf("material %q should be blended", m.Name)
		}
	}
}
