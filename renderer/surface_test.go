package renderer

import (
	"testing"

	"kusama-scene/scene"
)

func TestSurfaceSizeClampsPixelRatio(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		dpr, max     float32
		wantW, wantH int
		wantRatio    float32
	}{
		{"standard display", 1280, 720, 1, 2, 1280, 720, 1},
		{"retina", 1280, 720, 2, 2, 2560, 1440, 2},
		{"clamped", 1000, 500, 3, 2, 2000, 1000, 2},
		{"uncapped", 100, 50, 3, 0, 300, 150, 3},
		{"unknown ratio", 640, 480, 0, 2, 640, 480, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, r := SurfaceSize(tt.w, tt.h, tt.dpr, tt.max)
			if w != tt.wantW || h != tt.wantH || r != tt.wantRatio {
				t.Errorf("expected %dx%d@%v, got %dx%d@%v", tt.wantW, tt.wantH, tt.wantRatio, w, h, r)
			}
		})
	}
}

func TestSurfaceResizeIsIdempotent(t *testing.T) {
	s := Surface{MaxPixelRatio: 2}
	cam := scene.NewCamera(75, 1, 0.1, 1000)

	resize := func(w, h int) bool {
		changed := s.Resize(w, h, 2)
		if changed {
			cam.UpdateAspectRatio(float32(w), float32(h))
		}
		return changed
	}

	if !resize(1024, 768) {
		t.Fatal("first resize should report a change")
	}
	once := s
	projOnce := cam.GetProjectionMatrix()

	if resize(1024, 768) {
		t.Error("second resize with the same size should be a no-op")
	}
	if s != once {
		t.Errorf("surface changed: %+v -> %+v", once, s)
	}
	if cam.GetProjectionMatrix() != projOnce {
		t.Error("projection changed on repeated resize")
	}
	if s.PixelWidth != 2048 || s.PixelHeight != 1536 {
		t.Errorf("expected 2048x1536 pixels, got %dx%d", s.PixelWidth, s.PixelHeight)
	}
}

func TestSurfaceIgnoresMinimisedWindow(t *testing.T) {
	s := Surface{MaxPixelRatio: 2}
	s.Resize(800, 600, 1)
	if s.Resize(0, 0, 1) {
		t.Error("zero size should be ignored")
	}
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("size lost: %dx%d", s.Width, s.Height)
	}
}

func TestSortBackToFront(t *testing.T) {
	a, b, c := scene.NewNode("a"), scene.NewNode("b"), scene.NewNode("c")
	items := []drawItem{{node: a, depth: 5}, {node: b, depth: 20}, {node: c, depth: 5}}
	sortBackToFront(items)
	if items[0].node != b || items[1].node != a || items[2].node != c {
		t.Errorf("unexpected order: %s %s %s", items[0].node.Name, items[1].node.Name, items[2].node.Name)
	}
}
