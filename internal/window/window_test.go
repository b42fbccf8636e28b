package window

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestColorBGR(t *testing.T) {
	if got := colorBGR(mgl32.Vec3{1, 0, 0}); got != 0x000000FF {
		t.Errorf("Expected red in the low byte, got %#08x", got)
	}
	if got := colorBGR(mgl32.Vec3{0, 0, 1}); got != 0x00FF0000 {
		t.Errorf("Expected blue in the high byte, got %#08x", got)
	}
	if got := colorBGR(mgl32.Vec3{2, -1, 0.5}); got != 0x008000FF {
		t.Errorf("Expected clamped channels, got %#08x", got)
	}
}

func TestResized(t *testing.T) {
	if resized(800, 600, 800, 600) {
		t.Error("Same size should not count as a resize")
	}
	if !resized(800, 600, 1024, 768) {
		t.Error("New size should count as a resize")
	}
	if resized(800, 600, 0, 0) {
		t.Error("Minimised window should be ignored")
	}
}
