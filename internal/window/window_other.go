//go:build !windows

package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Title bar styling is only supported on Windows
func SetDarkTitleBar(window *glfw.Window) {}

func SetTitleBarColor(c mgl32.Vec3) {}
