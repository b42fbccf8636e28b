//go:build windows

package window

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
	currentWindow             *glfw.Window
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_CAPTION_COLOR           = 35
	DWMWA_BORDER_COLOR            = 34
)

func setAttribute(hwnd unsafe.Pointer, attr uintptr, value uint32) {
	procDwmSetWindowAttribute.Call(
		uintptr(hwnd),
		attr,
		uintptr(unsafe.Pointer(&value)),
		unsafe.Sizeof(value),
	)
}

func SetDarkTitleBar(window *glfw.Window) {
	currentWindow = window
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}
	setAttribute(unsafe.Pointer(hwnd), DWMWA_USE_IMMERSIVE_DARK_MODE, 1)
	setAttribute(unsafe.Pointer(hwnd), DWMWA_BORDER_COLOR, 0x00000000)
	setAttribute(unsafe.Pointer(hwnd), DWMWA_CAPTION_COLOR, 0x00202020)
}

// SetTitleBarColor tints the caption and border, e.g. with the horizon colour
func SetTitleBarColor(c mgl32.Vec3) {
	if currentWindow == nil {
		return
	}
	hwnd := currentWindow.GetWin32Window()
	if hwnd == nil {
		return
	}
	bgr := colorBGR(c)
	setAttribute(unsafe.Pointer(hwnd), DWMWA_BORDER_COLOR, bgr)
	setAttribute(unsafe.Pointer(hwnd), DWMWA_CAPTION_COLOR, bgr)
}
