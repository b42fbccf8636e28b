package window

import "github.com/go-gl/mathgl/mgl32"

// colorBGR packs a [0,1] RGB colour as 0x00BBGGRR, the COLORREF layout
func colorBGR(c mgl32.Vec3) uint32 {
	r := uint32(mgl32.Clamp(c.X(), 0, 1)*255 + 0.5)
	g := uint32(mgl32.Clamp(c.Y(), 0, 1)*255 + 0.5)
	b := uint32(mgl32.Clamp(c.Z(), 0, 1)*255 + 0.5)
	return b<<16 | g<<8 | r
}
