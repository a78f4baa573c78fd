package main

import (
	"image"
	"image/color"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nmj/raster"
)

// displayImage adapts a raster.Display (linear BGRA) to image.Image/
// draw.Image so golang.org/x/image/font's Drawer can write glyphs
// straight into the presented frame after Blit, the same role
// RenderText played writing into Main.cpp's LockBufferInfo.
type displayImage struct {
	d raster.Display
}

func (im displayImage) ColorModel() color.Model { return color.RGBAModel }

func (im displayImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.d.Width, im.d.Height)
}

func (im displayImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= im.d.Width || y >= im.d.Height {
		return color.RGBA{}
	}
	off := y*im.d.Pitch + x*4
	b, g, r, a := im.d.Data[off], im.d.Data[off+1], im.d.Data[off+2], im.d.Data[off+3]
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func (im displayImage) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= im.d.Width || y >= im.d.Height {
		return
	}
	r, g, b, a := c.RGBA()
	off := y*im.d.Pitch + x*4
	im.d.Data[off+0] = byte(b >> 8)
	im.d.Data[off+1] = byte(g >> 8)
	im.d.Data[off+2] = byte(r >> 8)
	im.d.Data[off+3] = byte(a >> 8)
}

// hud renders the debug stats overlay Main.cpp's stats block printed
// with RenderText every frame (FPS/phase timings, camera state),
// formatted with golang.org/x/text/message the way sprintf_s formatted
// the original's buffer.
type hud struct {
	printer *message.Printer
	drawer  *font.Drawer
}

func newHUD() *hud {
	return &hud{
		printer: message.NewPrinter(language.English),
		drawer: &font.Drawer{
			Src:  image.NewUniform(color.RGBA{R: 255, A: 255}),
			Face: basicfont.Face7x13,
		},
	}
}

// Draw writes one line of text per stat at a fixed 14px line height
// (the original's 18px at a slightly denser font), matching Main.cpp's
// `18 * line++` layout.
func (h *hud) Draw(display raster.Display, frameTime, clearTime, rasterTime, blitTime time.Duration, cam *Camera, triangles int) {
	h.drawer.Dst = displayImage{d: display}

	line := 0
	emit := func(format string, args ...any) {
		h.drawer.Dot = fixed.P(2, 13+line*14)
		h.drawer.DrawString(h.printer.Sprintf(format, args...))
		line++
	}

	fps := 0.0
	if frameTime > 0 {
		fps = 1 / frameTime.Seconds()
	}
	emit("FPS: %.1f (%.2fms)", fps, frameTime.Seconds()*1000)
	emit("ClearBuffers: %.3fms", clearTime.Seconds()*1000)
	emit("RenderScene: %.3fms", rasterTime.Seconds()*1000)
	emit("Blit: %.3fms", blitTime.Seconds()*1000)
	emit("Triangles: %d", triangles)
	emit("Position: [%.2f, %.2f, %.2f]", cam.Pos.X, cam.Pos.Y, cam.Pos.Z)
	emit("Yaw: %.2f  Pitch: %.2f", deg(cam.Yaw), deg(cam.Pitch))
}

func deg(rad float32) float32 { return rad / 3.14159265 * 180 }
