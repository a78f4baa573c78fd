// Command demo is the reference end-to-end driver for package raster:
// it owns a window (platform/ebitenplatform), a two-cube scene, an FPS
// camera, and the clear->rasterize->blit->HUD frame loop, matching the
// original's Main.cpp. None of this is part of the rasterizer core; it
// exists to exercise raster, internal/frame, and platform the way a
// real caller would.
package main

import (
	"log"
	"runtime"
	"time"

	"github.com/nmj/raster"
	"github.com/nmj/raster/internal/frame"
	"github.com/nmj/raster/platform"
	"github.com/nmj/raster/platform/ebitenplatform"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

// app bundles the frame-to-frame state Main.cpp's Application struct
// held: the target image, the camera, and the last frame's phase
// timings for the HUD.
type app struct {
	win   *ebitenplatform.Window
	sched *frame.Scheduler
	cam   *Camera
	image raster.RasterOutput
	hud   *hud

	lastTick time.Time
}

func main() {
	win := ebitenplatform.New(screenWidth, screenHeight, "CPU Rasterizer", true)

	cam := NewCamera(raster.V3(0, 0, -5), tau*0.25)

	var image raster.RasterOutput
	image.Width, image.Height = screenWidth, screenHeight
	mem := make([]byte, raster.RequiredBytes(screenWidth, screenHeight, true, true))
	if err := raster.Initialize(&image, mem, true, true); err != nil {
		log.Fatalf("demo: %v", err)
	}

	a := &app{
		win:   win,
		sched: frame.NewScheduler(runtime.GOMAXPROCS(0)),
		cam:   cam,
		image: image,
		hud:   newHUD(),
	}

	win.SetKeyboardHandler(func(code platform.KeyCode, down bool) {
		if code == platform.KeyEsc && down {
			// Esc toggles mouse capture in ebitenplatform itself; no
			// additional action needed here, matching Main.cpp's
			// OnKeyboardEvent behavior for KeyCodeEsc.
			return
		}
		cam.HandleKey(code, down)
	})
	win.SetMouseHandler(cam.HandleMouse)
	win.SetMouseCaptureMode(platform.CaptureExclusive)

	if err := win.Run(a.frame); err != nil {
		log.Fatalf("demo: %v", err)
	}
}

const tau = 6.28319

// frame runs one iteration of the clear -> rasterize -> blit -> HUD
// loop, matching Main.cpp's per-frame body inside `while (Update(api))`.
func (a *app) frame() {
	now := time.Now()
	dt := float32(0.0001)
	if !a.lastTick.IsZero() {
		dt = float32(now.Sub(a.lastTick).Seconds())
	}
	frameTime := now.Sub(a.lastTick)
	a.lastTick = now

	a.cam.Step(dt)
	viewProjection := a.cam.ViewProjection(screenWidth, screenHeight)
	draws := buildScene(viewProjection)

	clearStart := time.Now()
	a.sched.RunFrame(func(split, splits int) {
		raster.ClearColor(&a.image, 0, 0, 0, 0, split, splits)
		raster.ClearDepth(&a.image, 0, split, splits)
	})
	clearTime := time.Since(clearStart)

	state := raster.RasterState{Output: &a.image, Flags: raster.ColorWrite | raster.DepthWrite | raster.DepthTest}
	rasterStart := time.Now()
	a.sched.RunFrame(func(split, splits int) {
		raster.Rasterize(state, draws, split, splits)
	})
	rasterTime := time.Since(rasterStart)

	display, err := a.win.Lock()
	if err != nil {
		return
	}

	blitStart := time.Now()
	a.sched.RunFrame(func(split, splits int) {
		if err := raster.Blit(display, &a.image, split, splits); err != nil {
			log.Printf("demo: blit: %v", err)
		}
	})
	blitTime := time.Since(blitStart)

	triangles := 0
	for _, d := range draws {
		triangles += d.TriangleCount
	}
	a.hud.Draw(display, frameTime, clearTime, rasterTime, blitTime, a.cam, triangles)

	a.win.Unlock()
}
