// Package ebitenplatform is the reference platform.Window adapter,
// backing the host framebuffer/input/clock contract with
// github.com/hajimehoshi/ebiten/v2 the way PlatformAPI_Windows.cpp
// backed it with Win32/DirectX for the original. It is the one
// swappable collaborator cmd/demo depends on; raster and internal/*
// never import this package.
package ebitenplatform

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/nmj/raster"
	"github.com/nmj/raster/platform"
)

// Window is an ebiten-backed platform.Window: a locked BGRA scratch
// buffer presented once per ebiten Draw call, plus keyboard/mouse
// polling translated into platform's callback shape.
type Window struct {
	width, height int
	vsync         bool

	buf    []byte
	locked bool

	keyHandler   platform.KeyboardHandler
	mouseHandler platform.MouseHandler
	capture      platform.CaptureMode

	frame func()
	img   *ebiten.Image
	start time.Time

	pressed    map[ebiten.Key]bool
	prevCursor struct{ x, y int }
}

// keyMap is the minimal WASD+Esc subset of PlatformAPI.h's KeyCode
// enum this repository's demo actually binds.
var keyMap = map[ebiten.Key]platform.KeyCode{
	ebiten.KeyW:      platform.KeyW,
	ebiten.KeyA:      platform.KeyA,
	ebiten.KeyS:      platform.KeyS,
	ebiten.KeyD:      platform.KeyD,
	ebiten.KeyEscape: platform.KeyEsc,
}

// New returns an unopened window of width x height pixels. Call Run to
// open it and start the frame loop.
func New(width, height int, title string, vsync bool) *Window {
	w := &Window{
		width:   width,
		height:  height,
		vsync:   vsync,
		buf:     make([]byte, width*height*4),
		pressed: make(map[ebiten.Key]bool, len(keyMap)),
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	return w
}

func (w *Window) SetTitle(title string) { ebiten.SetWindowTitle(title) }

func (w *Window) SetKeyboardHandler(h platform.KeyboardHandler) { w.keyHandler = h }

func (w *Window) SetMouseHandler(h platform.MouseHandler) { w.mouseHandler = h }

func (w *Window) SetMouseCaptureMode(mode platform.CaptureMode) {
	w.capture = mode
	if mode == platform.CaptureExclusive {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

// Elapsed returns the time since Run started the frame loop.
func (w *Window) Elapsed() float64 {
	if w.start.IsZero() {
		return 0
	}
	return time.Since(w.start).Seconds()
}

// Lock returns this tick's display surface, matching PlatformAPI.h's
// LockBuffer. The backing buffer is reused frame to frame; callers
// must not retain the returned raster.Display past the matching
// Unlock.
func (w *Window) Lock() (raster.Display, error) {
	if w.locked {
		return raster.Display{}, errors.New("ebitenplatform: window already locked")
	}
	w.locked = true
	return raster.Display{
		Data:   w.buf,
		Width:  w.width,
		Height: w.height,
		Pitch:  w.width * 4,
	}, nil
}

// Unlock matches PlatformAPI.h's UnlockBuffer; presentation itself
// happens in the next ebiten Draw call, driven by the engine rather
// than by the caller.
func (w *Window) Unlock() { w.locked = false }

// Run opens the window and blocks in ebiten's game loop, calling
// frameFunc once per tick (matching the original's `while (Update(api))
// { ... }` body: poll input, clear, rasterize, blit, draw HUD, all
// inside frameFunc). Run returns when the window is closed.
func (w *Window) Run(frameFunc func()) error {
	w.frame = frameFunc
	w.img = ebiten.NewImage(w.width, w.height)
	ebiten.SetVsyncEnabled(w.vsync)
	w.start = time.Now()
	return ebiten.RunGameWithOptions(w, &ebiten.RunGameOptions{})
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}

// Update implements ebiten.Game: polls input, dispatches callbacks,
// then runs one frame of the caller's render loop.
func (w *Window) Update() error {
	w.pollKeyboard()
	w.pollMouse()
	if w.frame != nil {
		w.frame()
	}
	return nil
}

// Draw implements ebiten.Game: presents the buffer Lock/Unlock wrote
// to during this tick's frameFunc call.
func (w *Window) Draw(screen *ebiten.Image) {
	w.img.WritePixels(w.buf)
	screen.DrawImage(w.img, nil)
}

func (w *Window) pollKeyboard() {
	if w.keyHandler == nil {
		return
	}
	for ek, code := range keyMap {
		down := ebiten.IsKeyPressed(ek)
		if down != w.pressed[ek] {
			w.pressed[ek] = down
			w.keyHandler(code, down)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if w.capture == platform.CaptureExclusive {
			w.SetMouseCaptureMode(platform.CaptureShared)
		} else {
			w.SetMouseCaptureMode(platform.CaptureExclusive)
		}
	}
}

func (w *Window) pollMouse() {
	x, y := ebiten.CursorPosition()
	dx, dy := x-w.prevCursor.x, y-w.prevCursor.y
	w.prevCursor.x, w.prevCursor.y = x, y

	if w.mouseHandler == nil {
		return
	}
	var buttons platform.MouseButton
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		buttons |= platform.MouseButton1
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		buttons |= platform.MouseButton2
	}
	if dx != 0 || dy != 0 || buttons != 0 {
		w.mouseHandler(int16(dx), int16(dy), 0, buttons)
	}
}
