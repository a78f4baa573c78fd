// Package platform defines the host collaborator contract spec.md §1
// and §6 leave external to the core: a lockable linear framebuffer,
// keyboard/mouse input callbacks, and a monotonic time source.
//
// This mirrors PlatformAPI.h's shape (LockBufferInfo, KeyboardEvent,
// MouseEvent, GetTime) as a Go interface instead of a C ABI: callers
// swap the concrete implementation (platform/ebitenplatform is the one
// reference adapter this repository ships) without the raster package
// or internal/* ever importing this package or a specific backend.
package platform

import "github.com/nmj/raster"

// KeyCode identifies a keyboard key, matching PlatformAPI.h's KeyCode
// enum members this repository's demo actually uses (WASD + Esc).
type KeyCode int

const (
	KeyW KeyCode = iota
	KeyA
	KeyS
	KeyD
	KeyEsc
)

// MouseButton is a bitmask of currently-pressed mouse buttons,
// matching PlatformAPI.h's MouseButtonFlags.
type MouseButton uint8

const (
	MouseButton1 MouseButton = 1 << iota
	MouseButton2
)

// CaptureMode selects whether the mouse is shared with the OS cursor
// or captured exclusively for relative-motion look controls, matching
// PlatformAPI.h's MouseCaptureMode.
type CaptureMode int

const (
	CaptureShared CaptureMode = iota
	CaptureExclusive
)

// KeyboardHandler receives a key transition (pressed if down).
type KeyboardHandler func(code KeyCode, down bool)

// MouseHandler receives relative mouse motion and the current button
// state since the last event, matching PlatformAPI.h's MouseEvent
// signature (delta_x, delta_y, delta_z, down_flags).
type MouseHandler func(deltaX, deltaY, deltaZ int16, buttons MouseButton)

// Framebuffer is a lockable linear BGRA surface: the host contract
// spec.md §6 calls "{ data, width, height, pitch }". Lock/Unlock
// bracket one frame's worth of direct pixel access, matching
// PlatformAPI.h's LockBuffer/UnlockBuffer pair.
type Framebuffer interface {
	// Lock returns this frame's display surface. The returned
	// raster.Display is only valid until the matching Unlock.
	Lock() (raster.Display, error)

	// Unlock releases the surface locked by Lock. When the written
	// frame is presented is up to the implementation.
	Unlock()
}

// Window is the full host surface: a lockable framebuffer plus input
// and timing, matching PlatformAPI.h's PlatformAPI opaque handle and
// its free functions (SetKeyboardEvent, SetMouseEvent,
// SetMouseCaptureMode, SetApplicationTitle, Update, GetTime).
type Window interface {
	Framebuffer

	// SetTitle sets the window's title bar text.
	SetTitle(title string)

	// SetKeyboardHandler installs the callback invoked on every key
	// transition. Passing nil disables keyboard callbacks.
	SetKeyboardHandler(h KeyboardHandler)

	// SetMouseHandler installs the callback invoked on every mouse
	// motion/button event. Passing nil disables mouse callbacks.
	SetMouseHandler(h MouseHandler)

	// SetMouseCaptureMode switches between shared and exclusive mouse
	// capture.
	SetMouseCaptureMode(mode CaptureMode)

	// Elapsed returns the time since the window was created.
	Elapsed() float64
}
