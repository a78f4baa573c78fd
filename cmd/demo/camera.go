package main

import (
	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/nmj/raster"
	"github.com/nmj/raster/platform"
)

// moveFlags mirrors Main.cpp's PlayerFlagMove* bitmask.
type moveFlags uint8

const (
	moveForward moveFlags = 1 << iota
	moveBackward
	moveRight
	moveLeft
)

const mouseSensitivity = 0.8 * 0.0022 // matches Main.cpp: "Sensitivity * source engine scale"

// Camera is the FPS-style camera RenderScene/Main.cpp drives from
// player yaw/pitch and WASD state: orientation is rebuilt every frame
// from the accumulated yaw/pitch, then used both to steer movement and
// to build the view matrix.
type Camera struct {
	Pos   raster.Vec3
	FOV   float32
	Yaw   float32
	Pitch float32

	flags moveFlags

	right, up, forward raster.Vec3
}

// NewCamera returns a camera at pos with vertical field of view fovY
// (radians), matching Main.cpp's `camera.pos = (0,0,-5); camera.fov =
// Tau*0.25`.
func NewCamera(pos raster.Vec3, fovY float32) *Camera {
	return &Camera{Pos: pos, FOV: fovY}
}

// HandleKey updates movement flags for WASD, matching
// Main.cpp's OnKeyboardEvent.
func (c *Camera) HandleKey(code platform.KeyCode, down bool) {
	var bit moveFlags
	switch code {
	case platform.KeyW:
		bit = moveForward
	case platform.KeyS:
		bit = moveBackward
	case platform.KeyD:
		bit = moveRight
	case platform.KeyA:
		bit = moveLeft
	default:
		return
	}
	if down {
		c.flags |= bit
	} else {
		c.flags &^= bit
	}
}

// HandleMouse updates yaw/pitch from relative mouse motion, matching
// Main.cpp's OnMouseEvent (exclusive-capture look).
func (c *Camera) HandleMouse(deltaX, deltaY, _ int16, _ platform.MouseButton) {
	c.Yaw -= float32(deltaX) * mouseSensitivity
	c.Pitch += float32(deltaY) * mouseSensitivity

	const halfPi = 3.14159265 / 2
	if c.Pitch > halfPi {
		c.Pitch = halfPi
	} else if c.Pitch < -halfPi {
		c.Pitch = -halfPi
	}
}

// updateOrientation recomputes right/up/forward from yaw/pitch using
// mathgl's rotation builders, the same composition the ebiten-kage
// playground's camera update uses (Ident4 * RotateX(pitch) *
// RotateY(yaw), then read the basis back off the matrix rows).
func (c *Camera) updateOrientation() {
	view := mgl.Ident4()
	view = view.Mul4(mgl.HomogRotate3DX(c.Pitch))
	view = view.Mul4(mgl.HomogRotate3DY(c.Yaw))

	r, u, f := view.Row(0), view.Row(1), view.Row(2)
	c.right = raster.V3(r.X(), r.Y(), r.Z())
	c.up = raster.V3(u.X(), u.Y(), u.Z())
	c.forward = raster.V3(-f.X(), -f.Y(), -f.Z())
}

// Step advances the camera by dt seconds: recomputes orientation from
// yaw/pitch, then applies WASD movement along the new forward/right
// axes, matching Main.cpp's per-frame player_velocity accumulation
// (5 units/sec, normalized so diagonal movement isn't faster).
func (c *Camera) Step(dt float32) {
	c.updateOrientation()

	var v raster.Vec3
	if c.flags&moveForward != 0 {
		v = v.Add(c.forward)
	}
	if c.flags&moveBackward != 0 {
		v = v.Sub(c.forward)
	}
	if c.flags&moveLeft != 0 {
		v = v.Sub(c.right)
	}
	if c.flags&moveRight != 0 {
		v = v.Add(c.right)
	}
	if v.Dot(v) != 0 {
		v = v.Normalize()
	}
	c.Pos = c.Pos.Add(v.Mul(5 * dt))
}

// ViewProjection returns the combined view*projection transform for
// aspect ratio width/height, matching Main.cpp's
// CreateCameraTransform(...) followed by Mul(view_projection, camera,
// projection). The view half is built directly in raster.Matrix4's
// row-vector form from the mathgl-derived basis (CreateCameraTransform's
// literal algorithm); the projection half is raster.Perspective4, which
// already carries this repository's greater-is-nearer depth convention
// (DESIGN.md Open Question 8).
func (c *Camera) ViewProjection(width, height int) raster.Matrix4 {
	view := raster.Matrix4{
		{c.right.X, c.up.X, -c.forward.X, 0},
		{c.right.Y, c.up.Y, -c.forward.Y, 0},
		{c.right.Z, c.up.Z, -c.forward.Z, 0},
		{c.right.Dot(c.Pos), c.up.Dot(c.Pos), -c.forward.Dot(c.Pos), 1},
	}
	proj := raster.Perspective4(c.FOV, float32(width)/float32(height), 0.01, 800)
	return view.Mul(proj)
}
