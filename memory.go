package raster

import (
	"errors"
	"unsafe"

	"github.com/nmj/raster/internal/tile"
)

// RequiredBytes returns the number of bytes Initialize needs from a
// caller-provided block to back the requested planes of a width x
// height image, including the slack needed for the 16-byte alignment
// carve-out each enabled plane gets.
func RequiredBytes(width, height int, wantColor, wantDepth bool) int {
	grid := tile.NewGrid(width, height)
	n := tile.Alignment
	if wantColor {
		n += alignUp(grid.ColorPlaneBytes(), tile.Alignment)
	}
	if wantDepth {
		n += alignUp(grid.DepthPlaneBytes(), tile.Alignment)
	}
	return n
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// Initialize carves image's color and/or depth buffers out of memory, a
// caller-owned block of at least RequiredBytes(image.Width, image.Height,
// wantColor, wantDepth) bytes. Each carved slice starts at a 16-byte
// aligned address: make([]byte, n) gives no alignment guarantee beyond
// the platform minimum, but the block-store shape this package ports
// from the original SIMD kernel assumes 16-byte-aligned tile bases, so
// Initialize pads with unsafe.Pointer arithmetic to find one.
func Initialize(image *RasterOutput, memory []byte, wantColor, wantDepth bool) error {
	if len(memory) < RequiredBytes(image.Width, image.Height, wantColor, wantDepth) {
		return errors.New("raster: memory block smaller than RequiredBytes")
	}

	grid := tile.NewGrid(image.Width, image.Height)
	rest := memory

	image.ColorBuffer = nil
	if wantColor {
		var buf []byte
		buf, rest = carve(rest, grid.ColorPlaneBytes())
		image.ColorBuffer = buf
	}

	image.DepthBuffer = nil
	if wantDepth {
		var buf []byte
		buf, rest = carve(rest, grid.DepthPlaneBytes())
		image.DepthBuffer = buf
	}

	return nil
}

// carve returns a 16-byte-aligned subslice of exactly n bytes from the
// front of mem, plus the unused remainder past it.
func carve(mem []byte, n int) (aligned, rest []byte) {
	if len(mem) == 0 {
		return mem, mem
	}
	addr := uintptr(unsafe.Pointer(&mem[0]))
	align := uintptr(tile.Alignment)
	pad := int((align - addr%align) % align)
	return mem[pad : pad+n], mem[pad+n:]
}
