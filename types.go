// Package raster implements a tile-based software triangle rasterizer:
// clear, rasterize, and blit operations over a caller-owned tiled
// color/depth image, partitioned across cooperating callers by
// (split_index, num_splits).
//
// The package never allocates the image's backing memory and never
// spawns a goroutine; internal/frame.Scheduler is the reference driver
// that turns this into an actual multi-goroutine frame loop.
package raster

// Flags selects which of the three core write stages a draw
// participates in. Values are part of the stable external API.
type Flags uint8

const (
	ColorWrite Flags = 1 << 0
	DepthWrite Flags = 1 << 1
	DepthTest  Flags = 1 << 2
)

// RasterOutput is the target image: a caller-owned pair of tiled
// buffers, 16-byte aligned, laid out by internal/tile's grid. Either
// buffer may be nil, in which case the corresponding Flags bit is
// masked off rather than reported as an error.
type RasterOutput struct {
	Width, Height int
	ColorBuffer   []byte
	DepthBuffer   []byte
}

// RasterInput is one indexed-triangle draw call. Transform is applied
// to each position as v*Transform (row-vector convention). Colors and
// Texcoords are optional per-vertex attributes; a nil Colors disables
// the VertexColor pipeline bit, a nil Texcoords disables the
// DiffuseMap bit (the core never samples a texture; the bit only
// steers pipeline selection).
type RasterInput struct {
	Transform     Matrix4
	Positions     [][3]float32
	Colors        [][4]float32
	Texcoords     [][2]float32
	Indices       []uint16
	TriangleCount int
}

// RasterState is one Rasterize submission: the target image plus the
// flags requested for every draw in the call. Null buffers on Output
// mask the corresponding bits before any draw runs.
type RasterState struct {
	Output *RasterOutput
	Flags  Flags
}

// Display is a linear BGRA host framebuffer, the target of Blit.
// Pitch is the byte stride between rows and may exceed Width*4.
type Display struct {
	Data   []byte
	Width  int
	Height int
	Pitch  int
}
