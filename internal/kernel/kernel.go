// Package kernel implements the per-tile triangle rasterizer: triangle
// setup (transform, near-plane cull, back-face cull, fixed-point edge
// functions), perspective-correct attribute interpolation, and the
// masked depth-test/depth-write/color-write block walk.
//
// This is a direct port of RasterizeTile in Rasterizer_x86.cpp. The
// five C++ template booleans (ColorWrite, DepthWrite, DepthTest,
// DiffuseMap, VertexColor) become a Flags value — Go has no
// compile-time monomorphization over boolean constants without running
// a code generator, so the branches live in one function instead of 32
// specialized ones. The SSE intrinsics become calls into
// internal/wide's 4-lane F32x4/S32x4 types; quantities that are
// genuinely uniform across a block's four lanes (all the x/y step
// sizes) are kept as plain scalars and broadcast at the point of use,
// since a step added equally to every lane needs no vector storage of
// its own.
package kernel

import (
	"github.com/nmj/raster/internal/tile"
	"github.com/nmj/raster/internal/wide"
)

// PixelFracBits is the number of sub-pixel fractional bits used for
// fixed-point screen coordinates (spec: sub-pixel unit = 1/16).
const PixelFracBits = 4

// PixelFracUnit is 1<<PixelFracBits.
const PixelFracUnit = 1 << PixelFracBits

// Flags selects one of the 32 pipeline specializations for a draw.
type Flags struct {
	ColorWrite  bool
	DepthWrite  bool
	DepthTest   bool
	DiffuseMap  bool
	VertexColor bool
}

// Key returns the 5-bit pipeline index
// [VertexColor|DiffuseMap|ColorWrite|DepthWrite|DepthTest], matching the
// bit layout spec.md §6 fixes as stable API.
func (f Flags) Key() int {
	k := 0
	if f.DepthTest {
		k |= 1
	}
	if f.DepthWrite {
		k |= 2
	}
	if f.ColorWrite {
		k |= 4
	}
	if f.DiffuseMap {
		k |= 8
	}
	if f.VertexColor {
		k |= 16
	}
	return k
}

// FlagsFromKey decodes a pipeline key back into its five booleans.
func FlagsFromKey(key int) Flags {
	return Flags{
		DepthTest:   key&1 != 0,
		DepthWrite:  key&2 != 0,
		ColorWrite:  key&4 != 0,
		DiffuseMap:  key&8 != 0,
		VertexColor: key&16 != 0,
	}
}

// Input is one draw call's vertex data, positioned in the kernel's own
// terms: flattened attribute slices plus a triangle index list, all
// indexed by the uint16 values in Indices.
type Input struct {
	// Transform is the row-major 4x4 matrix applied to each vertex as
	// v*Transform (row-vector convention).
	Transform [4][4]float32

	// Positions holds one xyz per vertex.
	Positions [][3]float32

	// Colors holds one rgba per vertex, or nil if the draw has no
	// per-vertex color.
	Colors [][4]float32

	// HasTexcoords records whether the draw call supplied texcoords.
	// The core never samples them (no texture stage is implemented) and
	// RasterizeTile does not read this field; the pipeline key's
	// DiffuseMap bit is set by the caller from the same condition.
	HasTexcoords bool

	// Indices holds 3 indices per triangle, len(Indices) == 3*TriangleCount.
	Indices []uint16

	// TriangleCount is the number of triangles to draw.
	TriangleCount int
}

// TileFunc rasterizes one draw's contribution to one tile.
type TileFunc func(tileX, tileY, screenWidth, screenHeight int, colorTile, depthTile []byte, in *Input)

// BuildPipeline returns the 32-entry dispatch table, one closure per
// pipeline key, each wrapping RasterizeTile with that key's decoded
// Flags. This mirrors Rasterizer_x86.cpp's `pipeline[]` function-pointer
// table: one indirection per draw per tile, never per pixel.
func BuildPipeline() [32]TileFunc {
	var table [32]TileFunc
	for key := range table {
		flags := FlagsFromKey(key)
		table[key] = func(tx, ty, sw, sh int, color, depth []byte, in *Input) {
			RasterizeTile(tx, ty, sw, sh, color, depth, in, flags)
		}
	}
	return table
}

// vec4 is a homogeneous vertex after transform.
type vec4 struct{ x, y, z, w float32 }

func transform(m [4][4]float32, p [3]float32) vec4 {
	return vec4{
		x: m[0][0]*p[0] + m[1][0]*p[1] + m[2][0]*p[2] + m[3][0],
		y: m[0][1]*p[0] + m[1][1]*p[1] + m[2][1]*p[2] + m[3][1],
		z: m[0][2]*p[0] + m[1][2]*p[1] + m[2][2]*p[2] + m[3][2],
		w: m[0][3]*p[0] + m[1][3]*p[1] + m[2][3]*p[2] + m[3][3],
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min3(a, b, c int32) int32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

func max3(a, b, c int32) int32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

// RasterizeTile rasterizes every triangle of in into the tile at
// (tileX, tileY) of a screenWidth x screenHeight image, writing into the
// tile's own color/depth plane slices (each exactly
// tile.ColorTileBytes/tile.DepthTileBytes long). State machine per
// triangle: Fetch -> Transform -> Cull -> Setup -> BlockWalk -> Next.
func RasterizeTile(tileX, tileY, screenWidth, screenHeight int, colorTile, depthTile []byte, in *Input, flags Flags) {
	m := in.Transform
	// Y points down in image space: negate the row that scales v.y so
	// every component of the transform result flips sign with it.
	m[1][0], m[1][1], m[1][2], m[1][3] = -m[1][0], -m[1][1], -m[1][2], -m[1][3]

	scx := screenWidth / 2
	scy := screenHeight / 2
	sx := tileX * tile.Size
	sy := tileY * tile.Size

	tileMinX := int32(sx - scx)
	tileMinY := int32(sy - scy)
	tileMaxX := int32(minInt(sx+tile.Size-scx, scx-1))
	tileMaxY := int32(minInt(sy+tile.Size-scy, scy-1))

	xscale := float32(scx << PixelFracBits)
	yscale := float32(scy << PixelFracBits)

	wantDepth := flags.DepthWrite || flags.DepthTest
	wantColor := flags.ColorWrite
	wantVertexColor := flags.ColorWrite && flags.VertexColor

	for t := 0; t < in.TriangleCount; t++ {
		i0 := in.Indices[t*3+0]
		i1 := in.Indices[t*3+1]
		i2 := in.Indices[t*3+2]

		v0 := transform(m, in.Positions[i0])
		v1 := transform(m, in.Positions[i1])
		v2 := transform(m, in.Positions[i2])

		// Near-plane hack rejection: drop the whole triangle rather
		// than clip it (documented limitation, spec.md §9).
		if v0.z < 0 || v1.z < 0 || v2.z < 0 {
			continue
		}

		var c0, c1, c2 [4]float32
		if wantVertexColor {
			c0, c1, c2 = in.Colors[i0], in.Colors[i1], in.Colors[i2]
		}

		coord0x := int32(v0.x * xscale / v0.w)
		coord0y := int32(v0.y * yscale / v0.w)
		coord1x := int32(v1.x * xscale / v1.w)
		coord1y := int32(v1.y * yscale / v1.w)
		coord2x := int32(v2.x * xscale / v2.w)
		coord2y := int32(v2.y * yscale / v2.w)

		coord21x := coord2x - coord1x
		coord21y := coord2y - coord1y
		coord02x := coord0x - coord2x
		coord02y := coord0y - coord2y

		triareaX2 := -((coord02x * coord21y) >> PixelFracBits) + ((coord02y * coord21x) >> PixelFracBits)
		// Back-face / degenerate cull: spec.md §4.3 treats triarea==0
		// as non-positive, unlike the original which only culled <0.
		if triareaX2 <= 0 {
			continue
		}

		minX := (min3(coord0x, coord1x, coord2x) + (PixelFracUnit - 1)) >> PixelFracBits
		minY := (min3(coord0y, coord1y, coord2y) + (PixelFracUnit - 1)) >> PixelFracBits
		maxX := (max3(coord0x, coord1x, coord2x) + (PixelFracUnit - 1)) >> PixelFracBits
		maxY := (max3(coord0y, coord1y, coord2y) + (PixelFracUnit - 1)) >> PixelFracBits

		if minX > tileMaxX || minY > tileMaxY {
			continue
		}
		if maxX < tileMinX || maxY < tileMinY {
			continue
		}

		boundMinX := maxInt32(minInt32(minX, tileMaxX), tileMinX) &^ (tile.BlockSize - 1)
		boundMinY := maxInt32(minInt32(minY, tileMaxY), tileMinY) &^ (tile.BlockSize - 1)
		boundMaxX := (maxInt32(minInt32(maxX+1, tileMaxX), tileMinX) + (tile.BlockSize - 1)) &^ (tile.BlockSize - 1)
		boundMaxY := (maxInt32(minInt32(maxY+1, tileMaxY), tileMinY) + (tile.BlockSize - 1)) &^ (tile.BlockSize - 1)

		// Single-pixel edge steps.
		bxstep0 := -coord21y
		bxstep1 := -coord02y
		bxstep2 := coord0y - coord1y
		bystep0 := coord21x
		bystep1 := coord02x
		bystep2 := coord1x - coord0x

		offsetX := wide.S32x4{boundMinX, boundMinX + 1, boundMinX, boundMinX + 1}
		offsetY := wide.S32x4{boundMinY, boundMinY, boundMinY + 1, boundMinY + 1}

		browBase0 := ((coord21x * -coord1y) >> PixelFracBits) - ((coord21y * -coord1x) >> PixelFracBits)
		browBase1 := ((coord02x * -coord2y) >> PixelFracBits) - ((coord02y * -coord2x) >> PixelFracBits)

		brow0 := wide.SplatS32(browBase0).
			Add(offsetX.Mul(wide.SplatS32(bxstep0))).
			Add(offsetY.Mul(wide.SplatS32(bystep0))).
			Sub(wide.SplatS32(bxstep0 >> 1)).
			Sub(wide.SplatS32(bystep0 >> 1))
		brow1 := wide.SplatS32(browBase1).
			Add(offsetX.Mul(wide.SplatS32(bxstep1))).
			Add(offsetY.Mul(wide.SplatS32(bystep1))).
			Sub(wide.SplatS32(bxstep1 >> 1)).
			Sub(wide.SplatS32(bystep1 >> 1))

		// Scale steps from 1x1 pixel to 2x2 block strides.
		bxstep0, bxstep1, bxstep2 = bxstep0*2, bxstep1*2, bxstep2*2
		bystep0, bystep1, bystep2 = bystep0*2, bystep1*2, bystep2*2

		brow2 := wide.SplatS32(triareaX2).Sub(brow0).Sub(brow1)

		invTriareaF := 1 / float32(triareaX2)
		bfRow1 := brow1.ToF32().MulScalar(invTriareaF)
		bfRow2 := brow2.ToF32().MulScalar(invTriareaF)
		bfXStep1 := float32(bxstep1) * invTriareaF
		bfXStep2 := float32(bxstep2) * invTriareaF
		bfYStep1 := float32(bystep1) * invTriareaF
		bfYStep2 := float32(bystep2) * invTriareaF

		invW0 := 1 / v0.w
		invW1 := 1 / v1.w
		invW2 := 1 / v2.w
		invW10 := invW1 - invW0
		invW20 := invW2 - invW0

		invWRow := wide.SplatF32(invW0).Add(bfRow1.MulScalar(invW10)).Add(bfRow2.MulScalar(invW20))
		invWXStep := invW10*bfXStep1 + invW20*bfXStep2
		invWYStep := invW10*bfYStep1 + invW20*bfYStep2

		var zRow wide.F32x4
		var zXStep, zYStep float32
		if wantDepth {
			z0 := v0.z * invW0
			z10 := v1.z*invW1 - z0
			z20 := v2.z*invW2 - z0
			zRow = wide.SplatF32(z0).Add(bfRow1.MulScalar(z10)).Add(bfRow2.MulScalar(z20))
			zXStep = z10*bfXStep1 + z20*bfXStep2
			zYStep = z10*bfYStep1 + z20*bfYStep2
		}

		var colorRow [3]wide.F32x4
		var colorXStep, colorYStep [3]float32
		if wantVertexColor {
			for ch := 0; ch < 3; ch++ {
				pc0 := c0[ch] * invW0
				pc10 := c1[ch]*invW1 - pc0
				pc20 := c2[ch]*invW2 - pc0
				colorRow[ch] = wide.SplatF32(pc0).Add(bfRow1.MulScalar(pc10)).Add(bfRow2.MulScalar(pc20))
				colorXStep[ch] = pc10*bfXStep1 + pc20*bfXStep2
				colorYStep[ch] = pc10*bfYStep1 + pc20*bfYStep2
			}
		}

		blockBeginX := (boundMinX - tileMinX) / tile.BlockSize
		blockBeginY := (boundMinY - tileMinY) / tile.BlockSize
		blockEndX := (boundMaxX - tileMinX) / tile.BlockSize
		blockEndY := (boundMaxY - tileMinY) / tile.BlockSize

		xcount := int(blockEndX - blockBeginX)
		ycount := int(blockEndY - blockBeginY)

		colorRowOff := int(blockBeginY)*tile.ColorTilePitch + int(blockBeginX)*tile.ColorBlockBytes
		depthRowOff := int(blockBeginY)*tile.DepthTilePitch + int(blockBeginX)*tile.DepthBlockBytes

		bxstepVec := [3]wide.S32x4{wide.SplatS32(bxstep0), wide.SplatS32(bxstep1), wide.SplatS32(bxstep2)}
		bystepVec := [3]wide.S32x4{wide.SplatS32(bystep0), wide.SplatS32(bystep1), wide.SplatS32(bystep2)}

		for y := 0; y < ycount; y++ {
			colorOff := colorRowOff
			depthOff := depthRowOff

			bcoord := [3]wide.S32x4{brow0, brow1, brow2}
			invW := invWRow
			z := zRow
			color := colorRow

			for x := 0; x < xcount; x++ {
				mask := bcoord[0].Or(bcoord[1]).Or(bcoord[2]).GreaterThanZero()

				if mask.Any() {
					if wantDepth {
						oldZ := wide.LoadS32x4(depthTile[depthOff : depthOff+16])
						newZ := z.MulScalar(0xFFFFFF).RoundToS32()

						if flags.DepthTest {
							// Greater-is-nearer: the incoming fragment
							// overwrites only when it is nearer than
							// what's stored (newZ > oldZ). Rasterizer_x86.cpp
							// literally tests cmpgt(oldZ, newZ), which is
							// the *other* depth convention spec.md §9
							// calls out (near=0/far=1, smaller-wins) —
							// that direction would let a farther draw
							// overwrite a nearer one under this
							// projection's far=0/near=1 mapping, failing
							// spec.md §8 scenario 2. See DESIGN.md.
							mask = mask.And(newZ.GreaterThan(oldZ))
						}

						if mask.Any() && flags.DepthWrite {
							oldZ.Select(mask, newZ).Store(depthTile[depthOff : depthOff+16])
						}
					}

					if mask.Any() && wantColor {
						oldColor := wide.LoadS32x4(colorTile[colorOff : colorOff+16])

						var newColor wide.S32x4
						if flags.VertexColor {
							w := invW.Recip()
							r := color[0].Mul(w).MulScalar(255).RoundToS32()
							g := color[1].Mul(w).MulScalar(255).RoundToS32()
							b := color[2].Mul(w).MulScalar(255).RoundToS32()
							newColor = r.Or(g.ShiftLeft(8)).Or(b.ShiftLeft(16))
						} else {
							// White: Select below only takes these
							// lanes where mask is true.
							newColor = wide.SplatS32(-1)
						}

						oldColor.Select(mask, newColor).Store(colorTile[colorOff : colorOff+16])
					}
				}

				colorOff += tile.ColorBlockBytes
				depthOff += tile.DepthBlockBytes

				bcoord[0] = bcoord[0].Add(bxstepVec[0])
				bcoord[1] = bcoord[1].Add(bxstepVec[1])
				bcoord[2] = bcoord[2].Add(bxstepVec[2])
				invW = invW.Add(wide.SplatF32(invWXStep))
				if wantDepth {
					z = z.Add(wide.SplatF32(zXStep))
				}
				if wantVertexColor {
					for ch := 0; ch < 3; ch++ {
						color[ch] = color[ch].Add(wide.SplatF32(colorXStep[ch]))
					}
				}
			}

			colorRowOff += tile.ColorTilePitch
			depthRowOff += tile.DepthTilePitch

			brow0 = brow0.Add(bystepVec[0])
			brow1 = brow1.Add(bystepVec[1])
			brow2 = brow2.Add(bystepVec[2])
			invWRow = invWRow.Add(wide.SplatF32(invWYStep))
			if wantDepth {
				zRow = zRow.Add(wide.SplatF32(zYStep))
			}
			if wantVertexColor {
				for ch := 0; ch < 3; ch++ {
					colorRow[ch] = colorRow[ch].Add(wide.SplatF32(colorYStep[ch]))
				}
			}
		}
	}
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
