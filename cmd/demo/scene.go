package main

import "github.com/nmj/raster"

// cubeVertices/cubeColors/cubeIndices are the unit cube mesh RenderScene
// built in Main.cpp: 8 corners, one color per corner, 12 triangles (two
// per face) wound so the kernel's back-face cull keeps the outward
// faces (see DESIGN.md Open Question 5).
var cubeVertices = [][3]float32{
	{-1, +1, +1},
	{+1, +1, +1},
	{+1, -1, +1},
	{-1, -1, +1},
	{-1, +1, -1},
	{+1, +1, -1},
	{+1, -1, -1},
	{-1, -1, -1},
}

var cubeColors = [][4]float32{
	{1, 1, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 0, 0},
	{1, 0, 0, 0},
	{1, 1, 1, 0},
	{0, 1, 1, 0},
	{0, 0, 1, 0},
	{1, 0, 1, 0},
}

var cubeIndices = []uint16{
	/* Front  */ 0, 1, 2, 0, 2, 3,
	/* Back   */ 4, 6, 5, 4, 7, 6,
	/* Left   */ 4, 0, 3, 4, 3, 7,
	/* Right  */ 5, 2, 1, 5, 6, 2,
	/* Top    */ 0, 4, 5, 0, 5, 1,
	/* Bottom */ 3, 2, 6, 3, 6, 7,
}

// cubeDraw builds the cube's RasterInput for a given viewProjection and
// cube-local transform (identity for the origin cube, a translation for
// the offset one), mirroring RenderScene's state[0]/state[1] pair.
func cubeDraw(objectTransform, viewProjection raster.Matrix4) raster.RasterInput {
	return raster.RasterInput{
		Transform:     objectTransform.Mul(viewProjection),
		Positions:     cubeVertices,
		Colors:        cubeColors,
		Indices:       cubeIndices,
		TriangleCount: len(cubeIndices) / 3,
	}
}

// buildScene returns this frame's draw list: two cubes, one at the
// origin and one offset along +X, exactly RenderScene's scene content
// and spec.md §8 scenario 6's "two offset cube meshes."
func buildScene(viewProjection raster.Matrix4) []raster.RasterInput {
	return []raster.RasterInput{
		cubeDraw(raster.Identity4(), viewProjection),
		cubeDraw(raster.Translate4(raster.V3(3, 0, 0)), viewProjection),
	}
}
