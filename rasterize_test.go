package raster

import "testing"

// frontFacingTriangle mirrors internal/kernel's winding convention: a
// triangle wound apex, bottom-right, bottom-left survives the back-face
// cull under this port (see DESIGN.md Open Question 5).
func frontFacingTriangle(scale, z float32) [][3]float32 {
	return [][3]float32{
		{0, scale, z},
		{scale, -scale, z},
		{-scale, -scale, z},
	}
}

func TestRasterize_WhiteTriangleNoDepth(t *testing.T) {
	img := newTestImage(t, 8, 8)

	state := RasterState{Output: img, Flags: ColorWrite}
	inputs := []RasterInput{{
		Transform:     Identity4(),
		Positions:     frontFacingTriangle(1, 0.5),
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}}

	Rasterize(state, inputs, 0, 1)

	off := (4/2)*256 + (4/2)*16
	px := img.ColorBuffer[off : off+4]
	for _, b := range px {
		if b != 0xFF {
			t.Fatalf("center pixel = %v, want opaque white", px)
		}
	}

	off = 0
	px = img.ColorBuffer[off : off+4]
	for _, b := range px {
		if b != 0 {
			t.Fatalf("corner pixel = %v, want clear", px)
		}
	}
}

func TestRasterize_DepthOcclusion(t *testing.T) {
	img := newTestImage(t, 16, 16)
	state := RasterState{Output: img, Flags: ColorWrite | DepthWrite | DepthTest}

	red := RasterInput{
		Transform:     Identity4(),
		Positions:     frontFacingTriangle(100, 0.8),
		Colors:        [][4]float32{{1, 0, 0, 0}, {1, 0, 0, 0}, {1, 0, 0, 0}},
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}
	green := RasterInput{
		Transform:     Identity4(),
		Positions:     frontFacingTriangle(100, 0.2),
		Colors:        [][4]float32{{0, 1, 0, 0}, {0, 1, 0, 0}, {0, 1, 0, 0}},
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}

	Rasterize(state, []RasterInput{red, green}, 0, 1)

	off := (8/2)*256 + (8/2)*16
	px := img.ColorBuffer[off : off+4]
	if px[0] != 0xFF || px[1] != 0 {
		t.Fatalf("center pixel = %v, want red to win over green", px)
	}
}

func TestRasterize_BackfaceCull(t *testing.T) {
	img := newTestImage(t, 8, 8)
	state := RasterState{Output: img, Flags: ColorWrite}

	positions := frontFacingTriangle(1, 0.5)
	positions[1], positions[2] = positions[2], positions[1]

	inputs := []RasterInput{{
		Transform:     Identity4(),
		Positions:     positions,
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}}

	Rasterize(state, inputs, 0, 1)

	for _, b := range img.ColorBuffer {
		if b != 0 {
			t.Fatalf("back-facing triangle wrote a non-zero byte, want untouched image")
		}
	}
}

func TestRasterize_SplitParity(t *testing.T) {
	state := func(img *RasterOutput) RasterState {
		return RasterState{Output: img, Flags: ColorWrite}
	}
	inputs := []RasterInput{{
		Transform:     Identity4(),
		Positions:     frontFacingTriangle(1, 0.5),
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}}

	ref := newTestImage(t, 64, 64)
	Rasterize(state(ref), inputs, 0, 1)

	for _, splits := range []int{1, 2, 4, 8} {
		img := newTestImage(t, 64, 64)
		for s := 0; s < splits; s++ {
			Rasterize(state(img), inputs, s, splits)
		}
		for i := range ref.ColorBuffer {
			if ref.ColorBuffer[i] != img.ColorBuffer[i] {
				t.Fatalf("splits=%d: color byte %d differs", splits, i)
			}
		}
	}
}

func TestRasterize_ReissuingSameDrawIsIdempotentUnderDepthTest(t *testing.T) {
	inputs := []RasterInput{{
		Transform:     Identity4(),
		Positions:     frontFacingTriangle(100, 0.5),
		Colors:        [][4]float32{{0.2, 0.4, 0.6, 1}, {0.2, 0.4, 0.6, 1}, {0.2, 0.4, 0.6, 1}},
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}}
	state := func(img *RasterOutput) RasterState {
		return RasterState{Output: img, Flags: ColorWrite | DepthWrite | DepthTest}
	}

	once := newTestImage(t, 16, 16)
	Rasterize(state(once), inputs, 0, 1)

	twice := newTestImage(t, 16, 16)
	Rasterize(state(twice), inputs, 0, 1)
	Rasterize(state(twice), inputs, 0, 1)

	for i := range once.ColorBuffer {
		if once.ColorBuffer[i] != twice.ColorBuffer[i] {
			t.Fatalf("color byte %d differs after re-issuing the same draw", i)
		}
	}
	for i := range once.DepthBuffer {
		if once.DepthBuffer[i] != twice.DepthBuffer[i] {
			t.Fatalf("depth byte %d differs after re-issuing the same draw", i)
		}
	}
}

func TestRasterize_NullBufferMasksFlags(t *testing.T) {
	img := &RasterOutput{Width: 8, Height: 8}
	mem := make([]byte, RequiredBytes(8, 8, true, false))
	if err := Initialize(img, mem, true, false); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}

	// DepthWrite/DepthTest requested but no depth buffer exists; must
	// not panic on a nil depth slice.
	state := RasterState{Output: img, Flags: ColorWrite | DepthWrite | DepthTest}
	inputs := []RasterInput{{
		Transform:     Identity4(),
		Positions:     frontFacingTriangle(1, 0.5),
		Indices:       []uint16{0, 1, 2},
		TriangleCount: 1,
	}}

	Rasterize(state, inputs, 0, 1)
}
