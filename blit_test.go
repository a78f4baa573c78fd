package raster

import "testing"

func TestBlit_ChannelSwap(t *testing.T) {
	img := newTestImage(t, 4, 2)
	// BGRX = 0x11 0x22 0x33 0x00 at pixel (0,0), lane 0 of block (0,0).
	img.ColorBuffer[0] = 0x11
	img.ColorBuffer[1] = 0x22
	img.ColorBuffer[2] = 0x33
	img.ColorBuffer[3] = 0x00

	display := Display{Data: make([]byte, 4*4*2), Width: 4, Height: 2, Pitch: 4 * 4}
	if err := Blit(display, img, 0, 1); err != nil {
		t.Fatalf("Blit() = %v", err)
	}

	got := display.Data[0:4]
	want := []byte{0x33, 0x22, 0x11, 0x00}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("display pixel(0,0) = %v, want %v", got, want)
		}
	}
}

func TestBlit_ClearThenBlitRoundTrip(t *testing.T) {
	img := newTestImage(t, 32, 32)
	ClearColor(img, 0.2, 0.4, 0.6, 1.0, 0, 1)

	display := Display{Data: make([]byte, 32*4*32), Width: 32, Height: 32, Pitch: 32 * 4}
	if err := Blit(display, img, 0, 1); err != nil {
		t.Fatalf("Blit() = %v", err)
	}

	wantB := quantize8(0.6)
	wantG := quantize8(0.4)
	wantR := quantize8(0.2)
	wantA := quantize8(1.0)

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			off := y*display.Pitch + x*4
			px := display.Data[off : off+4]
			if px[0] != wantB || px[1] != wantG || px[2] != wantR || px[3] != wantA {
				t.Fatalf("pixel (%d,%d) = %v, want [%d %d %d %d]", x, y, px, wantB, wantG, wantR, wantA)
			}
		}
	}
}

func TestBlit_SplitParity(t *testing.T) {
	img := newTestImage(t, 96, 64)
	ClearColor(img, 0.9, 0.1, 0.5, 1.0, 0, 1)

	ref := Display{Data: make([]byte, 96*4*64), Width: 96, Height: 64, Pitch: 96 * 4}
	if err := Blit(ref, img, 0, 1); err != nil {
		t.Fatalf("Blit() = %v", err)
	}

	for _, splits := range []int{1, 2, 4, 8} {
		got := Display{Data: make([]byte, 96*4*64), Width: 96, Height: 64, Pitch: 96 * 4}
		for s := 0; s < splits; s++ {
			if err := Blit(got, img, s, splits); err != nil {
				t.Fatalf("Blit(split=%d,splits=%d) = %v", s, splits, err)
			}
		}
		for i := range ref.Data {
			if ref.Data[i] != got.Data[i] {
				t.Fatalf("splits=%d: display byte %d differs", splits, i)
			}
		}
	}
}

func TestBlit_BoundaryTileClipsPadding(t *testing.T) {
	// 40x40 leaves an 8px visible strip in the last tile column/row.
	img := newTestImage(t, 40, 40)
	ClearColor(img, 1, 1, 1, 1, 0, 1)

	display := Display{Data: make([]byte, 40*4*40), Width: 40, Height: 40, Pitch: 40 * 4}
	if err := Blit(display, img, 0, 1); err != nil {
		t.Fatalf("Blit() = %v", err)
	}

	// Every in-bounds pixel must have been written (non-zero, since
	// the clear color is opaque white).
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			off := y*display.Pitch + x*4
			if display.Data[off+3] == 0 {
				t.Fatalf("pixel (%d,%d) alpha = 0, want fully written", x, y)
			}
		}
	}
}

func TestBlit_MismatchedDimensionsIsError(t *testing.T) {
	img := newTestImage(t, 32, 32)
	display := Display{Data: make([]byte, 16*4*16), Width: 16, Height: 16, Pitch: 16 * 4}
	if err := Blit(display, img, 0, 1); err == nil {
		t.Error("Blit() with mismatched dimensions = nil error, want error")
	}
}

func TestBlit_RequiresColorBuffer(t *testing.T) {
	img := &RasterOutput{Width: 32, Height: 32}
	display := Display{Data: make([]byte, 32*4*32), Width: 32, Height: 32, Pitch: 32 * 4}
	if err := Blit(display, img, 0, 1); err == nil {
		t.Error("Blit() with nil color buffer = nil error, want error")
	}
}

func TestBlit_WidthNotMultipleOf4IsError(t *testing.T) {
	img := newTestImage(t, 32, 32)
	display := Display{Data: make([]byte, 30*4*32), Width: 30, Height: 32, Pitch: 30 * 4}
	if err := Blit(display, img, 0, 1); err == nil {
		t.Error("Blit() with width not a multiple of 4 = nil error, want error")
	}
}
