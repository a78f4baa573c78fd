package raster

import (
	"errors"

	"github.com/nmj/raster/internal/tile"
	"github.com/nmj/raster/internal/wide"
)

const (
	rMask  = 0x00FF0000
	bMask  = 0x000000FF
	gxMask = 0xFF00FF00
)

// swapRB reassembles a packed 32-bit BGRX word with its R and B bytes
// exchanged and G/X left in place, the scalar equivalent of the three-
// mask SIMD recombination (x<<16&R)|(x>>16&B)|(x&GX) the original blit
// used to avoid a per-pixel byte shuffle.
func swapRB(x uint32) uint32 {
	return (x<<16)&rMask | (x>>16)&bMask | x&gxMask
}

// Blit converts the tiles owned by this split from the internal 2x2-
// block BGRX layout to display's linear BGRA surface, swapping R/B
// byte order as the host framebuffer expects. Tiles at the image
// boundary are clipped to the visible rectangle; their padding pixels
// are never written.
func Blit(display Display, image *RasterOutput, split, splits int) error {
	if display.Width != image.Width || display.Height != image.Height {
		return errors.New("raster: display dimensions must match image dimensions")
	}
	if display.Width%4 != 0 {
		return errors.New("raster: display width must be a multiple of 4")
	}
	if display.Height%2 != 0 {
		return errors.New("raster: display height must be a multiple of 2")
	}
	if image.ColorBuffer == nil {
		return errors.New("raster: image has no color buffer to blit")
	}

	grid := tile.NewGrid(image.Width, image.Height)

	for t := split; t < grid.TileCount(); t += splits {
		tx, ty := grid.TileCoord(t)
		off := grid.ColorTileOffset(t)
		srcTile := image.ColorBuffer[off : off+tile.ColorTileBytes]
		blitTile(display, srcTile, tx, ty, image.Width, image.Height)
	}
	return nil
}

// blitTile walks one tile's blocks two destination rows at a time,
// scattering each block's four lanes ({(0,0),(1,0),(0,1),(1,1)}) to the
// pixel pair each of those two rows owns. The original's blit resolves
// a whole block with one deinterleaved 128-bit store per row; this
// walks lane-by-lane instead, since Go has no portable non-temporal
// store equivalent worth reaching for here.
func blitTile(display Display, srcTile []byte, tx, ty, imgWidth, imgHeight int) {
	originX := tx * tile.Size
	originY := ty * tile.Size

	visW := minInt(tile.Size, imgWidth-originX)
	visH := minInt(tile.Size, imgHeight-originY)
	if visW <= 0 || visH <= 0 {
		return
	}
	blocksX := (visW + 1) / 2
	blocksY := (visH + 1) / 2

	for by := 0; by < blocksY; by++ {
		rowOff := by * tile.ColorTilePitch
		py := originY + by*2
		for bx := 0; bx < blocksX; bx++ {
			blockOff := rowOff + bx*tile.ColorBlockBytes
			block := wide.LoadS32x4(srcTile[blockOff : blockOff+16])

			px := originX + bx*2

			writePixel(display, px, py, block[0])
			if px+1 < imgWidth {
				writePixel(display, px+1, py, block[1])
			}
			if py+1 < imgHeight {
				writePixel(display, px, py+1, block[2])
				if px+1 < imgWidth {
					writePixel(display, px+1, py+1, block[3])
				}
			}
		}
	}
}

func writePixel(display Display, x, y int, bgrx int32) {
	off := y*display.Pitch + x*4
	v := swapRB(uint32(bgrx))
	display.Data[off+0] = byte(v)
	display.Data[off+1] = byte(v >> 8)
	display.Data[off+2] = byte(v >> 16)
	display.Data[off+3] = byte(v >> 24)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
