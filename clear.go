package raster

import (
	"github.com/nmj/raster/internal/tile"
	"github.com/nmj/raster/internal/wide"
)

// ClearColor overwrites the tiles owned by this split with a packed
// BGRA word, r/g/b/a scaled by 255 and truncated to 8 bits each — one
// wide.S32x4 store per 2x2 block, matching the original's
// _mm_store_si128 clear loop. Tiles beyond the visible rectangle are
// still cleared; they are padding but must stay legally addressable.
func ClearColor(image *RasterOutput, r, g, b, a float32, split, splits int) {
	if image.ColorBuffer == nil {
		return
	}
	word := wide.SplatS32(int32(packBGRA(r, g, b, a)))
	grid := tile.NewGrid(image.Width, image.Height)
	for t := split; t < grid.TileCount(); t += splits {
		off := grid.ColorTileOffset(t)
		storeTile(image.ColorBuffer[off:off+tile.ColorTileBytes], word, tile.ColorBlockBytes)
	}
}

// ClearDepth overwrites the tiles owned by this split with a quantized
// 24.8 depth+stencil value, d scaled by 2^24-1 and stored in the low
// 24 bits with stencil left zero.
func ClearDepth(image *RasterOutput, d float32, split, splits int) {
	if image.DepthBuffer == nil {
		return
	}
	word := wide.SplatS32(quantizeDepth(d))
	grid := tile.NewGrid(image.Width, image.Height)
	for t := split; t < grid.TileCount(); t += splits {
		off := grid.DepthTileOffset(t)
		storeTile(image.DepthBuffer[off:off+tile.DepthTileBytes], word, tile.DepthBlockBytes)
	}
}

// storeTile writes the same block value across every block of a tile
// plane slice.
func storeTile(plane []byte, block wide.S32x4, blockBytes int) {
	for off := 0; off < len(plane); off += blockBytes {
		block.Store(plane[off : off+blockBytes])
	}
}

func packBGRA(r, g, b, a float32) uint32 {
	return uint32(quantize8(r)) | uint32(quantize8(g))<<8 | uint32(quantize8(b))<<16 | uint32(quantize8(a))<<24
}

func quantize8(c float32) uint8 {
	v := c * 255
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

func quantizeDepth(d float32) int32 {
	v := d*0xFFFFFF + 0.5
	if v < 0 {
		v = 0
	}
	if v > 0xFFFFFF {
		v = 0xFFFFFF
	}
	return int32(v)
}
