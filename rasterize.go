package raster

import (
	"github.com/nmj/raster/internal/kernel"
	"github.com/nmj/raster/internal/tile"
)

// pipeline is the 32-entry kernel dispatch table, built once: it has
// no per-call state, so every Rasterize call shares it, matching the
// original's one static function-pointer table.
var pipeline = kernel.BuildPipeline()

// Rasterize draws every input in order into the tiles owned by this
// split. Null buffers on state.Output mask the corresponding flag
// bits before any draw runs; per draw, the pipeline key additionally
// picks up VertexColor when Colors is set and DiffuseMap when
// Texcoords is set.
func Rasterize(state RasterState, inputs []RasterInput, split, splits int) {
	out := state.Output
	flags := state.Flags
	if out.ColorBuffer == nil {
		flags &^= ColorWrite
	}
	if out.DepthBuffer == nil {
		flags &^= DepthWrite | DepthTest
	}

	grid := tile.NewGrid(out.Width, out.Height)

	Logger().Debug("rasterize", "draws", len(inputs), "tiles", grid.TileCount(), "split", split, "splits", splits)

	for _, in := range inputs {
		kflags := kernel.Flags{
			ColorWrite:  flags&ColorWrite != 0,
			DepthWrite:  flags&DepthWrite != 0,
			DepthTest:   flags&DepthTest != 0,
			DiffuseMap:  in.Texcoords != nil,
			VertexColor: in.Colors != nil,
		}
		fn := pipeline[kflags.Key()]

		kin := &kernel.Input{
			Transform:     [4][4]float32(in.Transform),
			Positions:     in.Positions,
			Colors:        in.Colors,
			HasTexcoords:  in.Texcoords != nil,
			Indices:       in.Indices,
			TriangleCount: in.TriangleCount,
		}

		for t := split; t < grid.TileCount(); t += splits {
			tx, ty := grid.TileCoord(t)

			var colorTile, depthTile []byte
			if kflags.ColorWrite {
				off := grid.ColorTileOffset(t)
				colorTile = out.ColorBuffer[off : off+tile.ColorTileBytes]
			}
			if kflags.DepthWrite || kflags.DepthTest {
				off := grid.DepthTileOffset(t)
				depthTile = out.DepthBuffer[off : off+tile.DepthTileBytes]
			}

			fn(tx, ty, out.Width, out.Height, colorTile, depthTile, kin)
		}
	}
}
