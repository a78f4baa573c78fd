package main

import (
	"testing"

	"github.com/nmj/raster"
	"github.com/nmj/raster/platform"
)

var raster0 = raster.V3(0, 0, 0)

func TestCamera_StepMovesForwardWhenKeyWHeld(t *testing.T) {
	cam := NewCamera(raster0, tau*0.25)
	cam.HandleKey(platform.KeyW, true)
	cam.Step(1.0)

	if cam.Pos.X == 0 && cam.Pos.Y == 0 && cam.Pos.Z == 0 {
		t.Fatalf("camera did not move after a 1s step with W held")
	}
}

func TestCamera_StepIsNoOpWithNoKeysHeld(t *testing.T) {
	cam := NewCamera(raster0, tau*0.25)
	cam.Step(1.0)

	if cam.Pos != raster0 {
		t.Fatalf("camera moved with no keys held: %+v", cam.Pos)
	}
}

func TestCamera_OppositeKeysCancel(t *testing.T) {
	cam := NewCamera(raster0, tau*0.25)
	cam.HandleKey(platform.KeyW, true)
	cam.HandleKey(platform.KeyS, true)
	cam.Step(1.0)

	if cam.Pos != raster0 {
		t.Fatalf("forward+backward held simultaneously should cancel, got %+v", cam.Pos)
	}
}

func TestCamera_ViewProjectionIsFinite(t *testing.T) {
	cam := NewCamera(raster0, tau*0.25)
	cam.Step(0)
	m := cam.ViewProjection(1280, 720)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if m[i][j] != m[i][j] { // NaN check
				t.Fatalf("ViewProjection produced NaN at [%d][%d]", i, j)
			}
		}
	}
}
