package raster

import "testing"

func approxEqual(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

func TestMatrix4_IdentityMulIsNoOp(t *testing.T) {
	m := Translate4(V3(1, 2, 3))
	got := Identity4().Mul(m)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approxEqual(got[i][j], m[i][j]) {
				t.Fatalf("Identity4().Mul(m)[%d][%d] = %v, want %v", i, j, got[i][j], m[i][j])
			}
		}
	}
}

func TestMatrix4_TranslateAppliesToPosition(t *testing.T) {
	m := Translate4(V3(5, -2, 0))
	// v*M under row-vector convention with homogeneous w=1.
	v := [4]float32{0, 0, 0, 1}
	var r [4]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			r[j] += v[i] * m[i][j]
		}
	}
	if !approxEqual(r[0], 5) || !approxEqual(r[1], -2) || !approxEqual(r[2], 0) {
		t.Fatalf("translated origin = %v, want (5,-2,0)", r)
	}
}

func TestVec3_CrossIsOrthogonal(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	z := x.Cross(y)
	if !approxEqual(z.X, 0) || !approxEqual(z.Y, 0) || !approxEqual(z.Z, 1) {
		t.Fatalf("X cross Y = %v, want (0,0,1)", z)
	}
}

func TestVec3_NormalizeUnitLength(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if !approxEqual(v.Length(), 1) {
		t.Fatalf("Normalize().Length() = %v, want 1", v.Length())
	}
}

func TestLookAt4_EyeMapsToOrigin(t *testing.T) {
	m := LookAt4(V3(0, 0, -5), V3(0, 0, 0), V3(0, 1, 0))
	v := [4]float32{0, 0, -5, 1}
	var r [4]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			r[j] += v[i] * m[i][j]
		}
	}
	if !approxEqual(r[0], 0) || !approxEqual(r[1], 0) || !approxEqual(r[2], 0) {
		t.Fatalf("eye in view space = %v, want origin", r)
	}
}
