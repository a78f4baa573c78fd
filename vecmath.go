package raster

import "math"

// Vec2, Vec3, and Vec4 are small float32 vector types for building
// RasterInput data and transforms without pulling in a separate math
// dependency for the core itself. Scene graph and camera control stay
// external collaborators; cmd/demo uses go-gl/mathgl for that and
// converts to these types at the boundary.
type Vec2 struct{ X, Y float32 }

type Vec3 struct{ X, Y, Z float32 }

type Vec4 struct{ X, Y, Z, W float32 }

func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func V4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.Dot(v))))
}

func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// Matrix4 is a row-major 4x4 matrix applied to a position as v*M
// (row-vector convention), matching Matrix.h's layout.
type Matrix4 [4][4]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m*other (apply m first, then other, under row-vector
// convention: v*m*other).
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * other[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Translate4 returns a row-vector translation matrix.
func Translate4(t Vec3) Matrix4 {
	m := Identity4()
	m[3][0] = t.X
	m[3][1] = t.Y
	m[3][2] = t.Z
	return m
}

// Scale4 returns a row-vector uniform/non-uniform scale matrix.
func Scale4(s Vec3) Matrix4 {
	m := Identity4()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

// Perspective4 returns a right-handed row-vector perspective projection
// matrix with vertical field of view fovY (radians), aspect ratio
// width/height, and near/far clip distances. The x/y terms match
// Matrix.h's CreatePerspectiveProjection directly; the z/w terms are
// reversed from that literal formula (near->1, far->0 instead of
// near->0, far->1) so that projected depth is consistent with the
// kernel's greater-is-nearer test (internal/kernel.RasterizeTile,
// DESIGN.md Open Question 1): Matrix.h's own mapping produces the
// opposite (smaller-wins) convention, which would make this projection
// self-inconsistent with the chosen depth test.
func Perspective4(fovY, aspect, near, far float32) Matrix4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	denom := far - near
	var m Matrix4
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = -near / denom
	m[2][3] = 1
	m[3][2] = (near * far) / denom
	return m
}

// LookAt4 returns a row-vector world-to-view transform for an eye
// position looking toward target with the given up vector: the basis
// is transposed into the matrix rows (as in Matrix.h's
// CreateCameraTransform) and the translation row is chosen so eye maps
// to the view-space origin under v*M.
func LookAt4(eye, target, up Vec3) Matrix4 {
	zAxis := target.Sub(eye).Normalize()
	xAxis := up.Cross(zAxis).Normalize()
	yAxis := zAxis.Cross(xAxis)

	return Matrix4{
		{xAxis.X, yAxis.X, zAxis.X, 0},
		{xAxis.Y, yAxis.Y, zAxis.Y, 0},
		{xAxis.Z, yAxis.Z, zAxis.Z, 0},
		{-xAxis.Dot(eye), -yAxis.Dot(eye), -zAxis.Dot(eye), 1},
	}
}
