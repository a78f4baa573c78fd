// Package wide provides 4-lane SIMD-style value types for the rasterizer's
// per-block inner loop.
//
// The rasterizer kernel processes one 2x2 pixel block per iteration, so
// every quantity that varies across a block — edge values, 1/w, z, vertex
// color channels — is carried as a 4-lane value instead of a scalar.
// F32x4 and S32x4 are fixed-size-array types rather than wrappers around
// compiler intrinsics: Go has no portable access to SSE/NEON registers
// without cgo or assembly, so these lean on the same auto-vectorization
// idiom as gogpu-gg's F32x8 — simple loops over [4]T that the compiler is
// free to widen on architectures that support it, and that behave
// identically (if slower) on those that don't.
//
// # Lane order
//
// Lanes map to the four pixels of a 2x2 block in row-major order:
// lane 0 = (0,0), lane 1 = (1,0), lane 2 = (0,1), lane 3 = (1,1) — the
// same {(0,0),(1,0),(0,1),(1,1)} offset order the kernel samples edge
// functions at.
package wide
