package wide

import "encoding/binary"

// S32x4 holds four int32 lanes, one per pixel of a 2x2 block.
//
// The original kernel multiplies 32-bit lanes with MulEpi32, a shuffle
// dance worked around the lack of a native SSE2 32x32->32 multiply.
// Go's native int32 multiplication already truncates to the low 32 bits,
// so Mul below needs none of that machinery.
type S32x4 [4]int32

// SplatS32 returns an S32x4 with all four lanes set to n.
func SplatS32(n int32) S32x4 {
	return S32x4{n, n, n, n}
}

// LoadS32x4 reads a 16-byte block as four little-endian int32 lanes,
// matching _mm_load_si128. b must be at least 16 bytes.
func LoadS32x4(b []byte) S32x4 {
	return S32x4{
		int32(binary.LittleEndian.Uint32(b[0:4])),
		int32(binary.LittleEndian.Uint32(b[4:8])),
		int32(binary.LittleEndian.Uint32(b[8:12])),
		int32(binary.LittleEndian.Uint32(b[12:16])),
	}
}

// Store writes v's four lanes to a 16-byte block as little-endian int32s,
// matching _mm_store_si128. b must be at least 16 bytes.
func (v S32x4) Store(b []byte) {
	binary.LittleEndian.PutUint32(b[0:4], uint32(v[0]))
	binary.LittleEndian.PutUint32(b[4:8], uint32(v[1]))
	binary.LittleEndian.PutUint32(b[8:12], uint32(v[2]))
	binary.LittleEndian.PutUint32(b[12:16], uint32(v[3]))
}

// Add returns the element-wise sum v+other.
func (v S32x4) Add(other S32x4) S32x4 {
	var r S32x4
	for i := range v {
		r[i] = v[i] + other[i]
	}
	return r
}

// Sub returns the element-wise difference v-other.
func (v S32x4) Sub(other S32x4) S32x4 {
	var r S32x4
	for i := range v {
		r[i] = v[i] - other[i]
	}
	return r
}

// Mul returns the element-wise product v*other, truncated to 32 bits.
func (v S32x4) Mul(other S32x4) S32x4 {
	var r S32x4
	for i := range v {
		r[i] = v[i] * other[i]
	}
	return r
}

// ShiftLeft returns v with every lane shifted left by n bits.
func (v S32x4) ShiftLeft(n uint) S32x4 {
	var r S32x4
	for i := range v {
		r[i] = v[i] << n
	}
	return r
}

// ShiftRightArith returns v with every lane arithmetic-shifted right by n
// bits (sign-extending), matching _mm_srai_epi32.
func (v S32x4) ShiftRightArith(n uint) S32x4 {
	var r S32x4
	for i := range v {
		r[i] = v[i] >> n
	}
	return r
}

// Or returns the element-wise bitwise OR.
func (v S32x4) Or(other S32x4) S32x4 {
	var r S32x4
	for i := range v {
		r[i] = v[i] | other[i]
	}
	return r
}

// ToF32 converts each lane to float32, matching _mm_cvtepi32_ps.
func (v S32x4) ToF32() F32x4 {
	var r F32x4
	for i := range v {
		r[i] = float32(v[i])
	}
	return r
}

// Mask is a 4-lane boolean mask, one bit of intent per pixel of a 2x2
// block (true = lane selected), standing in for the all-ones/all-zeros
// lane convention _mm_cmpgt_epi32 and friends use in the original.
type Mask [4]bool

// GreaterThanZero returns a Mask with lane i true where v[i] > 0,
// matching _mm_cmpgt_epi32(v, zero).
func (v S32x4) GreaterThanZero() Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] > 0
	}
	return m
}

// GreaterThan returns a Mask with lane i true where v[i] > other[i],
// matching _mm_cmpgt_epi32(v, other).
func (v S32x4) GreaterThan(other S32x4) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] > other[i]
	}
	return m
}

// And returns the element-wise logical AND of two masks.
func (m Mask) And(other Mask) Mask {
	var r Mask
	for i := range m {
		r[i] = m[i] && other[i]
	}
	return r
}

// Any reports whether any lane is set, matching
// _mm_movemask_epi8(mask) != 0.
func (m Mask) Any() bool {
	return m[0] || m[1] || m[2] || m[3]
}

// Select returns, per lane, other[i] if m[i] else v[i] — the merge-store
// pattern `(v & ~mask) | (other & mask)` used throughout the kernel for
// masked writes to depth and color blocks.
func (v S32x4) Select(m Mask, other S32x4) S32x4 {
	var r S32x4
	for i := range v {
		if m[i] {
			r[i] = other[i]
		} else {
			r[i] = v[i]
		}
	}
	return r
}
