package lcg

import "math/bits"

// Uint128 is an unsigned 128-bit integer held in two 64-bit limbs.
// All arithmetic wraps modulo 2**128; overflow is defined behavior.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// U128 builds a Uint128 from high and low limbs.
func U128(hi, lo uint64) Uint128 {
	return Uint128{Lo: lo, Hi: hi}
}

// From64 zero-extends a 64-bit value.
func From64(v uint64) Uint128 {
	return Uint128{Lo: v}
}

// FromInt64 sign-extends a 64-bit value, so that negative deltas
// keep their two's complement meaning in 128-bit arithmetic.
func FromInt64(v int64) Uint128 {
	x := Uint128{Lo: uint64(v)}
	if v < 0 {
		x.Hi = ^uint64(0)
	}
	return x
}

// Add returns x + y mod 2**128.
func (x Uint128) Add(y Uint128) Uint128 {
	lo, c := bits.Add64(x.Lo, y.Lo, 0)
	hi, _ := bits.Add64(x.Hi, y.Hi, c)
	return Uint128{Lo: lo, Hi: hi}
}

// Sub returns x - y mod 2**128.
func (x Uint128) Sub(y Uint128) Uint128 {
	lo, b := bits.Sub64(x.Lo, y.Lo, 0)
	hi, _ := bits.Sub64(x.Hi, y.Hi, b)
	return Uint128{Lo: lo, Hi: hi}
}

// Mul returns x * y mod 2**128 using three widening multiplies.
func (x Uint128) Mul(y Uint128) Uint128 {
	hi, lo := bits.Mul64(x.Lo, y.Lo)
	hi += x.Hi*y.Lo + x.Lo*y.Hi
	return Uint128{Lo: lo, Hi: hi}
}

// Neg returns -x mod 2**128.
func (x Uint128) Neg() Uint128 {
	return Uint128{}.Sub(x)
}

// Not returns the bitwise complement of x.
func (x Uint128) Not() Uint128 {
	return Uint128{Lo: ^x.Lo, Hi: ^x.Hi}
}

// Shl returns x << n for 0 <= n < 128.
func (x Uint128) Shl(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Hi: x.Lo << (n - 64)}
	}
	if n == 0 {
		return x
	}
	return Uint128{Lo: x.Lo << n, Hi: x.Hi<<n | x.Lo>>(64-n)}
}

// Shr returns x >> n for 0 <= n < 128.
func (x Uint128) Shr(n uint) Uint128 {
	if n >= 64 {
		return Uint128{Lo: x.Hi >> (n - 64)}
	}
	if n == 0 {
		return x
	}
	return Uint128{Lo: x.Lo>>n | x.Hi<<(64-n), Hi: x.Hi >> n}
}

// IsZero reports whether x == 0.
func (x Uint128) IsZero() bool {
	return x.Lo == 0 && x.Hi == 0
}

// Odd returns x with the lowest bit forced on.
func (x Uint128) Odd() Uint128 {
	x.Lo |= 1
	return x
}
