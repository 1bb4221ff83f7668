// Package lcg provides the 128-bit affine recurrence algebra shared by
// the generator cores: single multipliers of known spectral quality,
// and jump/position arithmetic over (multiplier, increment) pairs.
//
// An LCG iteration is state <- state*m + p mod 2**128. A pair (m, p)
// is an affine map; composing maps and squaring them repeatedly gives
// random access inside a full-period sequence in O(128) multiplies,
// with no arbitrary-precision arithmetic involved.
package lcg

// LCG multipliers from Steele, G. and Vigna, S.,
// Computationally Easy, Spectrally Good Multipliers for
// Congruential Pseudorandom Number Generators (2020).

// 128-bit multipliers for 128-bit LCGs.
var (
	M128a = Uint128{Lo: 0xfd0d90f576075fbd, Hi: 0xde92a69f6e2f9f25}
	M128b = Uint128{Lo: 0x619f3ebc7363f7f5, Hi: 0x576bc0a2178fcf7c}
	M128c = Uint128{Lo: 0x074f3d0c2ea63d35, Hi: 0x87ea3de194dd2e97}
	M128d = Uint128{Lo: 0x619cd45257f0ab65, Hi: 0xf48c0745581cf801}
)

// 65-bit multipliers for 128-bit LCGs. The high limb is the single
// extra bit; steppers realize it with one conditional-free addition
// instead of a full 128x128 multiply.
var (
	M65a = Uint128{Lo: 0xdf77a66a374e300d, Hi: 1}
	M65b = Uint128{Lo: 0xd605bbb58c8abbfd, Hi: 1}
	M65c = Uint128{Lo: 0xd7d8dd3a6a72b43d, Hi: 1}
	M65d = Uint128{Lo: 0xf20529e418340d05, Hi: 1}
)

// 64-bit multipliers for 64-bit LCGs.
const (
	M64a uint64 = 0xd1342543de82ef95
	M64b uint64 = 0xaf251af3b0f025b5
	M64c uint64 = 0xb564ef22ec7aece5
	M64d uint64 = 0xf7c2ebc08f67f2b5
)

// Jump returns the (m, p) pair that advances an LCG by n steps at once.
// Assumes (m, p) is full period.
//
// Algorithm from Brown, F. B., "Random Number Generation with Arbitrary
// Stride", Transactions of the American Nuclear Society, 1994.
func Jump(m, p, n Uint128) (jumpM, jumpP Uint128) {
	unitM := m
	unitP := p
	jumpM = Uint128{Lo: 1}
	jumpP = Uint128{}
	delta := n

	for !delta.IsZero() {
		if delta.Lo&1 == 1 {
			jumpM = jumpM.Mul(unitM)
			jumpP = jumpP.Mul(unitM).Add(unitP)
		}
		unitP = unitM.Add(Uint128{Lo: 1}).Mul(unitP)
		unitM = unitM.Mul(unitM)
		delta = delta.Shr(1)
	}
	return jumpM, jumpP
}

// Advance returns the LCG state n iterations after origin.
// Assumes (m, p) is full period.
func Advance(m, p, origin, n Uint128) Uint128 {
	jumpM := m
	jumpP := p
	state := origin
	ordinal := n

	for !ordinal.IsZero() {
		if ordinal.Lo&1 == 1 {
			state = state.Mul(jumpM).Add(jumpP)
		}
		jumpP = jumpM.Add(Uint128{Lo: 1}).Mul(jumpP)
		jumpM = jumpM.Mul(jumpM)
		ordinal = ordinal.Shr(1)
	}
	return state
}

// Iterations returns the number of iterations between the origin state
// and the given state. Assumes (m, p) is full period. This is the
// inverse of Advance: the bits of the ordinal are recovered lowest
// first, because flipping iteration bit B only affects state bits at
// and above B.
func Iterations(m, p, origin, state Uint128) Uint128 {
	jumpM := m
	jumpP := p
	ordinal := Uint128{}
	bit := Uint128{Lo: 1}
	address := origin

	for address != state {
		if bit.Lo&address.Lo != bit.Lo&state.Lo || bit.Hi&address.Hi != bit.Hi&state.Hi {
			address = address.Mul(jumpM).Add(jumpP)
			ordinal = ordinal.Add(bit)
		}
		jumpP = jumpM.Add(Uint128{Lo: 1}).Mul(jumpP)
		jumpM = jumpM.Mul(jumpM)
		bit = bit.Shl(1)
	}
	return ordinal
}
