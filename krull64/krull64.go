// Package krull64 implements the narrow Krull generator:
// 64-bit output from a 192-bit state and footprint.
//
//   - "trivially strong" design: a 128-bit LCG whose raw state is only
//     exposed through a decorrelating output hash
//   - the full 192-bit state space is valid, with no bad states and no
//     bad seeds
//   - 2**64 pairwise independent streams of length 2**128
//   - streams are equidistributed with each 64-bit output appearing
//     2**64 times
//   - random access inside streams in logarithmic time
package krull64

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"github.com/tutils/krull/lcg"
	"github.com/tutils/krull/seed"
)

// Rng is a Krull64 generator. The zero value is not positioned at the
// stream origin; use New or one of the From constructors.
//
// An Rng is a plain value: copying it yields an independent generator
// sharing no mutable state with the original. It is not safe for
// concurrent use by multiple goroutines without external locking.
type Rng struct {
	// LCG state low bits.
	lcg0 uint64
	// LCG state high bits.
	lcg1 uint64
	// Stream number.
	stream uint64
}

// StateSize is the length of the raw byte encoding of an Rng.
const StateSize = 24

// ErrStateSize is returned when UnmarshalBinary is handed a byte slice
// whose length is not StateSize. It is the only rejectable condition:
// every correctly sized bit pattern is a valid state.
var ErrStateSize = errors.New("krull64: raw state must be 24 bytes")

// Stream position is measured in relation to an origin LCG state at
// position 0. The origin is the complement of the stream number, which
// desynchronizes the streams.
func origin(stream uint64) uint64 {
	return ^stream
}

func multiplier() uint64 {
	return lcg.M65a.Lo
}

// increment returns the per-stream LCG increment, always odd so every
// stream has full period. Flipping increment bit B causes changes with
// a period of 2**(128-B): sequences differing only in high increment
// bits are correlated, so the stream number is kept in the low bits.
func (r *Rng) increment() lcg.Uint128 {
	return lcg.Uint128{Lo: r.stream<<1 | 1, Hi: r.stream >> 63}
}

func (r *Rng) state128() lcg.Uint128 {
	return lcg.Uint128{Lo: r.lcg0, Hi: r.lcg1}
}

func (r *Rng) setState128(s lcg.Uint128) {
	r.lcg0 = s.Lo
	r.lcg1 = s.Hi
}

// step advances the LCG once. The multiplier is 65 bits: the explicit
// low 64 bits go through a widening multiply against the low state
// limb, and the extra 2**64 bit becomes a single addition of the low
// limb into the high limb, which reproduces the full product without a
// 128x128 multiply.
func (r *Rng) step() {
	m := multiplier()
	inc := r.increment()
	hi, lo := bits.Mul64(r.lcg0, m)
	lo, carry := bits.Add64(lo, inc.Lo, 0)
	hi += inc.Hi + carry
	r.lcg1 = hi + r.lcg1*m + r.lcg0
	r.lcg0 = lo
}

// hash is the output stage: stages from SplitMix64 combined with a
// final stage from a hash by degski. No retained state, no
// data-dependent branches.
func hash(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x = (x ^ (x >> 31)) * 0xd6e8feb86659fd93
	return x ^ (x >> 32)
}

// Output returns the 64-bit output at the current position without
// advancing. The high LCG limb is the most random; hashing it keeps
// the pipeline bijective, which guarantees equidistribution.
func (r *Rng) Output() uint64 {
	return hash(r.lcg1)
}

// Next advances the generator one step and returns the next output.
func (r *Rng) Next() uint64 {
	r.step()
	return r.Output()
}

// New creates a Krull64 generator with stream and position 0.
func New() *Rng {
	return FromSeed(0)
}

// FromSeed creates a Krull64 generator on the given stream at
// position 0. All seeds work equally well.
func FromSeed(s uint64) *Rng {
	return &Rng{lcg0: origin(s), lcg1: 0, stream: s}
}

// FromSeed128 creates a Krull64 generator from a 128-bit seed. Each
// seed accesses a unique subsequence of length 2**64. The stream is
// the XOR of the seed halves, decorrelating nearby seeds in either
// half, and the high position bits come from the low seed limb.
func FromSeed128(s lcg.Uint128) *Rng {
	r := FromSeed(s.Hi ^ s.Lo)
	r.SetPosition(lcg.Uint128{Hi: s.Lo})
	return r
}

// FromBytes creates a Krull64 generator by absorbing arbitrary-length
// seed material into the stream number and both state limbs. Any
// material, including none at all, yields a usable full-period state.
func FromBytes(material []byte) *Rng {
	var w [3]uint64
	seed.Words(material, w[:])
	return &Rng{lcg0: w[1], lcg1: w[2], stream: w[0]}
}

// FromBytesStream is FromBytes with an explicit stream selector: the
// material only positions the generator inside the chosen stream.
func FromBytesStream(material []byte, stream uint64) *Rng {
	var w [2]uint64
	seed.Words(material, w[:])
	return &Rng{lcg0: w[0], lcg1: w[1], stream: stream}
}

// SeedFrom re-seeds the generator in place from seed material,
// equivalent to replacing it with FromBytes(material).
func (r *Rng) SeedFrom(material []byte) {
	*r = *FromBytes(material)
}

// Jump moves forward (high bit of delta clear) or backward (high bit
// set, interpreting delta as a two's complement 128-bit count) without
// generating intermediate outputs. Cost is logarithmic in the modulus
// width, not in delta. The stream wraps around: jumping forward by
// 2**128-n is an exact backward jump by n.
func (r *Rng) Jump(delta lcg.Uint128) {
	r.setState128(lcg.Advance(lcg.M65a, r.increment(), r.state128(), delta))
}

// Jump64 jumps by a signed 64-bit step count.
func (r *Rng) Jump64(delta int64) {
	r.Jump(lcg.FromInt64(delta))
}

// Position returns the current position in the stream. The full state
// of the generator is (stream, position).
func (r *Rng) Position() lcg.Uint128 {
	return lcg.Iterations(lcg.M65a, r.increment(), lcg.From64(origin(r.stream)), r.state128())
}

// SetPosition repositions the generator inside the current stream.
func (r *Rng) SetPosition(p lcg.Uint128) {
	r.setState128(lcg.Advance(lcg.M65a, r.increment(), lcg.From64(origin(r.stream)), p))
}

// Reset moves the generator to position 0. Equivalent to
// SetPosition(0).
func (r *Rng) Reset() {
	r.lcg0 = origin(r.stream)
	r.lcg1 = 0
}

// Stream returns the current stream number.
func (r *Rng) Stream() uint64 {
	return r.stream
}

// SetStream selects a stream and resets the position to 0.
func (r *Rng) SetStream(s uint64) {
	r.stream = s
	r.Reset()
}

// Clone returns an independent copy of the generator.
func (r *Rng) Clone() *Rng {
	c := *r
	return &c
}

// Equal reports whether two generators are in the identical state.
func (r *Rng) Equal(other *Rng) bool {
	return *r == *other
}

// MarshalBinary encodes the state as 24 bytes: the 128-bit LCG state
// first, then the stream number, all little-endian.
func (r *Rng) MarshalBinary() ([]byte, error) {
	b := make([]byte, StateSize)
	binary.LittleEndian.PutUint64(b[0:], r.lcg0)
	binary.LittleEndian.PutUint64(b[8:], r.lcg1)
	binary.LittleEndian.PutUint64(b[16:], r.stream)
	return b, nil
}

// UnmarshalBinary restores a state written by MarshalBinary. Every
// 24-byte pattern is a valid state; any other length is rejected with
// ErrStateSize.
func (r *Rng) UnmarshalBinary(b []byte) error {
	if len(b) != StateSize {
		return ErrStateSize
	}
	r.lcg0 = binary.LittleEndian.Uint64(b[0:])
	r.lcg1 = binary.LittleEndian.Uint64(b[8:])
	r.stream = binary.LittleEndian.Uint64(b[16:])
	return nil
}
