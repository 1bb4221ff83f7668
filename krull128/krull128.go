// Package krull128 implements the wide Krull generator:
// 64-bit output from a 256-bit state.
//
//   - the full 256-bit state space is valid, with no bad states and no
//     bad seeds
//   - 2**128 pairwise independent streams of length 2**128
//   - streams are equidistributed with each 64-bit output appearing
//     2**64 times
//   - random access inside streams in logarithmic time
//
// Compared to krull64 the stream selector is 128 bits wide, so the
// high selector bits are folded into the output stage: they are not
// well mixed into LCG state by the increment alone.
package krull128

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"github.com/tutils/krull/lcg"
	"github.com/tutils/krull/seed"
)

// Rng is a Krull128 generator. The zero value is not positioned at the
// stream origin; use New or one of the From constructors.
//
// An Rng is a plain value: copying it yields an independent generator
// sharing no mutable state with the original. It is not safe for
// concurrent use by multiple goroutines without external locking.
type Rng struct {
	// LCG state.
	state lcg.Uint128
	// Stream number.
	stream lcg.Uint128
}

// StateSize is the length of the raw byte encoding of an Rng.
const StateSize = 32

// ErrStateSize is returned when UnmarshalBinary is handed a byte slice
// whose length is not StateSize. It is the only rejectable condition:
// every correctly sized bit pattern is a valid state.
var ErrStateSize = errors.New("krull128: raw state must be 32 bytes")

// Stream position is measured in relation to an origin LCG state at
// position 0. The origin is the complement of the stream number, which
// desynchronizes the streams.
func origin(stream lcg.Uint128) lcg.Uint128 {
	return stream.Not()
}

func multiplier() uint64 {
	return lcg.M65d.Lo
}

// increment returns the per-stream LCG increment, always odd so every
// stream has full period. The stream number sits in the low increment
// bits; the top stream bit, which the shift pushes out, is recovered
// in the output stage instead.
func (r *Rng) increment() lcg.Uint128 {
	return r.stream.Shl(1).Odd()
}

// step advances the LCG once, with the same economical 65-bit
// multiplier scheme as krull64: a widening 64x64 multiply for the
// explicit multiplier bits, one addition of the low state limb into
// the high limb for the 2**64 bit.
func (r *Rng) step() {
	m := multiplier()
	inc := r.increment()
	hi, lo := bits.Mul64(r.state.Lo, m)
	hi += m*r.state.Hi + r.state.Lo
	lo, carry := bits.Add64(lo, inc.Lo, 0)
	hi += inc.Hi + carry
	r.state = lcg.Uint128{Lo: lo, Hi: hi}
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
// advancing. The high LCG limb carries the most random bits; the high
// stream bits are remixed here because the increment leaves them
// underrepresented in state. The shift amount was picked empirically.
func (r *Rng) Output() uint64 {
	return hash(r.state.Hi ^ r.stream.Shr(79).Lo)
}

// Next advances the generator one step and returns the next output.
func (r *Rng) Next() uint64 {
	r.step()
	return r.Output()
}

// New creates a Krull128 generator with stream and position 0.
func New() *Rng {
	return FromSeed(lcg.Uint128{})
}

// FromSeed creates a Krull128 generator on the given stream at
// position 0. All seeds work equally well.
func FromSeed(s lcg.Uint128) *Rng {
	return &Rng{state: origin(s), stream: s}
}

// FromSeed64 creates a Krull128 generator from a 64-bit seed.
func FromSeed64(s uint64) *Rng {
	return FromSeed(lcg.From64(s))
}

// FromBytes creates a Krull128 generator by absorbing arbitrary-length
// seed material into the stream number and the state. Any material,
// including none at all, yields a usable full-period state.
func FromBytes(material []byte) *Rng {
	var w [4]uint64
	seed.Words(material, w[:])
	return &Rng{
		state:  lcg.Uint128{Lo: w[2], Hi: w[3]},
		stream: lcg.Uint128{Lo: w[0], Hi: w[1]},
	}
}

// FromBytesStream is FromBytes with an explicit stream selector: the
// material only positions the generator inside the chosen stream.
func FromBytesStream(material []byte, stream lcg.Uint128) *Rng {
	var w [2]uint64
	seed.Words(material, w[:])
	return &Rng{state: lcg.Uint128{Lo: w[0], Hi: w[1]}, stream: stream}
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
	r.state = lcg.Advance(lcg.M65d, r.increment(), r.state, delta)
}

// Jump64 jumps by a signed 64-bit step count.
func (r *Rng) Jump64(delta int64) {
	r.Jump(lcg.FromInt64(delta))
}

// Position returns the current position in the stream. The full state
// of the generator is (stream, position).
func (r *Rng) Position() lcg.Uint128 {
	return lcg.Iterations(lcg.M65d, r.increment(), origin(r.stream), r.state)
}

// SetPosition repositions the generator inside the current stream.
func (r *Rng) SetPosition(p lcg.Uint128) {
	r.state = lcg.Advance(lcg.M65d, r.increment(), origin(r.stream), p)
}

// Reset moves the generator to position 0. Equivalent to
// SetPosition(0).
func (r *Rng) Reset() {
	r.state = origin(r.stream)
}

// Stream returns the current stream number.
func (r *Rng) Stream() lcg.Uint128 {
	return r.stream
}

// SetStream selects a stream and resets the position to 0.
func (r *Rng) SetStream(s lcg.Uint128) {
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

// MarshalBinary encodes the state as 32 bytes: the 128-bit LCG state
// first, then the stream number, all little-endian with low limbs
// leading.
func (r *Rng) MarshalBinary() ([]byte, error) {
	b := make([]byte, StateSize)
	binary.LittleEndian.PutUint64(b[0:], r.state.Lo)
	binary.LittleEndian.PutUint64(b[8:], r.state.Hi)
	binary.LittleEndian.PutUint64(b[16:], r.stream.Lo)
	binary.LittleEndian.PutUint64(b[24:], r.stream.Hi)
	return b, nil
}

// UnmarshalBinary restores a state written by MarshalBinary. Every
// 32-byte pattern is a valid state; any other length is rejected with
// ErrStateSize.
func (r *Rng) UnmarshalBinary(b []byte) error {
	if len(b) != StateSize {
		return ErrStateSize
	}
	r.state = lcg.Uint128{
		Lo: binary.LittleEndian.Uint64(b[0:]),
		Hi: binary.LittleEndian.Uint64(b[8:]),
	}
	r.stream = lcg.Uint128{
		Lo: binary.LittleEndian.Uint64(b[16:]),
		Hi: binary.LittleEndian.Uint64(b[24:]),
	}
	return nil
}
