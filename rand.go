package krull

import (
	"encoding/binary"
	"math/rand"
)

// 验证接口实现
var _ rand.Source = (*Rand)(nil)
var _ rand.Source64 = (*Rand)(nil)

// Rand derives the common non-64-bit values from a core Source: 32-bit
// words, positive 63-bit integers, floats, byte fills. All derivations
// are thin, stateless views over the 64-bit draw.
type Rand struct {
	src Source
}

// NewRand wraps a Source.
func NewRand(src Source) *Rand {
	return &Rand{src: src}
}

// Uint64 implements rand.Source64.
func (r *Rand) Uint64() uint64 {
	return r.src.Next()
}

// Uint32 returns the low half of the next draw.
func (r *Rand) Uint32() uint32 {
	return uint32(r.src.Next())
}

// Int63 implements rand.Source.
func (r *Rand) Int63() int64 {
	return int64(r.src.Next() >> 1)
}

// Seed implements rand.Source by re-seeding the underlying generator
// from the little-endian bytes of seed.
func (r *Rand) Seed(seed int64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(seed))
	r.src.SeedFrom(b[:])
}

// Float64 returns a uniform float64 in [0, 1) with 53 bits of
// precision.
func (r *Rand) Float64() float64 {
	return float64(r.src.Next()>>11) / (1 << 53)
}

// Read fills p with the little-endian bytes of successive draws; a
// partial final word contributes its leading bytes. It never fails.
func (r *Rand) Read(p []byte) (n int, err error) {
	total := len(p)
	i := 0
	for i < total {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], r.src.Next())
		i += copy(p[i:], b[:])
	}
	return total, nil
}

// NewReader returns an endless stream of generator output bytes.
// The byte sequence is the little-endian concatenation of successive
// draws, so reads of any size observe the same stream.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Reader adapts a Source to io.Reader, buffering the unread tail of
// the last drawn word between calls.
type Reader struct {
	src  Source
	tail [8]byte
	n    int
}

func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if r.n == 0 {
			binary.LittleEndian.PutUint64(r.tail[:], r.src.Next())
			r.n = 8
		}
		c := copy(p[n:], r.tail[8-r.n:])
		r.n -= c
		n += c
	}
	return n, nil
}
