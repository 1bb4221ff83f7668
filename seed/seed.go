// Package seed turns arbitrary-length input material into generator
// state words. Absorption is a chained SplitMix64-style mix over
// 8-byte chunks, so every input bit diffuses into every output word.
// No input is rejected; the empty slice is as good a seed as any.
package seed

import "encoding/binary"

const golden = 0x9e3779b97f4a7c15

// Mix is the SplitMix64 finalizer by Sebastiano Vigna.
// It is bijective on 64-bit words.
func Mix(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Absorb folds material into a single 64-bit digest, one little-endian
// 8-byte chunk at a time. The final partial chunk is zero padded; the
// total length seeds the chain so padded inputs of different lengths
// stay distinct.
func Absorb(material []byte) uint64 {
	h := Mix(golden ^ uint64(len(material)))
	for len(material) > 0 {
		var chunk [8]byte
		n := copy(chunk[:], material)
		material = material[n:]
		h = Mix(h ^ binary.LittleEndian.Uint64(chunk[:]))
	}
	return h
}

// Words fills out with decorrelated words expanded from material,
// using the digest as the seed of a SplitMix64 sequence.
func Words(material []byte, out []uint64) {
	h := Absorb(material)
	for i := range out {
		h += golden
		out[i] = Mix(h)
	}
}
