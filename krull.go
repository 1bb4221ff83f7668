// Package krull is the adapter surface over the krull64 and krull128
// generator cores: a common Source contract, derived-value helpers,
// and a locked wrapper for callers that must share one generator.
package krull

import (
	"sync"

	"github.com/tutils/krull/lcg"
)

// Source is the contract satisfied by both generator cores
// (krull64.Rng and krull128.Rng). A Source owns its state and is not
// safe for concurrent use; clone it or wrap it in a SyncSource to
// share it.
type Source interface {
	// Next advances the generator one step and returns the next
	// 64-bit output.
	Next() uint64
	// Output returns the output at the current position without
	// advancing.
	Output() uint64
	// Jump repositions the generator as if delta draws had occurred,
	// with delta interpreted as a two's complement 128-bit count.
	Jump(delta lcg.Uint128)
	// Position returns the current position in the stream.
	Position() lcg.Uint128
	// SeedFrom re-seeds the generator from arbitrary input material.
	SeedFrom(material []byte)
	// MarshalBinary and UnmarshalBinary map the state to its
	// fixed-size raw byte layout and back.
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(b []byte) error
}

var _ Source = &SyncSource{}

// SyncSource is a concurrency safe Source
type SyncSource struct {
	src Source
	mu  sync.Mutex
}

func (s *SyncSource) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Next()
}

func (s *SyncSource) Output() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Output()
}

func (s *SyncSource) Jump(delta lcg.Uint128) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Jump(delta)
}

func (s *SyncSource) Position() lcg.Uint128 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Position()
}

func (s *SyncSource) SeedFrom(material []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.SeedFrom(material)
}

func (s *SyncSource) MarshalBinary() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.MarshalBinary()
}

func (s *SyncSource) UnmarshalBinary(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.UnmarshalBinary(b)
}

// NewSyncSource create a new SyncSource
func NewSyncSource(src Source) *SyncSource {
	return &SyncSource{src: src}
}
