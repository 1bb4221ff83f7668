package krull

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"sync"
	"testing"

	"github.com/tutils/krull/krull128"
	"github.com/tutils/krull/krull64"
)

func TestReadMatchesDraws(t *testing.T) {
	newSources := []func() Source{
		func() Source { return krull64.FromSeed(12345) },
		func() Source { return krull128.FromSeed64(12345) },
	}
	for _, newSrc := range newSources {
		ref := NewRand(newSrc())
		var want [0x80]byte
		for i := 0; i < 0x10; i++ {
			binary.LittleEndian.PutUint64(want[i<<3:], ref.Uint64())
		}

		for _, n := range []int{1, 7, 8, 9, 63, 0x80} {
			r := NewRand(newSrc())
			got := make([]byte, n)
			r.Read(got)
			if !bytes.Equal(got, want[:n]) {
				t.Fatalf("Read(%d) disagrees with word-by-word fill", n)
			}
		}
	}
}

func TestReaderChunkInvariance(t *testing.T) {
	// the byte stream must not depend on read sizes
	a := NewReader(krull64.FromSeed(7))
	whole := make([]byte, 256)
	a.Read(whole)

	b := NewReader(krull64.FromSeed(7))
	pieces := make([]byte, 0, 256)
	for _, n := range []int{1, 3, 8, 13, 64, 167} {
		p := make([]byte, n)
		b.Read(p)
		pieces = append(pieces, p...)
	}
	if !bytes.Equal(whole, pieces) {
		t.Fatal("reader output depends on chunking")
	}
}

func TestMathRandIntegration(t *testing.T) {
	src := NewRand(krull64.FromBytes([]byte("math/rand seed")))
	rnd := rand.New(src)
	for i := 0; i < 1000; i++ {
		if v := rnd.Intn(100); v < 0 || v >= 100 {
			t.Fatalf("Intn out of range: %d", v)
		}
		if f := rnd.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestFloat64Bounds(t *testing.T) {
	r := NewRand(krull64.FromSeed(99))
	for i := 0; i < 1<<16; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %v", f)
		}
	}
}

func TestSeedReseeds(t *testing.T) {
	a := NewRand(krull64.FromSeed(1))
	b := NewRand(krull64.FromSeed(2))
	a.Seed(77)
	b.Seed(77)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("re-seeded generators disagree")
		}
	}
}

func TestSyncSource(t *testing.T) {
	src := NewSyncSource(krull64.FromSeed(0))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				src.Next()
			}
		}()
	}
	wg.Wait()

	// 8000 draws happened in total, wherever they interleaved
	want := krull64.FromSeed(0)
	want.Jump64(8000)
	b, err := src.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	wantB, _ := want.MarshalBinary()
	if !bytes.Equal(b, wantB) {
		t.Fatal("locked draws lost steps")
	}
}
