package lcg

import (
	"math/big"
	"testing"
)

var mod128 = new(big.Int).Lsh(big.NewInt(1), 128)

func toBig(x Uint128) *big.Int {
	v := new(big.Int).SetUint64(x.Hi)
	v.Lsh(v, 64)
	return v.Or(v, new(big.Int).SetUint64(x.Lo))
}

func fromBig(v *big.Int) Uint128 {
	lo := new(big.Int).And(v, new(big.Int).SetUint64(^uint64(0)))
	hi := new(big.Int).Rsh(v, 64)
	return U128(hi.Uint64(), lo.Uint64())
}

// test values generated by a quick LCG so edge patterns and ordinary
// patterns both show up
func testValues() []Uint128 {
	vals := []Uint128{
		{},
		{Lo: 1},
		{Hi: 1},
		{Lo: ^uint64(0), Hi: ^uint64(0)},
		{Lo: ^uint64(0)},
		{Hi: ^uint64(0)},
	}
	r := Uint128{Lo: 1}
	for i := 0; i < 64; i++ {
		r = r.Mul(M128a).Add(Uint128{Lo: 0xffff})
		vals = append(vals, r)
	}
	return vals
}

func TestArithmeticMatchesBig(t *testing.T) {
	vals := testValues()
	for _, x := range vals {
		for _, y := range vals {
			xb, yb := toBig(x), toBig(y)

			want := fromBig(new(big.Int).Mod(new(big.Int).Add(xb, yb), mod128))
			if got := x.Add(y); got != want {
				t.Fatalf("Add(%v, %v) = %v, want %v", x, y, got, want)
			}
			want = fromBig(new(big.Int).Mod(new(big.Int).Sub(new(big.Int).Add(xb, mod128), yb), mod128))
			if got := x.Sub(y); got != want {
				t.Fatalf("Sub(%v, %v) = %v, want %v", x, y, got, want)
			}
			want = fromBig(new(big.Int).Mod(new(big.Int).Mul(xb, yb), mod128))
			if got := x.Mul(y); got != want {
				t.Fatalf("Mul(%v, %v) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestShifts(t *testing.T) {
	for _, x := range testValues() {
		xb := toBig(x)
		for n := uint(0); n < 128; n++ {
			want := fromBig(new(big.Int).Mod(new(big.Int).Lsh(xb, n), mod128))
			if got := x.Shl(n); got != want {
				t.Fatalf("Shl(%v, %d) = %v, want %v", x, n, got, want)
			}
			want = fromBig(new(big.Int).Rsh(xb, n))
			if got := x.Shr(n); got != want {
				t.Fatalf("Shr(%v, %d) = %v, want %v", x, n, got, want)
			}
		}
	}
}

func TestNegNotOdd(t *testing.T) {
	for _, x := range testValues() {
		if got := x.Neg().Add(x); !got.IsZero() {
			t.Fatalf("x + (-x) = %v, want 0", got)
		}
		if got := x.Not().Add(x); got != (Uint128{Lo: ^uint64(0), Hi: ^uint64(0)}) {
			t.Fatalf("x + ^x = %v, want all ones", got)
		}
		if x.Odd().Lo&1 != 1 {
			t.Fatalf("Odd(%v) is even", x)
		}
	}
}

func TestFromInt64(t *testing.T) {
	if got := FromInt64(-1); got != (Uint128{Lo: ^uint64(0), Hi: ^uint64(0)}) {
		t.Fatalf("FromInt64(-1) = %v", got)
	}
	if got := FromInt64(5); got != (Uint128{Lo: 5}) {
		t.Fatalf("FromInt64(5) = %v", got)
	}
	// -5 mod 2**128 + 5 wraps to zero
	if got := FromInt64(-5).Add(Uint128{Lo: 5}); !got.IsZero() {
		t.Fatalf("FromInt64(-5) + 5 = %v, want 0", got)
	}
}
