package bitmatrix

import "testing"

func identityLike(rows, cols int, fill func(r, c int) int) *Matrix {
	m := New(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.Set(r, c, fill(r, c))
		}
	}
	return m
}

func TestMatrix_EncodeDecodeRoundTrip(t *testing.T) {
	m := identityLike(5, 13, func(r, c int) int {
		if (r*3+c*7)%2 == 0 {
			return 1
		}
		return 0
	})
	enc := m.Encode()
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for r := 0; r < 5; r++ {
		for c := 0; c < 13; c++ {
			if m.Get(r, c) != dec.Get(r, c) {
				t.Fatalf("mismatch at (%d,%d)", r, c)
			}
		}
	}
}

func TestMatrix_SystematicReduceIdentityPrefix(t *testing.T) {
	// A matrix that's already close to systematic form but needs a column
	// swap: rows = [0 1 1 0], [1 0 1 1] over 4 columns (rank 2).
	m := New(2, 4)
	// row0: 0 1 1 0 ; row1: 1 0 1 1
	m.Set(0, 1, 1)
	m.Set(0, 2, 1)
	m.Set(1, 0, 1)
	m.Set(1, 2, 1)
	m.Set(1, 3, 1)

	reduced, perm, err := m.SystematicReduce()
	if err != nil {
		t.Fatalf("SystematicReduce: %v", err)
	}
	for r := 0; r < reduced.Rows; r++ {
		for c := 0; c < reduced.Rows; c++ {
			want := 0
			if r == c {
				want = 1
			}
			if reduced.Get(r, c) != want {
				t.Fatalf("not systematic at (%d,%d): got %d", r, c, reduced.Get(r, c))
			}
		}
	}
	if len(perm) != 4 {
		t.Fatalf("perm length = %d, want 4", len(perm))
	}
}

func TestMatrix_SystematicReduceSingular(t *testing.T) {
	m := New(2, 3)
	// Both rows identical -> rank 1, request rank 2 -> singular.
	m.Set(0, 0, 1)
	m.Set(1, 0, 1)
	if _, _, err := m.SystematicReduce(); err != ErrSingular {
		t.Fatalf("expected ErrSingular, got %v", err)
	}
}

func TestVector_XorWeight(t *testing.T) {
	a := NewVector(10)
	b := NewVector(10)
	a.Set(0, 1)
	a.Set(5, 1)
	b.Set(5, 1)
	b.Set(9, 1)
	x := a.Xor(b)
	if x.Weight() != 2 {
		t.Fatalf("weight = %d, want 2", x.Weight())
	}
	if x.Get(0) != 1 || x.Get(9) != 1 {
		t.Fatal("unexpected xor result")
	}
}

func TestVector_BytesRoundTrip(t *testing.T) {
	v := NewVector(20)
	for _, i := range []int{0, 3, 7, 15, 19} {
		v.Set(i, 1)
	}
	b := v.Bytes()
	v2 := VectorFromBytes(20, b)
	if !v.Equal(v2) {
		t.Fatal("round trip mismatch")
	}
}
