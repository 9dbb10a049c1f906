package prng

import "testing"

func TestCTRDRBG_DeterministicGivenSameSeed(t *testing.T) {
	seed := []byte{1, 2, 3, 4}
	a, err := NewCTRDRBG(seed)
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	b, err := NewCTRDRBG(seed)
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	bufA := make([]byte, 64)
	bufB := make([]byte, 64)
	if err := a.GetBytes(bufA); err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	if err := b.GetBytes(bufB); err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	for i := range bufA {
		if bufA[i] != bufB[i] {
			t.Fatalf("streams diverge at byte %d: %x vs %x", i, bufA, bufB)
		}
	}
}

func TestCTRDRBG_DifferentSeedsDiverge(t *testing.T) {
	a, err := NewCTRDRBG([]byte{1})
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	b, err := NewCTRDRBG([]byte{2})
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	bufA := make([]byte, 32)
	bufB := make([]byte, 32)
	a.GetBytes(bufA)
	b.GetBytes(bufB)
	same := true
	for i := range bufA {
		if bufA[i] != bufB[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("distinct seeds produced identical keystreams")
	}
}

func TestNextRange_StaysInBounds(t *testing.T) {
	d, err := NewCTRDRBG([]byte{9, 9, 9})
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	for i := 0; i < 2000; i++ {
		v, err := d.NextRange(7)
		if err != nil {
			t.Fatalf("NextRange: %v", err)
		}
		if v >= 7 {
			t.Fatalf("NextRange(7) returned %d", v)
		}
	}
}

func TestNextRange_PowerOfTwoStillBounded(t *testing.T) {
	d, err := NewCTRDRBG([]byte{5})
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	for i := 0; i < 500; i++ {
		v, err := d.NextRange(1)
		if err != nil {
			t.Fatalf("NextRange: %v", err)
		}
		if v != 0 {
			t.Fatalf("NextRange(1) returned %d, want 0", v)
		}
	}
}

func TestDispose_ZeroesState(t *testing.T) {
	d, err := NewCTRDRBG([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewCTRDRBG: %v", err)
	}
	d.Dispose()
	for _, b := range d.key {
		if b != 0 {
			t.Fatal("key not zeroed after Dispose")
		}
	}
	for _, b := range d.counter {
		if b != 0 {
			t.Fatal("counter not zeroed after Dispose")
		}
	}
}

func TestOSPrng_GetBytesFillsBuffer(t *testing.T) {
	p := NewOSPrng()
	buf := make([]byte, 16)
	if err := p.GetBytes(buf); err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	allZero := true
	for _, b := range buf {
		if b != 0 {
			allZero = false
		}
	}
	if allZero {
		t.Fatal("OS entropy returned all zero bytes (statistically implausible)")
	}
}
