package digest

import (
	"bytes"
	"testing"
)

func TestNew_SkeinIsUnsupported(t *testing.T) {
	for _, k := range []Kind{Skein256, Skein512, Skein1024} {
		if _, err := New(k); err != ErrInvalidParameter {
			t.Fatalf("New(%v) = %v, want ErrInvalidParameter", k, err)
		}
	}
}

func TestNew_UnknownKindIsUnsupported(t *testing.T) {
	if _, err := New(Kind(255)); err != ErrInvalidParameter {
		t.Fatalf("New(255) = %v, want ErrInvalidParameter", err)
	}
}

func TestIsRecognized_SkeinIsRecognizedButNotConstructible(t *testing.T) {
	// Skein is a recognized Kind (wire-format stability) even though New
	// still can't build one, unlike a wholly unknown byte value.
	for _, k := range []Kind{Skein256, Skein512, Skein1024} {
		if !IsRecognized(k) {
			t.Fatalf("IsRecognized(%v) = false, want true", k)
		}
		if _, err := New(k); err != ErrInvalidParameter {
			t.Fatalf("New(%v) = %v, want ErrInvalidParameter", k, err)
		}
	}
	if IsRecognized(Kind(255)) {
		t.Fatal("IsRecognized(255) = true, want false")
	}
}

func TestDigest_FinalizeResetsState(t *testing.T) {
	d, err := New(SHA256)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out1 := make([]byte, d.DigestSize())
	d.Update([]byte("hello"))
	d.Finalize(out1)

	out2 := make([]byte, d.DigestSize())
	d.Update([]byte("hello"))
	d.Finalize(out2)

	if !bytes.Equal(out1, out2) {
		t.Fatalf("Finalize did not reset state: %x vs %x", out1, out2)
	}
}

func TestKeccak1024_SizeAndDeterminism(t *testing.T) {
	d, err := New(Keccak1024)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.DigestSize() != 128 {
		t.Fatalf("DigestSize() = %d, want 128", d.DigestSize())
	}
	out1 := make([]byte, 128)
	d.Update([]byte("goppacrypt"))
	d.Finalize(out1)

	out2 := make([]byte, 128)
	d.Update([]byte("goppacrypt"))
	d.Finalize(out2)
	if !bytes.Equal(out1, out2) {
		t.Fatal("Keccak1024 not deterministic across identical inputs")
	}

	d.Update([]byte("different"))
	out3 := make([]byte, 128)
	d.Finalize(out3)
	if bytes.Equal(out1, out3) {
		t.Fatal("Keccak1024 produced identical output for different input")
	}
}

func TestR_ExpandsToRequestedLength(t *testing.T) {
	d, err := New(SHA256)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := R(d, []byte("seed"), 100)
	if len(out) != 100 {
		t.Fatalf("R returned %d bytes, want 100", len(out))
	}
	out2 := R(d, []byte("seed"), 100)
	if !bytes.Equal(out, out2) {
		t.Fatal("R is not deterministic for the same seed/length")
	}
}

func TestR_IsPrefixStableAcrossLengths(t *testing.T) {
	d, err := New(SHA256)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	short := R(d, []byte("seed"), 32)
	long := R(d, []byte("seed"), 64)
	if !bytes.Equal(short, long[:32]) {
		t.Fatal("R(seed,32) is not a prefix of R(seed,64)")
	}
}
