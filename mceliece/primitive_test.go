package mceliece

import (
	"testing"

	"github.com/goppacrypt/mceliece/bitmatrix"
	"github.com/goppacrypt/mceliece/prng"
)

func randomErrorVector(t *testing.T, n, weight int, r prng.Prng) *bitmatrix.Vector {
	t.Helper()
	domainBits := ConvDomainBits(n, weight)
	data := make([]byte, (domainBits+7)/8)
	if err := r.GetBytes(data); err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	v, err := Conv(n, weight, data)
	if err != nil {
		t.Fatalf("Conv: %v", err)
	}
	return v
}

func randomMessageVector(t *testing.T, k int, r prng.Prng) *bitmatrix.Vector {
	t.Helper()
	data := make([]byte, (k+7)/8)
	if err := r.GetBytes(data); err != nil {
		t.Fatalf("GetBytes: %v", err)
	}
	return bitmatrix.FromBitBytes(k, data)
}

func TestEncryptDecryptRaw_RoundTrips(t *testing.T) {
	params := smallTestParams(t)
	r := prng.NewOSPrng()
	pub, priv, err := KeyGen(params, r)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}

	mVec := randomMessageVector(t, priv.K, r)
	z := randomErrorVector(t, priv.N, int(params.T), r)

	c, err := EncryptRaw(pub, mVec, z)
	if err != nil {
		t.Fatalf("EncryptRaw: %v", err)
	}

	gotM, gotZ, err := DecryptRaw(priv, c)
	if err != nil {
		t.Fatalf("DecryptRaw: %v", err)
	}
	if !gotM.Equal(mVec) {
		t.Fatal("DecryptRaw recovered a different message vector")
	}
	if !gotZ.Equal(z) {
		t.Fatal("DecryptRaw recovered a different error vector")
	}
}

func TestEncryptRaw_RejectsWrongLengths(t *testing.T) {
	params := smallTestParams(t)
	r := prng.NewOSPrng()
	pub, priv, err := KeyGen(params, r)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	badM := bitmatrix.NewVector(priv.K + 1)
	z := bitmatrix.NewVector(priv.N)
	if _, err := EncryptRaw(pub, badM, z); err != ErrInvalidParameter {
		t.Fatalf("EncryptRaw with wrong-length message = %v, want ErrInvalidParameter", err)
	}
}

func TestDecryptRaw_TooManyErrorsFails(t *testing.T) {
	params := smallTestParams(t)
	r := prng.NewOSPrng()
	pub, priv, err := KeyGen(params, r)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	mVec := randomMessageVector(t, priv.K, r)
	z := bitmatrix.NewVector(priv.N)
	// Flood well past the code's correction radius so decode fails rather
	// than silently returning a wrong pattern.
	for i := 0; i < priv.N && i < 2*int(params.T)+5; i++ {
		z.Toggle(i)
	}
	c, err := EncryptRaw(pub, mVec, z)
	if err != nil {
		t.Fatalf("EncryptRaw: %v", err)
	}
	if _, _, err := DecryptRaw(priv, c); err == nil {
		t.Fatal("DecryptRaw succeeded despite an over-weight error pattern")
	}
}
