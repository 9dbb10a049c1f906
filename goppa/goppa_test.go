package goppa

import (
	"testing"

	"github.com/goppacrypt/mceliece/bitmatrix"
	"github.com/goppacrypt/mceliece/fmpoly"
	"github.com/goppacrypt/mceliece/gf2m"
)

// findGoppaPoly searches small monic degree-t polynomials over field for
// one that is irreducible and has no root on the first n support points,
// deterministically (no randomness needed for a small test field).
func findGoppaPoly(t *testing.T, field *gf2m.Field, deg, n int) *fmpoly.Poly {
	t.Helper()
	total := 1
	for i := 0; i < deg; i++ {
		total *= field.N
	}
	for code := 0; code < total; code++ {
		c := make([]uint16, deg+1)
		c[deg] = 1
		v := code
		for i := 0; i < deg; i++ {
			c[i] = uint16(v % field.N)
			v /= field.N
		}
		g := fmpoly.New(field, c)
		if g.Degree() != deg {
			continue
		}
		ok, err := fmpoly.IsIrreducible(g)
		if err != nil || !ok {
			continue
		}
		rootFree := true
		for i := 0; i < n; i++ {
			if g.Eval(Support(i)) == 0 {
				rootFree = false
				break
			}
		}
		if rootFree {
			return g
		}
	}
	t.Fatal("no suitable Goppa polynomial found for test parameters")
	return nil
}

func TestDecode_CorrectsWeightTErrors(t *testing.T) {
	field, err := gf2m.NewWithGeneratedPoly(5) // n <= 32
	if err != nil {
		t.Fatalf("NewWithGeneratedPoly: %v", err)
	}
	n := 20
	deg := 2
	g := findGoppaPoly(t, field, deg, n)

	if _, err := BuildCanonicalH(field, g, n); err != nil {
		t.Fatalf("BuildCanonicalH: %v", err)
	}

	qinv, err := fmpoly.BuildSqrtTable(g)
	if err != nil {
		t.Fatalf("BuildSqrtTable: %v", err)
	}

	// A codeword is any vector in the null space of H; the zero vector
	// trivially is one, and Patterson decoding must strip any weight-t
	// error pattern added to it back off, in original support order.
	codeword := bitmatrix.NewVector(n)
	received := codeword.Clone()
	errPositions := []int{2, 7}
	for _, p := range errPositions {
		received.Toggle(p)
	}

	z, err := Decode(field, g, qinv, n, received)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	corrected := received.Xor(z)
	if !corrected.Equal(codeword) {
		t.Fatalf("decoded word = %v, want original codeword %v", corrected.Positions(), codeword.Positions())
	}
	if z.Weight() != len(errPositions) {
		t.Fatalf("error vector weight = %d, want %d", z.Weight(), len(errPositions))
	}
}

func TestDecode_NoErrorIsIdentity(t *testing.T) {
	field, err := gf2m.NewWithGeneratedPoly(5)
	if err != nil {
		t.Fatalf("NewWithGeneratedPoly: %v", err)
	}
	n := 16
	g := findGoppaPoly(t, field, 2, n)
	qinv, err := fmpoly.BuildSqrtTable(g)
	if err != nil {
		t.Fatalf("BuildSqrtTable: %v", err)
	}
	received := bitmatrix.NewVector(n)
	z, err := Decode(field, g, qinv, n, received)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if z.Weight() != 0 {
		t.Fatalf("expected zero error vector, got weight %d", z.Weight())
	}
}

func TestBuildCanonicalH_RejectsRootOnSupport(t *testing.T) {
	field, err := gf2m.NewWithGeneratedPoly(4)
	if err != nil {
		t.Fatalf("NewWithGeneratedPoly: %v", err)
	}
	// g(x) = x, which vanishes at support point 0.
	g := fmpoly.Monomial(field, 1)
	if _, err := BuildCanonicalH(field, g, 4); err != ErrSupportRoot {
		t.Fatalf("expected ErrSupportRoot, got %v", err)
	}
}
