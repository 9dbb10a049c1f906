// Package goppa implements binary irreducible Goppa codes: construction of
// the canonical GF(2) parity-check matrix from a Goppa polynomial, and
// Patterson's syndrome decoding algorithm.
package goppa

import (
	"errors"

	"github.com/goppacrypt/mceliece/bitmatrix"
	"github.com/goppacrypt/mceliece/fmpoly"
	"github.com/goppacrypt/mceliece/gf2m"
)

// Errors returned by code construction and decoding.
var (
	ErrSupportTooLarge  = errors.New("goppa: code length exceeds the field size")
	ErrSupportRoot      = errors.New("goppa: Goppa polynomial has a root on the support")
	ErrInvalidGoppaPoly = errors.New("goppa: Goppa polynomial has non-positive degree")
	ErrDecodeFailed     = errors.New("goppa: syndrome decoding failed to factor the error locator")
)

// Support returns the canonical support point for index i: the field
// element whose integer value is i. n can exceed the field's multiplicative
// group order (2^m-1), since 0 is itself a valid support point; the only
// hard limit is n <= 2^m.
func Support(i int) uint16 { return uint16(i) }

// BuildCanonicalH constructs the t*m-by-n GF(2) parity-check matrix of the
// binary Goppa code with Goppa polynomial g and length n, using the
// canonical support L(i) = Support(i). Row block r*m..r*m+m-1, column j
// holds the m-bit polynomial-basis expansion of L(j)^r / g(L(j)).
func BuildCanonicalH(field *gf2m.Field, g *fmpoly.Poly, n int) (*bitmatrix.Matrix, error) {
	t := g.Degree()
	if t <= 0 {
		return nil, ErrInvalidGoppaPoly
	}
	if n > field.N {
		return nil, ErrSupportTooLarge
	}
	m := int(field.M)
	h := bitmatrix.New(t*m, n)
	for j := 0; j < n; j++ {
		l := Support(j)
		gv := g.Eval(l)
		if gv == 0 {
			return nil, ErrSupportRoot
		}
		ginv, err := field.Inv(gv)
		if err != nil {
			return nil, err
		}
		pow := field.One()
		for i := 0; i < t; i++ {
			val := field.Mul(pow, ginv)
			for b := 0; b < m; b++ {
				if (val>>uint(b))&1 != 0 {
					h.Set(i*m+b, j, 1)
				}
			}
			pow = field.Mul(pow, l)
		}
	}
	return h, nil
}

// syndrome computes S(x) = sum_{i: r_i=1} (x + L(i))^-1 mod g(x).
func syndrome(field *gf2m.Field, g *fmpoly.Poly, n int, r *bitmatrix.Vector) (*fmpoly.Poly, error) {
	s := fmpoly.Zero(field)
	for i := 0; i < n; i++ {
		if r.Get(i) == 0 {
			continue
		}
		l := Support(i)
		denom := fmpoly.New(field, []uint16{l, 1})
		inv, err := denom.ModInverse(g)
		if err != nil {
			return nil, err
		}
		s = s.Add(inv)
	}
	return s, nil
}

// partialEEA runs the extended Euclidean algorithm on (g, r) but halts as
// soon as the running remainder's degree drops to stopDeg or below,
// returning that remainder and its Bezout coefficient against r. This is
// the truncated EEA step of Patterson's key-equation solver.
func partialEEA(g, r *fmpoly.Poly, stopDeg int) (rem, coeff *fmpoly.Poly, err error) {
	f := g.F
	r0, r1 := g.Clone(), r.Clone()
	u0, u1 := fmpoly.Zero(f), fmpoly.One(f)
	for r1.Degree() > stopDeg {
		q, rr, derr := r0.DivMod(r1)
		if derr != nil {
			return nil, nil, derr
		}
		r0, r1 = r1, rr
		u0, u1 = u1, u0.Add(q.Mul(u1))
	}
	return r1, u1, nil
}

// Decode runs Patterson's algorithm against a received word r (length n, in
// original support order, i.e. already un-permuted) and returns the error
// vector z such that r+z is a codeword, or ErrDecodeFailed if the syndrome
// does not factor into t or fewer support roots.
func Decode(field *gf2m.Field, g *fmpoly.Poly, qinv []*fmpoly.Poly, n int, r *bitmatrix.Vector) (*bitmatrix.Vector, error) {
	t := g.Degree()
	s, err := syndrome(field, g, n, r)
	if err != nil {
		return nil, err
	}
	if s.IsZero() {
		return bitmatrix.NewVector(n), nil
	}
	sInv, err := s.ModInverse(g)
	if err != nil {
		return nil, err
	}
	x := fmpoly.Monomial(field, 1)
	locatorSeed := sInv.Add(x)

	var sigma *fmpoly.Poly
	if locatorSeed.IsZero() {
		// S^-1 == x: the classical single-error special case, where the
		// error locator is simply x.
		sigma = x
	} else {
		root := fmpoly.Sqrt(locatorSeed, qinv, g)
		a, b, perr := partialEEA(g, root, t/2)
		if perr != nil {
			return nil, perr
		}
		sigma = a.Mul(a).Add(x.Mul(b.Mul(b)))
	}

	z := bitmatrix.NewVector(n)
	found := 0
	for j := 0; j < n; j++ {
		if sigma.Eval(Support(j)) == 0 {
			z.Set(j, 1)
			found++
		}
	}
	if found != sigma.Degree() {
		return nil, ErrDecodeFailed
	}
	return z, nil
}
