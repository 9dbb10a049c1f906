// Package fmpoly implements polynomials over GF(2^m): the ring used to
// represent Goppa polynomials, syndromes, and the intermediate values of
// Patterson decoding.
package fmpoly

import (
	"encoding/binary"
	"errors"

	"github.com/goppacrypt/mceliece/gf2m"
	"github.com/goppacrypt/mceliece/gf2poly"
)

// Errors returned by polynomial operations.
var (
	ErrFieldMismatch = errors.New("fmpoly: operands over different fields")
	ErrNotInvertible = errors.New("fmpoly: polynomial has no inverse modulo the given modulus")
	ErrZeroModulus   = errors.New("fmpoly: modulus is the zero polynomial")
	ErrShortBuffer   = errors.New("fmpoly: encoded buffer too short")
)

// Poly is a polynomial over GF(2^m). C[i] is the coefficient of x^i; a
// canonical Poly has no trailing zero coefficients (C is empty or C[len-1]
// != 0), except that the zero polynomial is represented by an empty C.
type Poly struct {
	F *gf2m.Field
	C []uint16
}

// New builds a canonical Poly from a coefficient slice (index i -> coeff of
// x^i), trimming trailing zeros.
func New(f *gf2m.Field, coeffs []uint16) *Poly {
	c := make([]uint16, len(coeffs))
	copy(c, coeffs)
	return &Poly{F: f, C: trim(c)}
}

func trim(c []uint16) []uint16 {
	n := len(c)
	for n > 0 && c[n-1] == 0 {
		n--
	}
	return c[:n]
}

// Zero returns the additive identity polynomial.
func Zero(f *gf2m.Field) *Poly { return &Poly{F: f, C: nil} }

// One returns the multiplicative identity polynomial.
func One(f *gf2m.Field) *Poly { return &Poly{F: f, C: []uint16{1}} }

// Monomial returns the polynomial x^deg.
func Monomial(f *gf2m.Field, deg int) *Poly {
	c := make([]uint16, deg+1)
	c[deg] = 1
	return &Poly{F: f, C: c}
}

// Degree returns the degree, or -1 for the zero polynomial.
func (p *Poly) Degree() int { return len(p.C) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool { return len(p.C) == 0 }

// Coeff returns the coefficient of x^i (0 if i is out of range).
func (p *Poly) Coeff(i int) uint16 {
	if i < 0 || i >= len(p.C) {
		return 0
	}
	return p.C[i]
}

// Clone deep-copies p.
func (p *Poly) Clone() *Poly {
	c := make([]uint16, len(p.C))
	copy(c, p.C)
	return &Poly{F: p.F, C: c}
}

// Equal reports whether p and q have identical coefficients.
func (p *Poly) Equal(q *Poly) bool {
	if len(p.C) != len(q.C) {
		return false
	}
	for i := range p.C {
		if p.C[i] != q.C[i] {
			return false
		}
	}
	return true
}

// Add returns p+q.
func (p *Poly) Add(q *Poly) *Poly {
	n := len(p.C)
	if len(q.C) > n {
		n = len(q.C)
	}
	c := make([]uint16, n)
	for i := 0; i < n; i++ {
		c[i] = p.F.Add(p.Coeff(i), q.Coeff(i))
	}
	return &Poly{F: p.F, C: trim(c)}
}

// ScalarMul returns s*p.
func (p *Poly) ScalarMul(s uint16) *Poly {
	if s == 0 {
		return Zero(p.F)
	}
	c := make([]uint16, len(p.C))
	for i, v := range p.C {
		c[i] = p.F.Mul(v, s)
	}
	return &Poly{F: p.F, C: trim(c)}
}

// Mul returns p*q with no reduction (result may have degree up to
// deg(p)+deg(q)).
func (p *Poly) Mul(q *Poly) *Poly {
	if p.IsZero() || q.IsZero() {
		return Zero(p.F)
	}
	c := make([]uint16, len(p.C)+len(q.C)-1)
	for i, a := range p.C {
		if a == 0 {
			continue
		}
		for j, b := range q.C {
			if b == 0 {
				continue
			}
			c[i+j] = p.F.Add(c[i+j], p.F.Mul(a, b))
		}
	}
	return &Poly{F: p.F, C: trim(c)}
}

// Monic returns p scaled so its leading coefficient is 1.
func (p *Poly) Monic() (*Poly, error) {
	if p.IsZero() {
		return nil, ErrNotInvertible
	}
	lead := p.C[len(p.C)-1]
	inv, err := p.F.Inv(lead)
	if err != nil {
		return nil, err
	}
	return p.ScalarMul(inv), nil
}

// DivMod divides p by d, returning quotient and remainder. d must be
// nonzero.
func (p *Poly) DivMod(d *Poly) (q, r *Poly, err error) {
	if d.IsZero() {
		return nil, nil, ErrZeroModulus
	}
	leadInv, err := p.F.Inv(d.C[len(d.C)-1])
	if err != nil {
		return nil, nil, err
	}
	rem := make([]uint16, len(p.C))
	copy(rem, p.C)
	dd := d.Degree()
	quot := make([]uint16, 0)
	for {
		rem = trim(rem)
		rd := len(rem) - 1
		if rd < dd {
			break
		}
		factor := p.F.Mul(rem[rd], leadInv)
		shift := rd - dd
		for len(quot) <= shift {
			quot = append(quot, 0)
		}
		quot[shift] = p.F.Add(quot[shift], factor)
		for i, dv := range d.C {
			rem[shift+i] = p.F.Add(rem[shift+i], p.F.Mul(dv, factor))
		}
	}
	return &Poly{F: p.F, C: trim(quot)}, &Poly{F: p.F, C: trim(rem)}, nil
}

// Mod returns p mod d.
func (p *Poly) Mod(d *Poly) (*Poly, error) {
	_, r, err := p.DivMod(d)
	return r, err
}

// MulMod returns (p*q) mod d.
func (p *Poly) MulMod(q, d *Poly) (*Poly, error) {
	return p.Mul(q).Mod(d)
}

// GCD returns gcd(a,b), monic (or zero if both inputs are zero).
func GCD(a, b *Poly) (*Poly, error) {
	a, b = a.Clone(), b.Clone()
	for !b.IsZero() {
		_, r, err := a.DivMod(b)
		if err != nil {
			return nil, err
		}
		a, b = b, r
	}
	if a.IsZero() {
		return a, nil
	}
	return a.Monic()
}

// ExtEuclid runs the extended Euclidean algorithm on (a,b), returning
// (g,u,v) such that u*a + v*b == g == gcd(a,b) (not normalized to monic, to
// keep the Bezout identity exact).
func ExtEuclid(a, b *Poly) (g, u, v *Poly, err error) {
	f := a.F
	r0, r1 := a.Clone(), b.Clone()
	u0, u1 := One(f), Zero(f)
	v0, v1 := Zero(f), One(f)
	for !r1.IsZero() {
		q, r, derr := r0.DivMod(r1)
		if derr != nil {
			return nil, nil, nil, derr
		}
		r0, r1 = r1, r
		u0, u1 = u1, u0.Add(q.Mul(u1))
		v0, v1 = v1, v0.Add(q.Mul(v1))
	}
	return r0, u0, v0, nil
}

// ModInverse returns the inverse of p modulo mod, assuming gcd(p,mod)==1.
// mod*u + p*v == g, so v (scaled so g becomes 1) is the inverse of p.
func (p *Poly) ModInverse(mod *Poly) (*Poly, error) {
	g, _, v, err := ExtEuclid(mod, p)
	if err != nil {
		return nil, err
	}
	if g.Degree() != 0 || g.IsZero() {
		return nil, ErrNotInvertible
	}
	scale, err := p.F.Inv(g.C[0])
	if err != nil {
		return nil, err
	}
	inv, err := v.Mod(mod)
	if err != nil {
		return nil, err
	}
	return inv.ScalarMul(scale), nil
}

// Eval evaluates p at x via Horner's method.
func (p *Poly) Eval(x uint16) uint16 {
	if p.IsZero() {
		return 0
	}
	acc := p.C[len(p.C)-1]
	for i := len(p.C) - 2; i >= 0; i-- {
		acc = p.F.Add(p.F.Mul(acc, x), p.C[i])
	}
	return acc
}

// Bytes serializes p as a length-prefixed array of little-endian 16-bit
// coefficients (degree+1 of them); the length prefix is handled by callers
// per the private-key wire format, so Bytes returns only the coefficient
// bytes.
func (p *Poly) Bytes() []byte {
	out := make([]byte, 2*len(p.C))
	for i, c := range p.C {
		binary.LittleEndian.PutUint16(out[2*i:], c)
	}
	return out
}

// FromBytes reconstructs a polynomial over f from its coefficient bytes (as
// produced by Bytes).
func FromBytes(f *gf2m.Field, data []byte) (*Poly, error) {
	if len(data)%2 != 0 {
		return nil, ErrShortBuffer
	}
	c := make([]uint16, len(data)/2)
	for i := range c {
		c[i] = binary.LittleEndian.Uint16(data[2*i:])
	}
	return New(f, c), nil
}

// squareMod returns p^2 mod d. Squaring a polynomial over a field of
// characteristic 2 doubles every exponent and squares every coefficient
// (cross terms cancel), so this is cheap relative to a general Mul.
func squareMod(p, d *Poly) (*Poly, error) {
	if p.IsZero() {
		return Zero(p.F), nil
	}
	c := make([]uint16, 2*len(p.C)-1)
	for i, a := range p.C {
		c[2*i] = p.F.Mul(a, a)
	}
	sq := &Poly{F: p.F, C: trim(c)}
	return sq.Mod(d)
}

// frobeniusIterate returns x^(2^steps) mod d, by repeated squaring-mod
// starting from x itself.
func frobeniusIterate(d *Poly, steps int) (*Poly, error) {
	cur := Monomial(d.F, 1)
	var err error
	for i := 0; i < steps; i++ {
		cur, err = squareMod(cur, d)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// IsIrreducible reports whether the monic polynomial f (degree t, over
// GF(2^m)) is irreducible, via the generalization of Rabin's test to base
// q = 2^m: f is irreducible iff x^(q^t) == x mod f and gcd(x^(q^(t/r)) - x,
// f) == 1 for every prime r dividing t.
func IsIrreducible(f *Poly) (bool, error) {
	t := f.Degree()
	if t <= 0 {
		return false, nil
	}
	m := int(f.F.M)
	xqt, err := frobeniusIterate(f, t*m)
	if err != nil {
		return false, err
	}
	x, err := Monomial(f.F, 1).Mod(f)
	if err != nil {
		return false, err
	}
	if !xqt.Equal(x) {
		return false, nil
	}
	for _, r := range gf2poly.PrimeFactors(t) {
		xqk, err := frobeniusIterate(f, (t/r)*m)
		if err != nil {
			return false, err
		}
		diff := xqk.Add(x)
		g, err := GCD(diff, f)
		if err != nil {
			return false, err
		}
		if g.Degree() != 0 {
			return false, nil
		}
	}
	return true, nil
}

// elemSource is the minimal randomness source RandomIrreducible needs: a
// uniform integer in [0,max).
type elemSource interface {
	NextRange(max uint64) (uint64, error)
}

// RandomIrreducible draws a uniformly random monic, irreducible polynomial
// of degree t over f, retrying until IsIrreducible accepts one. This is the
// construction used to pick the secret Goppa polynomial during key
// generation.
func RandomIrreducible(f *gf2m.Field, t int, r elemSource) (*Poly, error) {
	for {
		c := make([]uint16, t+1)
		c[t] = 1
		for i := 0; i < t; i++ {
			v, err := r.NextRange(uint64(f.N))
			if err != nil {
				return nil, err
			}
			c[i] = uint16(v)
		}
		cand := &Poly{F: f, C: trim(c)}
		if cand.Degree() != t {
			continue
		}
		ok, err := IsIrreducible(cand)
		if err != nil {
			return nil, err
		}
		if ok {
			return cand, nil
		}
	}
}

// BuildSqrtTable precomputes the per-Goppa-polynomial square-root table:
// QInv[i] is the unique polynomial of degree < t such that QInv[i]^2 ==
// x^i (mod g), for i in [0,t). Patterson decoding uses this table to take
// square roots of arbitrary degree-<t polynomials modulo g, since sqrt is
// F-semilinear and additive: sqrt(sum a_i x^i) = sum sqrt(a_i)*QInv[i].
//
// The table is built by forming the t*t matrix Q over GF(2^m) whose column
// i holds the coefficients of x^(2i) mod g (the even-power basis that
// squaring produces), inverting Q, and reading QInv[i] off column i of
// Q^-1 with each entry passed through the field's Sqrt, so that Sqrt below
// can combine them with a plain field Sqrt per coefficient of the input.
func BuildSqrtTable(g *Poly) ([]*Poly, error) {
	t := g.Degree()
	field := g.F
	q := make([][]uint16, t)
	for i := range q {
		q[i] = make([]uint16, t)
	}
	for j := 0; j < t; j++ {
		col := Monomial(field, 2*j)
		col, merr := col.Mod(g)
		if merr != nil {
			return nil, merr
		}
		for i := 0; i < t; i++ {
			q[i][j] = col.Coeff(i)
		}
	}
	inv, err := invertMatrix(field, q)
	if err != nil {
		return nil, err
	}
	out := make([]*Poly, t)
	for i := 0; i < t; i++ {
		c := make([]uint16, t)
		for j := 0; j < t; j++ {
			c[j] = field.Sqrt(inv[j][i])
		}
		out[i] = New(field, c)
	}
	return out, nil
}

// invertMatrix inverts a dense t*t matrix over field via Gauss-Jordan
// elimination with partial pivoting (any nonzero pivot works; the field
// has no notion of magnitude).
func invertMatrix(field *gf2m.Field, m [][]uint16) ([][]uint16, error) {
	t := len(m)
	a := make([][]uint16, t)
	inv := make([][]uint16, t)
	for i := 0; i < t; i++ {
		a[i] = make([]uint16, t)
		copy(a[i], m[i])
		inv[i] = make([]uint16, t)
		inv[i][i] = 1
	}
	for col := 0; col < t; col++ {
		pivot := -1
		for r := col; r < t; r++ {
			if a[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return nil, ErrNotInvertible
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]
		pinv, err := field.Inv(a[col][col])
		if err != nil {
			return nil, err
		}
		for c := 0; c < t; c++ {
			a[col][c] = field.Mul(a[col][c], pinv)
			inv[col][c] = field.Mul(inv[col][c], pinv)
		}
		for r := 0; r < t; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			factor := a[r][col]
			for c := 0; c < t; c++ {
				a[r][c] = field.Add(a[r][c], field.Mul(factor, a[col][c]))
				inv[r][c] = field.Add(inv[r][c], field.Mul(factor, inv[col][c]))
			}
		}
	}
	return inv, nil
}

// Sqrt returns the unique polynomial r of degree < g.Degree() such that
// r^2 == p (mod g), using a precomputed table from BuildSqrtTable. p must
// already be reduced modulo g (degree < t).
func Sqrt(p *Poly, qinv []*Poly, g *Poly) *Poly {
	out := Zero(p.F)
	for i, a := range p.C {
		if a == 0 {
			continue
		}
		root := p.F.Sqrt(a)
		out = out.Add(qinv[i].ScalarMul(root))
	}
	return out
}
