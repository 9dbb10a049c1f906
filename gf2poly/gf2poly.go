// Package gf2poly implements the ring Z_2[x] of polynomials over GF(2),
// packed one bit per coefficient into a uint32. It is used only to select
// and validate the degree-m field polynomial that defines GF(2^m); the
// richer polynomial ring used by Goppa-code machinery lives in fmpoly.
package gf2poly

// Poly is a polynomial over GF(2), bit i of the value is the coefficient
// of x^i. Degree is bounded by 31 (plenty for the m <= 16 the field
// supports).
type Poly uint32

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	if p == 0 {
		return -1
	}
	d := -1
	for v := uint32(p); v != 0; v >>= 1 {
		d++
	}
	return d
}

// Add returns p+q (XOR, since addition in GF(2) has no carry).
func (p Poly) Add(q Poly) Poly { return p ^ q }

// mulFull multiplies p and q without reduction, producing a 64-bit result.
func mulFull(p, q Poly) uint64 {
	var r uint64
	a := uint64(p)
	for i := 0; i < 32 && q != 0; i++ {
		if q&(1<<uint(i)) != 0 {
			r ^= a << uint(i)
		}
	}
	return r
}

// Mul returns p*q reduced modulo mod (a polynomial of degree modDeg).
func Mul(p, q Poly, mod Poly, modDeg int) Poly {
	return modReduce(mulFull(p, q), mod, modDeg)
}

// modReduce reduces a 64-bit accumulator modulo mod (degree modDeg).
func modReduce(v uint64, mod Poly, modDeg int) Poly {
	m := uint64(mod)
	for deg := 63; deg >= modDeg; deg-- {
		if v&(1<<uint(deg)) != 0 {
			v ^= m << uint(deg-modDeg)
		}
	}
	return Poly(v)
}

// Mod reduces p modulo mod (degree modDeg) without a prior multiplication.
func Mod(p Poly, mod Poly, modDeg int) Poly {
	return modReduce(uint64(p), mod, modDeg)
}

// polyModSimple reduces a modulo b via plain GF(2) long division.
func polyModSimple(a, b Poly) Poly {
	db := b.Degree()
	if db < 0 {
		return a
	}
	for a.Degree() >= db {
		shift := a.Degree() - db
		a = a.Add(b << uint(shift))
	}
	return a
}

// gcd computes the GCD of two GF(2) polynomials via the Euclidean algorithm.
func gcd(a, b Poly) Poly {
	for b != 0 {
		a, b = b, polyModSimple(a, b)
	}
	return a
}

// powModX computes x^(2^k) mod (mod, degree modDeg) via repeated squaring,
// the core primitive of the Rabin irreducibility test over GF(2).
func powModX(k int, mod Poly, modDeg int) Poly {
	// x mod "mod": if modDeg == 0 the modulus is 1, degenerate case.
	cur := Poly(2) // "x"
	if modDeg == 0 {
		return 0
	}
	cur = Mod(cur, mod, modDeg)
	for i := 0; i < k; i++ {
		cur = Mul(cur, cur, mod, modDeg)
	}
	return cur
}

// PrimeFactors returns the distinct prime factors of n.
func PrimeFactors(n int) []int {
	return smallPrimeFactors(n)
}

// smallPrimeFactors returns the distinct prime factors of n.
func smallPrimeFactors(n int) []int {
	var factors []int
	for p := 2; p*p <= n; p++ {
		if n%p == 0 {
			factors = append(factors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// IsIrreducible reports whether p, a polynomial of degree deg, is
// irreducible over GF(2) via Rabin's test: x^(2^deg) == x (mod p), and for
// every prime r dividing deg, gcd(x^(2^(deg/r)) - x, p) == 1.
func IsIrreducible(p Poly, deg int) bool {
	if deg <= 0 || p.Degree() != deg {
		return false
	}
	if p&1 == 0 {
		// No constant term: x divides p, so p is reducible (deg>0).
		return false
	}
	x := Mod(2, p, deg) // "x" reduced mod p (differs from x only when deg == 1)
	xToQ := powModX(deg, p, deg)
	if xToQ != x { // must equal "x"
		return false
	}
	for _, r := range smallPrimeFactors(deg) {
		xToQr := powModX(deg/r, p, deg)
		diff := xToQr.Add(x) // subtract "x"; char 2 so Add is Sub
		if gcd(diff, p) != 1 {
			return false
		}
	}
	return true
}

// GetIrreducible returns the first (canonical) irreducible polynomial of
// degree m found by enumerating candidates in increasing numeric order.
// Every candidate has its top bit (x^m) and bottom bit (constant term 1)
// set, since any irreducible polynomial of degree > 0 must have a nonzero
// constant term.
func GetIrreducible(m uint) Poly {
	if m == 0 {
		return 1
	}
	top := Poly(1) << m
	for low := Poly(1); low < top; low += 2 {
		cand := top | low
		if IsIrreducible(cand, int(m)) {
			return cand
		}
	}
	// Unreachable for any m with at least one irreducible polynomial,
	// which holds for all m >= 1.
	panic("gf2poly: no irreducible polynomial found for degree")
}
