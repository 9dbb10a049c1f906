package mceliece

import (
	"math/big"

	"github.com/goppacrypt/mceliece/bitmatrix"
)

// binomial returns C(n,k) as a big.Int, used for the combinatorial-number-
// system indexing Conv/ConvInv are built on.
func binomial(n, k int) *big.Int {
	return new(big.Int).Binomial(int64(n), int64(k))
}

// bitLen returns floor(log2(x)) + 1 for x > 0, matching the spec's
// "floor(log2 C(n,t))" sizing of Conv's input domain.
func bitLen(x *big.Int) int {
	return x.BitLen()
}

// ConvDomainBits returns the number of input bits Conv(n,t,·) accepts:
// floor(log2(C(n,t))).
func ConvDomainBits(n, t int) int {
	c := binomial(n, t)
	return bitLen(c) - 1
}

// bytesToIndex interprets data as a big-endian unsigned integer truncated
// to bits bits (extra low-order bits at the end of the final partial byte
// of data are ignored), matching the "bit-prefix" framing Conv operates on.
func bytesToIndex(data []byte, bits int) *big.Int {
	v := new(big.Int).SetBytes(data)
	// Keep only the leading `bits` bits: Conv consumes a bit-prefix, not
	// necessarily a whole number of bytes.
	total := len(data) * 8
	if total > bits {
		v.Rsh(v, uint(total-bits))
	}
	return v
}

// indexToBytes renders idx as big-endian bytes padded to ceil(bits/8)
// bytes, left-shifted to occupy the same bit-prefix bytesToIndex reads
// from.
func indexToBytes(idx *big.Int, bits int) []byte {
	total := (bits + 7) / 8
	shifted := new(big.Int).Lsh(idx, uint(total*8-bits))
	out := make([]byte, total)
	b := shifted.Bytes()
	copy(out[total-len(b):], b)
	return out
}

// Conv maps a bit-prefix of bytes (interpreted as an unsigned integer less
// than C(n,t)) onto a weight-t vector of length n via the combinatorial
// number system, using the full ConvDomainBits(n,t)-bit domain. Positions
// are visited from n-1 down to 0; at each position, the remaining index
// space splits into a "position unset" block of size C(pos,remaining)
// followed by a "position set" block, so position `pos` is set exactly
// when idx falls in the second block (after which idx is rebased into
// that block for the remaining positions).
func Conv(n, t int, data []byte) (*bitmatrix.Vector, error) {
	return convBits(n, t, data, ConvDomainBits(n, t))
}

// ConvInv is the inverse of Conv: given a weight-t vector of length n, it
// recovers the combinatorial-number-system index and renders it as the
// same bit-prefix byte framing Conv consumes.
func ConvInv(n, t int, v *bitmatrix.Vector) ([]byte, error) {
	return convInvBits(n, t, v, ConvDomainBits(n, t))
}

// convBits is Conv generalized to an explicit bit length instead of always
// ConvDomainBits(n,t). Kobara-Imai feeds it a byte-aligned length (a
// multiple of 8, no wider than ConvDomainBits(n,t)) so that convInvBits's
// output reproduces every bit of the bytes convBits consumed, rather than
// losing the low bits of a partial final byte the way the full, generally
// non-byte-aligned domain does; see kiConvBits and DESIGN.md.
func convBits(n, t int, data []byte, bits int) (*bitmatrix.Vector, error) {
	idx := bytesToIndex(data, bits)
	if idx.Cmp(binomial(n, t)) >= 0 {
		return nil, ErrInvalidParameter
	}
	v := bitmatrix.NewVector(n)
	remaining := t
	for pos := n - 1; pos >= 0 && remaining > 0; pos-- {
		if pos < remaining {
			// Only pos+1 slots remain for `remaining` needed ones: every
			// one of them must be set, with no remaining choice.
			v.Set(pos, 1)
			remaining--
			continue
		}
		notSet := binomial(pos, remaining)
		if idx.Cmp(notSet) < 0 {
			continue
		}
		idx.Sub(idx, notSet)
		v.Set(pos, 1)
		remaining--
	}
	return v, nil
}

// convInvBits is ConvInv generalized to an explicit bit length; see
// convBits.
func convInvBits(n, t int, v *bitmatrix.Vector, bits int) ([]byte, error) {
	if v.Weight() != t {
		return nil, ErrInvalidParameter
	}
	idx := new(big.Int)
	remaining := t
	for pos := n - 1; pos >= 0 && remaining > 0; pos-- {
		if pos < remaining {
			remaining--
			continue
		}
		notSet := binomial(pos, remaining)
		if v.Get(pos) != 0 {
			idx.Add(idx, notSet)
			remaining--
		}
	}
	return indexToBytes(idx, bits), nil
}
