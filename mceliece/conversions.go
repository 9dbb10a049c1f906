package mceliece

import (
	"bytes"

	"github.com/goppacrypt/mceliece/bitmatrix"
	"github.com/goppacrypt/mceliece/digest"
	"github.com/goppacrypt/mceliece/prng"
)

// Encrypt runs params' selected CCA2 conversion (§4.8) over m, using r as
// the source of the conversion's probabilistic padding. This is the public
// entry point callers use instead of the bare EncryptRaw primitive.
func Encrypt(params *Params, pk *PublicKey, m []byte, r prng.Prng) ([]byte, error) {
	d, err := digest.New(params.Digest)
	if err != nil {
		return nil, ErrInvalidParameter
	}
	switch params.Engine {
	case Fujisaki:
		return encryptFujisaki(pk, m, r, d)
	case Pointcheval:
		return encryptPointcheval(pk, m, r, d)
	case KobaraImai:
		return encryptKobaraImai(pk, m, r, d, params.KobaraImaiInfo)
	default:
		return nil, ErrInvalidParameter
	}
}

// Decrypt inverts Encrypt for the same params, returning ErrInvalidCiphertext
// for any decoding or consistency-check failure, with no distinguishing
// sub-reason exposed to the caller (per §7).
func Decrypt(params *Params, sk *PrivateKey, c []byte) ([]byte, error) {
	d, err := digest.New(params.Digest)
	if err != nil {
		return nil, ErrInvalidParameter
	}
	switch params.Engine {
	case Fujisaki:
		return decryptFujisaki(sk, c, d)
	case Pointcheval:
		return decryptPointcheval(sk, c, d)
	case KobaraImai:
		return decryptKobaraImai(sk, c, d, params.KobaraImaiInfo)
	default:
		return nil, ErrInvalidParameter
	}
}

// randomVector draws a uniformly random GF(2)^n vector from r.
func randomVector(n int, r prng.Prng) (*bitmatrix.Vector, error) {
	buf := make([]byte, (n+7)/8)
	if err := r.GetBytes(buf); err != nil {
		return nil, err
	}
	return bitmatrix.FromBitBytes(n, buf), nil
}

// randomBytes draws n uniformly random bytes from r.
func randomBytes(n int, r prng.Prng) ([]byte, error) {
	buf := make([]byte, n)
	if err := r.GetBytes(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// xorBytes returns a XOR b; a and b must have equal length.
func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// hashConcat hashes the concatenation of parts with d and returns the
// digest, matching the teacher's one-shot Update-then-Finalize hashing
// style throughout crypto/pqc.
func hashConcat(d digest.Digest, parts ...[]byte) []byte {
	for _, p := range parts {
		d.Update(p)
	}
	out := make([]byte, d.DigestSize())
	d.Finalize(out)
	return out
}

// ---------------------------------------------------------------------------
// Fujisaki/Okamoto (§4.8.1)
// ---------------------------------------------------------------------------

func encryptFujisaki(pk *PublicKey, m []byte, r prng.Prng, d digest.Digest) ([]byte, error) {
	k := pk.G.Rows
	rVec, err := randomVector(k, r)
	if err != nil {
		return nil, err
	}
	rBytes := rVec.Bytes()
	hrm := hashConcat(d, rBytes, m)
	z, err := Conv(pk.N, pk.T, hrm)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	c1Vec, err := EncryptRaw(pk, rVec, z)
	if err != nil {
		return nil, err
	}
	c1 := c1Vec.Bytes()
	c2 := xorBytes(digest.R(d, rBytes, len(m)), m)
	return append(c1, c2...), nil
}

func decryptFujisaki(sk *PrivateKey, c []byte, d digest.Digest) ([]byte, error) {
	n8 := (sk.N + 7) / 8
	if len(c) < n8 {
		return nil, ErrInvalidCiphertext
	}
	c1, c2 := c[:n8], c[n8:]
	cVec := bitmatrix.VectorFromBytes(sk.N, c1)
	rVec, z, err := DecryptRaw(sk, cVec)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	rBytes := rVec.Bytes()
	m := xorBytes(digest.R(d, rBytes, len(c2)), c2)
	hrm := hashConcat(d, rBytes, m)
	zPrime, err := Conv(sk.N, sk.G.Degree(), hrm)
	if err != nil || !zPrime.Equal(z) {
		return nil, ErrInvalidCiphertext
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Pointcheval (§4.8.2)
// ---------------------------------------------------------------------------

func encryptPointcheval(pk *PublicKey, m []byte, r prng.Prng, d digest.Digest) ([]byte, error) {
	k := pk.G.Rows
	k8 := k / 8
	rBytes, err := randomBytes(k8, r)
	if err != nil {
		return nil, err
	}
	rPrimeVec, err := randomVector(k, r)
	if err != nil {
		return nil, err
	}
	h := hashConcat(d, m, rBytes)
	z, err := Conv(pk.N, pk.T, h)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	c1Vec, err := EncryptRaw(pk, rPrimeVec, z)
	if err != nil {
		return nil, err
	}
	c1 := c1Vec.Bytes()
	mr := append(append([]byte{}, m...), rBytes...)
	keystream := digest.R(d, rPrimeVec.Bytes(), len(m)+k8)
	c2 := xorBytes(keystream, mr)
	return append(c1, c2...), nil
}

func decryptPointcheval(sk *PrivateKey, c []byte, d digest.Digest) ([]byte, error) {
	n8 := (sk.N + 7) / 8
	if len(c) < n8 {
		return nil, ErrInvalidCiphertext
	}
	c1, c2 := c[:n8], c[n8:]
	k8 := sk.K / 8
	if len(c2) < k8 {
		return nil, ErrInvalidCiphertext
	}
	cVec := bitmatrix.VectorFromBytes(sk.N, c1)
	rPrimeVec, z, err := DecryptRaw(sk, cVec)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	keystream := digest.R(d, rPrimeVec.Bytes(), len(c2))
	mr := xorBytes(keystream, c2)
	mLen := len(mr) - k8
	m, rBytes := mr[:mLen], mr[mLen:]
	h := hashConcat(d, m, rBytes)
	zPrime, err := Conv(sk.N, sk.G.Degree(), h)
	if err != nil || !zPrime.Equal(z) {
		return nil, ErrInvalidCiphertext
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Kobara-Imai (§4.8.3)
// ---------------------------------------------------------------------------

// kiMarker delimits the message from its zero padding inside mConst: an
// ISO/IEC 7816-4-style 0x80 byte, since the spec's literal "m || pad(0) ||
// INFO" framing does not otherwise record where m ends and the padding
// begins. See DESIGN.md for the reasoning.
const kiMarker = 0x80

// kiLengths computes the five block lengths §4.8.3 step 1 defines, plus
// the Conv domain's byte length c5Len. c5Len is floor(domainBits/8), not
// ceil: Conv/ConvInv only round-trip a data block losslessly when the bit
// length fed to them is byte-aligned (a multiple of 8), since bytesToIndex
// truncates any bits beyond that length and indexToBytes always zero-pads
// back up to it, so a non-byte-aligned length would silently lose the low
// bits of c5's last byte on every encrypt/decrypt round trip. c5 is
// therefore treated as exactly 8*c5Len bits wide end to end — see
// kiConvBits and DESIGN.md. mLen is padded by one byte before the max() so
// the marker byte kiMarker always has room inside mConst regardless of
// which term of the max dominates — the literal formula in §4.8.3 step 1
// sizes mConst for m alone, but this module's padding scheme (see
// DESIGN.md) needs one extra byte to locate the m/padding boundary on
// decode.
func kiLengths(n, t, k, hashSize, infoLen, mLen int) (c1Len, c2Len, c4Len, c5Len, c6Len int) {
	domainBits := ConvDomainBits(n, t)
	c2Len = hashSize
	c4Len = k / 8
	c5Len = domainBits / 8
	c1Len = c4Len + c5Len - c2Len - infoLen
	if mLen+1 > c1Len {
		c1Len = mLen + 1
	}
	c1Len += infoLen
	c6Len = c1Len + c2Len - c4Len - c5Len
	return
}

// kiConvBits is the bit length Kobara-Imai's c5 block is always treated as
// by convBits/convInvBits: 8*c5Len, the byte-aligned width kiLengths
// computed c5Len against. Using this width (instead of the generally
// wider, non-byte-aligned ConvDomainBits(n,t) the public Conv/ConvInv
// wrappers use) is what makes the pair a true bijection on c5's actual
// bytes.
func kiConvBits(c5Len int) int {
	return c5Len * 8
}

func encryptKobaraImai(pk *PublicKey, m []byte, r prng.Prng, d digest.Digest, info []byte) ([]byte, error) {
	k := pk.G.Rows
	c1Len, c2Len, c4Len, c5Len, c6Len := kiLengths(pk.N, pk.T, k, d.DigestSize(), len(info), len(m))
	if len(m)+1+len(info) > c1Len {
		return nil, ErrInputTooLong
	}

	mConst := make([]byte, c1Len)
	copy(mConst, m)
	mConst[len(m)] = kiMarker
	copy(mConst[c1Len-len(info):], info)

	rSeed, err := randomBytes(c2Len, r)
	if err != nil {
		return nil, err
	}
	c1 := xorBytes(digest.R(d, rSeed, c1Len), mConst)
	hC1 := hashConcat(d, c1)
	c2 := xorBytes(hC1, rSeed)

	combined := append(append([]byte{}, c2...), c1...)
	if len(combined) != c6Len+c5Len+c4Len {
		return nil, ErrInvalidParameter
	}
	c6 := combined[:c6Len]
	c5 := combined[c6Len : c6Len+c5Len]
	c4 := combined[c6Len+c5Len:]

	z, err := convBits(pk.N, pk.T, c5, kiConvBits(c5Len))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	mVec := bitmatrix.FromBitBytes(k, c4)
	encC4, err := EncryptRaw(pk, mVec, z)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(c6)+len(encC4.Bytes()))
	out = append(out, c6...)
	out = append(out, encC4.Bytes()...)
	return out, nil
}

func decryptKobaraImai(sk *PrivateKey, c []byte, d digest.Digest, info []byte) ([]byte, error) {
	n8 := (sk.N + 7) / 8
	if len(c) < n8 {
		return nil, ErrInvalidCiphertext
	}
	c6 := c[:len(c)-n8]
	encC4Bytes := c[len(c)-n8:]

	cVec := bitmatrix.VectorFromBytes(sk.N, encC4Bytes)
	mVec, z, err := DecryptRaw(sk, cVec)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	c4Len := sk.K / 8
	c4 := mVec.ToBitBytes()[:c4Len]
	c5Len := ConvDomainBits(sk.N, sk.G.Degree()) / 8
	c5, err := convInvBits(sk.N, sk.G.Degree(), z, kiConvBits(c5Len))
	if err != nil {
		return nil, ErrInvalidCiphertext
	}

	// c1Len is not known directly (it depends on the encrypted message's
	// length), but it is recoverable from the observed c6Len by inverting
	// kiLengths' c6Len = c1Len+c2Len-c4Len-c5Len relation.
	c2Len := d.DigestSize()
	c1Len := len(c6) - c2Len + c4Len + len(c5)
	if c1Len <= 0 {
		return nil, ErrInvalidCiphertext
	}

	combined := make([]byte, 0, len(c6)+len(c5)+len(c4))
	combined = append(combined, c6...)
	combined = append(combined, c5...)
	combined = append(combined, c4...)
	if len(combined) < c2Len {
		return nil, ErrInvalidCiphertext
	}
	c2 := combined[:c2Len]
	c1 := combined[c2Len:]
	if len(c1) != c1Len {
		return nil, ErrInvalidCiphertext
	}

	hC1 := hashConcat(d, c1)
	rPrime := xorBytes(hC1, c2)
	mConst := xorBytes(digest.R(d, rPrime, c1Len), c1)

	if c1Len < len(info) {
		return nil, ErrInvalidCiphertext
	}
	tail := mConst[c1Len-len(info):]
	if !bytes.Equal(tail, info) {
		return nil, ErrInvalidCiphertext
	}
	rest := mConst[:c1Len-len(info)]
	markerIdx := bytes.LastIndexByte(rest, kiMarker)
	if markerIdx < 0 {
		return nil, ErrInvalidCiphertext
	}
	for _, b := range rest[markerIdx+1:] {
		if b != 0 {
			return nil, ErrInvalidCiphertext
		}
	}
	return rest[:markerIdx], nil
}
