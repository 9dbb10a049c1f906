package mceliece

import (
	"encoding/binary"
	"math/bits"

	"github.com/goppacrypt/mceliece/bitmatrix"
	"github.com/goppacrypt/mceliece/fmpoly"
	"github.com/goppacrypt/mceliece/gf2m"
	"github.com/goppacrypt/mceliece/goppa"
	mclog "github.com/goppacrypt/mceliece/log"
	"github.com/goppacrypt/mceliece/perm"
	"github.com/goppacrypt/mceliece/prng"
)

var keygenLog = mclog.Default().Module("keygen")

// PublicKey is the systematic-form public generator matrix. The implicit
// full generator is [G | I_k]; only the G block is stored and transmitted,
// matching the wire format's G_short.
type PublicKey struct {
	N int
	T int
	G *bitmatrix.Matrix
}

// PrivateKey holds everything needed to invert EncryptRaw: the field, the
// Goppa polynomial, the permutation mapping public/systematic coordinates
// back onto the canonical-support coordinates Patterson decoding expects,
// the canonical (unpermuted) parity-check matrix, and the precomputed
// square-root table.
type PrivateKey struct {
	N    int
	K    int
	F    *gf2m.Field
	G    *fmpoly.Poly
	Perm *perm.Permutation
	H    *bitmatrix.Matrix
	QInv []*fmpoly.Poly
}

// Zero overwrites the Goppa polynomial coefficients and square-root table
// entries, the parts of a PrivateKey an attacker would need to reconstruct
// the trapdoor. The support size and permutation shape carry no secret in
// isolation.
func (sk *PrivateKey) Zero() {
	if sk.G != nil {
		for i := range sk.G.C {
			sk.G.C[i] = 0
		}
	}
	for _, q := range sk.QInv {
		for i := range q.C {
			q.C[i] = 0
		}
	}
}

// KeyGen runs the key-generation pipeline for params: draw a random monic
// irreducible Goppa polynomial of degree T, precompute its square-root
// table, build the canonical parity-check matrix over the canonical
// support, scramble its columns with a random permutation to hide the
// code's structure, and reduce to systematic form. A singular reduction
// (the scrambled matrix lacks full row rank in the searched pivot order)
// is logged and retried with a fresh polynomial and permutation.
func KeyGen(params *Params, r prng.Prng) (*PublicKey, *PrivateKey, error) {
	field, err := gf2m.New(uint(params.M), params.FieldPoly)
	if err != nil {
		return nil, nil, ErrInvalidParameter
	}
	n := params.N()
	t := int(params.T)

	for attempt := 0; ; attempt++ {
		g, err := fmpoly.RandomIrreducible(field, t, r)
		if err != nil {
			return nil, nil, err
		}
		qinv, err := fmpoly.BuildSqrtTable(g)
		if err != nil {
			return nil, nil, err
		}
		h, err := goppa.BuildCanonicalH(field, g, n)
		if err != nil {
			return nil, nil, err
		}
		pi, err := perm.Random(n, r)
		if err != nil {
			return nil, nil, err
		}
		scrambled := permuteColumns(h, pi)
		hsys, colPerm, err := scrambled.SystematicReduce()
		if err == bitmatrix.ErrSingular {
			keygenLog.Warn("systematic reduction failed, drawing a fresh Goppa polynomial", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		mt := hsys.Rows
		k := n - mt
		gShort := hsys.Submatrix(mt, n).Transpose()

		piInv := pi.Invert()
		finalInts := make([]int, n)
		for i, orig := range colPerm {
			finalInts[i] = piInv.At(orig)
		}
		finalPerm, err := perm.New(finalInts)
		if err != nil {
			return nil, nil, err
		}

		pub := &PublicKey{N: n, T: t, G: gShort}
		priv := &PrivateKey{N: n, K: k, F: field, G: g, Perm: finalPerm, H: h, QInv: qinv}
		return pub, priv, nil
	}
}

// permuteColumns returns a copy of m with column c moved to position
// p.At(c).
func permuteColumns(m *bitmatrix.Matrix, p *perm.Permutation) *bitmatrix.Matrix {
	out := bitmatrix.New(m.Rows, m.Cols)
	for c := 0; c < m.Cols; c++ {
		dst := p.At(c)
		for row := 0; row < m.Rows; row++ {
			if m.Get(row, c) != 0 {
				out.Set(row, dst, 1)
			}
		}
	}
	return out
}

// Encode serializes pk per §6: N and T as little-endian 32-bit integers,
// followed by G's own self-describing encoding.
func (pk *PublicKey) Encode() []byte {
	gBytes := pk.G.Encode()
	buf := make([]byte, 8+len(gBytes))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(pk.N))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(pk.T))
	copy(buf[8:], gBytes)
	return buf
}

// DecodePublicKey reconstructs a PublicKey from its wire encoding.
func DecodePublicKey(data []byte) (*PublicKey, error) {
	if len(data) < 8 {
		return nil, ErrIoError
	}
	n := int(binary.LittleEndian.Uint32(data[0:4]))
	t := int(binary.LittleEndian.Uint32(data[4:8]))
	g, err := bitmatrix.Decode(data[8:])
	if err != nil {
		return nil, ErrIoError
	}
	return &PublicKey{N: n, T: t, G: g}, nil
}

func encodePermutation(p *perm.Permutation) []byte {
	ints := p.Ints()
	buf := make([]byte, len(ints)*4)
	for i, v := range ints {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
	return buf
}

func decodePermutation(data []byte) (*perm.Permutation, error) {
	if len(data)%4 != 0 {
		return nil, ErrIoError
	}
	ints := make([]int, len(data)/4)
	for i := range ints {
		ints[i] = int(binary.LittleEndian.Uint32(data[i*4 : i*4+4]))
	}
	p, err := perm.New(ints)
	if err != nil {
		return nil, ErrIoError
	}
	return p, nil
}

// Encode serializes sk per §6: N, K, and the field polynomial as
// little-endian 32-bit integers, then the Goppa polynomial, permutation,
// canonical parity-check matrix, and square-root table each as a
// length-prefixed block (length also little-endian 32-bit).
func (sk *PrivateKey) Encode() []byte {
	gpBytes := sk.G.Bytes()
	pBytes := encodePermutation(sk.Perm)
	hBytes := sk.H.Encode()
	qBlocks := make([][]byte, len(sk.QInv))
	for i, q := range sk.QInv {
		qBlocks[i] = q.Bytes()
	}

	size := 4 * 3
	size += 4 + len(gpBytes)
	size += 4 + len(pBytes)
	size += 4 + len(hBytes)
	size += 4
	for _, b := range qBlocks {
		size += 4 + len(b)
	}

	buf := make([]byte, size)
	off := 0
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[off:off+4], v)
		off += 4
	}
	putBlock := func(b []byte) {
		putU32(uint32(len(b)))
		off += copy(buf[off:], b)
	}

	putU32(uint32(sk.N))
	putU32(uint32(sk.K))
	putU32(sk.F.FP)
	putBlock(gpBytes)
	putBlock(pBytes)
	putBlock(hBytes)
	putU32(uint32(len(qBlocks)))
	for _, b := range qBlocks {
		putBlock(b)
	}
	return buf
}

// DecodePrivateKey reconstructs a PrivateKey from its wire encoding. The
// field degree M is recovered from N (always a power of two), since the
// wire format itself does not carry M separately.
func DecodePrivateKey(data []byte) (*PrivateKey, error) {
	off := 0
	readU32 := func() (uint32, error) {
		if off+4 > len(data) {
			return 0, ErrIoError
		}
		v := binary.LittleEndian.Uint32(data[off : off+4])
		off += 4
		return v, nil
	}
	readBlock := func() ([]byte, error) {
		l, err := readU32()
		if err != nil {
			return nil, err
		}
		if off+int(l) > len(data) || l > 1<<30 {
			return nil, ErrIoError
		}
		b := data[off : off+int(l)]
		off += int(l)
		return b, nil
	}

	n, err := readU32()
	if err != nil {
		return nil, err
	}
	k, err := readU32()
	if err != nil {
		return nil, err
	}
	fieldPoly, err := readU32()
	if err != nil {
		return nil, err
	}
	if n == 0 || bits.OnesCount32(n) != 1 {
		return nil, ErrIoError
	}
	m := uint(bits.Len32(n) - 1)
	field, err := gf2m.New(m, fieldPoly)
	if err != nil {
		return nil, ErrInvalidKey
	}

	gpBytes, err := readBlock()
	if err != nil {
		return nil, err
	}
	g, err := fmpoly.FromBytes(field, gpBytes)
	if err != nil {
		return nil, ErrIoError
	}
	pBytes, err := readBlock()
	if err != nil {
		return nil, err
	}
	p, err := decodePermutation(pBytes)
	if err != nil {
		return nil, err
	}
	hBytes, err := readBlock()
	if err != nil {
		return nil, err
	}
	h, err := bitmatrix.Decode(hBytes)
	if err != nil {
		return nil, ErrIoError
	}
	qCount, err := readU32()
	if err != nil {
		return nil, err
	}
	qinv := make([]*fmpoly.Poly, qCount)
	for i := range qinv {
		qBytes, err := readBlock()
		if err != nil {
			return nil, err
		}
		qinv[i], err = fmpoly.FromBytes(field, qBytes)
		if err != nil {
			return nil, ErrIoError
		}
	}

	return &PrivateKey{
		N:    int(n),
		K:    int(k),
		F:    field,
		G:    g,
		Perm: p,
		H:    h,
		QInv: qinv,
	}, nil
}
