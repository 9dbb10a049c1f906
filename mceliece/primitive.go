package mceliece

import (
	"github.com/goppacrypt/mceliece/bitmatrix"
	"github.com/goppacrypt/mceliece/goppa"
)

// EncryptRaw computes the bare McEliece encryption primitive: the message
// vector times the implicit systematic generator [G|I_k], XORed with the
// weight-t error vector z. mVec must have length pk.G.Rows (k) and z must
// have length pk.N.
func EncryptRaw(pk *PublicKey, mVec, z *bitmatrix.Vector) (*bitmatrix.Vector, error) {
	k := pk.G.Rows
	if mVec.N != k || z.N != pk.N {
		return nil, ErrInvalidParameter
	}
	redundancy, err := pk.G.MulVecLeft(mVec)
	if err != nil {
		return nil, ErrInvalidParameter
	}
	codeword := bitmatrix.Concat(redundancy, mVec)
	return codeword.Xor(z), nil
}

// DecryptRaw inverts EncryptRaw: it maps the received word from
// public/systematic coordinates into canonical-support coordinates via
// sk.Perm.Scatter, runs Patterson decoding to recover the error pattern,
// strips it from the received word, and reads the message back out of the
// systematic form's last k coordinates. A failed decode (the error
// locator does not fully factor over the support) is reported as
// ErrInvalidCiphertext.
func DecryptRaw(sk *PrivateKey, c *bitmatrix.Vector) (mVec, z *bitmatrix.Vector, err error) {
	if c.N != sk.N {
		return nil, nil, ErrInvalidParameter
	}
	rOrig := sk.Perm.Scatter(c)
	errOrig, err := goppa.Decode(sk.F, sk.G, sk.QInv, sk.N, rOrig)
	if err != nil {
		if err == goppa.ErrDecodeFailed {
			return nil, nil, ErrInvalidCiphertext
		}
		return nil, nil, err
	}
	zPublic := sk.Perm.Gather(errOrig)
	codeword := c.Xor(zPublic)
	mt := sk.N - sk.K
	mVec = codeword.Slice(mt, sk.N)
	return mVec, zPublic, nil
}
