package mceliece

import (
	"crypto/subtle"

	"github.com/goppacrypt/mceliece/digest"
	"github.com/goppacrypt/mceliece/prng"
)

// KeyPair bundles a public/private key with the parameter set they were
// generated under, so Sign/Verify don't need it passed separately. §4.10
// requires callers not reuse a key pair across signing and encryption, and
// not sign more than one message with it; GenerateKeyPair and Sign together
// promote the second rule from a SHOULD-NOT comment to a checked invariant
// (§12 of SPEC_FULL.md), modeled on HashSigKeyPair.RemainingSignatures in
// the teacher's crypto/pqc/hash_sig.go.
type KeyPair struct {
	Params *Params
	Pub    *PublicKey
	Priv   *PrivateKey
	used   bool
}

// GenerateKeyPair runs KeyGen and wraps the result for signing.
func GenerateKeyPair(params *Params, r prng.Prng) (*KeyPair, error) {
	pub, priv, err := KeyGen(params, r)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Params: params, Pub: pub, Priv: priv}, nil
}

// Sign computes sig = Encrypt(pk, H(msg)) using kp's selected conversion
// (§4.10). It fails with ErrInputTooLong if the selected digest's output
// does not fit in k8 = floor(k/8) bytes, and with ErrKeyAlreadyUsed if kp
// has already signed a message: per §4.10, a key pair SHOULD NOT sign more
// than one message, which this module enforces rather than merely
// documents.
func (kp *KeyPair) Sign(msg []byte, r prng.Prng) ([]byte, error) {
	if kp.used {
		return nil, ErrKeyAlreadyUsed
	}
	h, err := kp.hashMessage(msg)
	if err != nil {
		return nil, err
	}
	k8 := kp.Priv.K / 8
	if len(h) > k8 {
		return nil, ErrInputTooLong
	}
	sig, err := Encrypt(kp.Params, kp.Pub, h, r)
	if err != nil {
		return nil, err
	}
	kp.used = true
	return sig, nil
}

// Verify decrypts sig and compares the result to H(msg) with constant-time
// byte equality, per §4.10's literal "decrypt-then-compare" design (this
// scheme's verification, unlike a conventional signature scheme, requires
// the key pair holder, not an arbitrary third party with only the public
// key).
func (kp *KeyPair) Verify(msg, sig []byte) bool {
	h, err := kp.hashMessage(msg)
	if err != nil {
		return false
	}
	decoded, err := Decrypt(kp.Params, kp.Priv, sig)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(h, decoded) == 1
}

func (kp *KeyPair) hashMessage(msg []byte) ([]byte, error) {
	d, err := digest.New(kp.Params.Digest)
	if err != nil {
		return nil, ErrInvalidParameter
	}
	return hashConcat(d, msg), nil
}
