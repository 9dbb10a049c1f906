package digest

import "golang.org/x/crypto/sha3"

// keccak1024Size is the output length of the widened Keccak-1024 digest:
// double the usual 512-bit Keccak output, since there is no native
// 1024-bit Keccak sponge parameterization.
const keccak1024Size = 128

// keccak1024Digest implements Keccak1024 as
// Keccak512(data) || Keccak512(Keccak512(data) || 0x01), truncated to 128
// bytes. Unlike the other Digest implementations it cannot stream through
// the underlying primitive incrementally (the second half depends on the
// first half's complete output), so it buffers all Update calls.
type keccak1024Digest struct {
	buf []byte
}

func newKeccak1024() (Digest, error) {
	return &keccak1024Digest{}, nil
}

func (k *keccak1024Digest) BlockSize() int  { return sha3.NewLegacyKeccak512().BlockSize() }
func (k *keccak1024Digest) DigestSize() int { return keccak1024Size }

func (k *keccak1024Digest) Update(data []byte) {
	k.buf = append(k.buf, data...)
}

func (k *keccak1024Digest) Finalize(out []byte) {
	h1 := sha3.NewLegacyKeccak512()
	h1.Write(k.buf)
	first := h1.Sum(nil)

	h2 := sha3.NewLegacyKeccak512()
	h2.Write(first)
	h2.Write([]byte{0x01})
	second := h2.Sum(nil)

	combined := append(append([]byte{}, first...), second...)
	copy(out, combined[:keccak1024Size])
	k.Reset()
}

func (k *keccak1024Digest) Reset() {
	k.buf = k.buf[:0]
}
