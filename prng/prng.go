// Package prng defines the pseudo-random byte source the rest of this
// module depends on, and two concrete implementations: a thin wrapper over
// the OS CSPRNG, and a deterministic AES-CTR DRBG for reproducible key
// generation (golden-seed tests, S3/S5-style scenarios).
package prng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"

	"golang.org/x/crypto/hkdf"
)

// Errors returned by PRNG construction and sampling.
var (
	ErrInvalidSeed   = errors.New("prng: seed must be non-empty")
	ErrInvalidRange  = errors.New("prng: max must be > 0")
	ErrEntropySource = errors.New("prng: failed to read from entropy source")
)

// Prng is the randomness source consumed by key generation, permutation
// sampling, and the CCA2 conversions. NextRange MUST be uniform in
// [0,max) via rejection sampling over ceil(log2(max)) bits, not modular
// reduction, which would bias the low end of the range.
type Prng interface {
	GetBytes(out []byte) error
	NextU32() (uint32, error)
	NextRange(max uint64) (uint64, error)
	Dispose()
}

// rejectionSample draws uniform values in [0,max) from a byte source by
// masking down to the smallest sufficient bit width and rejecting draws
// that land at or above max, per the spec's explicit deviation from a
// biased "Next(int)"-style bounded retry.
func rejectionSample(read func([]byte) error, max uint64) (uint64, error) {
	if max == 0 {
		return 0, ErrInvalidRange
	}
	if max == 1 {
		return 0, nil
	}
	bitLen := bits.Len64(max - 1)
	byteLen := (bitLen + 7) / 8
	mask := byte(0xff)
	if bitLen%8 != 0 {
		mask = byte(1<<uint(bitLen%8)) - 1
	}
	buf := make([]byte, byteLen)
	for {
		if err := read(buf); err != nil {
			return 0, err
		}
		buf[0] &= mask // buf[0] is the most significant byte of v below
		var v uint64
		for _, b := range buf {
			v = (v << 8) | uint64(b)
		}
		if v < max {
			return v, nil
		}
	}
}

// OSPrng draws directly from the operating system's CSPRNG.
type OSPrng struct{}

// NewOSPrng returns a Prng backed by crypto/rand.
func NewOSPrng() *OSPrng { return &OSPrng{} }

func (p *OSPrng) GetBytes(out []byte) error {
	_, err := io.ReadFull(rand.Reader, out)
	if err != nil {
		return ErrEntropySource
	}
	return nil
}

func (p *OSPrng) NextU32() (uint32, error) {
	var buf [4]byte
	if err := p.GetBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (p *OSPrng) NextRange(max uint64) (uint64, error) {
	return rejectionSample(p.GetBytes, max)
}

func (p *OSPrng) Dispose() {}

// ctrDRBGBlockSize is the AES block size in bytes.
const ctrDRBGBlockSize = aes.BlockSize

// CTRDRBG is a deterministic AES-256-CTR-based DRBG: a seed is whitened
// through HKDF-SHA256 into a 256-bit key and a 128-bit initial counter
// block, and output bytes are the AES-CTR keystream over those. Same seed,
// same parameters, same output stream: the property S3/S5-style
// reproducible-key-generation scenarios depend on.
type CTRDRBG struct {
	key     []byte
	counter []byte
	stream  cipher.Stream
	block   cipher.Block
}

// NewCTRDRBG derives a DRBG from an arbitrary-length seed.
func NewCTRDRBG(seed []byte) (*CTRDRBG, error) {
	if len(seed) == 0 {
		return nil, ErrInvalidSeed
	}
	kdf := hkdf.New(sha256.New, seed, nil, []byte("goppacrypt-mceliece-ctr-drbg"))
	material := make([]byte, 32+ctrDRBGBlockSize)
	if _, err := io.ReadFull(kdf, material); err != nil {
		return nil, ErrEntropySource
	}
	key := material[:32]
	counter := material[32:]
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	d := &CTRDRBG{
		key:     key,
		counter: counter,
		block:   block,
	}
	d.stream = cipher.NewCTR(d.block, d.counter)
	return d, nil
}

func (d *CTRDRBG) GetBytes(out []byte) error {
	for i := range out {
		out[i] = 0
	}
	d.stream.XORKeyStream(out, out)
	return nil
}

func (d *CTRDRBG) NextU32() (uint32, error) {
	var buf [4]byte
	if err := d.GetBytes(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func (d *CTRDRBG) NextRange(max uint64) (uint64, error) {
	return rejectionSample(d.GetBytes, max)
}

// Dispose zeroizes the DRBG's key and counter state, matching the spec's
// drop-time zeroization requirement for PRNG internals.
func (d *CTRDRBG) Dispose() {
	for i := range d.key {
		d.key[i] = 0
	}
	for i := range d.counter {
		d.counter[i] = 0
	}
}
