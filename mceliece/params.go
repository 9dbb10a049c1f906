package mceliece

import (
	"encoding/binary"
	"fmt"

	"github.com/goppacrypt/mceliece/digest"
	"github.com/goppacrypt/mceliece/gf2poly"
)

// Engine selects one of the three interchangeable CCA2 conversions. Tagged
// variant over inheritance, dispatched by one switch each in Encrypt and
// Decrypt.
type Engine byte

const (
	Fujisaki Engine = iota + 1
	KobaraImai
	Pointcheval
)

func (e Engine) String() string {
	switch e {
	case Fujisaki:
		return "Fujisaki"
	case KobaraImai:
		return "KobaraImai"
	case Pointcheval:
		return "Pointcheval"
	default:
		return fmt.Sprintf("Engine(%d)", byte(e))
	}
}

// PRNGKind identifies the randomness source a Params value was configured
// with, for wire-format round-tripping; the actual Prng instance used at
// call time is supplied by the caller, not reconstructed from this tag.
type PRNGKind byte

const (
	PRNGOS PRNGKind = iota + 1
	PRNGCTRDRBG
)

// wireFieldLen is the byte length of each little-endian 32-bit field in
// the parameter-set wire format.
const wireFieldLen = 4

// paramsWireLen is the total encoded length: six 32-bit fields plus the
// 3-byte OID.
const paramsWireLen = 6*wireFieldLen + 3

// DefaultKobaraImaiInfo is the stable domain separator Kobara-Imai uses
// when a Params value does not override it. Per §4.8.3's open question,
// this is a construction-time parameter, not a package-wide mutable
// global.
var DefaultKobaraImaiInfo = []byte("goppacrypt/mceliece/kobara-imai/v1")

// Params is the parameter set (§3): field degree, Goppa polynomial degree,
// field polynomial, selected engine/digest/prng, and a stable 3-byte OID.
// Params values are immutable after construction.
type Params struct {
	Engine         Engine
	Digest         digest.Kind
	PRNG           PRNGKind
	M              uint16
	T              uint16
	FieldPoly      uint32
	OID            [3]byte
	KobaraImaiInfo []byte
}

// N returns the code length 2^M.
func (p *Params) N() int { return 1 << p.M }

// New validates and constructs a Params value. Unrecognized engine/digest/
// prng, m out of [1,16], t <= 0 or t >= n, or a non-irreducible field
// polynomial all fail construction, per §7's InvalidParameter.
func New(engine Engine, dig digest.Kind, prngKind PRNGKind, m, t uint16, fieldPoly uint32, oid [3]byte) (*Params, error) {
	switch engine {
	case Fujisaki, KobaraImai, Pointcheval:
	default:
		return nil, ErrInvalidParameter
	}
	switch prngKind {
	case PRNGOS, PRNGCTRDRBG:
	default:
		return nil, ErrInvalidParameter
	}
	if m < 1 || m > 16 {
		return nil, ErrInvalidParameter
	}
	n := 1 << m
	if t == 0 || int(t) >= n {
		return nil, ErrInvalidParameter
	}
	if !gf2poly.IsIrreducible(gf2poly.Poly(fieldPoly), int(m)) {
		return nil, ErrInvalidParameter
	}
	// Recognized-enum check, not a constructibility check: a Skein Kind
	// must survive New/Decode even though digest.New itself can't build one
	// yet, so that a Params value naming Skein keeps round-tripping through
	// Encode/Decode per §6's wire-format stability guarantee. Encrypt/Sign
	// still fail closed via digest.New's own ErrInvalidParameter the moment
	// a Skein Params is actually used.
	if !digest.IsRecognized(dig) {
		return nil, ErrInvalidParameter
	}
	info := DefaultKobaraImaiInfo
	return &Params{
		Engine:         engine,
		Digest:         dig,
		PRNG:           prngKind,
		M:              m,
		T:              t,
		FieldPoly:      fieldPoly,
		OID:            oid,
		KobaraImaiInfo: info,
	}, nil
}

// WithKobaraImaiInfo returns a copy of p with its Kobara-Imai domain
// separator overridden.
func (p *Params) WithKobaraImaiInfo(info []byte) *Params {
	q := *p
	q.KobaraImaiInfo = append([]byte(nil), info...)
	return &q
}

// Encode serializes p per §6's parameter-set wire format: little-endian
// 32-bit fields (engine, digest, prng, M, T, FieldPoly), then 3 OID bytes.
func (p *Params) Encode() []byte {
	buf := make([]byte, paramsWireLen)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Engine))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.Digest))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.PRNG))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(p.M))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(p.T))
	binary.LittleEndian.PutUint32(buf[20:24], p.FieldPoly)
	copy(buf[24:27], p.OID[:])
	return buf
}

// Decode reconstructs a Params value from its wire encoding, re-validating
// exactly as New does.
func Decode(data []byte) (*Params, error) {
	if len(data) < paramsWireLen {
		return nil, ErrIoError
	}
	engine := Engine(binary.LittleEndian.Uint32(data[0:4]))
	dig := digest.Kind(binary.LittleEndian.Uint32(data[4:8]))
	prngKind := PRNGKind(binary.LittleEndian.Uint32(data[8:12]))
	m := uint16(binary.LittleEndian.Uint32(data[12:16]))
	t := uint16(binary.LittleEndian.Uint32(data[16:20]))
	fieldPoly := binary.LittleEndian.Uint32(data[20:24])
	var oid [3]byte
	copy(oid[:], data[24:27])
	return New(engine, dig, prngKind, m, t, fieldPoly, oid)
}
