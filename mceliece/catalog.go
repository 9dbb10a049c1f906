package mceliece

import (
	"sync"

	"github.com/goppacrypt/mceliece/digest"
	"github.com/goppacrypt/mceliece/gf2poly"
	mclog "github.com/goppacrypt/mceliece/log"
)

var catalogLog = mclog.Default().Module("catalog")

// catalogMu guards catalogByName/catalogByOID, following the teacher's
// AlgorithmRegistry sync.RWMutex-guarded map in pq_algorithm_registry.go.
var catalogMu sync.RWMutex

var catalogByName map[string]*Params
var catalogByOID map[[3]byte]*Params

// Security-level labels below are inherited verbatim from the source
// catalog, "?" markers included, per §9: they are not independently
// verified by this module.
func init() {
	catalogByName = make(map[string]*Params)
	catalogByOID = make(map[[3]byte]*Params)
	registerCatalogEntry("M11T40", 11, 40, 1, 1) // security 131?
	registerCatalogEntry("M12T41", 12, 41, 2, 1) // security 148?
	registerCatalogEntry("M13T44", 13, 44, 3, 1) // security 190?
}

// registerCatalogEntry builds a named catalog entry using the canonical
// field polynomial for its degree, Fujisaki/SHA-256/OS-PRNG as the catalog
// default engine (callers needing a different engine construct their own
// Params via New and keep the same M/T/FieldPoly), and an OID of the form
// (1, family, within-family).
func registerCatalogEntry(name string, m, t uint16, family, within byte) {
	fp := uint32(gf2poly.GetIrreducible(uint(m)))
	oid := [3]byte{1, family, within}
	p, err := New(Fujisaki, digest.SHA256, PRNGOS, m, t, fp, oid)
	if err != nil {
		panic("mceliece: built-in catalog entry failed validation: " + name)
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogByName[name] = p
	catalogByOID[oid] = p
}

// CatalogByName looks up a named parameter set (e.g. "M11T40").
func CatalogByName(name string) (*Params, error) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	p, ok := catalogByName[name]
	if !ok {
		catalogLog.Warn("unrecognized parameter set name", "name", name)
		return nil, ErrInvalidParameter
	}
	cp := *p
	return &cp, nil
}

// CatalogByOID looks up a parameter set by its 3-byte OID.
func CatalogByOID(oid [3]byte) (*Params, error) {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	p, ok := catalogByOID[oid]
	if !ok {
		catalogLog.Warn("unrecognized parameter set OID", "oid", oid)
		return nil, ErrInvalidParameter
	}
	cp := *p
	return &cp, nil
}
