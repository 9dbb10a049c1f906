// Package perm implements random permutations of {0,...,n-1}, used to hide
// the systematic-form structure of a Goppa code's parity-check matrix.
package perm

import (
	"errors"

	"github.com/goppacrypt/mceliece/bitmatrix"
)

// ErrNotPermutation is returned when a caller-supplied index slice is not a
// bijection on [0,n).
var ErrNotPermutation = errors.New("perm: not a valid permutation")

// Permutation is a bijection on {0,...,n-1}.
type Permutation struct {
	p []int
}

// New validates and wraps an explicit permutation.
func New(p []int) (*Permutation, error) {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return nil, ErrNotPermutation
		}
		seen[v] = true
	}
	cp := make([]int, len(p))
	copy(cp, p)
	return &Permutation{p: cp}, nil
}

// ranger is the minimal randomness source Random needs; it matches the
// subset of the PRNG facade used throughout this module.
type ranger interface {
	NextRange(max uint64) (uint64, error)
}

// Random builds a uniformly random permutation of {0,...,n-1} via the
// standard Fisher-Yates shuffle, drawing each swap index from r.
func Random(n int, r ranger) (*Permutation, error) {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j, err := r.NextRange(uint64(i + 1))
		if err != nil {
			return nil, err
		}
		p[i], p[int(j)] = p[int(j)], p[i]
	}
	return &Permutation{p: p}, nil
}

// Len returns n.
func (pm *Permutation) Len() int { return len(pm.p) }

// At returns pm(i).
func (pm *Permutation) At(i int) int { return pm.p[i] }

// Ints returns the underlying index slice (not a copy: callers must not
// mutate it).
func (pm *Permutation) Ints() []int { return pm.p }

// Invert returns the inverse permutation.
func (pm *Permutation) Invert() *Permutation {
	inv := make([]int, len(pm.p))
	for i, v := range pm.p {
		inv[v] = i
	}
	return &Permutation{p: inv}
}

// Compose returns the permutation i -> pm(other(i)).
func (pm *Permutation) Compose(other *Permutation) *Permutation {
	out := make([]int, len(pm.p))
	for i := range out {
		out[i] = pm.p[other.p[i]]
	}
	return &Permutation{p: out}
}

// Scatter returns a vector w such that w[pm.At(i)] = v[i] for all i: it
// applies the permutation as "move element i to position pm(i)".
func (pm *Permutation) Scatter(v *bitmatrix.Vector) *bitmatrix.Vector {
	out := bitmatrix.NewVector(v.N)
	for i := 0; i < v.N; i++ {
		out.Set(pm.p[i], v.Get(i))
	}
	return out
}

// Gather returns a vector w such that w[i] = v[pm.At(i)] for all i: it is
// the inverse operation of Scatter for the same permutation.
func (pm *Permutation) Gather(v *bitmatrix.Vector) *bitmatrix.Vector {
	out := bitmatrix.NewVector(v.N)
	for i := 0; i < v.N; i++ {
		out.Set(i, v.Get(pm.p[i]))
	}
	return out
}
