// SPDX-License-Identifier: MIT

// Package testutil provides reference oracles for tests: a birth–death chain
// whose stationary distribution, committors, fluxes and rate have closed forms.
package testutil

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvflux/matrix"
)

// ErrBadChain is returned for rates that do not describe a birth–death chain.
var ErrBadChain = errors.New("testutil: invalid birth-death chain")

// BirthDeath is the chain on {0..n−1} with P(i→i+1) = p[i], P(i→i−1) = q[i]
// and P(i→i) = 1 − p[i] − q[i].
type BirthDeath struct {
	q, p []float64
}

// NewBirthDeath validates q[0] == 0, p[n−1] == 0 and 0 ≤ p[i]+q[i] ≤ 1.
func NewBirthDeath(q, p []float64) (*BirthDeath, error) {
	n := len(q)
	if n < 2 || len(p) != n {
		return nil, fmt.Errorf("lengths %d/%d: %w", len(q), len(p), ErrBadChain)
	}
	if q[0] != 0 || p[n-1] != 0 {
		return nil, fmt.Errorf("boundary rates q[0]=%g p[n-1]=%g: %w", q[0], p[n-1], ErrBadChain)
	}
	for i := range q {
		if q[i] < 0 || p[i] < 0 || q[i]+p[i] > 1 {
			return nil, fmt.Errorf("state %d: %w", i, ErrBadChain)
		}
	}

	return &BirthDeath{q: append([]float64(nil), q...), p: append([]float64(nil), p...)}, nil
}

// ScenarioChain is the 10-state chain used throughout the tests: uniform
// rates 0.5 except p[4] = 0.01 and q[6] = 0.1.
func ScenarioChain() *BirthDeath {
	const n = 10
	q := make([]float64, n)
	p := make([]float64, n)
	for i := 0; i < n; i++ {
		q[i], p[i] = 0.5, 0.5
	}
	q[0], p[n-1] = 0, 0
	p[4] = 0.01
	q[6] = 0.1
	bd, err := NewBirthDeath(q, p)
	if err != nil {
		panic(err)
	}

	return bd
}

// N returns the number of states.
func (bd *BirthDeath) N() int { return len(bd.q) }

// TransitionMatrix returns the tridiagonal transition matrix as *Dense.
func (bd *BirthDeath) TransitionMatrix() *matrix.Dense {
	n := bd.N()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1 - bd.p[i] - bd.q[i]
		if i+1 < n {
			data[i*n+i+1] = bd.p[i]
		}
		if i > 0 {
			data[i*n+i-1] = bd.q[i]
		}
	}
	T, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		panic(err)
	}

	return T
}

// TransitionCSR returns the same matrix in compressed-row storage.
func (bd *BirthDeath) TransitionCSR() *matrix.CSR {
	T, err := matrix.CSRFromDense(bd.TransitionMatrix())
	if err != nil {
		panic(err)
	}

	return T
}

// Stationary returns mu from detailed balance: mu[i]/mu[i−1] = p[i−1]/q[i].
func (bd *BirthDeath) Stationary() []float64 {
	n := bd.N()
	a := make([]float64, n)
	a[0] = 1
	var sum = a[0]
	for i := 1; i < n; i++ {
		a[i] = a[i-1] * bd.p[i-1] / bd.q[i]
		sum += a[i]
	}
	for i := range a {
		a[i] /= sum
	}

	return a
}

// ForwardCommittor returns q+ for A = {0..a}, B = {b..n−1}, a < b.
func (bd *BirthDeath) ForwardCommittor(a, b int) []float64 {
	n := bd.N()
	u := make([]float64, n)
	// g[0] = 1, g[k] = Π_{i=1..k} q[i]/p[i].
	g := make([]float64, n-1)
	g[0] = 1
	for k := 1; k < n-1; k++ {
		g[k] = g[k-1] * bd.q[k] / bd.p[k]
	}
	var total float64
	for k := a; k < b; k++ {
		total += g[k]
	}
	var partial float64
	for s := a + 1; s < b; s++ {
		partial += g[s-1]
		u[s] = partial / total
	}
	for s := b; s < n; s++ {
		u[s] = 1
	}

	return u
}

// BackwardCommittor returns q− = 1 − q+ (the chain is reversible).
func (bd *BirthDeath) BackwardCommittor(a, b int) []float64 {
	u := bd.ForwardCommittor(a, b)
	for i := range u {
		u[i] = 1 - u[i]
	}

	return u
}

// GrossFlux returns F[i,j] = mu[i] q−[i] T[i,j] q+[j] with a zero diagonal.
func (bd *BirthDeath) GrossFlux(a, b int) *matrix.Dense {
	n := bd.N()
	mu := bd.Stationary()
	qm := bd.BackwardCommittor(a, b)
	qp := bd.ForwardCommittor(a, b)
	T := bd.TransitionMatrix()
	F, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			t, _ := T.At(i, j)
			_ = F.Set(i, j, mu[i]*qm[i]*t*qp[j])
		}
	}

	return F
}

// NetFlux returns max(F − Fᵀ, 0).
func (bd *BirthDeath) NetFlux(a, b int) *matrix.Dense {
	F := bd.GrossFlux(a, b)
	n := bd.N()
	out, _ := matrix.NewDense(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			fij, _ := F.At(i, j)
			fji, _ := F.At(j, i)
			if d := fij - fji; d > 0 {
				_ = out.Set(i, j, d)
			}
		}
	}

	return out
}

// TotalFlux sums the net flux from {0..a} to {a+1..n−1}.
func (bd *BirthDeath) TotalFlux(a, b int) float64 {
	F := bd.NetFlux(a, b)
	var tot float64
	for i := 0; i <= a; i++ {
		for j := a + 1; j < bd.N(); j++ {
			v, _ := F.At(i, j)
			tot += v
		}
	}

	return tot
}

// Rate returns TotalFlux / Σ_i mu[i] q−[i].
func (bd *BirthDeath) Rate(a, b int) float64 {
	mu := bd.Stationary()
	qm := bd.BackwardCommittor(a, b)
	var w float64
	for i := range mu {
		w += mu[i] * qm[i]
	}

	return bd.TotalFlux(a, b) / w
}

// States returns {lo..hi} as a slice.
func States(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for s := lo; s <= hi; s++ {
		out = append(out, s)
	}

	return out
}
