// SPDX-License-Identifier: MIT

package markov

import "fmt"

// Partition splits the states {0..N−1} into the reactant set A, the product
// set B and the transition region C = {0..N−1} \ (A ∪ B).
// A, B and C are sorted and free of duplicates.
type Partition struct {
	N       int
	A, B, C []int

	inA, inB []bool
	pos      []int // index of a state inside C, −1 for boundary states
}

// NewPartition validates A and B against n and builds the partition.
//
// Errors (all wrap ErrValidation):
//   - ErrEmptySet if A or B is empty.
//   - ErrStateOutOfRange if an index lies outside [0, n).
//   - ErrOverlappingSets if A ∩ B ≠ ∅.
//
// Complexity: O(n + |A| + |B|).
func NewPartition(n int, A, B []int) (Partition, error) {
	if len(A) == 0 {
		return Partition{}, fmt.Errorf("A: %w", ErrEmptySet)
	}
	if len(B) == 0 {
		return Partition{}, fmt.Errorf("B: %w", ErrEmptySet)
	}
	p := Partition{
		N:   n,
		inA: make([]bool, n),
		inB: make([]bool, n),
		pos: make([]int, n),
	}
	for _, s := range A {
		if s < 0 || s >= n {
			return Partition{}, fmt.Errorf("A contains %d (n=%d): %w", s, n, ErrStateOutOfRange)
		}
		p.inA[s] = true
	}
	for _, s := range B {
		if s < 0 || s >= n {
			return Partition{}, fmt.Errorf("B contains %d (n=%d): %w", s, n, ErrStateOutOfRange)
		}
		if p.inA[s] {
			return Partition{}, fmt.Errorf("state %d: %w", s, ErrOverlappingSets)
		}
		p.inB[s] = true
	}
	for s := 0; s < n; s++ {
		switch {
		case p.inA[s]:
			p.A = append(p.A, s)
			p.pos[s] = -1
		case p.inB[s]:
			p.B = append(p.B, s)
			p.pos[s] = -1
		default:
			p.pos[s] = len(p.C)
			p.C = append(p.C, s)
		}
	}

	return p, nil
}

// InA reports whether state s belongs to A.
func (p Partition) InA(s int) bool { return p.inA[s] }

// InB reports whether state s belongs to B.
func (p Partition) InB(s int) bool { return p.inB[s] }

// Index returns the position of s inside C, or −1 when s ∈ A ∪ B.
func (p Partition) Index(s int) int { return p.pos[s] }
