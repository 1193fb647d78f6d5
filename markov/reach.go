// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"

	"github.com/katalvlaran/lvflux/matrix"
)

// checkBoundaryReachable runs a breadth-first search from A ∪ B over the
// reversed transition graph (stored entries with T[i,j] > 0). I − T_CC is
// nonsingular exactly when every state of C reaches A ∪ B, so an unreached
// state is reported as ErrSingularSystem before any solve.
//
// Complexity: O(n + nnz).
func checkBoundaryReachable(T matrix.Matrix, p Partition) error {
	// Reverse adjacency in compressed form: preds of j are src[off[j]:off[j+1]].
	off := make([]int, p.N+1)
	_ = matrix.Visit(T, func(i, j int, v float64) bool {
		if v > 0 && i != j {
			off[j+1]++
		}
		return true
	})
	for s := 0; s < p.N; s++ {
		off[s+1] += off[s]
	}
	src := make([]int, off[p.N])
	next := append([]int(nil), off[:p.N]...)
	_ = matrix.Visit(T, func(i, j int, v float64) bool {
		if v > 0 && i != j {
			src[next[j]] = i
			next[j]++
		}
		return true
	})

	visited := make([]bool, p.N)
	queue := make([]int, 0, p.N)
	for _, s := range p.A {
		visited[s] = true
		queue = append(queue, s)
	}
	for _, s := range p.B {
		visited[s] = true
		queue = append(queue, s)
	}
	for len(queue) > 0 {
		j := queue[0]
		queue = queue[1:]
		for _, i := range src[off[j]:off[j+1]] {
			if !visited[i] {
				visited[i] = true
				queue = append(queue, i)
			}
		}
	}
	for _, s := range p.C {
		if !visited[s] {
			return fmt.Errorf("state %d cannot reach A ∪ B: %w", s, ErrSingularSystem)
		}
	}

	return nil
}
