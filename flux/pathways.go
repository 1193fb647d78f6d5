// SPDX-License-Identifier: MIT

package flux

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/lvflux/matrix"
)

// Pathway is one A→B state sequence carrying part of the net flux.
//
// States   – visited states, first in A, last in B.
// Flux     – bottleneck (smallest edge) flux removed with this pathway.
// Fraction – Flux divided by the total flux out of A.
type Pathway struct {
	States   []int
	Flux     float64
	Fraction float64
}

// Pathways decomposes a net flux matrix into reactive pathways.
// MAIN DESCRIPTION:
//   - Repeatedly find the A→B path with the largest bottleneck, record it,
//     and subtract the bottleneck from every edge on it.
//
// Implementation:
//   - Stage 1: validate F, A and B; build out-adjacency of positive entries,
//     dropping edges into A and out of B.
//   - Stage 2: widest-path search (a max-heap Dijkstra on the bottleneck)
//     seeded with every state of A.
//   - Stage 3: subtract, repeat until the explained share reaches the
//     requested fraction, MaxPaths is hit, or no path remains.
//
// Errors:
//   - ErrUnsupportedStorage, ErrEmptySet, ErrStateOutOfRange, ErrOverlappingSets.
//   - ErrNoPathway when F carries no flux from A to B.
//
// Complexity:
//   - Time O(P·(E log V)) for P pathways; Space O(V + E).
//
// AI-Hints:
//   - Pass F+ (net flux); gross flux contains cycles that inflate the bottlenecks.
func Pathways(F matrix.Matrix, A, B []int, opts ...PathwayOption) ([]Pathway, error) {
	o := gatherPathway(opts...)
	inA, err := membership(F, A)
	if err != nil {
		return nil, fmt.Errorf("Pathways: A: %w", err)
	}
	inB, err := membership(F, B)
	if err != nil {
		return nil, fmt.Errorf("Pathways: B: %w", err)
	}
	for s := range inA {
		if inA[s] && inB[s] {
			return nil, fmt.Errorf("Pathways: state %d: %w", s, ErrOverlappingSets)
		}
	}
	total := crossing(F, func(i, j int) bool { return inA[i] && !inA[j] })

	r := newWidest(F, inA, inB)
	var (
		paths     []Pathway
		explained float64
	)
	for len(paths) < o.MaxPaths && explained < o.Fraction*total {
		states, bottleneck := r.search()
		if states == nil {
			break
		}
		explained += bottleneck
		paths = append(paths, Pathway{States: states, Flux: bottleneck, Fraction: bottleneck / total})
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("Pathways: %w", ErrNoPathway)
	}

	return paths, nil
}

// arc is an edge with its remaining capacity.
type arc struct {
	to  int
	cap float64
}

// widest holds the residual network of one Pathways call.
type widest struct {
	adj      [][]arc
	inA, inB []bool
	width    []float64
	prev     []int // predecessor state, −1 at the start
	via      []int // arc index in adj[prev[v]]
	done     []bool
}

func newWidest(F matrix.Matrix, inA, inB []bool) *widest {
	n := len(inA)
	r := &widest{
		adj:   make([][]arc, n),
		inA:   inA,
		inB:   inB,
		width: make([]float64, n),
		prev:  make([]int, n),
		via:   make([]int, n),
		done:  make([]bool, n),
	}
	_ = matrix.Visit(F, func(i, j int, v float64) bool {
		if v > 0 && i != j && !inB[i] && !inA[j] {
			r.adj[i] = append(r.adj[i], arc{to: j, cap: v})
		}
		return true
	})

	return r
}

// search finds the widest path from A to B in the residual network and
// removes its bottleneck. It returns nil when B is unreachable.
func (r *widest) search() ([]int, float64) {
	var pq widthPQ
	for s := range r.width {
		r.width[s], r.prev[s], r.via[s], r.done[s] = 0, -1, -1, false
		if r.inA[s] {
			r.width[s] = math.Inf(1)
			heap.Push(&pq, &widthItem{state: s, width: r.width[s]})
		}
	}

	end := -1
	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*widthItem)
		u := item.state
		if r.done[u] {
			continue // stale entry
		}
		r.done[u] = true
		if r.inB[u] {
			end = u
			break
		}
		for k, a := range r.adj[u] {
			if a.cap <= 0 || r.done[a.to] {
				continue
			}
			if w := math.Min(r.width[u], a.cap); w > r.width[a.to] {
				r.width[a.to], r.prev[a.to], r.via[a.to] = w, u, k
				heap.Push(&pq, &widthItem{state: a.to, width: w})
			}
		}
	}
	if end < 0 {
		return nil, 0
	}

	bottleneck := r.width[end]
	var states []int
	for v := end; v >= 0; v = r.prev[v] {
		states = append(states, v)
		if u := r.prev[v]; u >= 0 {
			a := &r.adj[u][r.via[v]]
			if a.cap <= bottleneck {
				a.cap = 0
			} else {
				a.cap -= bottleneck
			}
		}
	}
	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}

	return states, bottleneck
}

// widthItem is a state with its current bottleneck width.
type widthItem struct {
	state int
	width float64
}

// widthPQ is a max-heap of *widthItem ordered by width, then by state for
// deterministic ties. Stale entries are skipped on Pop (lazy decrease-key).
type widthPQ []*widthItem

func (pq widthPQ) Len() int { return len(pq) }

func (pq widthPQ) Less(i, j int) bool {
	if pq[i].width != pq[j].width {
		return pq[i].width > pq[j].width
	}
	return pq[i].state < pq[j].state
}

func (pq widthPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *widthPQ) Push(x interface{}) { *pq = append(*pq, x.(*widthItem)) }

func (pq *widthPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
