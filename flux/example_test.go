// SPDX-License-Identifier: MIT
package flux_test

import (
	"fmt"

	"github.com/katalvlaran/lvflux/flux"
	"github.com/katalvlaran/lvflux/matrix"
)

// ExampleNew computes the reactive flux of a three-state chain where
// A ∪ B covers every state.
func ExampleNew() {
	T, _ := matrix.NewDenseFrom(3, 3, []float64{
		0.5, 0.5, 0,
		0.25, 0.5, 0.25,
		0, 0.5, 0.5,
	})
	rf, err := flux.New(T, []int{0, 1}, []int{2})
	if err != nil {
		fmt.Println(err)
		return
	}
	k, _ := rf.Rate()
	fmt.Printf("total=%.4f rate=%.4f\n", rf.TotalFlux(), k)
	// Output: total=0.1250 rate=0.1667
}

// ExamplePathways splits a net flux into its two routes.
func ExamplePathways() {
	F, _ := matrix.CSRFromTriplets(4, 4, []matrix.Triplet{
		{Row: 0, Col: 1, Val: 0.3},
		{Row: 0, Col: 2, Val: 0.7},
		{Row: 1, Col: 3, Val: 0.3},
		{Row: 2, Col: 3, Val: 0.7},
	})
	paths, _ := flux.Pathways(F, []int{0}, []int{3})
	for _, p := range paths {
		fmt.Printf("%v %.1f\n", p.States, p.Flux)
	}
	// Output:
	// [0 2 3] 0.7
	// [0 1 3] 0.3
}
