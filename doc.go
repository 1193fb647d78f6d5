// Package lvflux computes transition path theory (TPT) quantities for
// discrete Markov chains: stationary distributions, committor probabilities,
// gross and net reactive flux, total flux, rate and reactive pathways between
// two disjoint sets of states A and B.
//
// What is inside?
//
//	matrix/  — Matrix interface, row-major Dense and compressed-row CSR storages,
//	           element-wise kernels, validators, a gonum bridge and restarted GMRES
//	markov/  — stationary distribution and forward/backward committors
//	flux/    — flux matrices, aggregate metrics, pathways, coarse graining and
//	           the ReactiveFlux facade
//
// Dense and sparse inputs travel through parallel implementations selected
// once from the storage kind of the transition matrix; a sparse chain is never
// densified.
//
// Quick example (birth–death chain, A = {0, 1}, B = {8, 9}):
//
//	rf, err := flux.New(T, []int{0, 1}, []int{8, 9})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	k, _ := rf.Rate()
//	fmt.Println(rf.TotalFlux(), k)
//
//	go get github.com/katalvlaran/lvflux
package lvflux
