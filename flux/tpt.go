// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"

	"github.com/katalvlaran/lvflux/markov"
	"github.com/katalvlaran/lvflux/matrix"
)

// ReactiveFlux holds every TPT quantity of one (T, A, B) triple.
// All fields are computed by New and never change; accessors return copies,
// so a *ReactiveFlux is safe for concurrent reads.
type ReactiveFlux struct {
	backend Backend
	part    markov.Partition

	mu     []float64
	qminus []float64
	qplus  []float64

	gross matrix.Matrix
	net   matrix.Matrix
	total float64

	rate    float64
	mfpt    float64
	rateErr error
	mfptErr error // a zero rate has no finite mfpt
}

// New computes the reactive flux of T from A to B.
// MAIN DESCRIPTION:
//   - Cold start: mu, q− and q+ are solved with package markov.
//   - Warm start: WithStationaryDistribution / WithBackwardCommittor /
//     WithForwardCommittor supply them; supplied vectors are validated and no
//     solve runs for them. Any subset may be supplied.
//
// Implementation:
//   - Stage 1: choose the Backend from the kind of T; validate T and the sets.
//   - Stage 2: resolve mu, then q− (reusing mu), then q+.
//   - Stage 3: gross flux, net flux, total flux, rate and mfpt, eagerly.
//
// Errors:
//   - Validation class: ErrUnsupportedStorage, ErrNotStochastic, ErrEmptySet,
//     ErrOverlappingSets, ErrStateOutOfRange, ErrLengthMismatch,
//     ErrInvalidVector, ErrBoundaryMismatch.
//   - Numerical class: any solver failure of package markov.
//   - A degenerate rate does not fail New; it is returned by Rate and MFPT.
//     A zero total flux over a positive denominator is a valid rate of 0;
//     only MFPT reports it as degenerate.
//
// AI-Hints:
//   - Nothing is returned on failure; there is no partially built value.
func New(T matrix.Matrix, A, B []int, opts ...Option) (*ReactiveFlux, error) {
	o := gather(opts...)
	be, err := BackendFor(T)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if _, err = markov.ValidateTransition(T, o.StochasticTolerance); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	p, err := markov.NewPartition(T.Rows(), A, B)
	if err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}

	rf := &ReactiveFlux{backend: be, part: p}
	if err = rf.resolve(T, o); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if rf.gross, err = fluxMatrix(be, T, rf.mu, rf.qminus, rf.qplus, false); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if rf.net, err = be.NetFlux(rf.gross); err != nil {
		return nil, fmt.Errorf("New: %w: %w", ErrNumerical, err)
	}
	rf.total = crossing(rf.net, func(i, j int) bool { return p.InA(i) && !p.InA(j) })
	rf.rate, rf.rateErr = Rate(rf.total, rf.mu, rf.qminus, WithRateEpsilon(o.RateEpsilon))
	rf.mfpt, rf.mfptErr = MFPT(rf.total, rf.mu, rf.qminus, WithRateEpsilon(o.RateEpsilon))

	o.Logger.Debug("reactive flux computed",
		"kind", be.Kind().String(), "n", p.N, "transition_states", len(p.C),
		"total_flux", rf.total, "rate", rf.rate, "rate_error", rf.rateErr != nil, "mfpt_error", rf.mfptErr != nil)

	return rf, nil
}

// resolve validates supplied vectors and solves for the missing ones.
func (rf *ReactiveFlux) resolve(T matrix.Matrix, o Options) error {
	var err error
	p := rf.part

	if o.Stationary != nil {
		if err = markov.ValidateDistribution(o.Stationary, p.N, o.StochasticTolerance); err != nil {
			return err
		}
		rf.mu = o.Stationary
	} else if rf.mu, err = markov.StationaryDistribution(T, o.markovOptions()...); err != nil {
		return err
	}

	mopts := append(o.markovOptions(), markov.WithStationary(rf.mu))
	if rf.qminus, err = committorFor(T, p, false, o.BackwardCommittor, o, mopts); err != nil {
		return err
	}
	if rf.qplus, err = committorFor(T, p, true, o.ForwardCommittor, o, mopts); err != nil {
		return err
	}
	o.Logger.Debug("reactive flux inputs",
		"stationary_supplied", o.Stationary != nil,
		"backward_supplied", o.BackwardCommittor != nil,
		"forward_supplied", o.ForwardCommittor != nil)

	return nil
}

// committorFor returns the supplied committor after validation or solves it.
func committorFor(T matrix.Matrix, p markov.Partition, forward bool, supplied []float64, o Options, mopts []markov.Option) ([]float64, error) {
	if supplied != nil {
		if err := markov.ValidateCommittor(supplied, p, forward, o.CommittorTolerance); err != nil {
			return nil, err
		}
		return supplied, nil
	}

	return markov.CommittorWithPartition(T, p, forward, mopts...)
}

// Kind reports the storage kind fixed at construction.
func (rf *ReactiveFlux) Kind() matrix.Kind { return rf.backend.Kind() }

// N returns the number of states.
func (rf *ReactiveFlux) N() int { return rf.part.N }

// A returns the sorted reactant set.
func (rf *ReactiveFlux) A() []int { return append([]int(nil), rf.part.A...) }

// B returns the sorted product set.
func (rf *ReactiveFlux) B() []int { return append([]int(nil), rf.part.B...) }

// StationaryDistribution returns a copy of mu.
func (rf *ReactiveFlux) StationaryDistribution() []float64 { return append([]float64(nil), rf.mu...) }

// BackwardCommittor returns a copy of q−.
func (rf *ReactiveFlux) BackwardCommittor() []float64 { return append([]float64(nil), rf.qminus...) }

// ForwardCommittor returns a copy of q+.
func (rf *ReactiveFlux) ForwardCommittor() []float64 { return append([]float64(nil), rf.qplus...) }

// GrossFlux returns a copy of F, with the storage kind of T.
func (rf *ReactiveFlux) GrossFlux() matrix.Matrix { return rf.gross.Clone() }

// NetFlux returns a copy of F+, with the storage kind of T.
func (rf *ReactiveFlux) NetFlux() matrix.Matrix { return rf.net.Clone() }

// TotalFlux returns the net reactive current leaving A.
func (rf *ReactiveFlux) TotalFlux() float64 { return rf.total }

// Rate returns the transition rate A→B, or the ErrDegenerateRate recorded
// at construction.
func (rf *ReactiveFlux) Rate() (float64, error) {
	if rf.rateErr != nil {
		return 0, rf.rateErr
	}
	return rf.rate, nil
}

// MFPT returns the mean first passage time A→B (1/rate).
func (rf *ReactiveFlux) MFPT() (float64, error) {
	if rf.mfptErr != nil {
		return 0, rf.mfptErr
	}
	return rf.mfpt, nil
}

// Pathways decomposes the net flux into A→B pathways; see Pathways.
func (rf *ReactiveFlux) Pathways(opts ...PathwayOption) ([]Pathway, error) {
	return Pathways(rf.net, rf.part.A, rf.part.B, opts...)
}

// CoarseGrain returns the gross and net flux between groups of states.
// See CoarseGrain for the group rules.
func (rf *ReactiveFlux) CoarseGrain(sets [][]int) (gross, net *matrix.Dense, err error) {
	if gross, err = CoarseGrain(rf.gross, sets); err != nil {
		return nil, nil, err
	}
	m, err := ToNetFlux(gross)
	if err != nil {
		return nil, nil, err
	}

	return gross, m.(*matrix.Dense), nil
}
