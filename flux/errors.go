// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"

	"github.com/katalvlaran/lvflux/markov"
)

// Error classes, shared with package markov.
var (
	ErrValidation     = markov.ErrValidation
	ErrNumerical      = markov.ErrNumerical
	ErrDegenerateRate = markov.ErrDegenerateRate
)

// Validation errors, shared with package markov.
var (
	ErrEmptySet           = markov.ErrEmptySet
	ErrOverlappingSets    = markov.ErrOverlappingSets
	ErrStateOutOfRange    = markov.ErrStateOutOfRange
	ErrLengthMismatch     = markov.ErrLengthMismatch
	ErrUnsupportedStorage = markov.ErrUnsupportedStorage
	ErrNotStochastic      = markov.ErrNotStochastic
	ErrBoundaryMismatch   = markov.ErrBoundaryMismatch
	ErrInvalidVector      = markov.ErrInvalidVector
)

// Numerical errors, shared with package markov.
var (
	ErrNoUnitEigenvalue    = markov.ErrNoUnitEigenvalue
	ErrEigenFailed         = markov.ErrEigenFailed
	ErrSingularSystem      = markov.ErrSingularSystem
	ErrNotConverged        = markov.ErrNotConverged
	ErrCommittorOutOfRange = markov.ErrCommittorOutOfRange
)

// Errors owned by this package.
var (
	// ErrInvalidConfig indicates a Config with an out-of-range field.
	ErrInvalidConfig = fmt.Errorf("%w: invalid configuration", ErrValidation)

	// ErrNoPathway indicates a net flux with no positive A→B path.
	ErrNoPathway = fmt.Errorf("%w: no reactive pathway", ErrNumerical)
)
