// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"

	"github.com/katalvlaran/lvflux/matrix"
)

// Backend is the storage capability behind every flux operation. One
// implementation exists per matrix.Kind; it is chosen once from the input
// and every matrix it returns has that same kind.
type Backend interface {
	// Kind reports the storage kind handled by the backend.
	Kind() matrix.Kind

	// GrossFlux returns F[i,j] = mu_i·q−_i·T[i,j]·q+_j for i≠j and a zero
	// diagonal. Vectors are assumed validated against T.
	GrossFlux(T matrix.Matrix, mu, qminus, qplus []float64) (matrix.Matrix, error)

	// NetFlux returns max(F − Fᵀ, 0) element-wise.
	NetFlux(F matrix.Matrix) (matrix.Matrix, error)
}

// BackendFor returns the Backend of m's storage kind.
// Errors: ErrUnsupportedStorage for nil or foreign matrices.
func BackendFor(m matrix.Matrix) (Backend, error) {
	switch matrix.KindOf(m) {
	case matrix.KindDense:
		return denseBackend{}, nil
	case matrix.KindSparse:
		return sparseBackend{}, nil
	}

	return nil, fmt.Errorf("matrix %T: %w", m, ErrUnsupportedStorage)
}

// checkKind rejects a matrix that does not belong to be.
func checkKind(be Backend, m matrix.Matrix) error {
	if k := matrix.KindOf(m); k != be.Kind() {
		return fmt.Errorf("%s matrix on the %s backend: %w", k, be.Kind(), ErrUnsupportedStorage)
	}

	return nil
}
