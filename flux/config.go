// SPDX-License-Identifier: MIT

package flux

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvflux/markov"
)

// Config is the serializable form of the numeric Options.
// Zero solver fields select the matrix package defaults.
//
// Example document:
//
//	stochastic_tolerance: 1e-9
//	unit_eigen_tolerance: 1e-8
//	committor_tolerance: 1e-10
//	rate_epsilon: 1e-300
//	solver:
//	  tolerance: 1e-13
//	  max_iterations: 10000
//	  restart: 100
type Config struct {
	StochasticTolerance float64      `yaml:"stochastic_tolerance"`
	UnitEigenTolerance  float64      `yaml:"unit_eigen_tolerance"`
	CommittorTolerance  float64      `yaml:"committor_tolerance"`
	RateEpsilon         float64      `yaml:"rate_epsilon"`
	Solver              SolverConfig `yaml:"solver"`
}

// SolverConfig holds the GMRES settings of the sparse paths.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
	Restart       int     `yaml:"restart"`
}

// DefaultConfig returns the Config equivalent of DefaultOptions.
func DefaultConfig() Config {
	return Config{
		StochasticTolerance: markov.DefaultStochasticTolerance,
		UnitEigenTolerance:  markov.DefaultUnitEigenTolerance,
		CommittorTolerance:  markov.DefaultCommittorTolerance,
		RateEpsilon:         DefaultRateEpsilon,
	}
}

// ParseConfig decodes a YAML document on top of DefaultConfig and validates
// the result. Unknown keys are rejected.
//
// Errors: ErrInvalidConfig (wrapping the decoder error for malformed YAML).
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("ParseConfig: %w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("ParseConfig: %w", err)
	}

	return c, nil
}

// Validate checks every field: tolerances finite and >= 0, solver tolerance
// in [0, 1), counts >= 0.
func (c Config) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"stochastic_tolerance", c.StochasticTolerance},
		{"unit_eigen_tolerance", c.UnitEigenTolerance},
		{"committor_tolerance", c.CommittorTolerance},
		{"rate_epsilon", c.RateEpsilon},
		{"solver.tolerance", c.Solver.Tolerance},
	}
	for _, f := range fields {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s=%g: %w", f.name, f.v, ErrInvalidConfig)
		}
	}
	if c.Solver.Tolerance >= 1 {
		return fmt.Errorf("solver.tolerance=%g: %w", c.Solver.Tolerance, ErrInvalidConfig)
	}
	if c.Solver.MaxIterations < 0 {
		return fmt.Errorf("solver.max_iterations=%d: %w", c.Solver.MaxIterations, ErrInvalidConfig)
	}
	if c.Solver.Restart < 0 {
		return fmt.Errorf("solver.restart=%d: %w", c.Solver.Restart, ErrInvalidConfig)
	}

	return nil
}

// YAML renders c as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
