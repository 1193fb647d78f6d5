// SPDX-License-Identifier: MIT

package flux

import (
	"gopkg.in/yaml.v3"
)

// Summary is the exportable digest of a ReactiveFlux: scalars and vectors,
// no matrices. RateError replaces Rate and MFPTError replaces MFPT when the
// corresponding value is degenerate.
type Summary struct {
	Kind              string    `yaml:"kind"`
	States            int       `yaml:"states"`
	A                 []int     `yaml:"a,flow"`
	B                 []int     `yaml:"b,flow"`
	TotalFlux         float64   `yaml:"total_flux"`
	Rate              float64   `yaml:"rate,omitempty"`
	MFPT              float64   `yaml:"mfpt,omitempty"`
	RateError         string    `yaml:"rate_error,omitempty"`
	MFPTError         string    `yaml:"mfpt_error,omitempty"`
	Stationary        []float64 `yaml:"stationary_distribution,flow"`
	BackwardCommittor []float64 `yaml:"backward_committor,flow"`
	ForwardCommittor  []float64 `yaml:"forward_committor,flow"`
}

// Summary collects the scalar results and copies of the vectors.
func (rf *ReactiveFlux) Summary() Summary {
	s := Summary{
		Kind:              rf.Kind().String(),
		States:            rf.N(),
		A:                 rf.A(),
		B:                 rf.B(),
		TotalFlux:         rf.total,
		Stationary:        rf.StationaryDistribution(),
		BackwardCommittor: rf.BackwardCommittor(),
		ForwardCommittor:  rf.ForwardCommittor(),
	}
	if rf.rateErr != nil {
		s.RateError = rf.rateErr.Error()
	} else {
		s.Rate = rf.rate
	}
	if rf.mfptErr != nil {
		s.MFPTError = rf.mfptErr.Error()
	} else {
		s.MFPT = rf.mfpt
	}

	return s
}

// YAML renders s as a YAML document.
func (s Summary) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// ParseSummary decodes a document produced by Summary.YAML.
func ParseSummary(data []byte) (Summary, error) {
	var s Summary
	err := yaml.Unmarshal(data, &s)

	return s, err
}
