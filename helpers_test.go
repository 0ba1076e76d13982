/*
Copyright © 2026 the twostream authors.
This file is part of twostream.

twostream is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

twostream is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with twostream.  If not, see <http://www.gnu.org/licenses/>.
*/

package twostream

import (
	"math"
	"testing"
)

// eddington is a delta-Eddington closure for tests in this package.
var eddington = ApproximationFunc(func(_ Grids, _ Profiles, s *RadiatorState, cosZenith []float64) (*SolutionParameters, error) {
	p := NewSolutionParameters(s.NumberOfLayers(), s.NumberOfColumns())
	for i := 0; i < s.NumberOfLayers(); i++ {
		for j := 0; j < s.NumberOfColumns(); j++ {
			omega, g := s.SingleScatteringAlbedo.Get(i, j), s.AsymmetryParameter.Get(i, j)
			gamma3 := (2 - 3*g*cosZenith[j]) / 4
			p.SetCoefficients(i, j, (7-omega*(4+3*g))/4, -(1-omega*(4-3*g))/4, gamma3, 1-gamma3, 0.5)
		}
	}
	return p, nil
})

// singleColumn returns the radiator state of one column.
func singleColumn(taus, omegas, gs []float64) *RadiatorState {
	s := NewRadiatorState(len(taus), 1)
	for i := range taus {
		s.Set(i, 0, taus[i], omegas[i], gs[i])
	}
	return s
}

// prepare runs the pipeline on column 0 of s up to the assembly of the
// tridiagonal system.
func prepare(t *testing.T, s *RadiatorState, b Boundary) (*RadiatorState, *SolutionParameters, *SourceTerms) {
	t.Helper()
	scaled := DeltaScale(s)
	p, err := eddington(nil, nil, scaled, []float64{b.CosZenith})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.EigenBasis(scaled, 0); err != nil {
		t.Fatal(err)
	}
	c := NewSourceTerms(s.NumberOfLayers(), 1)
	c.Compute(scaled, p, 0, b)
	return scaled, p, c
}

// twoLayer is a two-layer column with a reflecting surface.
func twoLayer() (*RadiatorState, Boundary) {
	return singleColumn([]float64{0.3, 1.2}, []float64{0.8, 0.6}, []float64{0.5, 0.3}),
		Boundary{CosZenith: 0.45, SurfaceReflectivity: 0.15, ExtraterrestrialFlux: 2}
}

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

// near compares values that may be zero.
func near(a, b float64) bool {
	if math.Abs(a) < 1e-12 && math.Abs(b) < 1e-12 {
		return true
	}
	return !different(a, b, 1e-10)
}
