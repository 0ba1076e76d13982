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

	"github.com/ctessum/sparse"
)

// MaxSingleScatteringAlbedo is the largest single scattering albedo the
// solver uses. Larger values are reduced to it before delta scaling so that
// the eigenvalues of the two-stream equations stay positive.
const MaxSingleScatteringAlbedo = 1 - 1e-7

// RadiatorState holds the optical properties of every layer of every
// column. Each array has shape [layers][columns].
type RadiatorState struct {
	OpticalDepth           *sparse.DenseArray
	SingleScatteringAlbedo *sparse.DenseArray
	AsymmetryParameter     *sparse.DenseArray
}

// NewRadiatorState returns a zeroed radiator state.
func NewRadiatorState(layers, columns int) *RadiatorState {
	return &RadiatorState{
		OpticalDepth:           sparse.ZerosDense(layers, columns),
		SingleScatteringAlbedo: sparse.ZerosDense(layers, columns),
		AsymmetryParameter:     sparse.ZerosDense(layers, columns),
	}
}

// NumberOfLayers returns the number of layers in s.
func (s *RadiatorState) NumberOfLayers() int { return s.OpticalDepth.Shape[0] }

// NumberOfColumns returns the number of columns in s.
func (s *RadiatorState) NumberOfColumns() int { return s.OpticalDepth.Shape[1] }

// Set sets the optical properties of one layer of one column.
func (s *RadiatorState) Set(layer, column int, opticalDepth, singleScatteringAlbedo, asymmetryParameter float64) {
	i := s.OpticalDepth.Index1d(layer, column)
	s.OpticalDepth.Elements[i] = opticalDepth
	s.SingleScatteringAlbedo.Elements[i] = singleScatteringAlbedo
	s.AsymmetryParameter.Elements[i] = asymmetryParameter
}

// Copy returns a deep copy of s.
func (s *RadiatorState) Copy() *RadiatorState {
	return &RadiatorState{
		OpticalDepth:           s.OpticalDepth.Copy(),
		SingleScatteringAlbedo: s.SingleScatteringAlbedo.Copy(),
		AsymmetryParameter:     s.AsymmetryParameter.Copy(),
	}
}

// Check makes sure that s has the given shape and that its optical
// depths are finite and non-negative and its single scattering albedos
// and asymmetry parameters are within [0, 1].
func (s *RadiatorState) Check(layers, columns int) error {
	if s == nil || s.OpticalDepth == nil || s.SingleScatteringAlbedo == nil || s.AsymmetryParameter == nil {
		return invalidf("radiator state is missing")
	}
	want := []int{layers, columns}
	for _, a := range []struct {
		name string
		v    *sparse.DenseArray
	}{
		{"optical depth", s.OpticalDepth},
		{"single scattering albedo", s.SingleScatteringAlbedo},
		{"asymmetry parameter", s.AsymmetryParameter},
	} {
		if !sameShape(a.v.Shape, want) || len(a.v.Elements) != layers*columns {
			return shapeError(a.name, a.v.Shape, want...)
		}
	}
	for i := 0; i < layers; i++ {
		for j := 0; j < columns; j++ {
			k := s.OpticalDepth.Index1d(i, j)
			tau := s.OpticalDepth.Elements[k]
			omega := s.SingleScatteringAlbedo.Elements[k]
			g := s.AsymmetryParameter.Elements[k]
			if !(tau >= 0) || math.IsInf(tau, 0) {
				return invalidf("layer %d, column %d: optical depth %g must be finite and >= 0", i, j, tau)
			}
			if !(omega >= 0 && omega <= 1) {
				return invalidf("layer %d, column %d: single scattering albedo %g must be within [0, 1]", i, j, omega)
			}
			if !(g >= 0 && g <= 1) {
				return invalidf("layer %d, column %d: asymmetry parameter %g must be within [0, 1]", i, j, g)
			}
		}
	}
	return nil
}

// DeltaScale returns a copy of s with the delta-function scaling of
// Joseph et al. (1976) applied to every layer, removing the forward
// diffraction peak of the phase function using the forward scattering
// fraction f = g². s is not modified.
// Applying DeltaScale to an already scaled state scales it again.
func DeltaScale(s *RadiatorState) *RadiatorState {
	o := s.Copy()
	for i := range o.OpticalDepth.Elements {
		o.OpticalDepth.Elements[i], o.SingleScatteringAlbedo.Elements[i], o.AsymmetryParameter.Elements[i] =
			deltaScale(s.OpticalDepth.Elements[i], s.SingleScatteringAlbedo.Elements[i], s.AsymmetryParameter.Elements[i])
	}
	return o
}

// deltaScale returns the scaled optical depth, single scattering albedo,
// and asymmetry parameter. All three are computed from the unscaled inputs.
func deltaScale(tau, omega, g float64) (float64, float64, float64) {
	omega = math.Min(omega, MaxSingleScatteringAlbedo)
	f := g * g
	omegaF := 1 - omega*f
	return tau * omegaF, omega * (1 - f) / omegaF, g / (1 + g)
}
