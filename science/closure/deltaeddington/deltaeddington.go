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

// Package deltaeddington provides the delta-Eddington two-stream closure
// of Joseph et al. (1976), using the coefficients tabulated by
// Toon et al. (1989, Table 1).
package deltaeddington

import (
	"github.com/spatialmodel/twostream"
)

// Mu is the cosine of the Eddington quadrature angle.
const Mu = 0.5

// DeltaEddington implements twostream.Approximation.
type DeltaEddington struct{}

func (DeltaEddington) String() string { return "delta-eddington" }

// Gammas returns the delta-Eddington coefficients for a layer with
// single scattering albedo omega and asymmetry parameter g, lit at a
// solar zenith angle with cosine mu0.
func Gammas(omega, g, mu0 float64) (gamma1, gamma2, gamma3, gamma4 float64) {
	gamma1 = (7 - omega*(4+3*g)) / 4
	gamma2 = -(1 - omega*(4-3*g)) / 4
	gamma3 = (2 - 3*g*mu0) / 4
	gamma4 = 1 - gamma3
	return
}

// Parameters calculates the delta-Eddington coefficients of every layer
// and column of the delta-scaled state. Grids and profiles are not used.
func (DeltaEddington) Parameters(_ twostream.Grids, _ twostream.Profiles, state *twostream.RadiatorState, cosZenith []float64) (*twostream.SolutionParameters, error) {
	layers, columns := state.NumberOfLayers(), state.NumberOfColumns()
	p := twostream.NewSolutionParameters(layers, columns)
	for i := 0; i < layers; i++ {
		for j := 0; j < columns; j++ {
			omega := state.SingleScatteringAlbedo.Get(i, j)
			g := state.AsymmetryParameter.Get(i, j)
			g1, g2, g3, g4 := Gammas(omega, g, cosZenith[j])
			p.SetCoefficients(i, j, g1, g2, g3, g4, Mu)
		}
	}
	return p, nil
}
