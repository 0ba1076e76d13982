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

// Package quadrature provides the quadrature two-stream closure of
// Toon et al. (1989, Table 1).
package quadrature

import (
	"math"

	"github.com/spatialmodel/twostream"
)

// Mu is the cosine of the Gaussian quadrature angle, 1/√3.
var Mu = 1 / math.Sqrt(3)

// Quadrature implements twostream.Approximation.
type Quadrature struct{}

func (Quadrature) String() string { return "quadrature" }

// Gammas returns the quadrature coefficients for a layer with
// single scattering albedo omega and asymmetry parameter g, lit at a
// solar zenith angle with cosine mu0.
func Gammas(omega, g, mu0 float64) (gamma1, gamma2, gamma3, gamma4 float64) {
	sqrt3 := math.Sqrt(3)
	gamma1 = sqrt3 * (2 - omega*(1+g)) / 2
	gamma2 = sqrt3 * omega * (1 - g) / 2
	gamma3 = (1 - sqrt3*g*mu0) / 2
	gamma4 = 1 - gamma3
	return
}

// Parameters calculates the quadrature coefficients of every layer
// and column of the delta-scaled state.
func (Quadrature) Parameters(_ twostream.Grids, _ twostream.Profiles, state *twostream.RadiatorState, cosZenith []float64) (*twostream.SolutionParameters, error) {
	layers, columns := state.NumberOfLayers(), state.NumberOfColumns()
	p := twostream.NewSolutionParameters(layers, columns)
	for i := 0; i < layers; i++ {
		for j := 0; j < columns; j++ {
			g1, g2, g3, g4 := Gammas(state.SingleScatteringAlbedo.Get(i, j), state.AsymmetryParameter.Get(i, j), cosZenith[j])
			p.SetCoefficients(i, j, g1, g2, g3, g4, Mu)
		}
	}
	return p, nil
}
