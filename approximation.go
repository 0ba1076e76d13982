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

// Approximation is a two-stream closure: it turns the delta-scaled optical
// properties of every layer and column, and the cosine of the solar zenith
// angle of every column, into the coefficients Gamma1 through Gamma4 and
// Mu of a new SolutionParameters. Grids and profiles are passed through
// from the caller for closures that need them.
type Approximation interface {
	Parameters(grids Grids, profiles Profiles, state *RadiatorState, cosZenith []float64) (*SolutionParameters, error)
}

// ApproximationFunc is an adapter to allow the use of ordinary functions
// as two-stream closures.
type ApproximationFunc func(grids Grids, profiles Profiles, state *RadiatorState, cosZenith []float64) (*SolutionParameters, error)

// Parameters calls f(grids, profiles, state, cosZenith).
func (f ApproximationFunc) Parameters(grids Grids, profiles Profiles, state *RadiatorState, cosZenith []float64) (*SolutionParameters, error) {
	return f(grids, profiles, state, cosZenith)
}

func (f ApproximationFunc) String() string { return "func" }
