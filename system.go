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
	"github.com/spatialmodel/twostream/tridiag"
)

// Boundary holds the boundary conditions of one column.
type Boundary struct {
	// CosZenith is the cosine of the solar zenith angle, μ0.
	CosZenith float64

	// SurfaceReflectivity is the diffuse albedo of the surface, within [0, 1].
	SurfaceReflectivity float64

	// ExtraterrestrialFlux is the direct-beam flux F₀ incident at the top
	// of the atmosphere; the direct irradiance there is μ0·π·F₀.
	ExtraterrestrialFlux float64

	// TopDiffuseFlux is the diffuse downwelling irradiance at the top of
	// the atmosphere. It is normally zero.
	TopDiffuseFlux float64
}

// AssembleMatrix returns the tridiagonal matrix of the two-stream system
// of the given column (Toon et al., 1989, eqs. 39–43). Unknowns are
// ordered [Y1₀, Y2₀, Y1₁, Y2₁, …], two per layer from the top down.
// Row 0 is the top boundary condition, odd and even interior rows match
// the upwelling and downwelling fluxes at each layer interface, and the last
// row is the surface reflection condition.
func AssembleMatrix(p *SolutionParameters, column int, b Boundary) *tridiag.Matrix {
	layers := p.E1.Shape[0]
	m := tridiag.New(2 * layers)
	e1, e2, e3, e4 := layerBasis(p, column)

	m.Main[0] = e1(0)
	m.Upper[0] = -e2(0)
	for n := 0; n < layers-1; n++ {
		r := 2*n + 1
		m.Lower[r] = e1(n)*e2(n+1) - e3(n)*e4(n+1)
		m.Main[r] = e2(n)*e2(n+1) - e4(n)*e4(n+1)
		m.Upper[r] = e1(n+1)*e4(n+1) - e2(n+1)*e3(n+1)

		r++
		m.Lower[r] = e2(n)*e3(n) - e4(n)*e1(n)
		m.Main[r] = e1(n)*e1(n+1) - e3(n)*e3(n+1)
		m.Upper[r] = e3(n)*e4(n+1) - e1(n)*e2(n+1)
	}
	last, r := layers-1, 2*layers-1
	rs := b.SurfaceReflectivity
	m.Lower[r] = e1(last) - rs*e3(last)
	m.Main[r] = e2(last) - rs*e4(last)
	return m
}

// AssembleVector returns the right hand side of the two-stream system of
// the given column, row-aligned with AssembleMatrix.
func AssembleVector(p *SolutionParameters, c *SourceTerms, column int, b Boundary) []float64 {
	layers := p.E1.Shape[0]
	v := make([]float64, 2*layers)
	e1, e2, e3, e4 := layerBasis(p, column)
	upTop, upBot := columnOf(c.UpwellingTop, column), columnOf(c.UpwellingBottom, column)
	downTop, downBot := columnOf(c.DownwellingTop, column), columnOf(c.DownwellingBottom, column)

	v[0] = b.TopDiffuseFlux - downTop(0)
	for n := 0; n < layers-1; n++ {
		r := 2*n + 1
		v[r] = e2(n+1)*(upTop(n+1)-upBot(n)) - e4(n+1)*(downTop(n+1)-downBot(n))
		v[r+1] = e3(n)*(upTop(n+1)-upBot(n)) + e1(n)*(downBot(n)-downTop(n+1))
	}
	last := layers - 1
	rs := b.SurfaceReflectivity
	tauTotal := c.CumulativeOpticalDepth.Get(layers, column)
	surface := rs * b.CosZenith * math.Pi * b.ExtraterrestrialFlux * math.Exp(-tauTotal/b.CosZenith)
	v[2*layers-1] = surface - upBot(last) + rs*downBot(last)
	return v
}

// layerBasis returns accessors for the eigen-solution basis of a column.
func layerBasis(p *SolutionParameters, column int) (e1, e2, e3, e4 func(int) float64) {
	return columnOf(p.E1, column), columnOf(p.E2, column), columnOf(p.E3, column), columnOf(p.E4, column)
}

// columnOf returns an accessor for one column of a [layers][columns] array.
func columnOf(a *sparse.DenseArray, column int) func(int) float64 {
	return func(n int) float64 { return a.Elements[a.Index1d(n, column)] }
}
