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

// SolutionParameters holds the two-stream coefficients of every layer of
// every column, each with shape [layers][columns].
// A closure fills Gamma1 through Gamma4 and Mu; the solver derives the rest.
type SolutionParameters struct {
	// Gamma1 through Gamma4 are the two-stream coefficients of
	// Meador and Weaver (1980).
	Gamma1, Gamma2, Gamma3, Gamma4 *sparse.DenseArray

	// Mu is the cosine of the quadrature angle that relates diffuse
	// irradiance to actinic flux.
	Mu *sparse.DenseArray

	// Lambda is the eigenvalue of the two-stream equations and Gamma
	// the ratio γ2/(γ1+λ).
	Lambda, Gamma *sparse.DenseArray

	// E1 through E4 are the eigen-solution basis of each layer evaluated
	// across its scaled optical depth.
	E1, E2, E3, E4 *sparse.DenseArray
}

// NewSolutionParameters returns zeroed solution parameters.
func NewSolutionParameters(layers, columns int) *SolutionParameters {
	z := func() *sparse.DenseArray { return sparse.ZerosDense(layers, columns) }
	return &SolutionParameters{
		Gamma1: z(), Gamma2: z(), Gamma3: z(), Gamma4: z(),
		Mu:     z(),
		Lambda: z(), Gamma: z(),
		E1: z(), E2: z(), E3: z(), E4: z(),
	}
}

// SetCoefficients sets the closure coefficients of one layer of one column.
func (p *SolutionParameters) SetCoefficients(layer, column int, gamma1, gamma2, gamma3, gamma4, mu float64) {
	i := p.Gamma1.Index1d(layer, column)
	p.Gamma1.Elements[i] = gamma1
	p.Gamma2.Elements[i] = gamma2
	p.Gamma3.Elements[i] = gamma3
	p.Gamma4.Elements[i] = gamma4
	p.Mu.Elements[i] = mu
}

func (p *SolutionParameters) check(layers, columns int) error {
	if p == nil {
		return invalidf("two-stream closure returned no parameters")
	}
	want := []int{layers, columns}
	for _, a := range []struct {
		name string
		v    *sparse.DenseArray
	}{
		{"gamma1", p.Gamma1}, {"gamma2", p.Gamma2}, {"gamma3", p.Gamma3}, {"gamma4", p.Gamma4},
		{"mu", p.Mu}, {"lambda", p.Lambda}, {"Gamma", p.Gamma},
		{"e1", p.E1}, {"e2", p.E2}, {"e3", p.E3}, {"e4", p.E4},
	} {
		if a.v == nil {
			return invalidf("solution parameter %s is missing", a.name)
		}
		if !sameShape(a.v.Shape, want) {
			return shapeError("solution parameter "+a.name, a.v.Shape, want...)
		}
	}
	return nil
}

// Eigenvalue returns λ = √(γ1² − γ2²), factored to avoid cancellation
// when γ1 and γ2 are close.
func Eigenvalue(gamma1, gamma2 float64) float64 {
	return math.Sqrt((gamma1 - gamma2) * (gamma1 + gamma2))
}

// EigenBasis calculates Lambda, Gamma, and E1 through E4 for every layer
// of the given column from the closure coefficients and the scaled
// optical depths in state.
func (p *SolutionParameters) EigenBasis(state *RadiatorState, column int) error {
	for i := 0; i < state.NumberOfLayers(); i++ {
		k := p.Gamma1.Index1d(i, column)
		g1, g2, mu := p.Gamma1.Elements[k], p.Gamma2.Elements[k], p.Mu.Elements[k]
		lambda := Eigenvalue(g1, g2)
		if math.IsNaN(lambda) || math.IsInf(lambda, 0) || !(mu > 0) {
			return invalidf("column %d, layer %d: closure gave gamma1=%g, gamma2=%g, mu=%g", column, i, g1, g2, mu)
		}
		gamma := g2 / (g1 + lambda)
		e := math.Exp(-lambda * state.OpticalDepth.Elements[k])
		p.Lambda.Elements[k] = lambda
		p.Gamma.Elements[k] = gamma
		p.E1.Elements[k] = 1 + gamma*e
		p.E2.Elements[k] = 1 - gamma*e
		p.E3.Elements[k] = gamma + e
		p.E4.Elements[k] = gamma - e
	}
	return nil
}

// SourceTerms holds the direct-beam source terms of the two-stream
// equations (Toon et al., 1989, eqs. 23 and 24) at the top and bottom of
// every layer, shaped [layers][columns], and the scaled optical depth
// accumulated from the top of the atmosphere to every level, shaped
// [layers+1][columns].
type SourceTerms struct {
	UpwellingTop, UpwellingBottom     *sparse.DenseArray
	DownwellingTop, DownwellingBottom *sparse.DenseArray
	CumulativeOpticalDepth            *sparse.DenseArray
}

// NewSourceTerms returns zeroed source terms.
func NewSourceTerms(layers, columns int) *SourceTerms {
	return &SourceTerms{
		UpwellingTop:           sparse.ZerosDense(layers, columns),
		UpwellingBottom:        sparse.ZerosDense(layers, columns),
		DownwellingTop:         sparse.ZerosDense(layers, columns),
		DownwellingBottom:      sparse.ZerosDense(layers, columns),
		CumulativeOpticalDepth: sparse.ZerosDense(layers+1, columns),
	}
}

// minResonance is the smallest |λ² − 1/μ0²|, relative to max(1, λ²), for
// which the source terms are evaluated at the true solar angle.
const minResonance = 1e-6

// Compute calculates the cumulative optical depth and the source terms of
// the given column from the scaled radiator state and the closure
// coefficients. Fully absorbing layers have source terms of exactly zero.
//
// When λ of a layer is within minResonance of 1/μ0 the particular solution
// is singular. For that layer the direct beam is instead attenuated with
// the nearest secant outside the resonance, used in both the amplitude
// and the exponential decay, so the source terms remain an exact
// particular solution of a slightly perturbed problem.
func (c *SourceTerms) Compute(state *RadiatorState, p *SolutionParameters, column int, b Boundary) {
	secant := 1 / b.CosZenith
	tauC := 0.
	c.CumulativeOpticalDepth.Elements[c.CumulativeOpticalDepth.Index1d(0, column)] = 0
	for i := 0; i < state.NumberOfLayers(); i++ {
		k := state.OpticalDepth.Index1d(i, column)
		tau := state.OpticalDepth.Elements[k]
		s := state.SingleScatteringAlbedo.Elements[k] * math.Pi * b.ExtraterrestrialFlux
		g1, g2, g3, g4 := p.Gamma1.Elements[k], p.Gamma2.Elements[k], p.Gamma3.Elements[k], p.Gamma4.Elements[k]
		lambda := p.Lambda.Elements[k]

		sec := layerSecant(lambda, secant)
		den := lambda*lambda - sec*sec
		up := s * ((g1-sec)*g3 + g4*g2) / den
		down := s * ((g1+sec)*g4 + g2*g3) / den
		top := math.Exp(-tauC * secant)
		bottom := math.Exp(-tauC*secant - tau*sec)

		c.UpwellingTop.Elements[k] = up * top
		c.UpwellingBottom.Elements[k] = up * bottom
		c.DownwellingTop.Elements[k] = down * top
		c.DownwellingBottom.Elements[k] = down * bottom

		tauC += tau
		c.CumulativeOpticalDepth.Elements[c.CumulativeOpticalDepth.Index1d(i+1, column)] = tauC
	}
}

// layerSecant returns secant, or, if λ² − secant² is within the resonance
// limit, the secant that puts it exactly on the limit on the same side.
func layerSecant(lambda, secant float64) float64 {
	l2 := lambda * lambda
	lim := minResonance * math.Max(1, l2)
	den := l2 - secant*secant
	switch {
	case math.Abs(den) >= lim:
		return secant
	case den > 0:
		return math.Sqrt(l2 - lim)
	default:
		return math.Sqrt(l2 + lim)
	}
}
