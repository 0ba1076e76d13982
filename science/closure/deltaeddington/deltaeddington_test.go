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

package deltaeddington

import (
	"math"
	"testing"

	"github.com/spatialmodel/twostream"
)

func TestGammas(t *testing.T) {
	g1, g2, g3, g4 := Gammas(0.5, 0, 1)
	want := []float64{1.25, 0.25, 0.5, 0.5}
	for i, v := range []float64{g1, g2, g3, g4} {
		if math.Abs(v-want[i]) > 1e-15 {
			t.Errorf("gamma%d: have %g, want %g", i+1, v, want[i])
		}
	}
	if l := twostream.Eigenvalue(g1, g2); math.Abs(l-math.Sqrt(1.5)) > 1e-15 {
		t.Errorf("lambda: have %g, want %g", l, math.Sqrt(1.5))
	}

	// Forward scattering sends less of the direct beam upward.
	_, _, g3, g4 = Gammas(0.9, 0.8, 0.5)
	if math.Abs(g3-0.2) > 1e-15 || math.Abs(g4-0.8) > 1e-15 {
		t.Errorf("gamma3, gamma4: have %g, %g; want 0.2, 0.8", g3, g4)
	}
}

func TestParameters(t *testing.T) {
	s := twostream.NewRadiatorState(2, 3)
	mu0 := []float64{1, 0.5, 0.1}
	for j := range mu0 {
		s.Set(0, j, 1, 0.5, 0)
		s.Set(1, j, 2, 0.9, 0.6)
	}
	p, err := DeltaEddington{}.Parameters(nil, nil, s, mu0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := range mu0 {
			g1, g2, g3, g4 := Gammas(s.SingleScatteringAlbedo.Get(i, j), s.AsymmetryParameter.Get(i, j), mu0[j])
			if p.Gamma1.Get(i, j) != g1 || p.Gamma2.Get(i, j) != g2 || p.Gamma3.Get(i, j) != g3 || p.Gamma4.Get(i, j) != g4 {
				t.Errorf("layer %d, column %d: coefficients differ", i, j)
			}
			if p.Mu.Get(i, j) != Mu {
				t.Errorf("layer %d, column %d: mu %g", i, j, p.Mu.Get(i, j))
			}
		}
	}
	if (DeltaEddington{}).String() != "delta-eddington" {
		t.Error(DeltaEddington{}.String())
	}
}
