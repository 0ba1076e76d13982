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
	"errors"
	"math"
	"testing"
)

func TestDeltaScale(t *testing.T) {
	s := singleColumn([]float64{1, 0.3, 2}, []float64{0.5, 0.8, 1}, []float64{0, 0.5, 0.9})
	orig := s.Copy()
	o := DeltaScale(s)

	want := []struct{ tau, omega, g float64 }{
		{1, 0.5, 0},
		{0.24, 0.75, 1. / 3},
		{2 * (1 - MaxSingleScatteringAlbedo*0.81), MaxSingleScatteringAlbedo * 0.19 / (1 - MaxSingleScatteringAlbedo*0.81), 0.9 / 1.9},
	}
	for i, w := range want {
		if different(o.OpticalDepth.Get(i, 0), w.tau, 1e-12) {
			t.Errorf("layer %d: tau %g != %g", i, o.OpticalDepth.Get(i, 0), w.tau)
		}
		if different(o.SingleScatteringAlbedo.Get(i, 0), w.omega, 1e-12) {
			t.Errorf("layer %d: omega %g != %g", i, o.SingleScatteringAlbedo.Get(i, 0), w.omega)
		}
		if w.g != 0 && different(o.AsymmetryParameter.Get(i, 0), w.g, 1e-12) {
			t.Errorf("layer %d: g %g != %g", i, o.AsymmetryParameter.Get(i, 0), w.g)
		}
	}
	for i, v := range s.OpticalDepth.Elements {
		if v != orig.OpticalDepth.Elements[i] ||
			s.SingleScatteringAlbedo.Elements[i] != orig.SingleScatteringAlbedo.Elements[i] ||
			s.AsymmetryParameter.Elements[i] != orig.AsymmetryParameter.Elements[i] {
			t.Errorf("element %d of the input state was modified", i)
		}
	}
}

// Scaling twice must not be mistaken for scaling once.
func TestDeltaScaleTwice(t *testing.T) {
	s := singleColumn([]float64{0.3, 1.2}, []float64{0.8, 0.6}, []float64{0.5, 0.3})
	once := DeltaScale(s)
	twice := DeltaScale(once)
	for i := 0; i < 2; i++ {
		for _, a := range [][2]float64{
			{once.OpticalDepth.Get(i, 0), twice.OpticalDepth.Get(i, 0)},
			{once.SingleScatteringAlbedo.Get(i, 0), twice.SingleScatteringAlbedo.Get(i, 0)},
			{once.AsymmetryParameter.Get(i, 0), twice.AsymmetryParameter.Get(i, 0)},
		} {
			if !different(a[0], a[1], 1e-3) {
				t.Errorf("layer %d: rescaling gave %g, same as %g", i, a[1], a[0])
			}
		}
	}
}

func TestRadiatorStateCheck(t *testing.T) {
	tests := []struct {
		name            string
		tau, omega, g   float64
		layers, columns int
		valid           bool
	}{
		{name: "valid", tau: 1, omega: 0.5, g: 0.5, layers: 1, columns: 1, valid: true},
		{name: "vacuum", tau: 0, omega: 1, g: 1, layers: 1, columns: 1, valid: true},
		{name: "negative depth", tau: -1, omega: 0.5, g: 0.5, layers: 1, columns: 1},
		{name: "infinite depth", tau: math.Inf(1), omega: 0.5, g: 0.5, layers: 1, columns: 1},
		{name: "nan albedo", tau: 1, omega: math.NaN(), g: 0.5, layers: 1, columns: 1},
		{name: "albedo > 1", tau: 1, omega: 1.1, g: 0.5, layers: 1, columns: 1},
		{name: "negative asymmetry", tau: 1, omega: 0.5, g: -0.1, layers: 1, columns: 1},
		{name: "wrong shape", tau: 1, omega: 0.5, g: 0.5, layers: 2, columns: 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := singleColumn([]float64{test.tau}, []float64{test.omega}, []float64{test.g})
			err := s.Check(test.layers, test.columns)
			if test.valid && err != nil {
				t.Error(err)
			}
			if !test.valid && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("want ErrInvalidInput, have %v", err)
			}
		})
	}
}
