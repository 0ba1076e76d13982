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

package hash

import (
	"math"
	"testing"
)

type input struct {
	Name   string
	Values []float64
}

func TestHash(t *testing.T) {
	a := Hash(input{"a", []float64{1, 2}}, 3.0)
	if len(a) != 32 {
		t.Errorf("hash %q should have 32 hex digits", a)
	}
	if b := Hash(input{"a", []float64{1, 2}}, 3.0); a != b {
		t.Errorf("identical inputs: %s != %s", a, b)
	}
	if b := Hash(input{"a", []float64{1, 2.5}}, 3.0); a == b {
		t.Error("different inputs should have different hashes")
	}
	if b := Hash(3.0, input{"a", []float64{1, 2}}); a == b {
		t.Error("order should matter")
	}
}

func TestHashFallback(t *testing.T) {
	// gob cannot encode channels.
	c := make(chan int)
	a := Hash(input{"a", []float64{math.NaN()}}, c)
	b := Hash(input{"a", []float64{math.NaN()}}, c)
	if a != b {
		t.Errorf("%s != %s", a, b)
	}
	if a == Hash(input{"b", []float64{math.NaN()}}, c) {
		t.Error("different inputs should have different hashes")
	}
}
