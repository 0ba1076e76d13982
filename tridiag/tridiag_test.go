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

package tridiag

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestSolveSmall(t *testing.T) {
	// 2 -1  0   x0   1
	// -1 2 -1 · x1 = 0
	//  0 -1 2   x2   1
	m := &Matrix{
		Lower: []float64{0, -1, -1},
		Main:  []float64{2, 2, 2},
		Upper: []float64{-1, -1, 0},
	}
	x, err := m.Solve([]float64{1, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 1, 1}
	if !floats.EqualApprox(x, want, 1e-14) {
		t.Errorf("have %v, want %v", x, want)
	}
}

func TestSolveDenseCrossCheck(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 3, 10, 51} {
		m := New(n)
		b := make([]float64, n)
		for i := 0; i < n; i++ {
			m.Lower[i] = rnd.Float64() - 0.5
			m.Upper[i] = rnd.Float64() - 0.5
			m.Main[i] = 2 + rnd.Float64()
			b[i] = rnd.NormFloat64()
		}
		x, err := m.Solve(b)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		a := dense(m)
		var want mat.VecDense
		if err := want.SolveVec(a, mat.NewVecDense(n, b)); err != nil {
			t.Fatalf("n=%d: dense solve: %v", n, err)
		}
		for i := 0; i < n; i++ {
			if math.Abs(x[i]-want.AtVec(i)) > 1e-12*math.Max(1, math.Abs(want.AtVec(i))) {
				t.Errorf("n=%d, i=%d: have %g, want %g", n, i, x[i], want.AtVec(i))
			}
		}
		var residual mat.VecDense
		residual.MulVec(a, mat.NewVecDense(n, x))
		if !floats.EqualApprox(residual.RawVector().Data, b, 1e-12) {
			t.Errorf("n=%d: residual too large", n)
		}
	}
}

func TestSolveDoesNotModify(t *testing.T) {
	m := &Matrix{
		Lower: []float64{0, 1},
		Main:  []float64{4, 3},
		Upper: []float64{2, 0},
	}
	b := []float64{1, 2}
	if _, err := m.Solve(b); err != nil {
		t.Fatal(err)
	}
	if !floats.Equal(m.Main, []float64{4, 3}) || !floats.Equal(b, []float64{1, 2}) {
		t.Errorf("inputs modified: main=%v, b=%v", m.Main, b)
	}
}

func TestSingular(t *testing.T) {
	tests := []struct {
		name string
		m    *Matrix
		row  int
	}{
		{
			name: "zero first column",
			m:    &Matrix{Lower: []float64{0, 0}, Main: []float64{0, 1}, Upper: []float64{1, 0}},
			row:  0,
		},
		{
			name: "cancelling pivot",
			m:    &Matrix{Lower: []float64{0, 1}, Main: []float64{1, 1}, Upper: []float64{1, 0}},
			row:  1,
		},
		{
			name: "nan",
			m:    &Matrix{Lower: []float64{0, 0}, Main: []float64{1, math.NaN()}, Upper: []float64{0, 0}},
			row:  1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := test.m.Solve([]float64{1, 1})
			if !errors.Is(err, ErrSingular) {
				t.Fatalf("want ErrSingular, have %v", err)
			}
			var se *SingularError
			if !errors.As(err, &se) {
				t.Fatalf("want *SingularError, have %T", err)
			}
			if se.Row != test.row {
				t.Errorf("row: have %d, want %d", se.Row, test.row)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	if err := (&Matrix{}).Check(); err == nil {
		t.Error("empty matrix should fail")
	}
	m := &Matrix{Lower: []float64{0}, Main: []float64{1, 2}, Upper: []float64{0, 0}}
	if err := m.Check(); err == nil {
		t.Error("mismatched diagonals should fail")
	}
	if _, err := m.Solve([]float64{1, 2}); err == nil {
		t.Error("solve should fail on mismatched diagonals")
	}
	if _, err := New(2).Solve([]float64{1}); err == nil {
		t.Error("solve should fail on short right hand side")
	}
}

// A zero leading diagonal element is handled by exchanging rows.
func TestSolvePivoting(t *testing.T) {
	m := &Matrix{
		Lower: []float64{0, 1, 1},
		Main:  []float64{0, 1, 3},
		Upper: []float64{2, 1, 0},
	}
	b := []float64{2, 3, 4}
	x, err := m.Solve(b)
	if err != nil {
		t.Fatal(err)
	}
	if !floats.EqualApprox(x, []float64{1, 1, 1}, 1e-14) {
		t.Errorf("have %v, want [1 1 1]", x)
	}
}

func TestSolveNotFiniteRightHandSide(t *testing.T) {
	_, err := New(2).Solve([]float64{1, math.Inf(1)})
	if err == nil || errors.Is(err, ErrSingular) {
		t.Errorf("have %v, want a right hand side error", err)
	}
}

// dense returns m as a dense matrix.
func dense(m *Matrix) *mat.Dense {
	n := m.Size()
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		a.Set(i, i, m.Main[i])
		if i > 0 {
			a.Set(i, i-1, m.Lower[i])
		}
		if i < n-1 {
			a.Set(i, i+1, m.Upper[i])
		}
	}
	return a
}
