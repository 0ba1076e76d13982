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

// Package tridiag solves tridiagonal (banded with one sub- and one
// super-diagonal) systems of linear equations using the LAPACK gtsv
// routine from gonum.
package tridiag

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
)

// ErrSingular is returned when the matrix is singular or has entries that
// are not finite.
var ErrSingular = errors.New("tridiag: singular matrix")

// SingularError reports the row where the factorization broke down.
// It matches ErrSingular with errors.Is.
type SingularError struct {
	Row   int
	Pivot float64
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("tridiag: singular matrix: pivot %g in row %d", e.Pivot, e.Row)
}

// Is reports whether target is ErrSingular.
func (e *SingularError) Is(target error) bool { return target == ErrSingular }

// Matrix holds the three diagonals of a square tridiagonal matrix.
// Row i of the system is
//	Lower[i]*x[i-1] + Main[i]*x[i] + Upper[i]*x[i+1] = b[i].
// Lower[0] and Upper[n-1] lie outside the matrix and are ignored.
type Matrix struct {
	Lower []float64
	Main  []float64
	Upper []float64
}

// New returns a zeroed n×n tridiagonal matrix.
func New(n int) *Matrix {
	return &Matrix{
		Lower: make([]float64, n),
		Main:  make([]float64, n),
		Upper: make([]float64, n),
	}
}

// Size returns the number of rows in m.
func (m *Matrix) Size() int { return len(m.Main) }

// Check makes sure that the diagonals have the same, non-zero length.
func (m *Matrix) Check() error {
	n := len(m.Main)
	if n == 0 {
		return fmt.Errorf("tridiag: empty matrix")
	}
	if len(m.Lower) != n || len(m.Upper) != n {
		return fmt.Errorf("tridiag: diagonal lengths differ: lower=%d, main=%d, upper=%d",
			len(m.Lower), n, len(m.Upper))
	}
	return nil
}

// Solve returns x such that m·x = b, factorizing m by Gaussian
// elimination with partial pivoting. Neither m nor b is modified.
// A matrix with an entry that is not finite, a zero pivot, or a solution
// that overflows returns a *SingularError.
func (m *Matrix) Solve(b []float64) ([]float64, error) {
	if err := m.Check(); err != nil {
		return nil, err
	}
	n := m.Size()
	if len(b) != n {
		return nil, fmt.Errorf("tridiag: right hand side has length %d but matrix has %d rows", len(b), n)
	}
	for i := 0; i < n; i++ {
		if !finite(m.Main[i]) || (i > 0 && !finite(m.Lower[i])) || (i < n-1 && !finite(m.Upper[i])) {
			return nil, &SingularError{Row: i, Pivot: m.Main[i]}
		}
		if !finite(b[i]) {
			return nil, fmt.Errorf("tridiag: right hand side row %d is %g", i, b[i])
		}
	}

	a := lapack64.Tridiagonal{
		N:  n,
		DL: append([]float64(nil), m.Lower[1:]...),
		D:  append([]float64(nil), m.Main...),
		DU: append([]float64(nil), m.Upper[:n-1]...),
	}
	x := append([]float64(nil), b...)
	ok := lapack64.Gtsv(blas.NoTrans, a, blas64.General{Rows: n, Cols: 1, Stride: 1, Data: x})
	if !ok {
		return nil, pivotError(a.D)
	}
	for _, v := range x {
		if !finite(v) {
			return nil, pivotError(a.D)
		}
	}
	return x, nil
}

// pivotError returns the error for the factored diagonal d: the first zero
// pivot, or the smallest one if none is zero.
func pivotError(d []float64) error {
	row := 0
	for i, v := range d {
		if v == 0 {
			return &SingularError{Row: i}
		}
		if math.Abs(v) < math.Abs(d[row]) {
			row = i
		}
	}
	return &SingularError{Row: row, Pivot: d[row]}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
