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
	"fmt"
)

// ErrInvalidInput is returned, wrapped with context, when the grids,
// profiles, radiator state, boundary conditions, or output field passed
// to the solver are inconsistent with each other or physically invalid.
var ErrInvalidInput = errors.New("twostream: invalid input")

// ErrSingularSystem is matched by errors returned when the tridiagonal
// system of a column cannot be solved.
var ErrSingularSystem = errors.New("twostream: singular system")

// SingularSystemError is returned when elimination of the tridiagonal
// system of a column meets a zero pivot. It matches both ErrSingularSystem
// and the underlying tridiag.ErrSingular.
type SingularSystemError struct {
	// Column is the index of the atmospheric column that failed.
	Column int
	// Row is the matrix row where elimination broke down.
	Row int
	Err error
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("twostream: column %d: row %d: %v", e.Column, e.Row, e.Err)
}

// Is reports whether target is ErrSingularSystem.
func (e *SingularSystemError) Is(target error) bool { return target == ErrSingularSystem }

func (e *SingularSystemError) Unwrap() error { return e.Err }

// invalidf returns an error wrapping ErrInvalidInput.
func invalidf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidInput}, a...)...)
}
