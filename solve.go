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
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/twostream/tridiag"
)

// Solver calculates radiation fields with a two-stream approximation.
// The zero value solves with a black surface, zero extraterrestrial flux,
// and one goroutine per processor.
type Solver struct {
	// SurfaceReflectivity is the surface albedo. It holds either a single
	// value used for every column or one value per column. If it is
	// empty the surface is black.
	SurfaceReflectivity []float64

	// ExtraterrestrialFlux is the direct-beam flux F₀ at the top of the
	// atmosphere for the wavelength bin being solved.
	ExtraterrestrialFlux float64

	// TopDiffuseFlux is the diffuse downwelling irradiance at the top of
	// the atmosphere.
	TopDiffuseFlux float64

	// NumProcessors is the number of columns solved concurrently.
	// Values < 1 mean runtime.GOMAXPROCS(0).
	NumProcessors int

	// Log receives status messages. If it is nil the logrus standard
	// logger is used.
	Log logrus.FieldLogger
}

func (s *Solver) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s *Solver) numProcessors(columns int) int {
	n := s.NumProcessors
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > columns {
		n = columns
	}
	return n
}

// reflectivity returns the surface reflectivity of the given column.
func (s *Solver) reflectivity(column int) float64 {
	switch len(s.SurfaceReflectivity) {
	case 0:
		return 0
	case 1:
		return s.SurfaceReflectivity[0]
	}
	return s.SurfaceReflectivity[column]
}

func (s *Solver) checkBoundary(columns int) error {
	if n := len(s.SurfaceReflectivity); n > 1 && n != columns {
		return invalidf("there are %d surface reflectivities for %d columns", n, columns)
	}
	for i, r := range s.SurfaceReflectivity {
		if !(r >= 0 && r <= 1) {
			return invalidf("surface reflectivity %d is %g; it must be within [0, 1]", i, r)
		}
	}
	if !(s.ExtraterrestrialFlux >= 0) || math.IsInf(s.ExtraterrestrialFlux, 0) {
		return invalidf("extraterrestrial flux %g must be finite and >= 0", s.ExtraterrestrialFlux)
	}
	if !(s.TopDiffuseFlux >= 0) || math.IsInf(s.TopDiffuseFlux, 0) {
		return invalidf("top diffuse flux %g must be finite and >= 0", s.TopDiffuseFlux)
	}
	return nil
}

// Solve calculates the radiation field of one wavelength bin for a batch
// of columns and writes it into field. cosZenith holds the cosine of the
// solar zenith angle of every column. grids must hold an AltitudeGrid with
// one column per solar zenith angle and one section per layer of state,
// and a WavelengthGrid with a single column and bin. profiles are passed
// to approx unread.
//
// state is delta-scaled into a new state before use; it is not modified.
// Columns where the sun is at or below the horizon (cosZenith <= 0) get a
// radiation field of zero.
//
// Invalid inputs return an error matching ErrInvalidInput before any
// column is solved. Otherwise every column is solved independently and
// concurrently: a column whose system is singular returns a
// *SingularSystemError and leaves its part of field unchanged, without
// affecting the other columns. Errors from all failed columns are joined.
func (s *Solver) Solve(cosZenith []float64, grids Grids, profiles Profiles, approx Approximation, state *RadiatorState, field *RadiationField) error {
	start := time.Now()
	columns := len(cosZenith)
	if columns == 0 {
		return invalidf("no solar zenith angles")
	}
	for j, mu0 := range cosZenith {
		if !(mu0 >= -1 && mu0 <= 1) {
			return invalidf("column %d: cosine of the solar zenith angle %g must be within [-1, 1]", j, mu0)
		}
	}
	layers, err := checkGrids(grids, columns)
	if err != nil {
		return err
	}
	if err := profiles.check(grids); err != nil {
		return err
	}
	if err := state.Check(layers, columns); err != nil {
		return err
	}
	if err := field.check(layers, columns); err != nil {
		return err
	}
	if err := s.checkBoundary(columns); err != nil {
		return err
	}
	if approx == nil {
		return invalidf("no two-stream closure")
	}
	log := s.log().WithFields(logrus.Fields{
		"columns": columns,
		"layers":  layers,
		"closure": fmt.Sprint(approx),
	})

	scaled := DeltaScale(state)
	p, err := approx.Parameters(grids, profiles, scaled, cosZenith)
	if err != nil {
		return fmt.Errorf("twostream: two-stream closure: %w", err)
	}
	if err := p.check(layers, columns); err != nil {
		return err
	}
	c := NewSourceTerms(layers, columns)

	errs := make([]error, columns)
	nprocs := s.numProcessors(columns)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for j := pp; j < columns; j += nprocs {
				errs[j] = s.solveColumn(j, cosZenith[j], scaled, p, c, field)
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()

	var failed []error
	for j, err := range errs {
		if err == nil {
			continue
		}
		fields := logrus.Fields{"column": j}
		var se *SingularSystemError
		if errors.As(err, &se) {
			fields["row"] = se.Row
		}
		log.WithFields(fields).Warn(err)
		failed = append(failed, err)
	}
	log.WithFields(logrus.Fields{
		"failed":  len(failed),
		"elapsed": time.Since(start),
	}).Debug("twostream: solved radiation field")
	return errors.Join(failed...)
}

// solveColumn solves the two-stream system of one column and, if that
// succeeds, writes the column's radiation field.
func (s *Solver) solveColumn(column int, cosZenith float64, scaled *RadiatorState, p *SolutionParameters, c *SourceTerms, field *RadiationField) error {
	if cosZenith <= 0 {
		field.zeroColumn(column)
		return nil
	}
	b := Boundary{
		CosZenith:            cosZenith,
		SurfaceReflectivity:  s.reflectivity(column),
		ExtraterrestrialFlux: s.ExtraterrestrialFlux,
		TopDiffuseFlux:       s.TopDiffuseFlux,
	}
	if err := p.EigenBasis(scaled, column); err != nil {
		return err
	}
	c.Compute(scaled, p, column, b)
	m := AssembleMatrix(p, column, b)
	v := AssembleVector(p, c, column, b)
	y, err := m.Solve(v)
	if err != nil {
		var se *tridiag.SingularError
		if errors.As(err, &se) {
			return &SingularSystemError{Column: column, Row: se.Row, Err: err}
		}
		return fmt.Errorf("twostream: column %d: %v", column, err)
	}
	Reconstruct(p, c, column, b, y, field)
	return nil
}
