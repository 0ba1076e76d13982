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

package twostreamutil

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ctessum/unit"
	"github.com/spatialmodel/twostream"
	"github.com/spatialmodel/twostream/science/solar"
)

// Atmosphere is the contents of an atmosphere input file: a batch of
// columns sharing one altitude grid, for one wavelength bin.
//
// An example file:
//
//	# Layer edges from the top of the atmosphere down [m].
//	Altitudes = [2000.0, 1000.0, 0.0]
//	# Edges of the wavelength bin [m].
//	Wavelength = [400e-9, 405e-9]
//	SurfaceReflectivity = [0.15]
//
//	[[Columns]]
//	CosZenith = 0.45
//	Latitude = 40.0
//	Longitude = -105.0
//	OpticalDepth = [0.3, 1.2]
//	SingleScatteringAlbedo = [0.8, 0.6]
//	AsymmetryParameter = [0.5, 0.3]
type Atmosphere struct {
	// Altitudes are the layer edges, strictly decreasing from the top of
	// the atmosphere to the surface.
	Altitudes  []float64
	Wavelength []float64

	// SurfaceReflectivity holds one value or one per column. If empty,
	// the SurfaceReflectivity configuration option is used.
	SurfaceReflectivity []float64

	Columns []Column
}

// Column holds the optical properties of one column, with one value per
// layer from the top down. CosZenith is used unless a time is given,
// in which case the cosine of the solar zenith angle is calculated from
// Latitude and Longitude.
type Column struct {
	CosZenith              float64
	Latitude, Longitude    float64
	OpticalDepth           []float64
	SingleScatteringAlbedo []float64
	AsymmetryParameter     []float64
}

// ReadAtmosphere reads an atmosphere from a TOML file.
func ReadAtmosphere(filename string) (*Atmosphere, error) {
	a := new(Atmosphere)
	if _, err := toml.DecodeFile(filename, a); err != nil {
		return nil, fmt.Errorf("twostreamutil: reading atmosphere file %s: %v", filename, err)
	}
	if err := a.check(); err != nil {
		return nil, fmt.Errorf("twostreamutil: atmosphere file %s: %v", filename, err)
	}
	return a, nil
}

func (a *Atmosphere) check() error {
	if len(a.Altitudes) < 2 {
		return fmt.Errorf("need at least 2 altitudes, have %d", len(a.Altitudes))
	}
	for i := 1; i < len(a.Altitudes); i++ {
		if !(a.Altitudes[i] < a.Altitudes[i-1]) {
			return fmt.Errorf("altitudes must decrease from the top of the atmosphere down; altitude %d (%g) is not below altitude %d (%g)",
				i, a.Altitudes[i], i-1, a.Altitudes[i-1])
		}
	}
	if len(a.Wavelength) != 2 {
		return fmt.Errorf("wavelength bin needs 2 edges, have %d", len(a.Wavelength))
	}
	if len(a.Columns) == 0 {
		return fmt.Errorf("no columns")
	}
	layers := len(a.Altitudes) - 1
	for j, c := range a.Columns {
		if len(c.OpticalDepth) != layers || len(c.SingleScatteringAlbedo) != layers || len(c.AsymmetryParameter) != layers {
			return fmt.Errorf("column %d: need %d layers of optical depth, single scattering albedo, and asymmetry parameter; have %d, %d, and %d",
				j, layers, len(c.OpticalDepth), len(c.SingleScatteringAlbedo), len(c.AsymmetryParameter))
		}
	}
	return nil
}

// NumberOfLayers returns the number of layers in a.
func (a *Atmosphere) NumberOfLayers() int { return len(a.Altitudes) - 1 }

// Inputs returns the solver inputs for a. If t is not the zero time, the
// solar zenith angles are calculated for t from the column locations.
func (a *Atmosphere) Inputs(t time.Time) (twostream.Grids, *twostream.RadiatorState, []float64) {
	columns := len(a.Columns)
	grids := twostream.Grids{
		twostream.AltitudeGrid:   twostream.NewGrid(unit.Meter, columns, a.Altitudes...),
		twostream.WavelengthGrid: twostream.NewGrid(unit.Meter, 1, a.Wavelength...),
	}
	state := twostream.NewRadiatorState(a.NumberOfLayers(), columns)
	cosZenith := make([]float64, columns)
	for j, c := range a.Columns {
		for i := range c.OpticalDepth {
			state.Set(i, j, c.OpticalDepth[i], c.SingleScatteringAlbedo[i], c.AsymmetryParameter[i])
		}
		if t.IsZero() {
			cosZenith[j] = c.CosZenith
		} else {
			cosZenith[j] = solar.CosZenith(t, c.Latitude, c.Longitude)
		}
	}
	return grids, state, cosZenith
}
