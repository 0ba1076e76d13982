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
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spatialmodel/twostream"
)

// Record is one row of CSV output: the radiation field at one level of
// one column.
type Record struct {
	Column                 int     `csv:"column"`
	Level                  int     `csv:"level"`
	Altitude               float64 `csv:"altitude_m"`
	IrradianceDirect       float64 `csv:"irradiance_direct"`
	IrradianceUpwelling    float64 `csv:"irradiance_upwelling"`
	IrradianceDownwelling  float64 `csv:"irradiance_downwelling"`
	ActinicFluxDirect      float64 `csv:"actinic_flux_direct"`
	ActinicFluxUpwelling   float64 `csv:"actinic_flux_upwelling"`
	ActinicFluxDownwelling float64 `csv:"actinic_flux_downwelling"`
}

// Records flattens f into one record per level per column. altitudes
// holds the level altitudes shared by all columns.
func Records(f *twostream.RadiationField, altitudes []float64) []*Record {
	irr, act := f.SpectralIrradiance, f.ActinicFlux
	var out []*Record
	for j := 0; j < f.NumberOfColumns(); j++ {
		for k := 0; k < f.NumberOfLevels(); k++ {
			r := &Record{
				Column:                 j,
				Level:                  k,
				IrradianceDirect:       irr.Direct.Get(k, j),
				IrradianceUpwelling:    irr.Upwelling.Get(k, j),
				IrradianceDownwelling:  irr.Downwelling.Get(k, j),
				ActinicFluxDirect:      act.Direct.Get(k, j),
				ActinicFluxUpwelling:   act.Upwelling.Get(k, j),
				ActinicFluxDownwelling: act.Downwelling.Get(k, j),
			}
			if k < len(altitudes) {
				r.Altitude = altitudes[k]
			}
			out = append(out, r)
		}
	}
	return out
}

// WriteOutput writes f to filename. Files ending in .csv are written as
// CSV, and files ending in .nc or .ncf as netCDF.
func WriteOutput(filename string, f *twostream.RadiationField, altitudes []float64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".nc", ".ncf":
	default:
		return fmt.Errorf("twostreamutil: output file %s must end in .csv, .nc, or .ncf", filename)
	}
	w, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("twostreamutil: creating output file: %v", err)
	}
	if ext == ".csv" {
		err = gocsv.MarshalFile(Records(f, altitudes), w)
	} else {
		err = f.Write(w)
	}
	if err != nil {
		w.Close()
		return fmt.Errorf("twostreamutil: writing output file %s: %v", filename, err)
	}
	return w.Close()
}
