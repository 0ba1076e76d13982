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
	"fmt"
	"math"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
)

// IrradianceUnits are the units of the radiation field when the
// extraterrestrial flux is given in W m⁻².
var IrradianceUnits = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -3}

// RadiationComponents holds the direct, diffuse upwelling, and diffuse
// downwelling parts of a radiation quantity at every level of every
// column. Each array has shape [layers+1][columns].
type RadiationComponents struct {
	Direct      *sparse.DenseArray
	Upwelling   *sparse.DenseArray
	Downwelling *sparse.DenseArray
}

// RadiationField holds the spectral irradiance and actinic flux of one
// wavelength bin.
type RadiationField struct {
	SpectralIrradiance RadiationComponents
	ActinicFlux        RadiationComponents
}

// NewRadiationField returns a zeroed radiation field with a level at the
// top and bottom of every layer.
func NewRadiationField(layers, columns int) *RadiationField {
	z := func() *sparse.DenseArray { return sparse.ZerosDense(layers+1, columns) }
	return &RadiationField{
		SpectralIrradiance: RadiationComponents{Direct: z(), Upwelling: z(), Downwelling: z()},
		ActinicFlux:        RadiationComponents{Direct: z(), Upwelling: z(), Downwelling: z()},
	}
}

// NumberOfLevels returns the number of levels in f.
func (f *RadiationField) NumberOfLevels() int { return f.SpectralIrradiance.Direct.Shape[0] }

// NumberOfColumns returns the number of columns in f.
func (f *RadiationField) NumberOfColumns() int { return f.SpectralIrradiance.Direct.Shape[1] }

// Copy returns a deep copy of f.
func (f *RadiationField) Copy() *RadiationField {
	c := func(r RadiationComponents) RadiationComponents {
		return RadiationComponents{Direct: r.Direct.Copy(), Upwelling: r.Upwelling.Copy(), Downwelling: r.Downwelling.Copy()}
	}
	return &RadiationField{SpectralIrradiance: c(f.SpectralIrradiance), ActinicFlux: c(f.ActinicFlux)}
}

// variable is a named radiation field array.
type variable struct {
	name, description string
	data              *sparse.DenseArray
}

// variables returns the arrays of f in a fixed order.
func (f *RadiationField) variables() []variable {
	return []variable{
		{"IrradianceDirect", "Direct beam spectral irradiance", f.SpectralIrradiance.Direct},
		{"IrradianceUpwelling", "Diffuse upwelling spectral irradiance", f.SpectralIrradiance.Upwelling},
		{"IrradianceDownwelling", "Diffuse downwelling spectral irradiance", f.SpectralIrradiance.Downwelling},
		{"ActinicFluxDirect", "Direct beam actinic flux", f.ActinicFlux.Direct},
		{"ActinicFluxUpwelling", "Diffuse upwelling actinic flux", f.ActinicFlux.Upwelling},
		{"ActinicFluxDownwelling", "Diffuse downwelling actinic flux", f.ActinicFlux.Downwelling},
	}
}

func (f *RadiationField) check(layers, columns int) error {
	if f == nil {
		return invalidf("radiation field is missing")
	}
	want := []int{layers + 1, columns}
	for _, v := range f.variables() {
		if v.data == nil {
			return invalidf("radiation field %s is missing", v.name)
		}
		if !sameShape(v.data.Shape, want) || len(v.data.Elements) != (layers+1)*columns {
			return shapeError("radiation field "+v.name, v.data.Shape, want...)
		}
	}
	return nil
}

// zeroColumn sets every level of the given column to zero.
func (f *RadiationField) zeroColumn(column int) {
	for _, v := range f.variables() {
		for k := 0; k < v.data.Shape[0]; k++ {
			v.data.Elements[v.data.Index1d(k, column)] = 0
		}
	}
}

// Reconstruct calculates the radiation field of the given column from the
// solution y of its two-stream system (Toon et al., 1989, eqs. 31 and 32)
// and writes it into every level of f. Level i is the top of layer i and
// the last level is the bottom of the last layer. Diffuse actinic flux is
// diffuse irradiance divided by the closure's μ.
func Reconstruct(p *SolutionParameters, c *SourceTerms, column int, b Boundary, y []float64, f *RadiationField) {
	layers := p.E1.Shape[0]
	e1, e2, e3, e4 := layerBasis(p, column)
	mu := columnOf(p.Mu, column)
	irr, act := f.SpectralIrradiance, f.ActinicFlux
	set := func(a *sparse.DenseArray, level int, v float64) { a.Elements[a.Index1d(level, column)] = v }

	for k := 0; k <= layers; k++ {
		var up, down float64
		n := k
		if k < layers {
			y1, y2 := y[2*n], y[2*n+1]
			up = y1*e3(n) - y2*e4(n) + c.UpwellingTop.Get(n, column)
			down = y1*e1(n) - y2*e2(n) + c.DownwellingTop.Get(n, column)
		} else {
			n = layers - 1
			y1, y2 := y[2*n], y[2*n+1]
			up = y1*e1(n) + y2*e2(n) + c.UpwellingBottom.Get(n, column)
			down = y1*e3(n) + y2*e4(n) + c.DownwellingBottom.Get(n, column)
		}
		direct := math.Pi * b.ExtraterrestrialFlux * math.Exp(-c.CumulativeOpticalDepth.Get(k, column)/b.CosZenith)

		set(irr.Direct, k, b.CosZenith*direct)
		set(irr.Upwelling, k, up)
		set(irr.Downwelling, k, down)
		set(act.Direct, k, direct)
		set(act.Upwelling, k, up/mu(n))
		set(act.Downwelling, k, down/mu(n))
	}
}

// Write writes f to w in netCDF format.
func (f *RadiationField) Write(w *os.File) error {
	h := cdf.NewHeader([]string{"level", "column"}, []int{f.NumberOfLevels(), f.NumberOfColumns()})
	h.AddAttribute("", "comment", "two-stream radiation field")
	h.AddAttribute("", "version", Version)
	vars := f.variables()
	for _, v := range vars {
		h.AddVariable(v.name, []string{"level", "column"}, []float64{0})
		h.AddAttribute(v.name, "description", v.description)
		h.AddAttribute(v.name, "units", IrradianceUnits.String())
	}
	h.Define()
	if errs := h.Check(); len(errs) > 0 {
		return fmt.Errorf("twostream: writing radiation field: %v", errs[0])
	}

	ff, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("twostream: writing radiation field: %v", err)
	}
	for _, v := range vars {
		end := ff.Header.Lengths(v.name)
		start := make([]int, len(end))
		if _, err := ff.Writer(v.name, start, end).Write(v.data.Elements); err != nil {
			return fmt.Errorf("twostream: writing variable %s to netcdf file: %v", v.name, err)
		}
	}
	return cdf.UpdateNumRecs(w)
}

// ReadRadiationField reads a radiation field written by Write.
func ReadRadiationField(rw cdf.ReaderWriterAt) (*RadiationField, error) {
	ff, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("twostream: reading radiation field: %v", err)
	}
	dims := ff.Header.Lengths("IrradianceDirect")
	if len(dims) != 2 {
		return nil, fmt.Errorf("twostream: reading radiation field: IrradianceDirect has dimensions %v", dims)
	}
	f := NewRadiationField(dims[0]-1, dims[1])
	for _, v := range f.variables() {
		if _, err := ff.Reader(v.name, nil, nil).Read(v.data.Elements); err != nil {
			return nil, fmt.Errorf("twostream: reading variable %s from netcdf file: %v", v.name, err)
		}
	}
	return f, nil
}
