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
	"sort"

	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
)

// Names of the grids the solver requires.
const (
	AltitudeGrid   = "altitude [m]"
	WavelengthGrid = "wavelength [m]"
)

// Grid holds the section edges of one physical dimension for every column.
// Edges has shape [sections+1][columns].
type Grid struct {
	Units unit.Dimensions
	Edges *sparse.DenseArray
}

// NewGrid returns a grid with the given units whose columns all share
// the given section edges.
func NewGrid(units unit.Dimensions, columns int, edges ...float64) *Grid {
	g := &Grid{
		Units: units,
		Edges: sparse.ZerosDense(len(edges), columns),
	}
	for i, e := range edges {
		for j := 0; j < columns; j++ {
			g.Edges.Elements[g.Edges.Index1d(i, j)] = e
		}
	}
	return g
}

// NumberOfColumns returns the number of columns in the grid.
func (g *Grid) NumberOfColumns() int { return g.Edges.Shape[1] }

// NumberOfSections returns the number of sections (layers or bins) in the grid.
func (g *Grid) NumberOfSections() int { return g.Edges.Shape[0] - 1 }

// Midpoints returns the midpoint of every section, shaped [sections][columns].
func (g *Grid) Midpoints() *sparse.DenseArray {
	n, c := g.NumberOfSections(), g.NumberOfColumns()
	m := sparse.ZerosDense(n, c)
	for i := 0; i < n; i++ {
		for j := 0; j < c; j++ {
			m.Elements[m.Index1d(i, j)] = (g.Edges.Get(i, j) + g.Edges.Get(i+1, j)) / 2
		}
	}
	return m
}

// check makes sure the grid is two dimensional, has at least one section
// and one column, and is measured in meters.
func (g *Grid) check(name string) error {
	if g == nil || g.Edges == nil {
		return invalidf("grid %q is missing", name)
	}
	if len(g.Edges.Shape) != 2 {
		return invalidf("grid %q edges have %d dimensions; want 2", name, len(g.Edges.Shape))
	}
	if g.NumberOfSections() < 1 || g.NumberOfColumns() < 1 {
		return invalidf("grid %q has %d sections and %d columns", name, g.NumberOfSections(), g.NumberOfColumns())
	}
	if !g.Units.Matches(unit.Meter) {
		return invalidf("grid %q has units %v; want %v", name, g.Units, unit.Meter)
	}
	return nil
}

// Grids holds grids by name.
type Grids map[string]*Grid

// Profile holds a physical quantity (for example temperature) for every
// section of the named grid. Values has shape [sections][columns].
// The solver passes profiles to the two-stream closure without reading them.
type Profile struct {
	Grid   string
	Units  string
	Values *sparse.DenseArray
}

// Profiles holds profiles by name.
type Profiles map[string]*Profile

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// check makes sure every profile refers to one of the grids and matches
// its shape.
func (p Profiles) check(grids Grids) error {
	for _, name := range p.Names() {
		prof := p[name]
		if prof == nil || prof.Values == nil {
			return invalidf("profile %q is missing values", name)
		}
		g, ok := grids[prof.Grid]
		if !ok {
			return invalidf("profile %q refers to unknown grid %q", name, prof.Grid)
		}
		want := []int{g.NumberOfSections(), g.NumberOfColumns()}
		if !sameShape(prof.Values.Shape, want) {
			return invalidf("profile %q has shape %v; grid %q needs %v", name, prof.Values.Shape, prof.Grid, want)
		}
	}
	return nil
}

// checkGrids makes sure the altitude grid has one column for every solar
// zenith angle and the wavelength grid holds a single bin.
func checkGrids(grids Grids, columns int) (layers int, err error) {
	alt, wl := grids[AltitudeGrid], grids[WavelengthGrid]
	if err := alt.check(AltitudeGrid); err != nil {
		return 0, err
	}
	if err := wl.check(WavelengthGrid); err != nil {
		return 0, err
	}
	if alt.NumberOfColumns() != columns {
		return 0, invalidf("altitude grid has %d columns but there are %d solar zenith angles", alt.NumberOfColumns(), columns)
	}
	if wl.NumberOfColumns() != 1 || wl.NumberOfSections() != 1 {
		return 0, invalidf("wavelength grid must have exactly 1 column and 1 bin; it has %d columns and %d bins",
			wl.NumberOfColumns(), wl.NumberOfSections())
	}
	return alt.NumberOfSections(), nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func shapeError(name string, have []int, want ...int) error {
	return invalidf("%s has shape %v; want %v", name, have, want)
}
