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
	"sync"

	"github.com/ctessum/sparse"
	"github.com/golang/groupcache/lru"
	"github.com/spatialmodel/twostream/internal/hash"
)

// Cache wraps a Solver and an Approximation and remembers the radiation
// fields of recent inputs. Because solving is deterministic, a repeated
// request is answered with a copy of the stored field. It is safe for
// concurrent use.
type Cache struct {
	solver *Solver
	approx Approximation

	mu    sync.Mutex
	cache *lru.Cache
	hits  int
}

// NewCache returns a cache holding at most maxEntries radiation fields.
// If maxEntries is zero there is no limit.
func NewCache(s *Solver, approx Approximation, maxEntries int) *Cache {
	return &Cache{
		solver: s,
		approx: approx,
		cache:  lru.New(maxEntries),
	}
}

// Hits returns the number of requests answered from the cache.
func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Solve writes the radiation field for the given inputs into field,
// solving with the wrapped Solver only if the inputs are not in the cache.
// Results of solves that returned an error are not stored.
func (c *Cache) Solve(cosZenith []float64, grids Grids, profiles Profiles, state *RadiatorState, field *RadiationField) error {
	key := c.key(cosZenith, grids, profiles, state)

	c.mu.Lock()
	v, ok := c.cache.Get(key)
	if ok {
		c.hits++
	}
	c.mu.Unlock()
	if ok {
		stored := v.(*RadiationField)
		if err := field.check(stored.NumberOfLevels()-1, stored.NumberOfColumns()); err != nil {
			return err
		}
		copyField(field, stored)
		return nil
	}

	if err := c.solver.Solve(cosZenith, grids, profiles, c.approx, state, field); err != nil {
		return err
	}
	c.mu.Lock()
	c.cache.Add(key, field.Copy())
	c.mu.Unlock()
	return nil
}

// key returns a hash of the inputs. Maps are flattened in sorted order.
func (c *Cache) key(cosZenith []float64, grids Grids, profiles Profiles, state *RadiatorState) string {
	type arrayKey struct {
		Name     string
		Units    string
		Shape    []int
		Elements []float64
	}
	array := func(name, units string, a *sparse.DenseArray) arrayKey {
		if a == nil {
			return arrayKey{Name: name, Units: units}
		}
		return arrayKey{Name: name, Units: units, Shape: a.Shape, Elements: a.Elements}
	}
	var arrays []arrayKey
	for _, name := range []string{AltitudeGrid, WavelengthGrid} {
		if g := grids[name]; g != nil {
			arrays = append(arrays, array(name, g.Units.String(), g.Edges))
		}
	}
	for _, name := range profiles.Names() {
		if p := profiles[name]; p != nil {
			arrays = append(arrays, array(name+" on "+p.Grid, p.Units, p.Values))
		}
	}
	if state != nil {
		arrays = append(arrays,
			array("optical depth", "", state.OpticalDepth),
			array("single scattering albedo", "", state.SingleScatteringAlbedo),
			array("asymmetry parameter", "", state.AsymmetryParameter))
	}
	return hash.Hash(cosZenith, arrays, c.solver.SurfaceReflectivity,
		c.solver.ExtraterrestrialFlux, c.solver.TopDiffuseFlux, fmt.Sprint(c.approx))
}

func copyField(dst, src *RadiationField) {
	d, s := dst.variables(), src.variables()
	for i := range d {
		copy(d[i].data.Elements, s[i].data.Elements)
	}
}
