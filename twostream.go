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

// Package twostream computes the radiation field in a vertically layered
// atmosphere with a two-stream approximation to the radiative transfer
// equation.
//
// A batch of independent atmospheric columns is solved for one wavelength
// bin at a time. For each column the optical properties of every layer are
// delta-scaled, turned into two-stream coefficients by a pluggable closure
// (see package science/closure/deltaeddington), and used to build a
// tridiagonal system whose solution gives the diffuse upwelling and
// downwelling fluxes at every layer boundary. The direct beam is computed
// analytically from Beer–Lambert attenuation.
//
// Layers and levels are indexed from the top of the atmosphere downward:
// layer i lies between level i and level i+1, and the last level is the
// surface.
package twostream

// Version gives the version number.
const Version = "1.0.0"
