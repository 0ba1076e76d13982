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

// Package solar calculates the position of the sun, for driving two-stream
// columns from a time and a location.
package solar

import (
	"math"
	"time"
)

const (
	deg = math.Pi / 180

	// obliquity is the tilt of the Earth's axis.
	obliquity = 23.4393 * deg

	// eccentricity is the eccentricity of the Earth's orbit.
	eccentricity = 0.01671
)

// orbit holds the position of the Earth on its orbit at an instant.
type orbit struct {
	n       float64 // years since 1968
	anomaly float64 // true anomaly, rad
	epsilon float64 // angle between perihelion and the winter solstice, rad
	mean    float64 // mean anomaly, rad
}

func orbitAt(t time.Time) orbit {
	t = t.UTC()
	n := float64(t.Year() - 1968)

	// Day of perihelion passage, relative to noon on 1 January.
	d0 := 3.71 + 0.2596*n - math.Floor((n+3)/4)

	hours := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	d := float64(t.YearDay()) + (hours-12)/24

	m := 2 * math.Pi * (d - d0) / 365.2596
	return orbit{
		n:       n,
		mean:    m,
		epsilon: (12.3901 + 0.0172*(n+m/(2*math.Pi))) * deg,
		anomaly: m + (1.914*math.Sin(m)+0.02*math.Sin(2*m))*deg,
	}
}

// Declination returns the solar declination at time t, in radians.
func Declination(t time.Time) float64 {
	o := orbitAt(t)
	return math.Asin(math.Cos(o.anomaly+o.epsilon) * math.Sin(-obliquity))
}

// EquationOfTime returns the difference between apparent and mean solar
// time at time t, as an angle in radians.
func EquationOfTime(t time.Time) float64 {
	o := orbitAt(t)
	x := 2 * (o.anomaly + o.epsilon)
	return (o.mean - o.anomaly) - math.Atan(0.043*math.Sin(x)/(1-0.043*math.Cos(x)))
}

// HourAngle returns the solar hour angle at time t and the given longitude
// (degrees east), in radians. It is zero at apparent solar noon.
func HourAngle(t time.Time, longitude float64) float64 {
	u := t.UTC()
	hours := float64(u.Hour()) + float64(u.Minute())/60 + float64(u.Second())/3600
	return (hours-12)*15*deg + longitude*deg + EquationOfTime(t)
}

// CosZenith returns the cosine of the solar zenith angle at time t and the
// given latitude (degrees north) and longitude (degrees east).
// It is negative when the sun is below the horizon.
func CosZenith(t time.Time, latitude, longitude float64) float64 {
	phi := latitude * deg
	delta := Declination(t)
	c := math.Sin(phi)*math.Sin(delta) + math.Cos(phi)*math.Cos(delta)*math.Cos(HourAngle(t, longitude))
	return math.Max(-1, math.Min(1, c))
}

// EarthSunDistanceFactor returns (r₀/r)², the ratio of the extraterrestrial
// flux at time t to its value at the mean Earth–Sun distance r₀.
func EarthSunDistanceFactor(t time.Time) float64 {
	o := orbitAt(t)
	f := (1 + eccentricity*math.Cos(o.anomaly)) / (1 - eccentricity*eccentricity)
	return f * f
}
