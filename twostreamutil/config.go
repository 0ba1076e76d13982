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
	"sort"
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/twostream"
	"github.com/spatialmodel/twostream/science/closure/deltaeddington"
	"github.com/spatialmodel/twostream/science/closure/quadrature"
	"github.com/spatialmodel/twostream/science/solar"
	"github.com/spf13/cast"
)

// closures are the available two-stream closures by name.
var closures = map[string]twostream.Approximation{
	"delta-eddington": deltaeddington.DeltaEddington{},
	"quadrature":      quadrature.Quadrature{},
}

// Closure returns the two-stream closure with the given name.
func Closure(name string) (twostream.Approximation, error) {
	c, ok := closures[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(closures))
		for n := range closures {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("twostreamutil: unknown closure %q; options are %v", name, names)
	}
	return c, nil
}

// Logger returns a logger at the level given by the LogLevel option.
func Logger(cfg *viper.Viper) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.GetString("LogLevel"))
	if err != nil {
		return nil, fmt.Errorf("twostreamutil: %v", err)
	}
	log := logrus.New()
	log.Level = level
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	return log, nil
}

// Time returns the time given by the Time option, or the zero time if it
// is empty.
func Time(cfg *viper.Viper) (time.Time, error) {
	v := cfg.Get("Time")
	if s, ok := v.(string); ok && s == "" {
		return time.Time{}, nil
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("twostreamutil: invalid Time %v: %v", v, err)
	}
	return t.UTC(), nil
}

// Solver returns a solver configured from cfg. reflectivity, if not empty,
// overrides the SurfaceReflectivity option.
func Solver(cfg *viper.Viper, reflectivity []float64, t time.Time, log logrus.FieldLogger) (*twostream.Solver, error) {
	f0, err := cast.ToFloat64E(cfg.Get("ExtraterrestrialFlux"))
	if err != nil {
		return nil, fmt.Errorf("twostreamutil: invalid ExtraterrestrialFlux: %v", err)
	}
	top, err := cast.ToFloat64E(cfg.Get("TopDiffuseFlux"))
	if err != nil {
		return nil, fmt.Errorf("twostreamutil: invalid TopDiffuseFlux: %v", err)
	}
	nprocs, err := cast.ToIntE(cfg.Get("NumProcessors"))
	if err != nil {
		return nil, fmt.Errorf("twostreamutil: invalid NumProcessors: %v", err)
	}
	if len(reflectivity) == 0 {
		r, err := cast.ToFloat64E(cfg.Get("SurfaceReflectivity"))
		if err != nil {
			return nil, fmt.Errorf("twostreamutil: invalid SurfaceReflectivity: %v", err)
		}
		reflectivity = []float64{r}
	}
	if cfg.GetBool("EarthSunCorrection") {
		if t.IsZero() {
			return nil, fmt.Errorf("twostreamutil: EarthSunCorrection requires Time to be set")
		}
		f0 *= solar.EarthSunDistanceFactor(t)
	}
	return &twostream.Solver{
		SurfaceReflectivity:  reflectivity,
		ExtraterrestrialFlux: f0,
		TopDiffuseFlux:       top,
		NumProcessors:        nprocs,
		Log:                  log,
	}, nil
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("twostream: problem reading configuration file: %v", err)
		}
	}
	return nil
}
