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

// Package twostreamutil contains the command-line interface and the
// input and output plumbing for the two-stream radiative transfer solver.
package twostreamutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/twostream"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to twostream.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path to the TOML file describing the
              altitude grid, wavelength bin, and optical properties of
              the columns to solve.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the output file. Files ending in
              .csv are written as CSV and files ending in .nc or .ncf as netCDF.`,
			shorthand:  "o",
			defaultVal: "twostream.csv",
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "Closure",
			usage: `
              Closure is the two-stream closure to use: delta-eddington or
              quadrature.`,
			defaultVal: "delta-eddington",
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "SurfaceReflectivity",
			usage: `
              SurfaceReflectivity is the surface albedo used for every column
              unless the input file specifies its own.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "ExtraterrestrialFlux",
			usage: `
              ExtraterrestrialFlux is the direct-beam flux at the top of the
              atmosphere for the wavelength bin, for example in W m-2.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "TopDiffuseFlux",
			usage: `
              TopDiffuseFlux is the diffuse downwelling irradiance at the top
              of the atmosphere.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "NumProcessors",
			usage: `
              NumProcessors is the number of columns to solve concurrently.
              Zero means one per processor.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "Time",
			usage: `
              Time, if set, is the UTC time (for example 2021-06-21T12:00:00Z)
              used to calculate the solar zenith angle of every column from
              its latitude and longitude, instead of using the CosZenith
              values in the input file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "EarthSunCorrection",
			usage: `
              EarthSunCorrection specifies whether to scale ExtraterrestrialFlux
              for the Earth-Sun distance at Time.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{solveCmd.Flags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the logging level: debug, info, warning, or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("TWOSTREAM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(solveCmd)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "twostream",
	Short: "A two-stream radiative transfer solver.",
	Long: `twostream calculates the direct and diffuse irradiance and actinic flux
in a layered atmosphere using a two-stream approximation to the radiative
transfer equation.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'TWOSTREAM_var' where 'var' is the
name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of twostream.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("twostream v%s\n", twostream.Version)
	},
	DisableAutoGenTag: true,
}

// solveCmd solves the columns in an input file for one wavelength bin.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve for the radiation field.",
	Long: `solve reads an atmosphere from InputFile, calculates its radiation field
for one wavelength bin, and writes the result to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := Logger(Cfg)
		if err != nil {
			return err
		}
		log.Out = cmd.OutOrStderr()
		closure, err := Closure(Cfg.GetString("Closure"))
		if err != nil {
			return err
		}
		t, err := Time(Cfg)
		if err != nil {
			return err
		}
		return Solve(Cfg.GetString("InputFile"), Cfg.GetString("OutputFile"), closure, t, log)
	},
	DisableAutoGenTag: true,
}

// Solve reads the atmosphere in inputFile, solves it with the given
// closure and the solver configured in Cfg, and writes the radiation field
// to outputFile. If t is not the zero time, solar zenith angles are
// calculated from the column locations. If the systems of some columns
// are singular, the output is still written, with zeros in the failed
// columns, and the error is returned.
func Solve(inputFile, outputFile string, closure twostream.Approximation, t time.Time, log logrus.FieldLogger) error {
	if inputFile == "" {
		return fmt.Errorf("twostreamutil: InputFile must be set")
	}
	a, err := ReadAtmosphere(inputFile)
	if err != nil {
		return err
	}
	s, err := Solver(Cfg, a.SurfaceReflectivity, t, log)
	if err != nil {
		return err
	}
	grids, state, cosZenith := a.Inputs(t)
	field := twostream.NewRadiationField(a.NumberOfLayers(), len(a.Columns))
	solveErr := s.Solve(cosZenith, grids, nil, closure, state, field)
	if solveErr != nil && !errors.Is(solveErr, twostream.ErrSingularSystem) {
		return solveErr
	}
	log.WithFields(logrus.Fields{
		"input":   inputFile,
		"output":  outputFile,
		"columns": len(a.Columns),
	}).Info("twostream: writing radiation field")
	if err := WriteOutput(outputFile, field, a.Altitudes); err != nil {
		return err
	}
	return solveErr
}
