// Package models holds the shared result records of the estimation
// pipeline: physically-scaled, unit-labeled parameter sets and the flat
// per-estimation summary consumed by the report writers.
package models

import (
	"math"

	"variogrest/pkg/grid"
	"variogrest/pkg/variogram"
)

// PolishedParameter is a fitted value carrying its physical unit label.
type PolishedParameter struct {
	Value float64
	Unit  string
}

// PolishedParameters is the human-facing form of a raw parameter
// vector: ranges scaled to physical lengths and ordered so that RMajor
// is the larger horizontal range, with the azimuth rotated accordingly
// and normalized to [0, pi).
type PolishedParameters struct {
	RMajor    PolishedParameter
	RMinor    PolishedParameter
	RVertical PolishedParameter
	Azimuth   PolishedParameter
	Sigma     PolishedParameter
}

// Polish converts a raw fitted parameter vector (ranges in grid cells,
// azimuth in radians) into polished form using the grid resolution.
func Polish(par []float64, res grid.Resolution) PolishedParameters {
	major := par[variogram.ParamRangeX] * res.Dx
	minor := par[variogram.ParamRangeY] * res.Dy
	azi := par[variogram.ParamAzimuth]
	if minor > major {
		major, minor = minor, major
		azi += math.Pi / 2
	}
	azi = math.Mod(azi, math.Pi)
	if azi < 0 {
		azi += math.Pi
	}
	return PolishedParameters{
		RMajor:    PolishedParameter{Value: major, Unit: "m"},
		RMinor:    PolishedParameter{Value: minor, Unit: "m"},
		RVertical: PolishedParameter{Value: par[variogram.ParamRangeZ] * res.Dz, Unit: "m"},
		Azimuth:   PolishedParameter{Value: azi * 180 / math.Pi, Unit: "deg"},
		Sigma:     PolishedParameter{Value: par[variogram.ParamSigma], Unit: "N/A"},
	}
}

// SummaryRecord is the flattened outcome of one estimation run.
type SummaryRecord struct {
	Identifier string
	Family     string

	Quality  float64
	QualityX float64
	QualityY float64
	QualityZ float64

	Parameters PolishedParameters

	// Metadata carries caller-supplied context (dataset name, filters,
	// attribute labels) through to the summary outputs.
	Metadata map[string]string
}
