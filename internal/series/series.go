// Package series holds the final calibrated (date, value) series
// produced from a reduced pixel path, and its persistence.
package series

import (
	"math"
	"time"

	"chart-digitizer/internal/calibrate"
	"chart-digitizer/internal/curve"
)

// Series is an ordered sequence of (date, value) pairs in increasing
// date order, one per reduced-path column.
type Series struct {
	Dates  []time.Time
	Values []float64
}

// Len returns the number of series entries.
func (s Series) Len() int {
	return len(s.Dates)
}

// FromPath maps every path point through the axis calibrations,
// pairing columns and rows by index. Values are rounded to 4 decimal
// places.
func FromPath(p curve.Path, ym calibrate.ValueMap, xm calibrate.DateMap) Series {
	s := Series{
		Dates:  make([]time.Time, p.Len()),
		Values: make([]float64, p.Len()),
	}
	for i := range p.Cols {
		s.Dates[i] = xm.Evaluate(float64(p.Cols[i]))
		s.Values[i] = round4(ym.Evaluate(p.Rows[i]))
	}
	return s
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
