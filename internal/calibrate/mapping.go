// Package calibrate builds pixel-to-axis mappings from two-point
// calibration. A mapping is an immutable value object: once built it
// evaluates any pixel coordinate without further state.
package calibrate

import (
	"fmt"
	"math"
)

// Scale selects the value-axis interpolation mode.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ParseScale parses a scale name. The empty string means linear.
func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case ScaleLinear, "":
		return ScaleLinear, nil
	case ScaleLog:
		return ScaleLog, nil
	default:
		return "", &InvalidCalibrationError{Reason: fmt.Sprintf("unknown scale %q", s)}
	}
}

// ValuePoint pairs a pixel row with a known axis value.
type ValuePoint struct {
	Pixel int
	Value float64
}

// DatePoint pairs a pixel column with a date string.
type DatePoint struct {
	Pixel int
	Date  string
}

// ValueMap maps a pixel row to a real axis value.
//
// Linear mode interpolates directly between the two reference values.
// Log mode fits the line in log10 space and exponentiates on
// evaluation, which keeps the interpolation visually linear on a
// log-scaled chart.
type ValueMap struct {
	scale  Scale
	ref    float64 // value (or log10 value) at the reference pixel
	slope  float64 // per-pixel delta in value (or log10) space
	pixel0 float64
}

// NewValueMap fits a value mapping through (px1, v1) and (px2, v2).
// Coinciding reference pixels yield a constant mapping rather than an
// error. Log scale with a non-positive reference value fails with an
// *InvalidCalibrationError.
func NewValueMap(px1 int, v1 float64, px2 int, v2 float64, scale Scale) (ValueMap, error) {
	switch scale {
	case ScaleLog:
		if v1 <= 0 || v2 <= 0 {
			return ValueMap{}, &InvalidCalibrationError{
				Reason: "log scale requires strictly positive reference values",
			}
		}
		lv1, lv2 := math.Log10(v1), math.Log10(v2)
		return ValueMap{
			scale:  ScaleLog,
			ref:    lv1,
			slope:  slopeBetween(px1, px2, lv1, lv2),
			pixel0: float64(px1),
		}, nil
	case ScaleLinear, "":
		return ValueMap{
			scale:  ScaleLinear,
			ref:    v1,
			slope:  slopeBetween(px1, px2, v1, v2),
			pixel0: float64(px1),
		}, nil
	default:
		return ValueMap{}, &InvalidCalibrationError{Reason: fmt.Sprintf("unknown scale %q", scale)}
	}
}

// Evaluate maps one pixel row to an axis value.
func (m ValueMap) Evaluate(pixel float64) float64 {
	v := m.ref + m.slope*(pixel-m.pixel0)
	if m.scale == ScaleLog {
		return math.Pow(10, v)
	}
	return v
}

// Scale reports the mapping's interpolation mode.
func (m ValueMap) Scale() Scale {
	return m.scale
}

// slopeBetween returns the per-pixel slope, zero when the reference
// pixels coincide (degenerate but valid calibration).
func slopeBetween(px1, px2 int, a, b float64) float64 {
	if px1 == px2 {
		return 0
	}
	return (b - a) / float64(px2-px1)
}

// Build constructs both axis mappings from calibration pairs. Any
// invalid input fails before either mapping can be observed, so a
// partial calibration is never constructed.
func Build(y1, y2 ValuePoint, x1, x2 DatePoint, scale Scale) (ValueMap, DateMap, error) {
	ym, err := NewValueMap(y1.Pixel, y1.Value, y2.Pixel, y2.Value, scale)
	if err != nil {
		return ValueMap{}, DateMap{}, err
	}
	xm, err := NewDateMap(x1.Pixel, x1.Date, x2.Pixel, x2.Date)
	if err != nil {
		return ValueMap{}, DateMap{}, err
	}
	return ym, xm, nil
}
