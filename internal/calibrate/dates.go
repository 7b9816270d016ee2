package calibrate

import (
	"math"
	"strings"
	"time"
)

// Accepted calibration date layouts, tried in order. Month-only forms
// resolve to the first of the month.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01",
}

// ParseDate parses a calibration date string, trimming surrounding
// whitespace first. Unrecognized input fails with an
// *UnparseableDateError naming the string.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &UnparseableDateError{Input: trimmed}
}

// Day ordinal of 1970-01-01 in the proleptic Gregorian calendar,
// where 0001-01-01 is day 1.
const unixEpochOrdinal = 719163

// ordinalOf returns the proleptic Gregorian day number of t's date.
func ordinalOf(t time.Time) int {
	secs := t.Unix()
	days := secs / 86400
	if secs%86400 < 0 {
		days--
	}
	return int(days) + unixEpochOrdinal
}

// dateOf returns the UTC midnight date for a day ordinal.
func dateOf(ordinal int) time.Time {
	return time.Unix(int64(ordinal-unixEpochOrdinal)*86400, 0).UTC()
}

// DateMap maps a pixel column to a calendar date by linear
// interpolation over day ordinals.
type DateMap struct {
	ord0   int
	slope  float64 // days per pixel
	pixel0 float64
}

// NewDateMap fits a date mapping through (px1, date1) and (px2, date2).
// Coinciding reference pixels yield a constant mapping.
func NewDateMap(px1 int, date1 string, px2 int, date2 string) (DateMap, error) {
	d1, err := ParseDate(date1)
	if err != nil {
		return DateMap{}, err
	}
	d2, err := ParseDate(date2)
	if err != nil {
		return DateMap{}, err
	}

	o1, o2 := ordinalOf(d1), ordinalOf(d2)
	return DateMap{
		ord0:   o1,
		slope:  slopeBetween(px1, px2, float64(o1), float64(o2)),
		pixel0: float64(px1),
	}, nil
}

// Evaluate maps one pixel column to a date. Fractional day ordinals
// round half away from zero; downstream consumers depend on this exact
// rule.
func (m DateMap) Evaluate(pixel float64) time.Time {
	ordinal := float64(m.ord0) + m.slope*(pixel-m.pixel0)
	return dateOf(int(math.Round(ordinal)))
}
