package curve

import (
	"sort"

	"gocv.io/x/gocv"
)

// Path is the one-row-per-column reduction of a matched color region.
// Columns are strictly increasing; rows are real-valued after
// smoothing.
type Path struct {
	Cols []int
	Rows []float64
}

// Len returns the number of path points.
func (p Path) Len() int {
	return len(p.Cols)
}

// reduceColumns collapses a binary mask to the median matching row per
// column. The median resists mask outliers (gridline bleed, adjacent
// same-colored elements) better than the mean. Row coordinates are
// offset by yOffset back into absolute image space.
func reduceColumns(mask gocv.Mat, yOffset int) Path {
	rows, cols := mask.Rows(), mask.Cols()

	matches := make([][]float64, cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if mask.GetUCharAt(y, x) > 0 {
				matches[x] = append(matches[x], float64(y+yOffset))
			}
		}
	}

	var p Path
	for x, ys := range matches {
		if len(ys) == 0 {
			continue
		}
		p.Cols = append(p.Cols, x)
		p.Rows = append(p.Rows, median(ys))
	}
	return p
}

// median returns the middle value, or the mean of the two middle
// values for an even count.
func median(vals []float64) float64 {
	sort.Float64s(vals)
	n := len(vals)
	if n%2 == 1 {
		return vals[n/2]
	}
	return (vals[n/2-1] + vals[n/2]) / 2
}
