// Package curve extracts the pixel-space path of a colored line from a
// chart image.
package curve

import (
	"image"
	"image/color"

	"chart-digitizer/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Band restricts color matching to an inclusive row range, used to
// exclude legends, titles or axis furniture that share the line color.
type Band struct {
	YMin int
	YMax int
}

// FullBand returns a band covering every row of the image.
func FullBand(img gocv.Mat) Band {
	return Band{YMin: 0, YMax: img.Rows() - 1}
}

// clamp intersects the band with [0, rows-1]. The second return is
// false when the intersection is empty.
func (b Band) clamp(rows int) (Band, bool) {
	if b.YMin < 0 {
		b.YMin = 0
	}
	if b.YMax > rows-1 {
		b.YMax = rows - 1
	}
	if b.YMin > b.YMax {
		return Band{}, false
	}
	return b, true
}

// Extract runs the full segmentation pipeline: tolerance-box color
// matching within the band, hole filling, 5x5 morphological closing,
// per-column median reduction and smoothing. An empty path means no
// pixel matched; that is an expected outcome of parameter tuning, not
// an error.
func Extract(img gocv.Mat, target colorutil.RGB, band Band, opts Options) Path {
	if img.Empty() {
		return Path{}
	}
	b, ok := band.clamp(img.Rows())
	if !ok {
		return Path{}
	}

	mask := MatchMask(img, target, opts.Tolerance, b)
	defer mask.Close()

	filled := FillHoles(mask)
	defer filled.Close()

	cleaned := CloseMask(filled)
	defer cleaned.Close()

	path := reduceColumns(cleaned, b.YMin)
	return path.smoothed(opts.ApplySmooth)
}

// MatchMask builds a binary mask over the band rows where every
// channel of a pixel lies within the tolerance box around target.
func MatchMask(img gocv.Mat, target colorutil.RGB, tolerance int, band Band) gocv.Mat {
	region := img.Region(image.Rect(0, band.YMin, img.Cols(), band.YMax+1))
	defer region.Close()

	lower, upper := target.Bounds(tolerance)

	// Mats are BGR ordered
	mask := gocv.NewMat()
	gocv.InRangeWithScalar(region,
		gocv.NewScalar(float64(lower.B), float64(lower.G), float64(lower.R), 0),
		gocv.NewScalar(float64(upper.B), float64(upper.G), float64(upper.R), 0),
		&mask)

	return mask
}

// FillHoles fills regions of non-matching pixels that are fully
// enclosed by matching pixels. Anti-aliased line interiors and
// gridline crossings break color continuity inside an otherwise solid
// line; filling the outer contours restores it.
func FillHoles(mask gocv.Mat) gocv.Mat {
	if mask.Empty() {
		return gocv.NewMat()
	}

	filled := gocv.NewMatWithSize(mask.Rows(), mask.Cols(), gocv.MatTypeCV8U)
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	for i := 0; i < contours.Size(); i++ {
		gocv.DrawContours(&filled, contours, i, color.RGBA{R: 255, G: 255, B: 255, A: 255}, -1)
	}

	return filled
}

// CloseMask applies a morphological closing with a 5x5 square
// structuring element, bridging small gaps from dashed lines or
// marker occlusion.
func CloseMask(mask gocv.Mat) gocv.Mat {
	if mask.Empty() {
		return gocv.NewMat()
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 5, Y: 5})
	defer kernel.Close()

	closed := gocv.NewMat()
	gocv.MorphologyEx(mask, &closed, gocv.MorphClose, kernel)

	return closed
}

// ImageToMat converts a Go image.Image to a gocv.Mat in BGR format.
func ImageToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat
}
