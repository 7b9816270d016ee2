package curve

import (
	"gonum.org/v1/gonum/mat"
)

const (
	// Minimum column counts before each smoothing stage engages.
	// Below these the sample is too short for a stable fit and the
	// raw per-column medians are returned unchanged.
	savgolMinColumns    = 11
	movingAvgMinColumns = 5

	savgolWindow = 11
	savgolOrder  = 2
)

// smoothed applies the baseline Savitzky-Golay filter and, when
// requested, the secondary moving-average pass. Output length always
// equals input length.
func (p Path) smoothed(applySmooth bool) Path {
	n := p.Len()

	if n >= savgolMinColumns {
		window := savgolWindow
		if n < window {
			window = n
		}
		if window%2 == 0 {
			window--
		}
		if window >= 3 {
			p.Rows = Savgol(p.Rows, window, savgolOrder)
		}
	}

	if applySmooth && n >= movingAvgMinColumns {
		k := n / 15
		if k < movingAvgMinColumns {
			k = movingAvgMinColumns
		}
		if k%2 == 0 {
			k++
		}
		p.Rows = MovingAverage(p.Rows, k)
	}

	return p
}

// Savgol applies a Savitzky-Golay smoothing filter: each sample is
// replaced by the value at the center of a least-squares polynomial
// fit over a sliding window. The first and last half-windows are taken
// from a single polynomial fitted over the first/last full window, so
// the output covers every input position.
func Savgol(y []float64, window, order int) []float64 {
	n := len(y)
	if window < 3 || window > n || window <= order {
		return append([]float64(nil), y...)
	}

	h := window / 2
	out := make([]float64, n)

	for i := h; i < n-h; i++ {
		c := polyfit(y[i-h:i+h+1], order)
		if c == nil {
			return append([]float64(nil), y...)
		}
		out[i] = polyval(c, float64(h))
	}

	head := polyfit(y[:window], order)
	tail := polyfit(y[n-window:], order)
	if head == nil || tail == nil {
		return append([]float64(nil), y...)
	}
	for i := 0; i < h; i++ {
		out[i] = polyval(head, float64(i))
	}
	for i := n - h; i < n; i++ {
		out[i] = polyval(tail, float64(i-(n-window)))
	}

	return out
}

// MovingAverage applies a centered moving average of odd width k,
// padding both ends with the edge value so the output length matches
// the input.
func MovingAverage(y []float64, k int) []float64 {
	n := len(y)
	if n == 0 || k < 1 {
		return append([]float64(nil), y...)
	}

	h := k / 2
	padded := make([]float64, n+2*h)
	for i := 0; i < h; i++ {
		padded[i] = y[0]
		padded[len(padded)-1-i] = y[n-1]
	}
	copy(padded[h:], y)

	out := make([]float64, n)
	for i := range out {
		var sum float64
		for j := 0; j < k; j++ {
			sum += padded[i+j]
		}
		out[i] = sum / float64(k)
	}
	return out
}

// polyfit fits a polynomial of the given order to y sampled at
// x = 0..len(y)-1 by least squares, returning coefficients lowest
// order first. Returns nil if the system cannot be solved.
func polyfit(y []float64, order int) []float64 {
	n := len(y)

	a := mat.NewDense(n, order+1, nil)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, v)
			v *= float64(i)
		}
		b.SetVec(i, y[i])
	}

	var qr mat.QR
	qr.Factorize(a)

	var c mat.VecDense
	if err := qr.SolveVecTo(&c, false, b); err != nil {
		return nil
	}

	coeffs := make([]float64, order+1)
	for j := 0; j <= order; j++ {
		coeffs[j] = c.AtVec(j)
	}
	return coeffs
}

// polyval evaluates a polynomial with coefficients lowest order first.
func polyval(coeffs []float64, x float64) float64 {
	var v float64
	for j := len(coeffs) - 1; j >= 0; j-- {
		v = v*x + coeffs[j]
	}
	return v
}
