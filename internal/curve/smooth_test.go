package curve

import (
	"math"
	"testing"
)

func almostEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestSavgolPreservesQuadratic(t *testing.T) {
	// An order-2 filter reproduces quadratic input exactly, edges
	// included.
	y := make([]float64, 30)
	for i := range y {
		x := float64(i)
		y[i] = 0.5*x*x - 3*x + 2
	}

	out := Savgol(y, 11, 2)
	if !almostEqual(out, y, 1e-6) {
		t.Fatalf("quadratic input changed by savgol filter:\n in: %v\nout: %v", y, out)
	}
}

func TestSavgolConstantInput(t *testing.T) {
	y := make([]float64, 15)
	for i := range y {
		y[i] = 42
	}

	out := Savgol(y, 11, 2)
	if !almostEqual(out, y, 1e-9) {
		t.Fatalf("constant input changed by savgol filter: %v", out)
	}
}

func TestSavgolDampsSpike(t *testing.T) {
	y := make([]float64, 21)
	for i := range y {
		y[i] = 10
	}
	y[10] = 40

	out := Savgol(y, 11, 2)
	if len(out) != len(y) {
		t.Fatalf("length changed: %d -> %d", len(y), len(out))
	}
	if out[10] >= 40 {
		t.Errorf("spike not damped: %f", out[10])
	}
	if out[10] <= 10 {
		t.Errorf("spike overcorrected: %f", out[10])
	}
}

func TestSavgolShortInputUnchanged(t *testing.T) {
	y := []float64{1, 2, 3}
	out := Savgol(y, 11, 2)
	if !almostEqual(out, y, 0) {
		t.Fatalf("short input should pass through unchanged, got %v", out)
	}
}

func TestMovingAverageEdgePadding(t *testing.T) {
	y := []float64{0, 1, 2, 3, 4}
	out := MovingAverage(y, 5)

	// Padded input is [0 0 0 1 2 3 4 4 4]
	want := []float64{0.6, 1.2, 2, 2.8, 3.4}
	if !almostEqual(out, want, 1e-12) {
		t.Fatalf("got %v, want %v", out, want)
	}
}

func TestMovingAverageLengthPreserved(t *testing.T) {
	y := make([]float64, 97)
	for i := range y {
		y[i] = float64(i % 7)
	}
	out := MovingAverage(y, 7)
	if len(out) != len(y) {
		t.Fatalf("length changed: %d -> %d", len(y), len(out))
	}
}

func TestSmoothedWindowThresholds(t *testing.T) {
	// 5 columns: below the savgol threshold (11) but at the
	// moving-average threshold (5).
	p := Path{
		Cols: []int{0, 1, 2, 3, 4},
		Rows: []float64{10, 20, 10, 20, 10},
	}

	plain := p.smoothed(false)
	if !almostEqual(plain.Rows, p.Rows, 0) {
		t.Fatalf("savgol should not engage below 11 columns: %v", plain.Rows)
	}

	smoothed := p.smoothed(true)
	if smoothed.Len() != p.Len() {
		t.Fatalf("smoothing changed length: %d -> %d", p.Len(), smoothed.Len())
	}
	want := MovingAverage(p.Rows, 5)
	if !almostEqual(smoothed.Rows, want, 1e-12) {
		t.Fatalf("got %v, want %v", smoothed.Rows, want)
	}
}

func TestSmoothedBelowMovingAverageThreshold(t *testing.T) {
	p := Path{
		Cols: []int{0, 1, 2, 3},
		Rows: []float64{1, 5, 1, 5},
	}
	out := p.smoothed(true)
	if !almostEqual(out.Rows, p.Rows, 0) {
		t.Fatalf("no smoothing should apply below 5 columns: %v", out.Rows)
	}
}

func TestSmoothedWindowGrowsWithLength(t *testing.T) {
	// 100 columns: k = max(5, 100/15) = 6, forced odd to 7.
	rows := make([]float64, 100)
	for i := range rows {
		rows[i] = float64(i % 11)
	}
	cols := make([]int, 100)
	for i := range cols {
		cols[i] = i
	}
	p := Path{Cols: cols, Rows: rows}

	out := p.smoothed(true)
	base := Savgol(rows, 11, 2)
	want := MovingAverage(base, 7)
	if !almostEqual(out.Rows, want, 1e-9) {
		t.Fatal("expected savgol followed by a width-7 moving average")
	}
}
