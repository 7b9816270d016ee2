package curve

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestReduceColumnsMedian(t *testing.T) {
	mask := gocv.NewMatWithSize(30, 20, gocv.MatTypeCV8U)
	defer mask.Close()

	// Column 7 matches rows 10, 12, 14
	mask.SetUCharAt(10, 7, 255)
	mask.SetUCharAt(12, 7, 255)
	mask.SetUCharAt(14, 7, 255)

	p := reduceColumns(mask, 0)
	if p.Len() != 1 {
		t.Fatalf("expected 1 column, got %d", p.Len())
	}
	if p.Cols[0] != 7 {
		t.Errorf("expected column 7, got %d", p.Cols[0])
	}
	if p.Rows[0] != 12 {
		t.Errorf("expected median row 12, got %f", p.Rows[0])
	}
}

func TestReduceColumnsEvenCountMedian(t *testing.T) {
	mask := gocv.NewMatWithSize(30, 20, gocv.MatTypeCV8U)
	defer mask.Close()

	for _, y := range []int{10, 12, 14, 16} {
		mask.SetUCharAt(y, 3, 255)
	}

	p := reduceColumns(mask, 0)
	if p.Rows[0] != 13 {
		t.Errorf("expected median 13 for even count, got %f", p.Rows[0])
	}
}

func TestReduceColumnsOffset(t *testing.T) {
	mask := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8U)
	defer mask.Close()

	mask.SetUCharAt(4, 2, 255)

	p := reduceColumns(mask, 25)
	if p.Rows[0] != 29 {
		t.Errorf("expected absolute row 29, got %f", p.Rows[0])
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		vals []float64
		want float64
	}{
		{[]float64{5}, 5},
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, c := range cases {
		if got := median(append([]float64(nil), c.vals...)); got != c.want {
			t.Errorf("median(%v) = %f, want %f", c.vals, got, c.want)
		}
	}
}
