package calibrate

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDateFormats(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2020-01-31", date(2020, time.January, 31)},
		{"2005-03", date(2005, time.March, 1)},
		{"2020/07/15", date(2020, time.July, 15)},
		{"1999/12", date(1999, time.December, 1)},
		{"  2020-01-31  ", date(2020, time.January, 31)},
	}
	for _, c := range cases {
		got, err := ParseDate(c.in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"not-a-date", "31-01-2020", "2020-13-01", ""} {
		_, err := ParseDate(in)
		var dateErr *UnparseableDateError
		if !errors.As(err, &dateErr) {
			t.Errorf("ParseDate(%q): expected *UnparseableDateError, got %v", in, err)
			continue
		}
		if in != "" && !strings.Contains(err.Error(), in) {
			t.Errorf("error message should name the input %q: %v", in, err)
		}
	}
}

func TestDateMapRoundTrip(t *testing.T) {
	// 2020 is a leap year: 366 days between the references over 365
	// pixels, so the slope is not exactly one day per pixel.
	m, err := NewDateMap(0, "2020-01-01", 365, "2021-01-01")
	if err != nil {
		t.Fatalf("NewDateMap: %v", err)
	}

	if got := m.Evaluate(0); !got.Equal(date(2020, time.January, 1)) {
		t.Errorf("Evaluate(0) = %v, want 2020-01-01", got)
	}
	if got := m.Evaluate(365); !got.Equal(date(2021, time.January, 1)) {
		t.Errorf("Evaluate(365) = %v, want 2021-01-01", got)
	}
}

func TestDateMapRoundsHalfAwayFromZero(t *testing.T) {
	m, err := NewDateMap(0, "2020-01-01", 2, "2020-01-02")
	if err != nil {
		t.Fatalf("NewDateMap: %v", err)
	}

	// Pixel 1 lands exactly on a half day and must round up, not
	// truncate.
	if got := m.Evaluate(1); !got.Equal(date(2020, time.January, 2)) {
		t.Errorf("Evaluate(1) = %v, want 2020-01-02", got)
	}
	if got := m.Evaluate(3); !got.Equal(date(2020, time.January, 3)) {
		t.Errorf("Evaluate(3) = %v, want 2020-01-03", got)
	}
}

func TestDateMapDegenerate(t *testing.T) {
	m, err := NewDateMap(50, "2020-06-15", 50, "2021-01-01")
	if err != nil {
		t.Fatalf("coinciding pixels should be valid: %v", err)
	}
	for _, px := range []float64{0, 50, 1000} {
		if got := m.Evaluate(px); !got.Equal(date(2020, time.June, 15)) {
			t.Errorf("Evaluate(%v) = %v, want constant 2020-06-15", px, got)
		}
	}
}

func TestDateMapUnparseableInput(t *testing.T) {
	_, err := NewDateMap(0, "not-a-date", 100, "2021-01-01")
	var dateErr *UnparseableDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("expected *UnparseableDateError, got %v", err)
	}
	if dateErr.Input != "not-a-date" {
		t.Errorf("error should carry the offending input, got %q", dateErr.Input)
	}
}

func TestOrdinalRoundTrip(t *testing.T) {
	// Python's datetime.toordinal convention: 0001-01-01 is day 1.
	if got := ordinalOf(date(1970, time.January, 1)); got != 719163 {
		t.Errorf("ordinal of 1970-01-01 = %d, want 719163", got)
	}

	for _, d := range []time.Time{
		date(1969, time.December, 31),
		date(2000, time.February, 29),
		date(2024, time.July, 4),
	} {
		if got := dateOf(ordinalOf(d)); !got.Equal(d) {
			t.Errorf("ordinal round trip of %v gave %v", d, got)
		}
	}
}
