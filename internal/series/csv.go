package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// WriteCSV writes the series as date,value rows with a header line.
func (s Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "value"}); err != nil {
		return err
	}
	for i := range s.Dates {
		rec := []string{
			s.Dates[i].Format(dateLayout),
			strconv.FormatFloat(s.Values[i], 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the series to a file.
func (s Series) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV loads a series written by WriteCSV.
func ReadCSV(r io.Reader) (Series, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Series{}, err
	}
	if len(records) == 0 {
		return Series{}, fmt.Errorf("empty CSV: missing date,value header")
	}

	var s Series
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			return Series{}, fmt.Errorf("row %d: expected 2 fields, got %d", i+2, len(rec))
		}
		d, err := time.Parse(dateLayout, rec[0])
		if err != nil {
			return Series{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return Series{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		s.Dates = append(s.Dates, d)
		s.Values = append(s.Values, v)
	}
	return s, nil
}
