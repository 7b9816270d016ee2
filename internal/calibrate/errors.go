package calibrate

import "fmt"

// InvalidCalibrationError reports calibration inputs that cannot
// produce a mapping, such as non-positive log-scale reference values.
type InvalidCalibrationError struct {
	Reason string
}

func (e *InvalidCalibrationError) Error() string {
	return "invalid calibration: " + e.Reason
}

// UnparseableDateError reports a calibration date string matching none
// of the accepted formats.
type UnparseableDateError struct {
	Input string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("cannot parse date %q: use YYYY-MM or YYYY-MM-DD", e.Input)
}
