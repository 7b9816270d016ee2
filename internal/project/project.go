// Package project provides repeatable extraction job files.
//
// A job records everything one extraction run needs (image, target
// color, tolerance, search band and axis calibration) so a run can be
// repeated or applied to a folder of same-layout charts without
// re-entering parameters.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"chart-digitizer/internal/calibrate"
	"chart-digitizer/pkg/colorutil"
)

// ValueRef is a value-axis calibration reference point.
type ValueRef struct {
	Pixel int     `json:"pixel"`
	Value float64 `json:"value"`
}

// DateRef is a time-axis calibration reference point.
type DateRef struct {
	Pixel int    `json:"pixel"`
	Date  string `json:"date"`
}

// Job represents a chart extraction job file (.chartjob).
type Job struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Image path (relative paths resolve against the job file)
	ImagePath  string `json:"image,omitempty"`
	OutputPath string `json:"output,omitempty"`

	Color     string `json:"color"` // "#RRGGBB"
	Tolerance int    `json:"tolerance"`

	// Inclusive row band; -1/-1 means the full image height
	BandMin int `json:"band_min"`
	BandMax int `json:"band_max"`

	Smooth bool   `json:"smooth"`
	YScale string `json:"y_scale"`

	YCal [2]ValueRef `json:"y_calibration"`
	XCal [2]DateRef  `json:"x_calibration"`
}

// New creates a job with default settings.
func New() *Job {
	now := time.Now()
	return &Job{
		Version:   1,
		Created:   now,
		Modified:  now,
		Tolerance: 15,
		BandMin:   -1,
		BandMax:   -1,
		YScale:    string(calibrate.ScaleLinear),
	}
}

// Load loads a job from a .chartjob file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}

	return &job, nil
}

// Save saves the job to a file.
func (j *Job) Save(path string) error {
	j.Modified = time.Now()

	data, err := json.MarshalIndent(j, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks that the job's parameters can drive an extraction.
// Calibration inputs are checked by building the mappings, so a job
// that validates cannot later fail calibration.
func (j *Job) Validate() error {
	if _, err := colorutil.ParseHex(j.Color); err != nil {
		return err
	}
	if j.Tolerance < 0 {
		return fmt.Errorf("tolerance must be non-negative, got %d", j.Tolerance)
	}
	if (j.BandMin < 0) != (j.BandMax < 0) {
		return fmt.Errorf("band bounds must both be set or both be -1")
	}
	if j.BandMin >= 0 && j.BandMin > j.BandMax {
		return fmt.Errorf("band_min %d exceeds band_max %d", j.BandMin, j.BandMax)
	}

	_, _, err := j.Mappings()
	return err
}

// Mappings builds the axis mappings described by the job.
func (j *Job) Mappings() (calibrate.ValueMap, calibrate.DateMap, error) {
	scale, err := calibrate.ParseScale(j.YScale)
	if err != nil {
		return calibrate.ValueMap{}, calibrate.DateMap{}, err
	}
	return calibrate.Build(
		calibrate.ValuePoint{Pixel: j.YCal[0].Pixel, Value: j.YCal[0].Value},
		calibrate.ValuePoint{Pixel: j.YCal[1].Pixel, Value: j.YCal[1].Value},
		calibrate.DatePoint{Pixel: j.XCal[0].Pixel, Date: j.XCal[0].Date},
		calibrate.DatePoint{Pixel: j.XCal[1].Pixel, Date: j.XCal[1].Date},
		scale,
	)
}

// ImageAbs returns the absolute path to the job's image, resolving
// relative paths against the job file's directory.
func (j *Job) ImageAbs(jobPath string) string {
	if j.ImagePath == "" || filepath.IsAbs(j.ImagePath) {
		return j.ImagePath
	}
	return filepath.Join(filepath.Dir(jobPath), j.ImagePath)
}

// SetImage stores the image path relative to the job file when
// possible.
func (j *Job) SetImage(jobPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(jobPath), imagePath)
	if err != nil {
		j.ImagePath = imagePath
	} else {
		j.ImagePath = rel
	}
	j.Modified = time.Now()
}
