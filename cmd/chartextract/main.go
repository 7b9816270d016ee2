// Command chartextract extracts a dated value series from a line-chart
// image using a target color and two-point axis calibration.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"chart-digitizer/internal/curve"
	"chart-digitizer/internal/project"
	"chart-digitizer/internal/series"
	"chart-digitizer/internal/version"
	"chart-digitizer/pkg/colorutil"

	_ "golang.org/x/image/tiff"
)

func main() {
	jobPath := flag.String("job", "", "Path to a .chartjob file with saved parameters")
	imagePath := flag.String("image", "", "Path to chart image (PNG, JPEG, or TIFF)")
	colorHex := flag.String("color", "", "Target line color as #RRGGBB")
	tolerance := flag.Int("tolerance", -1, "Per-channel color tolerance (default 15)")
	yMin := flag.Int("ymin", -1, "Upper row bound of the search band (use with -ymax)")
	yMax := flag.Int("ymax", -1, "Lower row bound of the search band (use with -ymin)")
	smooth := flag.Bool("smooth", false, "Apply extra moving-average smoothing")
	y1 := flag.String("y1", "", "Y calibration point as pixelrow:value, e.g. 420:0.0")
	y2 := flag.String("y2", "", "Second Y calibration point as pixelrow:value")
	x1 := flag.String("x1", "", "X calibration point as pixelcol:date, e.g. 80:2020-01-01")
	x2 := flag.String("x2", "", "Second X calibration point as pixelcol:date")
	yScale := flag.String("yscale", "", "Y axis scale: linear or log")
	outPath := flag.String("out", "", "Output CSV path (default <image>.csv)")
	previewPath := flag.String("preview", "", "Optional PNG preview chart path")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("chartextract %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return
	}

	job := project.New()
	if *jobPath != "" {
		loaded, err := project.Load(*jobPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load job: %v\n", err)
			os.Exit(1)
		}
		loaded.ImagePath = loaded.ImageAbs(*jobPath)
		job = loaded
	}

	// Flags override job file values
	if *imagePath != "" {
		job.ImagePath = *imagePath
	}
	if *colorHex != "" {
		job.Color = *colorHex
	}
	if *tolerance >= 0 {
		job.Tolerance = *tolerance
	}
	if *yMin >= 0 || *yMax >= 0 {
		job.BandMin, job.BandMax = *yMin, *yMax
	}
	if *smooth {
		job.Smooth = true
	}
	if *yScale != "" {
		job.YScale = *yScale
	}
	overrideRef(y1, &job.YCal[0])
	overrideRef(y2, &job.YCal[1])
	overrideDate(x1, &job.XCal[0])
	overrideDate(x2, &job.XCal[1])

	if job.ImagePath == "" {
		fmt.Println("Usage: chartextract -image <path> -color '#RRGGBB' -y1 px:val -y2 px:val -x1 px:date -x2 px:date [options]")
		os.Exit(1)
	}
	if err := job.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %v\n", err)
		os.Exit(1)
	}

	out := *outPath
	if out == "" {
		out = job.OutputPath
	}
	if out == "" {
		out = strings.TrimSuffix(job.ImagePath, filepath.Ext(job.ImagePath)) + ".csv"
	}

	if err := run(job, out, *previewPath); err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
}

func run(job *project.Job, outPath, previewPath string) error {
	target, err := colorutil.ParseHex(job.Color)
	if err != nil {
		return err
	}

	f, err := os.Open(job.ImagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", job.ImagePath, err)
	}

	m := curve.ImageToMat(img)
	defer m.Close()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, m.Cols(), m.Rows())

	band := curve.FullBand(m)
	if job.BandMin >= 0 {
		band = curve.Band{YMin: job.BandMin, YMax: job.BandMax}
	}
	opts := curve.DefaultOptions().
		WithTolerance(job.Tolerance).
		WithSmoothing(job.Smooth)

	path := curve.Extract(m, target, band, opts)
	if path.Len() == 0 {
		return fmt.Errorf("no pixels matched %s within tolerance %d: try a larger tolerance or a different color",
			target.Hex(), job.Tolerance)
	}
	fmt.Printf("Matched %d columns in rows %d-%d\n", path.Len(), band.YMin, band.YMax)

	ym, xm, err := job.Mappings()
	if err != nil {
		return err
	}

	s := series.FromPath(path, ym, xm)
	if err := s.SaveCSV(outPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %d rows to %s\n", s.Len(), outPath)

	if previewPath != "" {
		pf, err := os.Create(previewPath)
		if err != nil {
			return err
		}
		if err := s.RenderPNG(pf); err != nil {
			pf.Close()
			return err
		}
		if err := pf.Close(); err != nil {
			return err
		}
		fmt.Printf("Wrote preview to %s\n", previewPath)
	}

	return nil
}

// overrideRef parses a "pixel:value" flag into a calibration point,
// leaving the job's point untouched when the flag is unset.
func overrideRef(s *string, ref *project.ValueRef) {
	if *s == "" {
		return
	}
	pixelStr, valueStr, ok := strings.Cut(*s, ":")
	if !ok {
		fmt.Fprintf(os.Stderr, "Invalid calibration point %q: expected pixel:value\n", *s)
		os.Exit(1)
	}
	pixel, err := strconv.Atoi(pixelStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid calibration pixel %q: %v\n", pixelStr, err)
		os.Exit(1)
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid calibration value %q: %v\n", valueStr, err)
		os.Exit(1)
	}
	ref.Pixel, ref.Value = pixel, value
}

// overrideDate parses a "pixel:date" flag into a calibration point.
func overrideDate(s *string, ref *project.DateRef) {
	if *s == "" {
		return
	}
	pixelStr, dateStr, ok := strings.Cut(*s, ":")
	if !ok {
		fmt.Fprintf(os.Stderr, "Invalid calibration point %q: expected pixel:date\n", *s)
		os.Exit(1)
	}
	pixel, err := strconv.Atoi(pixelStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid calibration pixel %q: %v\n", pixelStr, err)
		os.Exit(1)
	}
	ref.Pixel, ref.Date = pixel, dateStr
}
