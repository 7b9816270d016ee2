// Command chartbatch applies one extraction job to every chart image
// in a folder. Images are processed in parallel; each produces its own
// <name>.csv, and the summary is printed in filename order.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"chart-digitizer/internal/calibrate"
	"chart-digitizer/internal/curve"
	"chart-digitizer/internal/project"
	"chart-digitizer/internal/series"
	"chart-digitizer/pkg/colorutil"

	_ "golang.org/x/image/tiff"
)

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
}

type result struct {
	name string
	rows int
	err  error
}

func main() {
	dir := flag.String("dir", "", "Folder of chart images to process")
	outDir := flag.String("out", "", "Output folder for CSV files (default: same as -dir)")
	jobPath := flag.String("job", "", "Path to a .chartjob file with color, band and calibration")
	workers := flag.Int("workers", runtime.NumCPU(), "Number of parallel workers")
	preview := flag.Bool("preview", false, "Also write a PNG preview per image")
	flag.Parse()

	if *dir == "" || *jobPath == "" {
		fmt.Println("Usage: chartbatch -dir <folder> -job <file.chartjob> [-out <folder>] [-workers N]")
		os.Exit(1)
	}

	job, err := project.Load(*jobPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load job: %v\n", err)
		os.Exit(1)
	}
	if err := job.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid job: %v\n", err)
		os.Exit(1)
	}
	target, err := colorutil.ParseHex(job.Color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid job: %v\n", err)
		os.Exit(1)
	}
	ym, xm, err := job.Mappings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid job: %v\n", err)
		os.Exit(1)
	}

	entries, err := os.ReadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *dir, err)
		os.Exit(1)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "No chart images found in %s\n", *dir)
		os.Exit(1)
	}

	if *outDir == "" {
		*outDir = *dir
	} else if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	fmt.Printf("Processing %d images with %d workers\n\n", len(files), *workers)

	// One slot per file so the summary stays in filename order no
	// matter which worker finishes first.
	results := make([]result, len(files))
	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = processOne(filepath.Join(*dir, files[i]), *outDir, job, target, ym, xm, *preview)
			}
		}()
	}
	for i := range files {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	failures := 0
	for _, r := range results {
		if r.err != nil {
			failures++
			fmt.Printf("%-40s FAILED: %v\n", r.name, r.err)
		} else {
			fmt.Printf("%-40s %d rows\n", r.name, r.rows)
		}
	}
	fmt.Printf("\nDone: %d succeeded, %d failed\n", len(files)-failures, failures)
	if failures == len(files) {
		os.Exit(1)
	}
}

// processOne extracts a single image with the shared job parameters.
// Failures are reported in the summary and do not abort the batch.
func processOne(imgPath, outDir string, job *project.Job, target colorutil.RGB,
	ym calibrate.ValueMap, xm calibrate.DateMap, preview bool) result {

	name := filepath.Base(imgPath)

	f, err := os.Open(imgPath)
	if err != nil {
		return result{name: name, err: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return result{name: name, err: err}
	}

	m := curve.ImageToMat(img)
	defer m.Close()

	band := curve.FullBand(m)
	if job.BandMin >= 0 {
		band = curve.Band{YMin: job.BandMin, YMax: job.BandMax}
	}
	opts := curve.DefaultOptions().
		WithTolerance(job.Tolerance).
		WithSmoothing(job.Smooth)

	p := curve.Extract(m, target, band, opts)
	if p.Len() == 0 {
		return result{name: name, err: fmt.Errorf("no pixels matched %s within tolerance %d", target.Hex(), job.Tolerance)}
	}

	s := series.FromPath(p, ym, xm)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if err := s.SaveCSV(filepath.Join(outDir, base+".csv")); err != nil {
		return result{name: name, err: err}
	}

	if preview {
		pf, err := os.Create(filepath.Join(outDir, base+"_preview.png"))
		if err != nil {
			return result{name: name, err: err}
		}
		if err := s.RenderPNG(pf); err != nil {
			pf.Close()
			return result{name: name, err: err}
		}
		if err := pf.Close(); err != nil {
			return result{name: name, err: err}
		}
	}

	return result{name: name, rows: s.Len()}
}
