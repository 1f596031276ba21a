// Command spotscan runs spot detection on assay images and outputs results.
//
// Single image:
//
//	spotscan -window 41 -sensitivity 10 well.tiff
//
// Batch over a plate directory, four workers, CSV and overlay output:
//
//	spotscan -preset plate.yaml -workers 4 -csv out/ -overlay out/ scans/*.png
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"elispot-analyzer/internal/imaging"
	"elispot-analyzer/internal/label"
	"elispot-analyzer/internal/logger"
	"elispot-analyzer/internal/preset"
	"elispot-analyzer/internal/spot"
	"elispot-analyzer/pkg/geometry"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	presetPath := flag.String("preset", "", "YAML preset file with analysis parameters")
	window := flag.Int("window", 0, "Threshold window size in pixels (odd, >= 3)")
	sensitivity := flag.Float64("sensitivity", -1, "Threshold sensitivity")
	minArea := flag.Int("min-area", -1, "Minimum spot area in pixels")
	maxArea := flag.Int("max-area", -1, "Maximum spot area in pixels")
	polarity := flag.String("polarity", "", "Spot polarity: dark or bright")
	confirm := flag.Bool("confirm-circles", false, "Cross-validate spots with a Hough circle transform (needs a gocv build)")
	labelRegion := flag.String("label-region", "", "Plate label OCR region as x,y,w,h in normalized pixels")
	csvDir := flag.String("csv", "", "Directory for per-image CSV reports")
	overlayDir := flag.String("overlay", "", "Directory for per-image overlay PNGs")
	workers := flag.Int("workers", 1, "Number of images analyzed in parallel")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(level)

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: spotscan [flags] <image> [image...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	params, err := buildParams(*presetPath, *window, *sensitivity, *minArea, *maxArea, *polarity, *confirm)
	if err != nil {
		log.Error("params", err, nil)
		os.Exit(1)
	}

	var ocrRegion *geometry.RectInt
	if *labelRegion != "" {
		r, err := parseRegion(*labelRegion)
		if err != nil {
			log.Error("params", err, nil)
			os.Exit(1)
		}
		ocrRegion = &r
	}

	log.Info("spotscan", "starting analysis", map[string]interface{}{
		"images":      len(paths),
		"window":      params.WindowSize,
		"sensitivity": params.Sensitivity,
		"min_area":    params.MinArea,
		"max_area":    params.MaxArea,
		"polarity":    params.Polarity.String(),
	})

	if *workers < 1 {
		*workers = 1
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*workers)

	results := make([]*spot.Result, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := analyzeOne(path, params, ocrRegion, *csvDir, *overlayDir, log)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("spotscan", err, nil)
		os.Exit(1)
	}

	for i, result := range results {
		printResult(paths[i], result)
	}
}

// buildParams layers CLI flag overrides on top of a preset (or the
// defaults when no preset is given). Sentinel flag values mean "not set".
func buildParams(presetPath string, window int, sensitivity float64, minArea, maxArea int, polarity string, confirm bool) (spot.Params, error) {
	params := spot.DefaultParams()
	if presetPath != "" {
		var err error
		params, err = preset.Load(presetPath)
		if err != nil {
			return spot.Params{}, err
		}
	}

	if window > 0 {
		params.WindowSize = window
	}
	if sensitivity >= 0 {
		params.Sensitivity = sensitivity
	}
	if minArea >= 0 {
		params.MinArea = minArea
	}
	if maxArea >= 0 {
		params.MaxArea = maxArea
	}
	if polarity != "" {
		p, err := spot.ParsePolarity(polarity)
		if err != nil {
			return spot.Params{}, err
		}
		params.Polarity = p
	}
	if confirm {
		params.ConfirmCircles = true
	}

	if err := params.Validate(); err != nil {
		return spot.Params{}, err
	}
	return params, nil
}

// parseRegion parses "x,y,w,h".
func parseRegion(s string) (geometry.RectInt, error) {
	var r geometry.RectInt
	n, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X, &r.Y, &r.Width, &r.Height)
	if err != nil || n != 4 {
		return geometry.RectInt{}, fmt.Errorf("invalid region %q (want x,y,w,h)", s)
	}
	return r, nil
}

func analyzeOne(path string, params spot.Params, ocrRegion *geometry.RectInt, csvDir, overlayDir string, log logger.Logger) (*spot.Result, error) {
	gray, err := imaging.LoadNormalized(path)
	if err != nil {
		return nil, err
	}

	result, err := spot.Detect(gray, params)
	if err != nil {
		return nil, err
	}

	log.Debug("analyze", "image done", map[string]interface{}{
		"path":  path,
		"spots": result.Count(),
	})

	if ocrRegion != nil {
		text, err := readLabel(gray, *ocrRegion)
		if err != nil {
			log.Warning("ocr", "label read failed", map[string]interface{}{
				"path": path, "error": err.Error(),
			})
		} else {
			log.Info("ocr", "plate label", map[string]interface{}{
				"path": path, "label": text,
			})
		}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if csvDir != "" {
		if err := writeCSV(filepath.Join(csvDir, base+".csv"), result); err != nil {
			return nil, err
		}
	}
	if overlayDir != "" {
		if err := writeOverlay(filepath.Join(overlayDir, base+"_overlay.png"), result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func readLabel(gray *image.Gray, region geometry.RectInt) (string, error) {
	engine, err := label.NewEngine()
	if err != nil {
		return "", err
	}
	defer engine.Close()
	return engine.ReadRegion(gray, region)
}

func writeCSV(path string, result *spot.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	return w.WriteAll(spot.Report(result.Spots))
}

func writeOverlay(path string, result *spot.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, result.Overlay)
}

func printResult(path string, result *spot.Result) {
	summary := spot.Summarize(result.Spots)

	fmt.Printf("\n%s: %d spots\n", path, summary.Count)
	if summary.Count == 0 {
		return
	}

	fmt.Printf("%-10s %8s %10s %10s %10s\n", "ID", "Area", "Diameter", "X", "Y")
	for _, s := range result.Spots {
		fmt.Printf("%-10s %8d %10.2f %10.2f %10.2f\n",
			s.ID, s.Area, s.EquivDiameter, s.Centroid.X, s.Centroid.Y)
	}

	fmt.Printf("\nArea: mean %.1f, median %.1f, stddev %.1f, total %d px\n",
		summary.MeanArea, summary.MedianArea, summary.StdDevArea, summary.TotalArea)

	fmt.Println("\nArea histogram:")
	h := result.Histogram
	for i := 0; i < h.Bins(); i++ {
		fmt.Printf("  [%6.1f, %6.1f) %s (%d)\n",
			h.Edges[i], h.Edges[i+1],
			strings.Repeat("#", int(h.Counts[i])), int(h.Counts[i]))
	}
}
