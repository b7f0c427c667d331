package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrchaosbude/stlgen/internal/batch"
	"github.com/mrchaosbude/stlgen/internal/config"
	"github.com/mrchaosbude/stlgen/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to JSON config file")
	outerRadius := flag.Float64("outer-radius", 0, "Disk outer radius in mm (default: 50)")
	holeRadius := flag.Float64("hole-radius", 0, "Center hole radius in mm (default: 20)")
	radialSegments := flag.Int("radial-segments", 0, "Radial tessellation segments (default: 64)")
	angularSegments := flag.Int("angular-segments", 0, "Angular tessellation segments (default: 256)")
	baseThickness := flag.Float64("base-thickness", 0, "Minimum plate thickness in mm (default: 1)")
	reliefScale := flag.Float64("relief-scale", 0, "Relief height per unit luminance in mm (default: 5)")
	resolution := flag.Int("resolution", 0, "Square working resolution the image is resampled to (default: 200)")
	interp := flag.String("interp", "", "Luminance interpolation: bilinear or nearest (default: bilinear)")
	noInvert := flag.Bool("no-invert", false, "Keep bright pixels tall instead of dark ones")
	workers := flag.Int("workers", 0, "Worker goroutines in batch mode (default: NumCPU)")
	batchMode := flag.Bool("batch", false, "Treat arguments as input and output directories")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stlgen [flags] input.png output.stl\n")
		fmt.Fprintf(os.Stderr, "       stlgen -batch [flags] input-dir output-dir\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	var cfg config.Gen
	if *configFile != "" {
		if err := config.Load(*configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override the config file.
	if *outerRadius != 0 {
		cfg.OuterRadius = *outerRadius
	}
	if *holeRadius != 0 {
		cfg.HoleRadius = *holeRadius
	}
	if *radialSegments != 0 {
		cfg.RadialSegments = *radialSegments
	}
	if *angularSegments != 0 {
		cfg.AngularSegments = *angularSegments
	}
	if *baseThickness != 0 {
		cfg.BaseThickness = *baseThickness
	}
	if *reliefScale != 0 {
		cfg.ReliefScale = *reliefScale
	}
	if *resolution != 0 {
		cfg.Resolution = *resolution
	}
	if *interp != "" {
		cfg.Interp = *interp
	}
	if *noInvert {
		cfg.NoInvert = true
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	cfg.Resolve()

	if *batchMode {
		runBatch(flag.Arg(0), flag.Arg(1), cfg)
		return
	}

	start := time.Now()
	m, err := scene.Generate(flag.Arg(0), flag.Arg(1), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("STL saved to %s (%d triangles, %d vertices, %.1fs)\n",
		flag.Arg(1), len(m.Tris), len(m.Verts), time.Since(start).Seconds())
}

func runBatch(inDir, outDir string, cfg config.Gen) {
	inputs, err := batch.ListInputs(inDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(inputs) == 0 {
		fmt.Println("No images to process.")
		return
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Plates: %d, Workers: %d\n", len(inputs), cfg.Workers)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batch.Config{InputDir: inDir, OutputDir: outDir, Gen: cfg}, inputs)

	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs, generated %d/%d\n", time.Since(start).Seconds(), success, len(inputs))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Input, e.Error)
		}
	}

	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
