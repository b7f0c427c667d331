// Package batch turns a directory of images into a directory of STL plates
// using a worker pool, and records what it produced in a manifest.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrchaosbude/stlgen/internal/config"
	"github.com/mrchaosbude/stlgen/internal/scene"
)

// Config holds the shared resources for one batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Gen       config.Gen
}

// Result holds the outcome of processing one image.
type Result struct {
	Input     string
	Output    string
	Triangles int
	Success   bool
	Error     string
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tga":  true,
}

// ListInputs returns the image files in dir, sorted by name.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			inputs = append(inputs, e.Name())
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}

// Run processes every input through a worker pool, reporting progress on
// stdout every two seconds. Results come back in input order.
func Run(cfg Config, inputs []string) []Result {
	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1f plates/sec\n", p, total, float64(p)/elapsed)
				}
			}
		}
	}()

	workCh := make(chan int, cfg.Gen.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Gen.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range workCh {
				results[idx] = processOne(cfg, inputs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range inputs {
		workCh <- i
	}
	close(workCh)

	wg.Wait()
	close(done)

	return results
}

func processOne(cfg Config, name string) Result {
	inPath := filepath.Join(cfg.InputDir, name)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outPath := filepath.Join(cfg.OutputDir, stem+".stl")

	m, err := scene.Generate(inPath, outPath, cfg.Gen)
	if err != nil {
		return Result{Input: name, Error: err.Error()}
	}
	return Result{
		Input:     name,
		Output:    stem + ".stl",
		Triangles: len(m.Tris),
		Success:   true,
	}
}
