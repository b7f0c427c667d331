package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry records one generated plate in manifest.json.
type ManifestEntry struct {
	Input     string `json:"input"`
	Output    string `json:"output"`
	Triangles int    `json:"triangles"`
}

// WriteManifest writes manifest.json listing every successful result.
func WriteManifest(path string, results []Result) error {
	var entries []ManifestEntry
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Input:     r.Input,
			Output:    r.Output,
			Triangles: r.Triangles,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
