package batch

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest is the summary written after a batch run.
type Manifest struct {
	Generated time.Time `json:"generated"`
	Files     int       `json:"files"`
	Failed    int       `json:"failed"`
	Warned    int       `json:"warned"`
	Results   []Result  `json:"results"`
}

// NewManifest tallies results.
func NewManifest(results []Result) Manifest {
	m := Manifest{Generated: time.Now().UTC(), Files: len(results), Results: results}
	for _, r := range results {
		if !r.Success {
			m.Failed++
		} else if len(r.Warnings) > 0 {
			m.Warned++
		}
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(NewManifest(results), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
