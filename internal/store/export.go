package store

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	RunMetadata
	Steps []StepRecord `json:"steps"`
}

// ExportJSON writes the run and its steps to path as one JSON document.
func ExportJSON(path string, meta RunMetadata, steps []StepRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, steps)
}

func WriteJSON(w io.Writer, meta RunMetadata, steps []StepRecord) error {
	if steps == nil {
		steps = []StepRecord{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: meta, Steps: steps})
}
