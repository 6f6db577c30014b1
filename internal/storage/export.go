package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run      RunMetadata `json:"run"`
	Frames   int         `json:"frames"`
	Times    []float64   `json:"times"`
	Progress [][]float64 `json:"progress"`
}

// Export bundles a stored run's metadata and progress curves.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	progress, times, err := s.LoadProgress(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Frames: len(times), Times: times, Progress: progress}, nil
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, data)
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
