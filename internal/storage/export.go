package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Run     RunMetadata `json:"run"`
	Steps   int         `json:"steps"`
	History []Sample    `json:"history"`
}

func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	history, err := s.LoadHistory(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{Run: *meta, Steps: len(history), History: history}, nil
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
