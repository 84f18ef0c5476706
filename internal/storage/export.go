package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

type ExportData struct {
	ID          string             `json:"id"`
	System      string             `json:"system"`
	Integrator  string             `json:"integrator"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Bodies      []BodyInfo         `json:"bodies"`
	Times       []float64          `json:"times"`
	Positions   [][]dynamo.Vector  `json:"positions"`
	Metrics     map[string]float64 `json:"metrics"`
	Discrepancy map[string]float64 `json:"discrepancy,omitempty"`
}

// ExportJSON writes a run, metadata and positions together, as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, tr *Trajectory) error {
	data := ExportData{
		ID:          meta.ID,
		System:      meta.System,
		Integrator:  meta.Integrator,
		Dt:          meta.Dt,
		Steps:       meta.StepsTaken,
		Bodies:      meta.Bodies,
		Times:       tr.Times,
		Positions:   tr.Positions,
		Metrics:     meta.Metrics,
		Discrepancy: meta.Discrepancy,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV copies the states table of a stored run to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	tr, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return WriteCSV(w, tr)
}

// ExportJSON writes a stored run to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tr, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, tr)
}
