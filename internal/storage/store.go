package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type BodyInfo struct {
	Name string  `json:"name"`
	GM   float64 `json:"gm"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	System      string             `json:"system"`
	Integrator  string             `json:"integrator"`
	Timestamp   time.Time          `json:"timestamp"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	StepsTaken  int                `json:"steps_taken"`
	Record      int                `json:"record"`
	Evaluations int                `json:"evaluations"`
	ElapsedMS   float64            `json:"elapsed_ms"`
	Bodies      []BodyInfo         `json:"bodies"`
	Metrics     map[string]float64 `json:"metrics"`
	Discrepancy map[string]float64 `json:"discrepancy,omitempty"`
}

// Save writes meta and the snapshots of result to a new run directory and
// returns its ID. Fields of meta derived from result are filled in.
func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.System, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Integrator = result.Integrator
	meta.StepsTaken = result.StepsTaken
	meta.Evaluations = result.Evaluations
	meta.ElapsedMS = float64(result.Elapsed.Microseconds()) / 1000
	meta.Metrics = finiteOnly(result.Metrics)
	meta.Discrepancy = finiteOnly(meta.Discrepancy)
	meta.Bodies = nil
	for _, b := range result.Final.Bodies() {
		meta.Bodies = append(meta.Bodies, BodyInfo{Name: b.Name, GM: b.GM})
	}

	if err := writeRun(runDir, meta, result.Snapshots); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, snaps []experiment.Snapshot) error {
	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	csvFile, err := os.Create(filepath.Join(runDir, statesFile))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	names := make([]string, len(meta.Bodies))
	for i, b := range meta.Bodies {
		names[i] = b.Name
	}
	if err := WriteCSV(csvFile, FromSnapshots(names, snaps)); err != nil {
		return err
	}
	return nil
}

// finiteOnly drops the entries JSON cannot encode.
func finiteOnly(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

func (s *Store) newRunDir(system string, now time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%s", system, now.Format("20060102-150405"))
	for n := 1; ; n++ {
		runID := base
		if n > 1 {
			runID = fmt.Sprintf("%s-%d", base, n)
		}
		runDir := filepath.Join(s.baseDir, runID)
		if err := os.Mkdir(runDir, 0755); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", "", err
		}
		return runID, runDir, nil
	}
}

// WriteCSV writes tr as a states.csv table: a time column followed by
// x, y and z columns for every body.
func WriteCSV(w io.Writer, tr *Trajectory) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for _, n := range tr.Bodies {
		header = append(header, n+"_x", n+"_y", n+"_z")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range tr.Times {
		row := []string{formatFloat(t)}
		for _, p := range tr.Positions[i] {
			row = append(row, formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}

	return &meta, nil
}

// Trajectory is the position history stored with a run.
type Trajectory struct {
	Bodies    []string
	Times     []float64
	Positions [][]dynamo.Vector
}

// Series returns one coordinate of one body over time. axis is 0, 1 or 2.
func (tr *Trajectory) Series(body string, axis int) ([]float64, error) {
	idx := -1
	for i, n := range tr.Bodies {
		if n == body {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownBody, body)
	}
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("storage: axis %d out of range", axis)
	}

	out := make([]float64, len(tr.Positions))
	for i, row := range tr.Positions {
		p := row[idx]
		out[i] = [3]float64{p.X, p.Y, p.Z}[axis]
	}
	return out, nil
}

// FromSnapshots extracts the position history of a run.
func FromSnapshots(names []string, snaps []experiment.Snapshot) *Trajectory {
	tr := &Trajectory{
		Bodies:    names,
		Times:     make([]float64, len(snaps)),
		Positions: make([][]dynamo.Vector, len(snaps)),
	}
	for i, snap := range snaps {
		tr.Times[i] = snap.Time
		row := make([]dynamo.Vector, len(snap.States))
		for j, st := range snap.States {
			row[j] = st.Pos
		}
		tr.Positions[i] = row
	}
	return tr
}

func (s *Store) LoadStates(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return readStates(file)
}

func readStates(r io.Reader) (*Trajectory, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}

	tr := &Trajectory{}
	if len(records) == 0 {
		return tr, nil
	}

	header := records[0]
	if len(header) < 1 || header[0] != "time" || (len(header)-1)%3 != 0 {
		return nil, fmt.Errorf("storage: malformed states header %v", header)
	}
	for i := 1; i < len(header); i += 3 {
		name, ok := strings.CutSuffix(header[i], "_x")
		if !ok || name == "" || header[i+1] != name+"_y" || header[i+2] != name+"_z" {
			return nil, fmt.Errorf("storage: malformed states header %v", header)
		}
		tr.Bodies = append(tr.Bodies, name)
	}

	for line, rec := range records[1:] {
		vals := make([]float64, len(rec))
		for j, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: states line %d: %w", line+2, err)
			}
			vals[j] = v
		}

		row := make([]dynamo.Vector, len(tr.Bodies))
		for b := range row {
			row[b] = dynamo.Vec(vals[1+3*b], vals[2+3*b], vals[3+3*b])
		}
		tr.Times = append(tr.Times, vals[0])
		tr.Positions = append(tr.Positions, row)
	}

	return tr, nil
}
