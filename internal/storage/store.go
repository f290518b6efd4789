package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/orbsim/internal/experiment"
	"github.com/san-kum/orbsim/internal/orbital"
	"github.com/san-kum/orbsim/internal/vecmath"
)

const (
	KindRun     = "run"
	KindPreview = "preview"

	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kind      string             `json:"kind"`
	Scenario  string             `json:"scenario"`
	Timestamp time.Time          `json:"timestamp"`
	Units     string             `json:"units"`
	Gravity   float64            `json:"gravity"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Track     string             `json:"track,omitempty"`
	Bodies    []string           `json:"bodies"`
	Samples   int                `json:"samples"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and trajectory.csv into a fresh run directory and
// returns the run id. ID, Timestamp, Bodies and Samples are filled in from result.
func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	now := time.Now()
	if meta.Kind == "" {
		meta.Kind = KindRun
	}
	meta.ID = fmt.Sprintf("%s_%s_%d", meta.Scenario, meta.Kind, now.UnixNano())
	meta.Timestamp = now
	meta.Samples = len(result.Times)
	meta.Metrics = result.Metrics
	meta.Bodies = make([]string, len(result.IDs))
	for i, id := range result.IDs {
		meta.Bodies[i] = string(id)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeTrajectory(csvFile, result); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeTrajectory(f *os.File, result *experiment.Result) error {
	w := csv.NewWriter(f)

	withVel := len(result.Velocities) > 0 && len(result.Velocities) == len(result.Positions)
	header := []string{"time"}
	for _, id := range result.IDs {
		header = append(header, string(id)+".x", string(id)+".y")
		if withVel {
			header = append(header, string(id)+".vx", string(id)+".vy")
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{formatFloat(t)}
		for j := range result.IDs {
			p := result.Positions[i][j]
			row = append(row, formatFloat(p.X), formatFloat(p.Y))
			if withVel {
				v := result.Velocities[i][j]
				row = append(row, formatFloat(v.X), formatFloat(v.Y))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrajectory reads trajectory.csv back into a Result. Metrics are not
// part of the CSV; use Load for them.
func (s *Store) LoadTrajectory(runID string) (*experiment.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty trajectory", runID)
	}

	cols, err := parseHeader(records[0])
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	result := &experiment.Result{
		IDs:     cols.ids,
		Metrics: map[string]float64{},
	}
	for n, record := range records[1:] {
		vals := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: row %d: %w", runID, n+1, err)
			}
			vals[i] = v
		}

		result.Times = append(result.Times, vals[0])
		pos := make([]vecmath.Vector, len(cols.ids))
		vel := make([]vecmath.Vector, len(cols.ids))
		for j := range cols.ids {
			base := 1 + j*cols.stride
			pos[j] = vecmath.Vec(vals[base], vals[base+1])
			if cols.stride == 4 {
				vel[j] = vecmath.Vec(vals[base+2], vals[base+3])
			}
		}
		result.Positions = append(result.Positions, pos)
		if cols.stride == 4 {
			result.Velocities = append(result.Velocities, vel)
		}
	}

	return result, nil
}

type columns struct {
	ids    []orbital.ID
	stride int
}

func parseHeader(header []string) (columns, error) {
	if len(header) == 0 || header[0] != "time" {
		return columns{}, fmt.Errorf("malformed header %v", header)
	}

	var c columns
	c.stride = 2
	if len(header) > 3 && strings.HasSuffix(header[3], ".vx") {
		c.stride = 4
	}
	if (len(header)-1)%c.stride != 0 {
		return columns{}, fmt.Errorf("malformed header %v", header)
	}

	for i := 1; i < len(header); i += c.stride {
		id, ok := strings.CutSuffix(header[i], ".x")
		if !ok {
			return columns{}, fmt.Errorf("unexpected column %q", header[i])
		}
		c.ids = append(c.ids, orbital.ID(id))
	}
	return c, nil
}
