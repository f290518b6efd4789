package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbsim/internal/experiment"
	"github.com/san-kum/orbsim/internal/vecmath"
)

type ExportData struct {
	Meta      RunMetadata                 `json:"meta"`
	Times     []float64                   `json:"times"`
	Positions map[string][]vecmath.Vector `json:"positions"`
	Velocity  map[string][]vecmath.Vector `json:"velocities,omitempty"`
}

// ExportJSON writes a run as one JSON document keyed by body id.
func ExportJSON(w io.Writer, meta RunMetadata, result *experiment.Result) error {
	data := ExportData{
		Meta:      meta,
		Times:     result.Times,
		Positions: make(map[string][]vecmath.Vector, len(result.IDs)),
	}
	if len(result.Velocities) > 0 {
		data.Velocity = make(map[string][]vecmath.Vector, len(result.IDs))
	}

	for j, id := range result.IDs {
		pos := make([]vecmath.Vector, len(result.Positions))
		for i := range result.Positions {
			pos[i] = result.Positions[i][j]
		}
		data.Positions[string(id)] = pos

		if data.Velocity != nil {
			vel := make([]vecmath.Vector, len(result.Velocities))
			for i := range result.Velocities {
				vel[i] = result.Velocities[i][j]
			}
			data.Velocity[string(id)] = vel
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
