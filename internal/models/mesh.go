package models

import "math"

// MeshType is a shaker screen mesh grade.
type MeshType string

const (
	MeshAPI100 MeshType = "API 100"
	MeshAPI140 MeshType = "API 140"
	MeshAPI170 MeshType = "API 170"
	MeshAPI200 MeshType = "API 200"

	// DefaultMeshType is selected when no mesh is configured.
	DefaultMeshType = MeshAPI140
)

// meshCapacities holds the rated capacity per mesh grade in flow-equivalent units.
var meshCapacities = map[MeshType]float64{
	MeshAPI100: 250,
	MeshAPI140: 200,
	MeshAPI170: 160,
	MeshAPI200: 120,
}

// MeshTypes returns the supported mesh grades from coarsest to finest.
func MeshTypes() []MeshType {
	return []MeshType{MeshAPI100, MeshAPI140, MeshAPI170, MeshAPI200}
}

// Capacity returns the rated capacity for the mesh grade.
func (m MeshType) Capacity() (float64, bool) {
	c, ok := meshCapacities[m]
	return c, ok
}

// Next cycles to the next mesh grade.
func (m MeshType) Next() MeshType {
	types := MeshTypes()
	for i, t := range types {
		if t == m {
			return types[(i+1)%len(types)]
		}
	}
	return types[0]
}

// MeshConfig is the resolved mesh selection for one run.
type MeshConfig struct {
	Type     MeshType
	Capacity float64
}

// LookupMesh resolves a mesh label against the fixed capacity table.
func LookupMesh(label string) (MeshConfig, error) {
	t := MeshType(label)
	capacity, ok := t.Capacity()
	if !ok {
		return MeshConfig{}, &ConfigError{Field: "mesh_type", Value: label, Reason: "unknown mesh type"}
	}
	return MeshConfig{Type: t, Capacity: capacity}, nil
}

// Validate checks that the capacity can be used as a utilization denominator.
func (m MeshConfig) Validate() error {
	if math.IsNaN(m.Capacity) || math.IsInf(m.Capacity, 0) || m.Capacity <= 0 {
		return &ConfigError{Field: "mesh_capacity", Value: m.Capacity, Reason: "must be a positive finite number"}
	}
	return nil
}
