package models

import (
	"errors"
	"math"
	"testing"
)

func TestLookupMesh(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"API 100", 250},
		{"API 140", 200},
		{"API 170", 160},
		{"API 200", 120},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			mesh, err := LookupMesh(tt.label)
			if err != nil {
				t.Fatalf("LookupMesh(%q) failed: %v", tt.label, err)
			}
			if mesh.Capacity != tt.want {
				t.Errorf("Capacity = %v, want %v", mesh.Capacity, tt.want)
			}
			if string(mesh.Type) != tt.label {
				t.Errorf("Type = %q, want %q", mesh.Type, tt.label)
			}
		})
	}
}

func TestLookupMesh_Unknown(t *testing.T) {
	_, err := LookupMesh("API 325")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("LookupMesh() error = %v, want *ConfigError", err)
	}
	if cfgErr.Field != "mesh_type" {
		t.Errorf("Field = %q, want mesh_type", cfgErr.Field)
	}
}

func TestMeshConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		capacity float64
		wantErr  bool
	}{
		{"Positive", 200, false},
		{"Zero", 0, true},
		{"Negative", -5, true},
		{"NaN", math.NaN(), true},
		{"PositiveInf", math.Inf(1), true},
		{"NegativeInf", math.Inf(-1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MeshConfig{Type: "custom", Capacity: tt.capacity}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMeshType_Next(t *testing.T) {
	tests := []struct {
		from MeshType
		want MeshType
	}{
		{MeshAPI100, MeshAPI140},
		{MeshAPI140, MeshAPI170},
		{MeshAPI170, MeshAPI200},
		{MeshAPI200, MeshAPI100},
		{MeshType("bogus"), MeshAPI100},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			if got := tt.from.Next(); got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}
