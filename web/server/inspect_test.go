package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestHandleInspect_Hit(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/inspect?scene=target&x=10&y=10")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if !resp.Hit {
		t.Fatal("Center pixel should hit the sphere")
	}
	if resp.MaterialType != "lambertian" || resp.GeometryType != "sphere" {
		t.Errorf("Expected lambertian sphere, got %s %s", resp.MaterialType, resp.GeometryType)
	}
	if !resp.FrontFace || resp.Normal[2] < 0.9 {
		t.Errorf("Expected front face facing the camera, got normal %v", resp.Normal)
	}
}

func TestHandleInspect_Miss(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/inspect?scene=target&x=0&y=0")

	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if rec.Code != http.StatusOK || resp.Hit {
		t.Errorf("Corner pixel should miss: code %d, hit %v", rec.Code, resp.Hit)
	}
}

func TestHandleInspect_BadRequests(t *testing.T) {
	tests := []struct {
		target string
		status int
	}{
		{"/api/inspect?scene=target&x=a&y=0", http.StatusBadRequest},
		{"/api/inspect?scene=target&x=0", http.StatusBadRequest},
		{"/api/inspect?scene=target&x=21&y=0", http.StatusBadRequest},
		{"/api/inspect?scene=target&x=0&y=-1", http.StatusBadRequest},
		{"/api/inspect?scene=missing&x=0&y=0", http.StatusNotFound},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		if rec := get(t, s, tt.target); rec.Code != tt.status {
			t.Errorf("%s: expected %d, got %d", tt.target, tt.status, rec.Code)
		}
	}
}

func TestExtractMaterialInfo(t *testing.T) {
	tests := []struct {
		mat  material.Material
		want string
	}{
		{material.NewLambertian(core.NewColor(1, 0, 0)), "lambertian"},
		{material.NewMetal(core.NewColor(0.5, 0.5, 0.5), 0.2), "metal"},
		{material.NewDielectric(1.5), "dielectric"},
		{nil, "unknown"},
	}
	for _, tt := range tests {
		if got, _ := extractMaterialInfo(tt.mat); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}

	_, props := extractMaterialInfo(material.NewLambertian(core.NewColor(1, 0, 0)))
	if props["color"] != "#ff0000" {
		t.Errorf("Expected #ff0000, got %v", props["color"])
	}
}

func TestExtractGeometryInfo(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(1, 2, 3), 4, nil)
	kind, props := extractGeometryInfo(sphere)
	if kind != "sphere" || props["radius"] != 4.0 {
		t.Errorf("Unexpected sphere info %s %v", kind, props)
	}
	if kind, _ := extractGeometryInfo(nil); kind != "unknown" {
		t.Errorf("Expected unknown for nil shape, got %s", kind)
	}
}
