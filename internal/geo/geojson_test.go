package geo

import (
	"encoding/json"
	"testing"

	"propintel-backend/internal/models"
)

func ptr(f float64) *float64 { return &f }

func TestBuildFeatureCollection(t *testing.T) {
	properties := []models.Property{
		{
			ID:        1,
			Name:      "Test House",
			Address:   "123 Test Street, Melbourne, Australia",
			Latitude:  ptr(-37.8136),
			Longitude: ptr(144.9631),
		},
		{
			ID:      2,
			Name:    "No Coordinates Yet",
			Address: "456 Unknown Road",
		},
	}

	fc := BuildFeatureCollection(properties)

	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q, want FeatureCollection", fc.Type)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1 (property without coordinates must be excluded)", len(fc.Features))
	}

	f := fc.Features[0]
	if f.Type != "Feature" || f.Geometry.Type != "Point" {
		t.Errorf("feature types = %q/%q, want Feature/Point", f.Type, f.Geometry.Type)
	}
	// GeoJSON order is [longitude, latitude]
	if f.Geometry.Coordinates[0] != 144.9631 || f.Geometry.Coordinates[1] != -37.8136 {
		t.Errorf("coordinates = %v, want [144.9631 -37.8136]", f.Geometry.Coordinates)
	}
	if f.Properties.ID != 1 || f.Properties.Name != "Test House" {
		t.Errorf("feature properties = %+v", f.Properties)
	}
	if f.Properties.URL != "/properties/1" {
		t.Errorf("url = %q, want /properties/1", f.Properties.URL)
	}
}

func TestBuildFeatureCollectionEmpty(t *testing.T) {
	fc := BuildFeatureCollection(nil)
	if len(fc.Features) != 0 {
		t.Fatalf("got %d features, want 0", len(fc.Features))
	}

	// An empty collection must still serialize with a features array
	b, err := json.Marshal(fc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"type":"FeatureCollection","features":[]}` {
		t.Errorf("unexpected JSON: %s", b)
	}
}

func TestBuildFeatureCollectionPartialCoordinates(t *testing.T) {
	// Only one of the pair set: still excluded
	properties := []models.Property{
		{ID: 3, Name: "Half Located", Latitude: ptr(-37.0)},
		{ID: 4, Name: "Other Half", Longitude: ptr(145.0)},
	}

	fc := BuildFeatureCollection(properties)
	if len(fc.Features) != 0 {
		t.Errorf("got %d features, want 0 for partial coordinates", len(fc.Features))
	}
}
