package geo

import (
	"fmt"

	"propintel-backend/internal/models"
)

// GeoJSON FeatureCollection shapes, kept to exactly what the map consumes.

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string            `json:"type"`
	Geometry   PointGeometry     `json:"geometry"`
	Properties FeatureProperties `json:"properties"`
}

type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // [longitude, latitude]
}

type FeatureProperties struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	URL     string `json:"url"`
}

// BuildFeatureCollection converts properties into point features for the
// map. Properties without coordinates are skipped silently.
func BuildFeatureCollection(properties []models.Property) FeatureCollection {
	fc := FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(properties)),
	}

	for _, p := range properties {
		if p.Latitude == nil || p.Longitude == nil {
			continue
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: PointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{*p.Longitude, *p.Latitude},
			},
			Properties: FeatureProperties{
				ID:      p.ID,
				Name:    p.Name,
				Address: p.Address,
				URL:     fmt.Sprintf("/properties/%d", p.ID),
			},
		})
	}

	return fc
}
