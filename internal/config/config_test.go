package config

import "testing"

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadGeocoderBaseURLDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg := Load()
	if cfg.GeocoderBaseURL != "https://nominatim.openstreetmap.org" {
		t.Errorf("GeocoderBaseURL = %q, want Nominatim default", cfg.GeocoderBaseURL)
	}
}

func TestLoadGeocoderBaseURLEmptyDisables(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("GEOCODER_BASE_URL", "")

	cfg := Load()
	if cfg.GeocoderBaseURL != "" {
		t.Errorf("GeocoderBaseURL = %q, want empty (geocoding disabled)", cfg.GeocoderBaseURL)
	}
}

func TestLoadGeocoderBaseURLOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("GEOCODER_BASE_URL", "http://localhost:8088")

	cfg := Load()
	if cfg.GeocoderBaseURL != "http://localhost:8088" {
		t.Errorf("GeocoderBaseURL = %q, want override value", cfg.GeocoderBaseURL)
	}
}
