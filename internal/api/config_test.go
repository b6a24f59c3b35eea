package api

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != "http://localhost:8000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GEOTUTOR_SERVER", "https://tutor.example.com/")
	t.Setenv("GEOTUTOR_TIMEOUT_SECONDS", "15")

	cfg := ConfigFromEnv()
	if cfg.BaseURL != "https://tutor.example.com/" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestConfigFromEnvBadTimeout(t *testing.T) {
	t.Setenv("GEOTUTOR_SERVER", "")
	t.Setenv("GEOTUTOR_TIMEOUT_SECONDS", "soon")

	cfg := ConfigFromEnv()
	if cfg.Timeout != DefaultConfig().Timeout {
		t.Errorf("unparseable timeout should fall back to default, got %v", cfg.Timeout)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid http", Config{BaseURL: "http://localhost:8000", Timeout: time.Second}, false},
		{"valid https", Config{BaseURL: "https://tutor.example.com", Timeout: time.Second}, false},
		{"empty url", Config{Timeout: time.Second}, true},
		{"bad scheme", Config{BaseURL: "ftp://tutor", Timeout: time.Second}, true},
		{"zero timeout", Config{BaseURL: "http://localhost:8000"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
