package cliconfig

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"json output", func(c *Config) { c.Output = OutputJSON }, false},
		{"unknown output", func(c *Config) { c.Output = "yaml" }, true},
		{"negative concurrency", func(c *Config) { c.Concurrency = -1 }, true},
		{"negative debounce", func(c *Config) { c.Debounce = -1 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := Logger(&buf, "info")
	if err != nil {
		t.Fatalf("Logger() error = %v", err)
	}
	if log.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", log.GetLevel())
	}

	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}

	if _, err := Logger(&buf, "loud"); err == nil {
		t.Error("expected error for invalid level")
	}
}
