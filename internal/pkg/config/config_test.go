package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v, "test")
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &cfg
}

func TestDefaults_Valid(t *testing.T) {
	cfg := defaultConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Campus.CalibrationMeters != 350 || cfg.Campus.DefaultMetersPerUnit != 900 {
		t.Errorf("unexpected calibration defaults: %+v", cfg.Campus)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Server.Port = 0
	cfg.Campus.ScheduleSource = "sheets"
	cfg.Render.Width = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "campus.schedule_source", "render.width"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got %v", want, err)
		}
	}
}

func TestValidate_PostgresSourceNeedsDatabase(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Campus.ScheduleSource = SourcePostgres
	cfg.Database.Host = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "database.host") {
		t.Errorf("expected database.host error, got %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CAMPUSROUTE_SERVER_PORT", "9090")
	t.Setenv("CAMPUSROUTE_CAMPUS_CALIBRATION_METERS", "420")
	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Campus.CalibrationMeters != 420 {
		t.Errorf("expected 420, got %v", cfg.Campus.CalibrationMeters)
	}
}
