package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Campus    CampusConfig    `mapstructure:"campus"`
	Render    RenderConfig    `mapstructure:"render"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NATSConfig leaves publishing disabled when URL is empty.
type NATSConfig struct {
	URL    string `mapstructure:"url"`
	Stream string `mapstructure:"stream"`
}

// ValkeyConfig leaves map caching disabled when Addr is empty.
type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	SourceXLSX     = "xlsx"
	SourcePostgres = "postgres"
)

// CampusConfig describes where schedule and map data come from and how the
// map is calibrated to meters.
type CampusConfig struct {
	ScheduleSource       string  `mapstructure:"schedule_source"`
	ScheduleFile         string  `mapstructure:"schedule_file"`
	BuildingsFile        string  `mapstructure:"buildings_file"`
	MapImage             string  `mapstructure:"map_image"`
	MapWidth             int     `mapstructure:"map_width"`
	MapHeight            int     `mapstructure:"map_height"`
	CalibrationFrom      string  `mapstructure:"calibration_from"`
	CalibrationTo        string  `mapstructure:"calibration_to"`
	CalibrationMeters    float64 `mapstructure:"calibration_meters"`
	DefaultMetersPerUnit float64 `mapstructure:"default_meters_per_unit"`
}

type RenderConfig struct {
	Width           int `mapstructure:"width"`
	Height          int `mapstructure:"height"`
	MaxWidth        int `mapstructure:"max_width"`
	MaxHeight       int `mapstructure:"max_height"`
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: CAMPUSROUTE_DATABASE_HOST → database.host
	v.SetEnvPrefix("CAMPUSROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "campus")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "campusroute")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 50)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.stream", "CAMPUS")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("campus.schedule_source", SourceXLSX)
	v.SetDefault("campus.schedule_file", "data/schedule.xlsx")
	v.SetDefault("campus.buildings_file", "data/buildings.csv")
	v.SetDefault("campus.map_image", "data/campus_map.png")
	v.SetDefault("campus.map_width", 1600)
	v.SetDefault("campus.map_height", 1200)
	v.SetDefault("campus.calibration_from", "59")
	v.SetDefault("campus.calibration_to", "11")
	v.SetDefault("campus.calibration_meters", 350.0)
	v.SetDefault("campus.default_meters_per_unit", 900.0)

	v.SetDefault("render.width", 1280)
	v.SetDefault("render.height", 960)
	v.SetDefault("render.max_width", 4096)
	v.SetDefault("render.max_height", 4096)
	v.SetDefault("render.cache_ttl_seconds", 600)
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	switch c.Campus.ScheduleSource {
	case SourceXLSX:
		if c.Campus.ScheduleFile == "" {
			errs = append(errs, "campus.schedule_file is required for the xlsx source")
		}
	case SourcePostgres:
		errs = append(errs, c.Database.validate()...)
	default:
		errs = append(errs, fmt.Sprintf("campus.schedule_source must be %q or %q, got %q", SourceXLSX, SourcePostgres, c.Campus.ScheduleSource))
	}
	if c.Campus.MapWidth <= 0 || c.Campus.MapHeight <= 0 {
		errs = append(errs, "campus.map_width and campus.map_height must be positive")
	}
	if c.Campus.CalibrationMeters <= 0 {
		errs = append(errs, "campus.calibration_meters must be positive")
	}
	if c.Campus.DefaultMetersPerUnit <= 0 {
		errs = append(errs, "campus.default_meters_per_unit must be positive")
	}

	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, "render.width and render.height must be positive")
	}
	if c.Render.MaxWidth < c.Render.Width || c.Render.MaxHeight < c.Render.Height {
		errs = append(errs, "render.max_width/max_height must not be below the default size")
	}
	if c.Render.CacheTTLSeconds < 0 {
		errs = append(errs, "render.cache_ttl_seconds must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (d DatabaseConfig) validate() []string {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if d.Port <= 0 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user is required")
	}
	if d.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	return errs
}

// ValidateDatabase is used by commands that always need Postgres, regardless of the schedule source.
func (c *Config) ValidateDatabase() error {
	if errs := c.Database.validate(); len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
