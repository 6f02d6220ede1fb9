package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration. Defaults are overlaid by an optional
// YAML file (FACILITIES_CONFIG_FILE) and then by environment variables.
type Config struct {
	Server    Server    `yaml:"server"`
	Database  Database  `yaml:"database"`
	Redis     Redis     `yaml:"redis"`
	Kafka     Kafka     `yaml:"kafka"`
	Collector Collector `yaml:"collector"`
	Reload    Reload    `yaml:"reload"`
	Log       Log       `yaml:"log"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr" validate:"required"`
	AdminToken      string        `yaml:"admin_token"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

// Database selects the record store. An empty URL keeps records in memory.
type Database struct {
	URL string `yaml:"url" validate:"omitempty,url"`
}

// Redis holds the last-report store. An empty URL keeps the report in memory.
type Redis struct {
	URL       string        `yaml:"url" validate:"omitempty,url"`
	ReportTTL time.Duration `yaml:"report_ttl" validate:"gte=0"`
}

// Kafka enables change events when at least one broker is configured.
type Kafka struct {
	Brokers      []string `yaml:"brokers" validate:"dive,hostname_port"`
	ChangesTopic string   `yaml:"changes_topic" validate:"required_with=Brokers"`
}

// Collector is the upstream facility source used by pull passes.
type Collector struct {
	URL     string        `yaml:"url" validate:"omitempty,url"`
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

type Reload struct {
	GracePeriod time.Duration `yaml:"grace_period" validate:"gt=0"`
	Workers     int           `yaml:"workers" validate:"gte=1,lte=256"`
	// Interval between scheduled pull passes. Zero disables the scheduler.
	Interval time.Duration `yaml:"interval" validate:"gte=0"`
}

type Log struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Redis: Redis{ReportTTL: 7 * 24 * time.Hour},
		Kafka: Kafka{ChangesTopic: "facility-changes"},
		Collector: Collector{
			Timeout: 5 * time.Minute,
		},
		Reload: Reload{
			GracePeriod: 24 * time.Hour,
			Workers:     8,
		},
		Log: Log{Level: "info"},
	}
}

// Load builds the configuration from defaults, the optional YAML file and the
// environment, and validates the result.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv("FACILITIES_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	setString(&cfg.Server.Addr, getenv("FACILITIES_ADDR"))
	setString(&cfg.Server.AdminToken, getenv("ADMIN_API_TOKEN"))
	setString(&cfg.Database.URL, getenv("DATABASE_URL"))
	setString(&cfg.Redis.URL, getenv("REDIS_URL"))
	setString(&cfg.Kafka.ChangesTopic, getenv("KAFKA_CHANGES_TOPIC"))
	setString(&cfg.Collector.URL, getenv("COLLECTOR_URL"))
	setString(&cfg.Log.Level, strings.ToLower(getenv("LOG_LEVEL")))
	setString(&cfg.Log.File, getenv("LOG_FILE"))

	if brokers := getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"COLLECTOR_TIMEOUT", &cfg.Collector.Timeout},
		{"RELOAD_GRACE_PERIOD", &cfg.Reload.GracePeriod},
		{"RELOAD_INTERVAL", &cfg.Reload.Interval},
		{"REDIS_REPORT_TTL", &cfg.Redis.ReportTTL},
		{"SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		raw := getenv(d.key)
		if raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if raw := getenv("RELOAD_WORKERS"); raw != "" {
		workers, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("parse RELOAD_WORKERS: %w", err)
		}
		cfg.Reload.Workers = workers
	}
	return nil
}

// Validate checks field constraints on cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
