// Package config loads process configuration from an optional YAML file
// (CONFIG_FILE, with ${VAR} expansion) overlaid by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full process configuration.
type Config struct {
	Server    Server          `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Directory DirectoryConfig `yaml:"directory"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Tracing   TracingConfig   `yaml:"tracing"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `yaml:"addr"`
	AdminToken      string        `yaml:"admin_token"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type RedisConfig struct {
	URL          string        `yaml:"url"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type KafkaConfig struct {
	Brokers     []string      `yaml:"brokers"`
	ClientID    string        `yaml:"client_id"`
	LeadTopic   string        `yaml:"lead_topic"`
	Partitions  int32         `yaml:"partitions"`
	Replication int16         `yaml:"replication"`
	Linger      time.Duration `yaml:"linger"`
}

// DirectoryConfig holds matching and lead routing settings.
type DirectoryConfig struct {
	AliasFile          string        `yaml:"alias_file"`
	BuildersFile       string        `yaml:"builders_file"`
	EmptyCountryPolicy string        `yaml:"empty_country_policy"`
	MaxAssignments     int           `yaml:"max_assignments"`
	RerouteAfter       time.Duration `yaml:"reroute_after"`
	RerouteInterval    time.Duration `yaml:"reroute_interval"`
}

// RateLimitConfig bounds public traffic per client IP. Limits are sliding
// windows shared through Redis when it is configured.
type RateLimitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	LeadRequests int           `yaml:"lead_requests"`
	LeadWindow   time.Duration `yaml:"lead_window"`
	ReadRequests int           `yaml:"read_requests"`
	ReadWindow   time.Duration `yaml:"read_window"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig selects the span exporter: OTLP over HTTP when Endpoint is
// set, stdout otherwise.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Redis: RedisConfig{
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			ClientID:    "standsdir",
			LeadTopic:   "standsdir.lead-assigned",
			Partitions:  3,
			Replication: 1,
			Linger:      5 * time.Millisecond,
		},
		Directory: DirectoryConfig{
			EmptyCountryPolicy: "match-all",
			MaxAssignments:     8,
			RerouteAfter:       48 * time.Hour,
			RerouteInterval:    time.Hour,
		},
		RateLimit: RateLimitConfig{
			Enabled:      true,
			LeadRequests: 10,
			LeadWindow:   time.Hour,
			ReadRequests: 120,
			ReadWindow:   time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			ServiceName: "standsdir",
			SampleRatio: 0.1,
		},
	}
}

// Load builds the configuration: defaults, then CONFIG_FILE if set, then
// environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := errors.Join(applyEnv(&cfg), cfg.Validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var errs []error

	cfg.Server.Addr = getEnv("STANDSDIR_ADDR", cfg.Server.Addr)
	cfg.Server.AdminToken = getEnv("ADMIN_TOKEN", cfg.Server.AdminToken)
	cfg.Server.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout, &errs)

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitList(brokers)
	}
	cfg.Kafka.LeadTopic = getEnv("KAFKA_LEAD_TOPIC", cfg.Kafka.LeadTopic)

	cfg.Directory.AliasFile = getEnv("ALIAS_FILE", cfg.Directory.AliasFile)
	cfg.Directory.BuildersFile = getEnv("BUILDERS_FILE", cfg.Directory.BuildersFile)
	cfg.Directory.EmptyCountryPolicy = getEnv("EMPTY_COUNTRY_POLICY", cfg.Directory.EmptyCountryPolicy)
	cfg.Directory.MaxAssignments = getEnvInt("LEAD_MAX_ASSIGNMENTS", cfg.Directory.MaxAssignments, &errs)
	cfg.Directory.RerouteAfter = getEnvDuration("LEAD_REROUTE_AFTER", cfg.Directory.RerouteAfter, &errs)
	cfg.Directory.RerouteInterval = getEnvDuration("LEAD_REROUTE_INTERVAL", cfg.Directory.RerouteInterval, &errs)

	cfg.RateLimit.Enabled = getEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.LeadRequests = getEnvInt("RATE_LIMIT_LEAD_REQUESTS", cfg.RateLimit.LeadRequests, &errs)
	cfg.RateLimit.LeadWindow = getEnvDuration("RATE_LIMIT_LEAD_WINDOW", cfg.RateLimit.LeadWindow, &errs)
	cfg.RateLimit.ReadRequests = getEnvInt("RATE_LIMIT_READ_REQUESTS", cfg.RateLimit.ReadRequests, &errs)
	cfg.RateLimit.ReadWindow = getEnvDuration("RATE_LIMIT_READ_WINDOW", cfg.RateLimit.ReadWindow, &errs)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Tracing.Enabled = getEnvBool("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.ServiceName = getEnv("OTEL_SERVICE_NAME", cfg.Tracing.ServiceName)
	cfg.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.Insecure = getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)
	cfg.Tracing.SampleRatio = getEnvFloat("OTEL_SAMPLER_RATIO", cfg.Tracing.SampleRatio, &errs)

	return errors.Join(errs...)
}

// Validate checks values that cannot be defaulted.
func (c Config) Validate() error {
	var errs []error
	switch c.Directory.EmptyCountryPolicy {
	case "match-all", "match-none":
	default:
		errs = append(errs, fmt.Errorf("empty_country_policy must be match-all or match-none, got %q", c.Directory.EmptyCountryPolicy))
	}
	if c.Directory.MaxAssignments <= 0 {
		errs = append(errs, errors.New("max_assignments must be positive"))
	}
	if c.Directory.RerouteInterval <= 0 {
		errs = append(errs, errors.New("reroute_interval must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.LeadRequests <= 0 || c.RateLimit.LeadWindow <= 0 ||
		c.RateLimit.ReadRequests <= 0 || c.RateLimit.ReadWindow <= 0) {
		errs = append(errs, errors.New("rate limits must be positive when rate limiting is enabled"))
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.LeadTopic == "" {
		errs = append(errs, errors.New("kafka lead_topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	val = strings.ToLower(val)
	return val == "true" || val == "1" || val == "yes"
}

func getEnvInt(key string, defaultVal int, errs *[]error) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return n
}

func getEnvFloat(key string, defaultVal float64, errs *[]error) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration, errs *[]error) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
