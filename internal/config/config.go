package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "STOREFRONT_"

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`

	GraphQL GraphQL `yaml:"graphql"`
	Storage Storage `yaml:"storage"`
}

type GraphQL struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`

	// circuit breaker around the endpoint
	MaxFailures uint32        `yaml:"max_failures"`
	OpenTimeout time.Duration `yaml:"open_timeout"`
}

type Storage struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`

	Dir string `yaml:"dir"`

	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`

	PostgresDSN string `yaml:"postgres_dsn"`
}

func Default() Config {
	return Config{
		Env:      "dev",
		LogLevel: "info",
		GraphQL: GraphQL{
			Endpoint:    "http://localhost:8000/graphql",
			Timeout:     10 * time.Second,
			MaxFailures: 5,
			OpenTimeout: 30 * time.Second,
		},
		Storage: Storage{
			Backend:   BackendFile,
			Key:       "cart",
			Dir:       defaultDir(),
			RedisAddr: "localhost:6379",
		},
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then STOREFRONT_* environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("applyEnv: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.GraphQL.Endpoint == "" {
		errs = append(errs, errors.New("graphql endpoint is empty"))
	}
	if c.GraphQL.Timeout <= 0 {
		errs = append(errs, errors.New("graphql timeout must be positive"))
	}
	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage key is empty"))
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.Dir == "" {
			errs = append(errs, errors.New("storage dir is empty"))
		}
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			errs = append(errs, errors.New("redis addr is empty"))
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("postgres dsn is empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage backend[%s] is not supported", c.Storage.Backend))
	}

	return errors.Join(errs...)
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.GraphQL.Endpoint, "GRAPHQL_ENDPOINT")
	setString(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setString(&cfg.Storage.Key, "STORAGE_KEY")
	setString(&cfg.Storage.Dir, "STORAGE_DIR")
	setString(&cfg.Storage.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Storage.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.Storage.PostgresDSN, "POSTGRES_DSN")

	return errors.Join(
		setDuration(&cfg.GraphQL.Timeout, "GRAPHQL_TIMEOUT"),
		setDuration(&cfg.GraphQL.OpenTimeout, "GRAPHQL_OPEN_TIMEOUT"),
		setUint32(&cfg.GraphQL.MaxFailures, "GRAPHQL_MAX_FAILURES"),
		setInt(&cfg.Storage.RedisDB, "REDIS_DB"),
	)
}

func setString(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = d
	return nil
}

func setInt(dst *int, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = n
	return nil
}

func setUint32(dst *uint32, key string) error {
	v := os.Getenv(envPrefix + key)
	if v == "" {
		return nil
	}

	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return fmt.Errorf("%s%s: %w", envPrefix, key, err)
	}
	*dst = uint32(n)
	return nil
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(dir, "storefront")
}
