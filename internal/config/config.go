package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	FileName = "config.yaml"
	EnvFile  = ".env"

	DefaultAPIURL   = "http://localhost:3001/api"
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "warn"
)

// Environment variables that override config.yaml.
const (
	EnvAPIURL     = "DOLPHIN_API_URL"
	EnvTimeout    = "DOLPHIN_TIMEOUT"
	EnvLogLevel   = "DOLPHIN_LOG_LEVEL"
	EnvRequireJWT = "DOLPHIN_REQUIRE_JWT"
)

type Config struct {
	APIURL  string        `yaml:"api_url,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// TokenKeys are the credential slots scanned in order.
	TokenKeys  []string `yaml:"token_keys,omitempty"`
	LogLevel   string   `yaml:"log_level,omitempty"`
	RequireJWT bool     `yaml:"require_jwt,omitempty"`
}

// Load reads <dataDir>/config.yaml. A missing file is an empty config.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path := filepath.Join(dataDir, FileName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve loads config.yaml and applies, in increasing precedence, the
// variables in <dataDir>/.env and the process environment. Unset values get
// their defaults.
func Resolve(dataDir string) (*Config, error) {
	cfg, err := Load(dataDir)
	if err != nil {
		return nil, err
	}
	env, err := readEnvFile(filepath.Join(dataDir, EnvFile))
	if err != nil {
		return nil, err
	}
	for _, k := range []string{EnvAPIURL, EnvTimeout, EnvLogLevel, EnvRequireJWT} {
		if v, ok := os.LookupEnv(k); ok && v != "" {
			env[k] = v
		}
	}
	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func readEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", EnvFile, err)
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	if v := env[EnvAPIURL]; v != "" {
		c.APIURL = v
	}
	if v := env[EnvLogLevel]; v != "" {
		c.LogLevel = v
	}
	if v := env[EnvTimeout]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := env[EnvRequireJWT]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvRequireJWT, err)
		}
		c.RequireJWT = b
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}
