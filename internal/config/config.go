package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/logger"
)

const envPrefix = "HOSTEL"

const (
	defaultBaseURL       = "http://localhost:5000/api"
	defaultTimeout       = 10 * time.Second
	defaultSessionCookie = "token"
	defaultDBSource      = "hostelctl.db"
	defaultBusyTimeout   = 5000
	defaultLogLevel      = logger.LevelInfo
	defaultLogFormat     = logger.FormatText
	defaultLogOutput     = "stdout"
)

type APIConfig struct {
	BaseURL       string        `toml:"base_url"       yaml:"base_url"       validate:"required,url"`
	Timeout       time.Duration `toml:"timeout"        yaml:"timeout"        validate:"gt=0"`
	SessionCookie string        `toml:"session_cookie" yaml:"session_cookie"`
}

type DBConfig struct {
	Source      string `toml:"source"       yaml:"source"       validate:"required"`
	BusyTimeout int    `toml:"busy_timeout" yaml:"busy_timeout" validate:"gte=0"`
}

// ViewConfig overrides the defaults of one list kind.
type ViewConfig struct {
	SearchFields []string `toml:"search_fields" yaml:"search_fields"`
	Status       string   `toml:"status"        yaml:"status"`
	DateRange    string   `toml:"date_range"    yaml:"date_range"`
}

type Config struct {
	API    APIConfig             `toml:"api"    yaml:"api"`
	DB     DBConfig              `toml:"db"     yaml:"db"`
	Logger logger.Config         `toml:"logger" yaml:"logger"`
	Views  map[string]ViewConfig `toml:"views"  yaml:"views"`
}

// env mirrors the HOSTEL_* variables. Only the ones that are set override the
// file; envconfig also honours the unprefixed names (DB, LOG_LEVEL, ...) as a fallback.
type env struct {
	APIURL        string        `envconfig:"API_URL"`
	APITimeout    time.Duration `envconfig:"API_TIMEOUT"`
	SessionCookie string        `envconfig:"SESSION_COOKIE"`
	DB            string        `envconfig:"DB"`
	LogLevel      string        `envconfig:"LOG_LEVEL"`
	LogFormat     string        `envconfig:"LOG_FORMAT"`
	LogOutput     string        `envconfig:"LOG_OUTPUT"`
}

// Default returns the configuration used when nothing else is provided.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       defaultBaseURL,
			Timeout:       defaultTimeout,
			SessionCookie: defaultSessionCookie,
		},
		DB: DBConfig{
			Source:      defaultDBSource,
			BusyTimeout: defaultBusyTimeout,
		},
		Logger: logger.Config{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
			Output: defaultLogOutput,
		},
		Views: map[string]ViewConfig{},
	}
}

// Parse loads defaults, then the optional file at path (TOML, or YAML for
// .yaml/.yml), then HOSTEL_* environment variables, and validates the result.
// A missing file is not an error.
func Parse(path string) (*Config, error) {
	conf := Default()

	if path != "" {
		if err := conf.parseFile(path); err != nil {
			return nil, err
		}
	}

	if err := conf.parseEnv(); err != nil {
		return nil, err
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// View returns the overrides for a kind, if any.
func (c *Config) View(kind string) ViewConfig {
	return c.Views[kind]
}

// State is the filter state a view of this kind starts with.
func (v ViewConfig) State() filter.State {
	state := filter.DefaultState()
	if v.Status != "" {
		state.Status = filter.ParseStatus(v.Status)
	}
	if v.DateRange != "" {
		state.DateRange = filter.ParseDateRange(v.DateRange)
	}
	return state
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func (c *Config) parseFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, c)
	default:
		err = toml.Unmarshal(content, c)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) parseEnv() error {
	var e env
	if err := envconfig.Process(envPrefix, &e); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if e.APIURL != "" {
		c.API.BaseURL = e.APIURL
	}

	if e.APITimeout > 0 {
		c.API.Timeout = e.APITimeout
	}

	if e.SessionCookie != "" {
		c.API.SessionCookie = e.SessionCookie
	}

	if e.DB != "" {
		c.DB.Source = e.DB
	}

	if e.LogLevel != "" {
		c.Logger.Level = logger.Level(e.LogLevel)
	}

	if e.LogFormat != "" {
		c.Logger.Format = logger.Format(e.LogFormat)
	}

	if e.LogOutput != "" {
		c.Logger.Output = e.LogOutput
	}

	return nil
}
