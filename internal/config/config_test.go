package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hostelhub/hostelctl/internal/filter"
	"github.com/hostelhub/hostelctl/internal/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	return path
}

func TestParseDefaults(t *testing.T) {
	conf, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if conf.API.BaseURL != defaultBaseURL {
		t.Errorf("API.BaseURL = %q, want %q", conf.API.BaseURL, defaultBaseURL)
	}

	if conf.API.Timeout != defaultTimeout {
		t.Errorf("API.Timeout = %v, want %v", conf.API.Timeout, defaultTimeout)
	}

	if conf.DB.Source != defaultDBSource {
		t.Errorf("DB.Source = %q, want %q", conf.DB.Source, defaultDBSource)
	}

	if conf.Logger.Level != defaultLogLevel {
		t.Errorf("Logger.Level = %q, want %q", conf.Logger.Level, defaultLogLevel)
	}
}

func TestParseMissingFile(t *testing.T) {
	conf, err := Parse(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if conf.DB.Source != defaultDBSource {
		t.Errorf("DB.Source = %q, want %q", conf.DB.Source, defaultDBSource)
	}
}

func TestParseTOML(t *testing.T) {
	path := writeFile(t, "hostelctl.toml", `
[api]
base_url = "https://hostel.example.com/api"
timeout = "3s"

[db]
source = "test.db"

[logger]
level = "debug"
format = "json"
output = "discard"

[views.complaints]
search_fields = ["description"]
status = "pending"
date_range = "week"
`)

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if conf.API.BaseURL != "https://hostel.example.com/api" {
		t.Errorf("API.BaseURL = %q", conf.API.BaseURL)
	}

	if conf.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v, want 3s", conf.API.Timeout)
	}

	if conf.API.SessionCookie != defaultSessionCookie {
		t.Errorf("API.SessionCookie = %q, want default kept", conf.API.SessionCookie)
	}

	if conf.DB.Source != "test.db" {
		t.Errorf("DB.Source = %q, want test.db", conf.DB.Source)
	}

	if conf.Logger.Format != logger.FormatJSON {
		t.Errorf("Logger.Format = %q, want json", conf.Logger.Format)
	}

	view := conf.View("complaints")
	if len(view.SearchFields) != 1 || view.SearchFields[0] != "description" {
		t.Errorf("View.SearchFields = %v", view.SearchFields)
	}

	if view.Status != "pending" || view.DateRange != "week" {
		t.Errorf("unexpected view defaults %+v", view)
	}
}

func TestParseYAML(t *testing.T) {
	source := Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:5000/api",
			Timeout: 2 * time.Second,
		},
		DB: DBConfig{Source: "yaml.db"},
		Logger: logger.Config{
			Level:  "warn",
			Format: "text",
			Output: "discard",
		},
	}

	content, err := yaml.Marshal(source)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}

	conf, err := Parse(writeFile(t, "hostelctl.yaml", string(content)))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if conf.DB.Source != "yaml.db" {
		t.Errorf("DB.Source = %q, want yaml.db", conf.DB.Source)
	}

	if conf.API.Timeout != 2*time.Second {
		t.Errorf("API.Timeout = %v, want 2s", conf.API.Timeout)
	}

	if conf.Logger.Level != logger.LevelWarn {
		t.Errorf("Logger.Level = %q, want warn", conf.Logger.Level)
	}
}

func TestParseEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "hostelctl.toml", `
[db]
source = "file.db"
`)

	t.Setenv("HOSTEL_DB", "env.db")
	t.Setenv("HOSTEL_API_URL", "https://env.example.com/api")
	t.Setenv("HOSTEL_API_TIMEOUT", "1m")
	t.Setenv("HOSTEL_LOG_LEVEL", "error")
	t.Setenv("HOSTEL_LOG_OUTPUT", "discard")

	conf, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if conf.DB.Source != "env.db" {
		t.Errorf("DB.Source = %q, want env.db", conf.DB.Source)
	}

	if conf.API.BaseURL != "https://env.example.com/api" {
		t.Errorf("API.BaseURL = %q", conf.API.BaseURL)
	}

	if conf.API.Timeout != time.Minute {
		t.Errorf("API.Timeout = %v, want 1m", conf.API.Timeout)
	}

	if conf.Logger.Level != logger.LevelError {
		t.Errorf("Logger.Level = %q, want error", conf.Logger.Level)
	}

	if conf.Logger.Output != "discard" {
		t.Errorf("Logger.Output = %q, want discard", conf.Logger.Output)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "malformed toml",
			file:    "bad.toml",
			content: "[api\nbase_url=",
		},
		{
			name:    "invalid url",
			file:    "url.toml",
			content: "[api]\nbase_url = \"not a url\"\n",
		},
		{
			name:    "unknown log level",
			file:    "level.yaml",
			content: "logger:\n  level: loud\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(writeFile(t, tt.file, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestViewState(t *testing.T) {
	conf := Default()
	conf.Views = map[string]ViewConfig{
		"complaints": {Status: "Pending", DateRange: "week"},
	}

	state := conf.View("complaints").State()
	if state.Status != "Pending" {
		t.Errorf("Status = %q, want Pending", state.Status)
	}
	if state.DateRange != filter.DateRangeWeek {
		t.Errorf("DateRange = %q, want week", state.DateRange)
	}

	if got := conf.View("rooms").State(); got != filter.DefaultState() {
		t.Errorf("unconfigured view = %+v, want defaults", got)
	}
}
