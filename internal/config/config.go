// Package config resolves gameshelf settings from the config file, the
// environment and command-line overrides.
package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inovacc/gameshelf/internal/application"
	"github.com/inovacc/gameshelf/internal/encoding"
	"github.com/inovacc/gameshelf/internal/model"
)

const (
	// DefaultFileName is the config file looked up in the application directory
	DefaultFileName = "config.json"

	// DeploymentCRUD is the full CRUD deployment on port 5156
	DeploymentCRUD = "crud"

	// DeploymentCatalog is the read-only listing deployment
	DeploymentCatalog = "catalog"

	EnvAPIURL     = "GAMESHELF_API_URL"
	EnvDeployment = "GAMESHELF_DEPLOYMENT"
	EnvLogLevel   = "GAMESHELF_LOG_LEVEL"
	EnvServerAddr = "GAMESHELF_LISTEN"
)

// Duration is a time.Duration written as "30s" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	*d = Duration(parsed)

	return nil
}

// Deployment is one collection API the client can talk to.
type Deployment struct {
	// BaseURL is the scheme and host of the API (e.g., "http://localhost:5156")
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Capability says whether the deployment accepts writes
	Capability model.Capability `json:"capability" yaml:"capability"`
}

// ServerConfig holds settings for the bundled dev API server.
type ServerConfig struct {
	// Listen is the address the server binds to
	Listen string `json:"listen" yaml:"listen"`

	// Driver selects the storage backend: "bolt" or "sqlite"
	Driver string `json:"driver" yaml:"driver"`

	// DataDir is where the store file lives; empty means the application directory
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`

	// AllowedOrigins is the CORS allow-list for browser front ends
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`

	// IdleTimeout shuts the server down after this long without requests (0 disables)
	IdleTimeout Duration `json:"idle_timeout" yaml:"idle_timeout"`
}

// Config holds the application configuration
type Config struct {
	// DefaultDeployment names the deployment used when none is selected
	DefaultDeployment string `json:"default_deployment" yaml:"default_deployment"`

	// Deployments maps names to API endpoints
	Deployments map[string]Deployment `json:"deployments" yaml:"deployments"`

	// Timeout bounds every API request
	Timeout Duration `json:"timeout" yaml:"timeout"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Server configures `gameshelf server`
	Server ServerConfig `json:"server" yaml:"server"`
}

// DefaultConfig returns a Config with the crud and catalog deployments.
func DefaultConfig() Config {
	return Config{
		DefaultDeployment: DeploymentCRUD,
		Deployments: map[string]Deployment{
			DeploymentCRUD: {
				BaseURL:    "http://localhost:5156",
				Capability: model.CapabilityCRUD,
			},
			DeploymentCatalog: {
				BaseURL:    "http://localhost:5000",
				Capability: model.CapabilityReadOnly,
			},
		},
		Timeout:  Duration(30 * time.Second),
		LogLevel: "info",
		Server: ServerConfig{
			Listen:         "127.0.0.1:5156",
			Driver:         "bolt",
			AllowedOrigins: []string{"*"},
			IdleTimeout:    0,
		},
	}
}

// DefaultPath returns the config file path inside the application directory.
func DefaultPath() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, DefaultFileName), nil
}

// Load reads the config file at path over the defaults. An empty path means
// DefaultPath. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error

		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()

	// Decoding over a non-nil map merges, so default deployments survive
	// unless the file redefines them.
	if _, err := encoding.LoadInto(path, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to path in the format implied by its extension.
func Save(path string, cfg *Config) error {
	if path == "" {
		var err error

		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	return encoding.Save(path, cfg)
}

// Validate checks the config for values the client cannot work with.
func (c *Config) Validate() error {
	if len(c.Deployments) == 0 {
		return fmt.Errorf("no deployments configured")
	}

	if _, ok := c.Deployments[c.DefaultDeployment]; !ok {
		return fmt.Errorf("default deployment %q is not defined", c.DefaultDeployment)
	}

	for name, d := range c.Deployments {
		if strings.TrimSpace(d.BaseURL) == "" {
			return fmt.Errorf("deployment %q has no base_url", name)
		}
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	switch c.Server.Driver {
	case "bolt", "sqlite":
	default:
		return fmt.Errorf("unknown server driver %q (want bolt or sqlite)", c.Server.Driver)
	}

	return nil
}

// DeploymentNames returns the configured deployment names, sorted.
func (c *Config) DeploymentNames() []string {
	names := make([]string, 0, len(c.Deployments))
	for name := range c.Deployments {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
