package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/inovacc/gameshelf/internal/model"
)

// Overrides are values given on the command line. Zero values mean "not set".
type Overrides struct {
	Deployment string
	APIURL     string
	ReadOnly   bool
	Timeout    time.Duration
	LogLevel   string
	Listen     string
}

// Resolved is the deployment and settings a command runs with.
type Resolved struct {
	Name       string
	BaseURL    string
	Capability model.Capability
	Timeout    time.Duration
	LogLevel   string
}

// ApplyEnv copies environment overrides into o for every field the command
// line left unset. getenv is os.Getenv in production.
func (o Overrides) ApplyEnv(getenv func(string) string) Overrides {
	if o.Deployment == "" {
		o.Deployment = getenv(EnvDeployment)
	}

	if o.APIURL == "" {
		o.APIURL = getenv(EnvAPIURL)
	}

	if o.LogLevel == "" {
		o.LogLevel = getenv(EnvLogLevel)
	}

	if o.Listen == "" {
		o.Listen = getenv(EnvServerAddr)
	}

	return o
}

// Resolve picks the deployment and applies overrides on top of it.
func (c *Config) Resolve(o Overrides) (Resolved, error) {
	name := o.Deployment
	if name == "" {
		name = c.DefaultDeployment
	}

	d, ok := c.Deployments[name]
	if !ok {
		return Resolved{}, fmt.Errorf("unknown deployment %q (configured: %s)",
			name, strings.Join(c.DeploymentNames(), ", "))
	}

	r := Resolved{
		Name:       name,
		BaseURL:    d.BaseURL,
		Capability: d.Capability,
		Timeout:    time.Duration(c.Timeout),
		LogLevel:   c.LogLevel,
	}

	if o.APIURL != "" {
		r.BaseURL = o.APIURL
	}

	if o.ReadOnly {
		r.Capability = model.CapabilityReadOnly
	}

	if o.Timeout > 0 {
		r.Timeout = o.Timeout
	}

	if o.LogLevel != "" {
		r.LogLevel = o.LogLevel
	}

	u, err := url.Parse(r.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Resolved{}, fmt.Errorf("invalid API URL %q", r.BaseURL)
	}

	return r, nil
}

// ServerListen returns the listen address with the override applied.
func (c *Config) ServerListen(o Overrides) string {
	if o.Listen != "" {
		return o.Listen
	}

	return c.Server.Listen
}
