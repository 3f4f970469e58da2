package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LinuxLinusDE/MS-365/types"
)

// Config represents the main configuration
type Config struct {
	Version   string             `yaml:"version"`
	Source    string             `yaml:"source"`
	Tenants   []string           `yaml:"tenants"`
	Auth      Auth               `yaml:"auth"`
	Filter    types.DeviceFilter `yaml:"filter,omitempty"`
	Output    Output             `yaml:"output,omitempty"`
	Telemetry Telemetry          `yaml:"telemetry,omitempty"`
}

// Auth holds the app registration used for the per-tenant device code flow
type Auth struct {
	ClientID string   `yaml:"client_id"`
	Scopes   []string `yaml:"scopes,omitempty"`
}

// Output names the CSV files the run writes
type Output struct {
	DevicesFile string `yaml:"devices_file,omitempty"`
	SummaryFile string `yaml:"summary_file,omitempty"`
}

// Telemetry controls optional OTEL export
type Telemetry struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty"`
}

// Default scopes requested when the config names none.
var defaultScopes = []string{"DeviceManagementManagedDevices.Read.All"}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults fills fields the file may omit
func (c *Config) applyDefaults() {
	if c.Source == "" {
		c.Source = "graph"
	}
	if c.Filter.IsEmpty() {
		c.Filter = types.ForMDM()
	}
	if len(c.Auth.Scopes) == 0 {
		c.Auth.Scopes = defaultScopes
	}
	if c.Output.DevicesFile == "" {
		c.Output.DevicesFile = "intune_devices.csv"
	}
	if c.Output.SummaryFile == "" {
		c.Output.SummaryFile = "tenant_summary.csv"
	}
}

// Validate ensures config has required fields
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("version is required")
	}
	if len(c.Tenants) == 0 {
		return fmt.Errorf("at least one tenant is required")
	}
	for i, tenant := range c.Tenants {
		if tenant == "" {
			return fmt.Errorf("tenant %d is empty", i)
		}
	}
	if c.Auth.ClientID == "" {
		return fmt.Errorf("auth.client_id is required")
	}
	return nil
}
