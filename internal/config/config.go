package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Data settings
	Data DataConfig `yaml:"data"`

	// Invoice settings
	Invoice InvoiceConfig `yaml:"invoice"`

	// Business info printed on invoices
	Business BusinessConfig `yaml:"business"`
}

type DataConfig struct {
	Path string `yaml:"path"` // Path to the state file
}

type InvoiceConfig struct {
	NumberPrefix string `yaml:"number_prefix"` // Invoice number prefix (e.g., "INV")
	OutputDir    string `yaml:"output_dir"`    // Directory for exported invoices
}

type BusinessConfig struct {
	Name    string `yaml:"name"`
	Contact string `yaml:"contact"`
}

// DefaultConfigPath returns ~/.config/shophours/config.yaml
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home dir unavailable
		return filepath.Join(".", ".config", "shophours", "config.yaml")
	}
	return filepath.Join(homeDir, ".config", "shophours", "config.yaml")
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Data: DataConfig{
			Path: filepath.Join(homeDir, ".config", "shophours", "state.json"),
		},
		Invoice: InvoiceConfig{
			NumberPrefix: "INV",
			OutputDir:    filepath.Join(homeDir, ".config", "shophours", "invoices"),
		},
		Business: BusinessConfig{
			Name: "Shop Hours Time Tracking",
		},
	}
}

// Load loads config from the given path, or returns defaults if file doesn't exist
func Load(path string) (*Config, error) {
	// If file doesn't exist, return defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault loads from the default config path
func LoadDefault() (*Config, error) {
	return Load(DefaultConfigPath())
}

// Save writes the config to the given path
func (c *Config) Save(path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Marshal to YAML
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// Write to file
	return os.WriteFile(path, data, 0644)
}

// EnsureDirectories creates all necessary directories (state file, exports)
func (c *Config) EnsureDirectories() error {
	dataDir := filepath.Dir(c.Data.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	if err := os.MkdirAll(c.Invoice.OutputDir, 0755); err != nil {
		return err
	}

	return nil
}
