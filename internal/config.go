package internal

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by sdls
const (
	EnvConfigPath  = "SDLS_CONFIG_PATH"
	EnvLogLevel    = "SDLS_LOG_LEVEL"
	EnvInteractive = "SDLS_INTERACTIVE"
)

// Config is the parsed ~/.config/sdls.yml. It is not modified after LoadConfig returns.
type Config struct {
	Host        string   `yaml:"host"`
	Username    string   `yaml:"username,omitempty"`
	Password    string   `yaml:"password,omitempty"`
	OPItemName  string   `yaml:"op_item_name,omitempty"`
	OPAccount   string   `yaml:"op_account,omitempty"`
	Directories []string `yaml:"directories,omitempty"`
}

// ConfigError is returned for a missing, unreadable or incomplete configuration file
type ConfigError struct {
	Path    string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig reads and validates the configuration file at path
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Path: path, Message: "Configuration file not found: " + path}
		}
		return nil, &ConfigError{Path: path, Message: fmt.Sprintf("Error reading configuration file (%s)", path), Err: err}
	}

	var config Config
	if len(bytes.TrimSpace(data)) > 0 {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, &ConfigError{Path: path, Message: fmt.Sprintf("Error parsing configuration file (%s)", path), Err: err}
		}
		if len(root.Content) > 0 && root.Content[0].Kind == yaml.MappingNode {
			if err := root.Content[0].Decode(&config); err != nil {
				return nil, &ConfigError{Path: path, Message: fmt.Sprintf("Error parsing configuration file (%s)", path), Err: err}
			}
		}
	}

	config.normalize()

	if config.Host == "" {
		return nil, &ConfigError{
			Path:    path,
			Message: fmt.Sprintf("Configuration file (%s) is missing required keys or values: host", path),
		}
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Host = strings.TrimRight(strings.TrimSpace(c.Host), "/")
	c.Username = strings.TrimSpace(c.Username)
	c.OPItemName = strings.TrimSpace(c.OPItemName)
	c.OPAccount = strings.TrimSpace(c.OPAccount)
	if strings.TrimSpace(c.Password) == "" {
		c.Password = ""
	}

	directories := make([]string, 0, len(c.Directories))
	for _, dir := range c.Directories {
		if dir = strings.TrimSpace(dir); dir != "" {
			directories = append(directories, dir)
		}
	}
	c.Directories = directories
}

// HasCredentials reports whether both username and password are configured
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// ConfigPath resolves the configuration file location.
// An explicit path wins over SDLS_CONFIG_PATH, which wins over ~/.config/sdls.yml.
func ConfigPath(explicit string) (string, error) {
	path := strings.TrimSpace(explicit)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "sdls.yml"), nil
}
