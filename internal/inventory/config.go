package inventory

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/chipflow/internal/chips"
)

// Config is the complete chipflow configuration: service settings plus the
// chip inventory on hand.
type Config struct {
	Server    ServerSettings
	Inventory chips.Inventory
}

// ServerSettings contains service-level configuration.
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// hclConfig mirrors the on-disk HCL layout.
type hclConfig struct {
	Server *ServerSettings `hcl:"server,block"`
	Chips  []chipBlock     `hcl:"chips,block"`
}

// chipBlock is one `chips "<denomination>" { count = N }` entry.
type chipBlock struct {
	Denomination string `hcl:"denomination,label"`
	Count        int    `hcl:"count"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Inventory: Default(),
	}
}

// LoadConfig loads configuration from an HCL file. A missing file is not an
// error; the defaults are returned instead.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := DefaultConfig()
	if raw.Server != nil {
		if raw.Server.Address != "" {
			config.Server.Address = raw.Server.Address
		}
		if raw.Server.Port != 0 {
			config.Server.Port = raw.Server.Port
		}
		if raw.Server.LogLevel != "" {
			config.Server.LogLevel = raw.Server.LogLevel
		}
	}

	if len(raw.Chips) > 0 {
		inv := chips.Inventory{}
		for _, block := range raw.Chips {
			denom, err := strconv.Atoi(block.Denomination)
			if err != nil {
				return nil, fmt.Errorf("invalid chip denomination label %q", block.Denomination)
			}
			inv[chips.Denomination(denom)] = block.Count
		}
		config.Inventory = inv
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}

	if len(c.Inventory) == 0 {
		return fmt.Errorf("at least one chip denomination must be configured")
	}
	for d, count := range c.Inventory {
		if !chips.IsStandardDenomination(d) {
			return fmt.Errorf("unknown chip denomination: %d", d)
		}
		if count < 0 {
			return fmt.Errorf("chip count for denomination %d cannot be negative", d)
		}
	}

	return nil
}

// ListenAddress returns the full address the service binds to.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
