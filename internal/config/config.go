// Package config loads the tonlaunch CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/tlb"
	"gopkg.in/yaml.v3"

	"github.com/branched-services/go-tonlaunch"
)

// MainnetConfigURL is the public global config of the TON mainnet.
const MainnetConfigURL = "https://ton-blockchain.github.io/global.config.json"

// Config holds the tonlaunch configuration.
type Config struct {
	Network  NetworkConfig  `yaml:"network" json:"network"`
	Wallet   WalletConfig   `yaml:"wallet" json:"wallet"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	Log      LogConfig      `yaml:"log" json:"log"`
	Output   string         `yaml:"output" json:"output"`
}

type NetworkConfig struct {
	ConfigURL string        `yaml:"config_url" json:"config_url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// WalletConfig names the wallet used for sending. The mnemonic itself is
// read from the environment variable SeedEnv.
type WalletConfig struct {
	Version string `yaml:"version" json:"version"`
	SeedEnv string `yaml:"seed_env" json:"seed_env"`
}

type DefaultsConfig struct {
	// Gas is the TON amount attached to admin requests.
	Gas string `yaml:"gas" json:"gas"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// FieldError reports an invalid configuration value.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			ConfigURL: MainnetConfigURL,
			Timeout:   30 * time.Second,
		},
		Wallet: WalletConfig{
			Version: "v4r2",
			SeedEnv: "TON_WALLET_SEED",
		},
		Defaults: DefaultsConfig{Gas: "0.05"},
		Log:      LogConfig{Level: "info", Format: "console"},
		Output:   "table",
	}
}

// DefaultPath returns the default config file path: ~/.tonlaunch/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tonlaunch", "config.yaml")
	}
	return filepath.Join(home, ".tonlaunch", "config.yaml")
}

// Load reads the configuration from path on top of Default.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field and reports the first invalid one.
func (c *Config) Validate() error {
	if c.Network.ConfigURL == "" {
		return &FieldError{Field: "network.config_url", Err: errors.New("must not be empty")}
	}
	if c.Network.Timeout <= 0 {
		return &FieldError{Field: "network.timeout", Err: fmt.Errorf("must be positive, got %s", c.Network.Timeout)}
	}
	if _, err := tonlaunch.ParseWalletVersion(c.Wallet.Version); err != nil {
		return &FieldError{Field: "wallet.version", Err: err}
	}
	if c.Wallet.SeedEnv == "" {
		return &FieldError{Field: "wallet.seed_env", Err: errors.New("must not be empty")}
	}
	if _, err := c.Gas(); err != nil {
		return &FieldError{Field: "defaults.gas", Err: err}
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return &FieldError{Field: "log.level", Err: err}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return &FieldError{Field: "log.format", Err: fmt.Errorf("want console or json, got %q", c.Log.Format)}
	}
	switch strings.ToLower(c.Output) {
	case "table", "json", "yaml":
	default:
		return &FieldError{Field: "output", Err: fmt.Errorf("want table, json or yaml, got %q", c.Output)}
	}
	return nil
}

// Gas parses Defaults.Gas.
func (c *Config) Gas() (tlb.Coins, error) {
	gas, err := tlb.FromTON(c.Defaults.Gas)
	if err != nil {
		return tlb.ZeroCoins, err
	}
	if gas.Nano().Sign() <= 0 {
		return tlb.ZeroCoins, fmt.Errorf("must be positive, got %s", c.Defaults.Gas)
	}
	return gas, nil
}

// Seed returns the wallet mnemonic from the environment.
func (c *Config) Seed() ([]string, error) {
	words := strings.Fields(os.Getenv(c.Wallet.SeedEnv))
	if len(words) == 0 {
		return nil, fmt.Errorf("config: wallet seed: environment variable %s is empty", c.Wallet.SeedEnv)
	}
	return words, nil
}
