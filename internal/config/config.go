// ABOUTME: Environment configuration for the amrnb tools
// ABOUTME: Loads .env files and AMRNB_* variables into a validated Config
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/Resonate-Protocol/amrnb-go/pkg/amrnb"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds the codec settings shared by every subcommand
type Config struct {
	Library string `env:"AMRNB_LIBRARY, default=libstagefright.so"`
	Mode    string `env:"AMRNB_MODE, default=MR122"`
	DTX     bool   `env:"AMRNB_DTX, default=false"`
	Volume  int    `env:"AMRNB_VOLUME, default=100"`
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// NewConfigFromEnv reads and validates Config from the process environment
func NewConfigFromEnv(ctx context.Context) (*Config, error) {
	return newConfig(ctx, envconfig.OsLookuper())
}

func newConfig(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every field holds a usable value
func (c *Config) Validate() error {
	if c.Library == "" {
		return fmt.Errorf("AMRNB_LIBRARY must not be empty")
	}
	if _, err := amrnb.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("AMRNB_MODE: %w", err)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("AMRNB_VOLUME must be between 0 and 100, got %d", c.Volume)
	}
	return nil
}

// EncoderMode returns the parsed encoder mode
func (c *Config) EncoderMode() amrnb.Mode {
	m, _ := amrnb.ParseMode(c.Mode)
	return m
}
