// Package config reads calculator configuration from an optional YAML file,
// command-line flags and environment variables.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime parameters of the calculator.
type Config struct {
	// DataDir is where the per-key JSON documents and the journal live.
	DataDir string
	// ListenAddr is the address of the local web dashboard.
	ListenAddr string
	// WebEnabled turns the dashboard on.
	WebEnabled bool
	// CurrencySymbol prefixes every rendered amount.
	CurrencySymbol string
	// DefaultWageLabel and DefaultWageRate seed new wage entries.
	DefaultWageLabel string
	DefaultWageRate  decimal.Decimal
	// GateCutoffHour is the local hour of the daily price gate sensitivity.
	GateCutoffHour int
}

// configTmp is the YAML/env wire form; decimals arrive as strings.
type configTmp struct {
	DataDir          string `yaml:"data_dir" env:"SSS_DATA_DIR"`
	ListenAddr       string `yaml:"listen_addr" env:"SSS_LISTEN_ADDR"`
	WebEnabled       *bool  `yaml:"web_enabled" env:"SSS_WEB_ENABLED"`
	CurrencySymbol   string `yaml:"currency_symbol" env:"SSS_CURRENCY_SYMBOL"`
	DefaultWageLabel string `yaml:"default_wage_label" env:"SSS_DEFAULT_WAGE_LABEL"`
	DefaultWageRate  string `yaml:"default_wage_rate" env:"SSS_DEFAULT_WAGE_RATE"`
	GateCutoffHour   int    `yaml:"gate_cutoff_hour" env:"SSS_GATE_CUTOFF_HOUR"`
}

// Get reads configuration. Precedence: defaults < YAML file < environment.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	flag.Parse()

	var tmp configTmp
	if *configPath != "" {
		f, err := os.ReadFile(*configPath)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(f, &tmp); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := env.Parse(&tmp); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return fromTmp(tmp)
}

func fromTmp(tmp configTmp) (Config, error) {
	cfg := Config{
		DataDir:          "./data",
		ListenAddr:       "localhost:8099",
		WebEnabled:       true,
		CurrencySymbol:   "₹",
		DefaultWageLabel: "Default",
		DefaultWageRate:  decimal.NewFromInt(1000),
		GateCutoffHour:   8,
	}

	if tmp.DataDir != "" {
		cfg.DataDir = tmp.DataDir
	}
	if tmp.ListenAddr != "" {
		cfg.ListenAddr = tmp.ListenAddr
	}
	if tmp.WebEnabled != nil {
		cfg.WebEnabled = *tmp.WebEnabled
	}
	if tmp.CurrencySymbol != "" {
		cfg.CurrencySymbol = tmp.CurrencySymbol
	}
	if tmp.DefaultWageLabel != "" {
		cfg.DefaultWageLabel = tmp.DefaultWageLabel
	}
	if tmp.DefaultWageRate != "" {
		rate, err := decimal.NewFromString(tmp.DefaultWageRate)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'default_wage_rate' param (must be a decimal): %w", err)
		}
		if rate.LessThan(decimal.NewFromInt(1)) {
			return Config{}, fmt.Errorf("incorrect 'default_wage_rate' param: must be at least 1, got %s", rate.String())
		}
		cfg.DefaultWageRate = rate
	}
	if tmp.GateCutoffHour != 0 {
		if tmp.GateCutoffHour < 0 || tmp.GateCutoffHour > 23 {
			return Config{}, fmt.Errorf("incorrect 'gate_cutoff_hour' param: must be 0-23, got %d", tmp.GateCutoffHour)
		}
		cfg.GateCutoffHour = tmp.GateCutoffHour
	}

	return cfg, nil
}
