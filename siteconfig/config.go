// Package siteconfig holds the per-site settings that every CLIF project
// script shares: which site this is, where the CLIF tables live, and which
// file format the site exports them in.
package siteconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPath is where each project checkout keeps its site configuration.
var DefaultPath = filepath.Join("config", "config.json")

type Config struct {
	SiteName   string `json:"site_name"`
	TablesPath string `json:"tables_path"`
	FileType   string `json:"file_type"`
}

// Load reads and validates the site configuration. It is called once at
// process startup; the returned Config is passed by pointer to the pipeline
// stages and never mutated afterwards.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found at %s: please create it based on the config template: %w", path, err)
		}
		return nil, err
	}
	defer f.Close()

	cfg := &Config{}
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %v", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SiteName == "" {
		return fmt.Errorf("missing required configuration key 'site_name'")
	}
	if c.TablesPath == "" {
		return fmt.Errorf("missing required configuration key 'tables_path'")
	}
	switch c.FileType {
	case "csv", "parquet":
	case "":
		return fmt.Errorf("missing required configuration key 'file_type'")
	default:
		return fmt.Errorf("configuration key 'file_type' must be 'csv' or 'parquet', got '%s'", c.FileType)
	}

	return nil
}

// TablePath builds the conventional path for one CLIF table, e.g.,
// <tables_path>/clif_hospitalization.parquet.
func (c *Config) TablePath(table string) string {
	return filepath.Join(c.TablesPath, fmt.Sprintf("clif_%s.%s", table, c.FileType))
}
