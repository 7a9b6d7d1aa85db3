package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"campus-waterworks/internal/dataset"
	"campus-waterworks/internal/zone"
)

// ErrInvalidConfig is returned when a loaded configuration fails
// validation of its lookup tables.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full configuration surface: file locations plus the
// static lookup tables whose shape is part of the analysis contract.
type Config struct {
	DataDir       string `yaml:"data_dir"`
	HierarchyFile string `yaml:"hierarchy_file"`
	MainFile      string `yaml:"main_file"`
	AuxFile       string `yaml:"aux_file"`
	OutDir        string `yaml:"out_dir"`
	MetricsFile   string `yaml:"metrics_file"`

	TargetPrefixes []string `yaml:"target_prefixes"`
	ExcludeNames   []string `yaml:"exclude_names"`
	SpotlightCode  string   `yaml:"spotlight_code"`

	Activities map[int]string      `yaml:"activities"`
	Zones      map[string][]string `yaml:"zones"`

	DailyAt string `yaml:"daily_at"`
}

// Load builds a configuration from defaults, optionally overlaid by a
// YAML file, then by environment variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.DataDir = getenvDefault("WATERWORKS_DATA_DIR", cfg.DataDir)
	cfg.OutDir = getenvDefault("WATERWORKS_OUT_DIR", cfg.OutDir)
	cfg.MetricsFile = getenvDefault("WATERWORKS_METRICS_FILE", cfg.MetricsFile)
	cfg.DailyAt = getenvDefault("WATERWORKS_DAILY_AT", cfg.DailyAt)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the lookup tables: the activity table must be total
// over months 1..12 and the zone table free of duplicate display names.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir required", ErrInvalidConfig)
	}
	if c.OutDir == "" {
		return fmt.Errorf("%w: out_dir required", ErrInvalidConfig)
	}
	table, err := c.ActivityTable()
	if err != nil {
		return err
	}
	if err := table.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.ZoneTable(); err != nil {
		return err
	}
	return nil
}

// ActivityTable converts the configured month mapping.
func (c Config) ActivityTable() (dataset.ActivityTable, error) {
	table := make(dataset.ActivityTable, len(c.Activities))
	for month, label := range c.Activities {
		activity, err := dataset.ParseActivity(label)
		if err != nil {
			return nil, fmt.Errorf("%w: month %d: %v", ErrInvalidConfig, month, err)
		}
		table[time.Month(month)] = activity
	}
	return table, nil
}

// ZoneTable converts the configured forward zone mapping.
func (c Config) ZoneTable() (map[zone.Zone][]string, error) {
	forward := make(map[zone.Zone][]string, len(c.Zones))
	for label, names := range c.Zones {
		z, err := zone.Parse(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		forward[z] = names
	}
	return forward, nil
}

// HierarchyPath resolves the hierarchy source path.
func (c Config) HierarchyPath() string { return filepath.Join(c.DataDir, c.HierarchyFile) }

// MainPath resolves the main reading source path.
func (c Config) MainPath() string { return filepath.Join(c.DataDir, c.MainFile) }

// AuxPath resolves the auxiliary reading source path.
func (c Config) AuxPath() string { return filepath.Join(c.DataDir, c.AuxFile) }

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
