package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Preset is a named set of generate parameters in presets.yaml.
// Pointer fields distinguish "absent" from a zero value.
type Preset struct {
	Hosts        *int     `yaml:"nhost"`
	Bandwidth    *string  `yaml:"bandwidth"`
	CDF          *string  `yaml:"cdf"`
	CDFDir       *string  `yaml:"cdf_dir"`
	Load         *float64 `yaml:"load"`
	Time         *float64 `yaml:"time"`
	Output       *string  `yaml:"output"`
	Seed         *int64   `yaml:"seed"`
	MaxCDFPoints *int     `yaml:"max_cdf_points"`
}

// PresetsConfig represents the full presets.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type PresetsConfig struct {
	Version string            `yaml:"version"`
	Presets map[string]Preset `yaml:"presets"`
}

// loadPresetsConfig parses a presets file with strict field checking, so
// a misspelled key is an error rather than a silently ignored setting.
func loadPresetsConfig(path string) (*PresetsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets file: %w", err)
	}
	var cfg PresetsConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse presets YAML %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadPreset returns the preset called name from the file at path.
func LoadPreset(path, name string) (Preset, error) {
	cfg, err := loadPresetsConfig(path)
	if err != nil {
		return Preset{}, err
	}
	p, ok := cfg.Presets[name]
	if !ok {
		names := make([]string, 0, len(cfg.Presets))
		for n := range cfg.Presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return Preset{}, fmt.Errorf("unknown preset %q in %s (available: %v)", name, path, names)
	}
	return p, nil
}

// applyPreset fills opts from p for every flag the user did not set
// explicitly. Explicit flags always win over the preset.
func applyPreset(cmd *cobra.Command, opts generateOptions, p Preset) generateOptions {
	changed := cmd.Flags().Changed
	if p.Hosts != nil && !changed("nhost") {
		opts.Hosts = *p.Hosts
	}
	if p.Bandwidth != nil && !changed("bandwidth") {
		opts.Bandwidth = *p.Bandwidth
	}
	if p.CDF != nil && !changed("cdf") {
		opts.CDFFile = *p.CDF
	}
	if p.CDFDir != nil && !changed("cdf-dir") {
		opts.CDFDir = *p.CDFDir
	}
	if p.Load != nil && !changed("load") {
		opts.Load = *p.Load
	}
	if p.Time != nil && !changed("time") {
		opts.Duration = *p.Time
	}
	if p.Output != nil && !changed("output") {
		opts.Output = *p.Output
	}
	if p.MaxCDFPoints != nil && !changed("max-cdf-points") {
		opts.MaxCDFPoints = *p.MaxCDFPoints
	}
	if p.Seed != nil && !changed("seed") {
		opts.Seed = *p.Seed
		opts.SeedSet = true
	}
	return opts
}
