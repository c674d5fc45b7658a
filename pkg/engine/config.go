package engine

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/bennyhartnett/swucalc/pkg/scenario"
	"github.com/bennyhartnett/swucalc/pkg/units"
)

// Config holds all parameters for a batch of calculations.
type Config struct {
	Workers   int    `json:"workers"`
	Format    string `json:"format"` // "text" or "json"
	MassUnit  string `json:"mass_unit"`
	AssayUnit string `json:"assay_unit"`
	WorkUnit  string `json:"work_unit"`
	Precision int    `json:"precision"` // significant digits in text output
	XLSXPath  string `json:"xlsx_path,omitempty"`
	Verbose   bool   `json:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:   runtime.NumCPU(),
		Format:    "text",
		MassUnit:  "kg",
		AssayUnit: "%",
		WorkUnit:  "SWU",
		Precision: 6,
	}
}

// Environment variables read by ApplyEnv.
const (
	EnvWorkers   = "SWUCALC_WORKERS"
	EnvFormat    = "SWUCALC_FORMAT"
	EnvMassUnit  = "SWUCALC_MASS_UNIT"
	EnvAssayUnit = "SWUCALC_ASSAY_UNIT"
	EnvWorkUnit  = "SWUCALC_WORK_UNIT"
)

// ApplyEnv overrides fields from SWUCALC_* environment variables. Unset or
// empty variables leave the field alone.
func (c *Config) ApplyEnv() error {
	return c.ApplyLookup(os.Getenv)
}

// ApplyLookup is ApplyEnv with a custom variable source.
func (c *Config) ApplyLookup(lookup func(string) string) error {
	get := func(key string) string { return strings.TrimSpace(lookup(key)) }

	if v := get(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvWorkers, v)
		}
		c.Workers = n
	}
	if v := get(EnvFormat); v != "" {
		c.Format = v
	}
	if v := get(EnvMassUnit); v != "" {
		c.MassUnit = v
	}
	if v := get(EnvAssayUnit); v != "" {
		c.AssayUnit = v
	}
	if v := get(EnvWorkUnit); v != "" {
		c.WorkUnit = v
	}
	return nil
}

// Validate checks the format and unit names.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format: %s (available: text, json)", c.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, _, _, err := c.Units(); err != nil {
		return err
	}
	return nil
}

// Units resolves the display units.
func (c Config) Units() (mass, assay, work units.Unit, err error) {
	if mass, err = units.Lookup(units.Mass, c.MassUnit); err != nil {
		return
	}
	if assay, err = units.Lookup(units.Assay, c.AssayUnit); err != nil {
		return
	}
	work, err = units.Lookup(units.Work, c.WorkUnit)
	return
}

// ScenarioUnits returns the display units as scenario defaults.
func (c Config) ScenarioUnits() scenario.Units {
	return scenario.Units{Mass: c.MassUnit, Assay: c.AssayUnit, Work: c.WorkUnit}
}
