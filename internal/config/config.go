// Package config loads the YAML run configuration: start day, toggles,
// and the replay/simulation source selection of spec §6.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nordvolt/gridcore/internal/gridcore"
)

// Toggles enables or disables each togglable supply/demand subsystem,
// per §6's external interface.
type Toggles struct {
	Nuclear         bool `yaml:"nuclear"`
	HydroReservoir  bool `yaml:"hydro_reservoir"`
	HydroRoR        bool `yaml:"hydro_ror"`
	Wind            bool `yaml:"wind"`
	Solar           bool `yaml:"solar"`
	CHP             bool `yaml:"chp"`
	Peakers         bool `yaml:"peakers"`
	Interconnectors bool `yaml:"interconnectors"`
	DemandResponse  bool `yaml:"demand_response"`
}

// DefaultToggles returns every subsystem enabled.
func DefaultToggles() Toggles {
	return Toggles{
		Nuclear: true, HydroReservoir: true, HydroRoR: true, Wind: true,
		Solar: true, CHP: true, Peakers: true, Interconnectors: true, DemandResponse: true,
	}
}

// isoDateLayout is the wire format of Config.Day, spec §6.
const isoDateLayout = "2006-01-02"

// Config is the on-disk run configuration, spec §6.
type Config struct {
	Seed           uint64  `yaml:"seed"`
	StartDayOfYear int     `yaml:"start_day_of_year"`
	UseSimulation  bool    `yaml:"use_simulation"`
	ReplayBaseDir  string  `yaml:"replay_base_dir"`
	Day            string  `yaml:"day"`
	WarmupHours    float64 `yaml:"warmup_hours"`
	Toggles        Toggles `yaml:"toggles"`

	LatitudeDeg  float64 `yaml:"latitude_deg"`
	LongitudeDeg float64 `yaml:"longitude_deg"`
}

// ReplayDayDir resolves the ISO-date Day field to the CSV directory
// replay.Load reads, spec §6: ReplayBaseDir holds one subdirectory per
// historical day, named by its ISO date.
func (c *Config) ReplayDayDir() string {
	return filepath.Join(c.ReplayBaseDir, c.Day)
}

// Default returns a config with every toggle on, simulation (not
// replay) selected, a 12h warm-up, and the Nordic reference site used
// for solar elevation.
func Default() Config {
	return Config{
		Seed: 1, StartDayOfYear: 1, UseSimulation: true, WarmupHours: 12,
		Toggles: DefaultToggles(), LatitudeDeg: 59.33, LongitudeDeg: 18.07,
	}
}

// Load reads and validates a YAML config file, applying defaults for
// any field the file leaves out.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads and merges the YAML file onto Default without
// validating the result.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, gridcore.NewLoadError(path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, gridcore.NewLoadError(path, err)
	}
	return &c, nil
}

// Validate checks the fields needed for the orchestrator to start.
func (c *Config) Validate() error {
	if c.StartDayOfYear < 1 || c.StartDayOfYear > 365 {
		return gridcore.NewConfigError("start_day_of_year", errors.New("must be in [1,365]"))
	}
	if !c.UseSimulation {
		if c.Day == "" {
			return gridcore.NewConfigError("day", errors.New("required when use_simulation is false"))
		}
		if _, err := time.Parse(isoDateLayout, c.Day); err != nil {
			return gridcore.NewConfigError("day", errors.New("must be an ISO date (YYYY-MM-DD)"))
		}
	}
	if c.WarmupHours < 0 {
		return gridcore.NewConfigError("warmup_hours", errors.New("must be non-negative"))
	}
	return nil
}
