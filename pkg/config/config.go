// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-voyage/pkg/physics"
	"github.com/opd-ai/go-voyage/pkg/sector"
	"github.com/opd-ai/go-voyage/pkg/validation"
)

// VoyageConfig contains configuration for a voyage
type VoyageConfig struct {
	Ship        ShipConfig   `json:"ship" yaml:"ship"`
	Sector      SectorConfig `json:"sector" yaml:"sector"`
	Seed        *uint64      `json:"seed,omitempty" yaml:"seed,omitempty"`
	SeedPhrase  string       `json:"seedPhrase,omitempty" yaml:"seedPhrase,omitempty"`
	MaxAttempts int          `json:"maxAttempts,omitempty" yaml:"maxAttempts,omitempty"`
}

// ShipConfig contains configuration for the traveling ship
type ShipConfig struct {
	Name               string           `json:"name" yaml:"name"`
	Radius             float64          `json:"radius" yaml:"radius"`
	LightSpeedFraction float64          `json:"lightSpeedFraction" yaml:"lightSpeedFraction"`
	TravelDays         int              `json:"travelDays" yaml:"travelDays"`
	Direction          *physics.Vector3 `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// SectorConfig contains configuration for the region of space being crossed
type SectorConfig struct {
	SizeAU  float64           `json:"sizeAU" yaml:"sizeAU"`
	Classes []BodyClassConfig `json:"classes" yaml:"classes"`
}

// BodyClassConfig describes one population of bodies. Radii are in meters,
// speed in meters per day.
type BodyClassConfig struct {
	Name      string  `json:"name" yaml:"name"`
	Count     int     `json:"count" yaml:"count"`
	MinRadius float64 `json:"minRadius" yaml:"minRadius"`
	MaxRadius float64 `json:"maxRadius" yaml:"maxRadius"`
	MaxSpeed  float64 `json:"maxSpeed" yaml:"maxSpeed"`
}

// BodyClass converts the config into generator ranges.
func (c BodyClassConfig) BodyClass() sector.BodyClass {
	return sector.BodyClass{
		Label:     c.Name,
		MinRadius: c.MinRadius,
		MaxRadius: c.MaxRadius,
		MaxSpeed:  c.MaxSpeed,
	}
}

// Seed sources reported by ResolveSeed.
const (
	SeedFromConfig = "config"
	SeedFromPhrase = "phrase"
	SeedFromClock  = "clock"
)

// LoadConfig loads a configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*VoyageConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	var config *VoyageConfig
	if isYAML(path) {
		config, err = LoadYAML(file)
	} else {
		config, err = LoadJSON(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// LoadJSON loads config from JSON reader.
func LoadJSON(r io.Reader) (*VoyageConfig, error) {
	var c VoyageConfig
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadYAML loads config from YAML reader.
func LoadYAML(r io.Reader) (*VoyageConfig, error) {
	var c VoyageConfig
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// SaveConfig saves a configuration to a JSON or YAML file, chosen by extension.
func SaveConfig(config *VoyageConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// DefaultConfig returns the asteroid belt crossing: a Constitution class
// starship at 5% of light speed for four years through one cubic AU holding
// 10 000 small (1 m to 1 km across) and 10 000 large (1 km to 530 km) bodies.
func DefaultConfig() *VoyageConfig {
	u := DefaultUnits()
	return &VoyageConfig{
		Ship: ShipConfig{
			Name:               "USS Enterprise (NCC-1701)",
			Radius:             162.7827,
			LightSpeedFraction: 0.05,
			TravelDays:         4 * int(u.DaysInYear),
		},
		Sector: SectorConfig{
			SizeAU:  1,
			Classes: asteroidBeltClasses(u, 10000, 10000),
		},
		MaxAttempts: sector.DefaultMaxAttempts,
	}
}

// asteroidIsoMaxSpeed is 17.9 km/s expressed per day.
const asteroidIsoMaxSpeed = 1546560

func asteroidBeltClasses(u Units, small, large int) []BodyClassConfig {
	return []BodyClassConfig{
		{
			Name:      "small",
			Count:     small,
			MinRadius: u.Meter / 2,
			MaxRadius: u.Kilometer / 2,
			MaxSpeed:  asteroidIsoMaxSpeed,
		},
		{
			Name:      "large",
			Count:     large,
			MinRadius: u.Kilometer / 2,
			MaxRadius: (530 * u.Kilometer) / 2,
			MaxSpeed:  asteroidIsoMaxSpeed,
		},
	}
}

// Validate checks the configuration for values the simulation cannot use.
// A valid ship name is stored back with surrounding whitespace removed.
func (c *VoyageConfig) Validate() error {
	if c.Ship.Name != "" {
		name, err := validation.ValidateShipName(c.Ship.Name)
		if err != nil {
			return fmt.Errorf("%w: %w", physics.ErrInvalidArgument, err)
		}
		c.Ship.Name = name
	}
	if err := c.Ship.validate(); err != nil {
		return err
	}
	if !finite(c.Sector.SizeAU) || c.Sector.SizeAU <= 0 {
		return fmt.Errorf("sector size %v AU: %w", c.Sector.SizeAU, physics.ErrInvalidArgument)
	}
	for _, class := range c.Sector.Classes {
		if class.Name != "" {
			if err := validation.ValidateClassName(class.Name); err != nil {
				return fmt.Errorf("%w: %w", physics.ErrInvalidArgument, err)
			}
		}
		if class.Count < 0 {
			return fmt.Errorf("class %q count %d: %w", class.Name, class.Count, physics.ErrInvalidArgument)
		}
		if err := class.BodyClass().Validate(); err != nil {
			return err
		}
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max attempts %d: %w", c.MaxAttempts, physics.ErrInvalidArgument)
	}
	return nil
}

func (s ShipConfig) validate() error {
	if !finite(s.Radius) || s.Radius < 0 {
		return fmt.Errorf("ship radius %v: %w", s.Radius, physics.ErrInvalidArgument)
	}
	if !finite(s.LightSpeedFraction) || s.LightSpeedFraction <= 0 {
		return fmt.Errorf("ship light speed fraction %v: %w", s.LightSpeedFraction, physics.ErrInvalidArgument)
	}
	if s.TravelDays <= 0 {
		return fmt.Errorf("ship travel days %d: %w", s.TravelDays, physics.ErrInvalidArgument)
	}
	if s.Direction != nil && (!s.Direction.IsFinite() || s.Direction.IsZero()) {
		return fmt.Errorf("ship direction %s: %w", s.Direction, physics.ErrInvalidArgument)
	}
	return nil
}

// ShipSpeed returns the ship's speed in meters per day.
func (c *VoyageConfig) ShipSpeed(u Units) float64 {
	return c.Ship.LightSpeedFraction * u.SpeedOfLightPerDay
}

// TravelGoal returns the distance the ship must cover to complete the voyage.
func (c *VoyageConfig) TravelGoal(u Units) float64 {
	return c.ShipSpeed(u) * float64(c.Ship.TravelDays)
}

// SectorExtent returns the per-axis generation bound. A sector of one cubic
// AU spans half an AU on each axis.
func (c *VoyageConfig) SectorExtent(u Units) float64 {
	return c.Sector.SizeAU * u.AU / 2
}

// Attempts returns the per-body rejection sampling budget.
func (c *VoyageConfig) Attempts() int {
	if c.MaxAttempts == 0 {
		return sector.DefaultMaxAttempts
	}
	return c.MaxAttempts
}

// ResolveSeed picks the random seed: an explicit seed wins, then a hashed
// seed phrase, then the wall clock. The source is reported so a run can be
// replayed with the same seed.
func (c *VoyageConfig) ResolveSeed(now func() time.Time) (uint64, string) {
	switch {
	case c.Seed != nil:
		return *c.Seed, SeedFromConfig
	case c.SeedPhrase != "":
		return xxhash.Sum64String(c.SeedPhrase), SeedFromPhrase
	default:
		return uint64(now().UnixNano()), SeedFromClock
	}
}

// NewRand returns a deterministic PCG generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
