package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides.
const (
	EnvSeed         = "VOYAGE_SEED"
	EnvSeedPhrase   = "VOYAGE_SEED_PHRASE"
	EnvShipName     = "VOYAGE_SHIP_NAME"
	EnvTravelDays   = "VOYAGE_TRAVEL_DAYS"
	EnvSectorSizeAU = "VOYAGE_SECTOR_SIZE_AU"
	EnvMaxAttempts  = "VOYAGE_MAX_ATTEMPTS"
)

// ApplyEnvironmentOverrides overwrites config fields with any VOYAGE_*
// variables that are set. Unset or empty variables leave the field alone.
func ApplyEnvironmentOverrides(config *VoyageConfig) error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		config.Seed = &seed
	}

	if v := os.Getenv(EnvSeedPhrase); v != "" {
		config.SeedPhrase = v
	}

	if v := os.Getenv(EnvShipName); v != "" {
		config.Ship.Name = v
	}

	if v := os.Getenv(EnvTravelDays); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTravelDays, err)
		}
		config.Ship.TravelDays = days
	}

	if v := os.Getenv(EnvSectorSizeAU); v != "" {
		size, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSectorSizeAU, err)
		}
		config.Sector.SizeAU = size
	}

	if v := os.Getenv(EnvMaxAttempts); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvMaxAttempts, err)
		}
		config.MaxAttempts = attempts
	}

	return nil
}
