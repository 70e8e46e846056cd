// Package config provides YAML-based rules configuration for Nebula Forge.
package config

import (
	"errors"
	"fmt"
)

// NebulaConfig contains all tunable rules for the game.
type NebulaConfig struct {
	Spawn   SpawnConfig   `yaml:"spawn"`
	Scoring ScoringConfig `yaml:"scoring"`
	Recipes RecipesConfig `yaml:"recipes"`
}

// SpawnConfig controls how the board is populated.
type SpawnConfig struct {
	Batch          int     `yaml:"batch"`
	ResourceChance float64 `yaml:"resource_chance"`
	RefillBelow    int     `yaml:"refill_below"`
}

// ScoringConfig defines points awarded per event.
type ScoringConfig struct {
	Collect     int `yaml:"collect"`
	Absorb      int `yaml:"absorb"`
	Craft       int `yaml:"craft"`
	PulseHazard int `yaml:"pulse_hazard"`
}

// RecipesConfig holds the cost of each craftable tool.
type RecipesConfig struct {
	Shield Cost `yaml:"shield"`
	Pulse  Cost `yaml:"pulse"`
}

// Cost is an amount of each resource kind.
type Cost struct {
	Quark    int `yaml:"quark"`
	Plasma   int `yaml:"plasma"`
	Neutrino int `yaml:"neutrino"`
}

// IsZero reports whether the cost was left unset.
func (c Cost) IsZero() bool {
	return c == Cost{}
}

func (c Cost) validate(name string) error {
	if c.Quark < 0 || c.Plasma < 0 || c.Neutrino < 0 {
		return fmt.Errorf("recipe %s: negative cost", name)
	}
	if c.IsZero() {
		return fmt.Errorf("recipe %s: free recipes are not allowed", name)
	}
	return nil
}

// Validate checks that the configuration describes a playable game.
func (c NebulaConfig) Validate() error {
	var errs []error

	if c.Spawn.Batch < 1 {
		errs = append(errs, errors.New("spawn.batch must be at least 1"))
	}
	if c.Spawn.ResourceChance < 0 || c.Spawn.ResourceChance > 1 {
		errs = append(errs, fmt.Errorf("spawn.resource_chance %v outside [0, 1]", c.Spawn.ResourceChance))
	}
	if c.Spawn.RefillBelow < 0 {
		errs = append(errs, errors.New("spawn.refill_below must not be negative"))
	}

	s := c.Scoring
	if s.Collect < 0 || s.Absorb < 0 || s.Craft < 0 || s.PulseHazard < 0 {
		errs = append(errs, errors.New("scoring values must not be negative"))
	}

	if err := c.Recipes.Shield.validate("shield"); err != nil {
		errs = append(errs, err)
	}
	if err := c.Recipes.Pulse.validate("pulse"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
