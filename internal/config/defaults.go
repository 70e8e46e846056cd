package config

import (
	_ "embed"
)

//go:embed defaults/nebula.yaml
var defaultNebulaYAML []byte

// DefaultNebulaConfig returns the built-in rules.
func DefaultNebulaConfig() NebulaConfig {
	return NebulaConfig{
		Spawn: SpawnConfig{
			Batch:          8,
			ResourceChance: 0.7,
			RefillBelow:    4,
		},
		Scoring: ScoringConfig{
			Collect:     10,
			Absorb:      30,
			Craft:       50,
			PulseHazard: 20,
		},
		Recipes: RecipesConfig{
			Shield: Cost{Quark: 2, Plasma: 1},
			Pulse:  Cost{Plasma: 2, Neutrino: 1},
		},
	}
}

// DefaultYAML returns the embedded default rules file.
func DefaultYAML() []byte {
	return defaultNebulaYAML
}
