package nebula

import "github.com/vovakirdan/nebula-forge/internal/config"

// Rules are the tunable constants of a game.
type Rules struct {
	SpawnBatch     int     // Items placed per populate pass
	ResourceChance float64 // Probability a placed item is a resource
	RefillBelow    int     // Repopulate when fewer items remain after a move

	CollectPoints     int
	AbsorbPoints      int
	CraftPoints       int
	PulseHazardPoints int

	Recipes [numTools]ResourceCounts // Indexed by ToolKind
}

// DefaultRules returns the standard game rules.
func DefaultRules() Rules {
	return RulesFromConfig(config.DefaultNebulaConfig())
}

// RulesFromConfig converts a loaded configuration into Rules.
func RulesFromConfig(cfg config.NebulaConfig) Rules {
	return Rules{
		SpawnBatch:        cfg.Spawn.Batch,
		ResourceChance:    cfg.Spawn.ResourceChance,
		RefillBelow:       cfg.Spawn.RefillBelow,
		CollectPoints:     cfg.Scoring.Collect,
		AbsorbPoints:      cfg.Scoring.Absorb,
		CraftPoints:       cfg.Scoring.Craft,
		PulseHazardPoints: cfg.Scoring.PulseHazard,
		Recipes: [numTools]ResourceCounts{
			Shield: costOf(cfg.Recipes.Shield),
			Pulse:  costOf(cfg.Recipes.Pulse),
		},
	}
}

func costOf(c config.Cost) ResourceCounts {
	return ResourceCounts{Quark: c.Quark, Plasma: c.Plasma, Neutrino: c.Neutrino}
}

// Recipe returns the resource cost of crafting kind.
func (r Rules) Recipe(kind ToolKind) ResourceCounts {
	if !kind.valid() {
		return ResourceCounts{}
	}
	return r.Recipes[kind]
}
