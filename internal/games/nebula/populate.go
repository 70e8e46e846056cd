package nebula

// Rand is the random source the game draws from.
// *math/rand.Rand satisfies it; tests pass a seeded one.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Populator places resources and hazards on empty cells.
type Populator struct {
	rng            Rand
	batch          int
	resourceChance float64
}

// NewPopulator creates a populator that places batch items per pass, each a
// resource with probability resourceChance and a hazard otherwise.
func NewPopulator(rng Rand, batch int, resourceChance float64) *Populator {
	return &Populator{
		rng:            rng,
		batch:          batch,
		resourceChance: resourceChance,
	}
}

// Populate fills randomly chosen empty cells other than excluded and returns
// how many items it placed. Existing items are never touched.
// When fewer empty cells remain than the batch size, every one of them is
// filled and the pass ends; it never waits for space to appear.
func (p *Populator) Populate(g *Grid, excluded Position) int {
	candidates := g.EmptyCells()
	for i, c := range candidates {
		if c == excluded {
			candidates = append(candidates[:i], candidates[i+1:]...)
			break
		}
	}

	n := min(p.batch, len(candidates))
	for i := range n {
		// Partial Fisher-Yates: each pick is uniform over the cells still empty.
		j := i + p.rng.Intn(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]

		cell := CellHazard
		if p.rng.Float64() < p.resourceChance {
			cell = CellResource
		}
		g.Set(candidates[i], cell)
	}
	return n
}
