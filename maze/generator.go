package maze

import (
	"math/rand"
	"time"

	"github.com/zyedidia/generic/stack"
)

// Rand is the source of randomness used by the Generator.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// Generator carves perfect mazes with a randomized depth-first backtracker.
// A Generator is not safe for concurrent use.
type Generator struct {
	seed int64
	rng  Rand
}

// WithSeed makes generation reproducible. A zero seed selects a time-based seed.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithRand replaces the random source. It takes precedence over WithSeed.
func WithRand(r Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = r
	}
}

// NewGenerator creates a Generator configured by opts.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}

	if g.rng == nil {
		if g.seed == 0 {
			g.seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(g.seed))
	}
	return g
}

// Seed returns the seed of the default random source, or 0 when a custom source was supplied.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate allocates a width x height grid and carves a perfect maze into it.
func (g *Generator) Generate(width, height int) (*Maze, error) {
	m, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	g.Carve(m)
	return m, nil
}

// Carve runs the backtracker over a grid fresh from NewGrid.
// Every cell is visited exactly once, so exactly width*height-1 wall pairs are opened.
func (g *Generator) Carve(m *Maze) {
	start := Position{X: g.rng.Intn(m.width), Y: g.rng.Intn(m.height)}
	m.at(start).Walls |= Visited

	positions := stack.New[Position]()
	positions.Push(start)

	for positions.Size() > 0 {
		current := positions.Peek()
		neighbors := m.UnvisitedNeighbors(current)
		if len(neighbors) == 0 {
			positions.Pop()
			continue
		}

		next := neighbors[g.rng.Intn(len(neighbors))]
		m.openWall(current, next)
		m.at(next.Position).Walls |= Visited
		positions.Push(next.Position)
	}
}
