// Package snake implements a headless grid snake game
package snake

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/rayaq-siddiqui/snake-rl/environment"
)

// Rewards given by the game
const (
	FoodReward      = 10
	CollisionReward = -10
)

// Config describes the board of a Game
type Config struct {
	Width     int // Board width in pixels
	Height    int // Board height in pixels
	BlockSize int // Size of a single cell in pixels

	// An episode ends once the snake goes IdleFactor * len(snake)
	// frames without eating
	IdleFactor int
	Seed       uint64
}

// DefaultConfig returns the configuration of the reference board
func DefaultConfig() Config {
	return Config{
		Width:      640,
		Height:     480,
		BlockSize:  20,
		IdleFactor: 100,
		Seed:       1,
	}
}

// Validate checks that a Config describes a playable board
func (c Config) Validate() error {
	if c.BlockSize < 1 {
		return fmt.Errorf("validate: block size must be positive "+
			"\n\twant(>0) \n\thave(%v)", c.BlockSize)
	}
	if c.Width%c.BlockSize != 0 || c.Height%c.BlockSize != 0 {
		return fmt.Errorf("validate: board %vx%v is not a multiple of the "+
			"block size %v", c.Width, c.Height, c.BlockSize)
	}
	if c.Width/c.BlockSize < 4 || c.Height/c.BlockSize < 2 {
		return fmt.Errorf("validate: board %vx%v too small for a snake of "+
			"length 3", c.Width, c.Height)
	}
	if c.IdleFactor < 1 {
		return fmt.Errorf("validate: idle factor must be positive "+
			"\n\twant(>0) \n\thave(%v)", c.IdleFactor)
	}
	return nil
}

// Game implements environment.Environment. The snake starts with
// length 3 in the middle of the board heading right.
type Game struct {
	cfg     Config
	heading environment.Direction
	snake   []environment.Point // snake[0] is the head
	food    environment.Point
	score   int
	frame   int
	rng     *rand.Rand
}

// New creates a new Game ready to be stepped
func New(c Config) (*Game, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	g := &Game{
		cfg: c,
		rng: rand.New(rand.NewSource(c.Seed)),
	}
	g.Reset()
	return g, nil
}

// Reset starts a new episode
func (g *Game) Reset() {
	b := g.cfg.BlockSize
	head := environment.Point{
		X: (g.cfg.Width / 2 / b) * b,
		Y: (g.cfg.Height / 2 / b) * b,
	}

	g.heading = environment.Right
	g.snake = []environment.Point{head, head.Add(-b, 0), head.Add(-2*b, 0)}
	g.score = 0
	g.frame = 0
	g.placeFood()
}

// placeFood places the food uniformly at random on a free cell
func (g *Game) placeFood() {
	b := g.cfg.BlockSize
	occupied := make(map[environment.Point]bool, len(g.snake))
	for _, p := range g.snake {
		occupied[p] = true
	}

	free := make([]environment.Point, 0, (g.cfg.Width/b)*(g.cfg.Height/b))
	for y := 0; y < g.cfg.Height; y += b {
		for x := 0; x < g.cfg.Width; x += b {
			if p := (environment.Point{X: x, Y: y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}

	// A snake covering the whole board leaves the food where it was
	if len(free) == 0 {
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

// Step moves the snake one cell after turning according to the one-hot
// relative action
func (g *Game) Step(action mat.Vector) (int, bool, int) {
	if action.Len() != environment.NumActions {
		panic(fmt.Sprintf("step: invalid action length \n\twant(%v) "+
			"\n\thave(%v)", environment.NumActions, action.Len()))
	}
	g.frame++

	g.heading = g.heading.Turn(environment.ActionIndex(action))
	dx, dy := g.heading.Delta()
	head := g.Head().Add(dx*g.cfg.BlockSize, dy*g.cfg.BlockSize)
	g.snake = append([]environment.Point{head}, g.snake...)

	if g.IsCollision(head) || g.frame > g.cfg.IdleFactor*len(g.snake) {
		return CollisionReward, true, g.score
	}

	reward := 0
	if head == g.food {
		g.score++
		reward = FoodReward
		g.placeFood()
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	return reward, false, g.score
}

// IsCollision returns whether p lies outside the board or on the body
// of the snake
func (g *Game) IsCollision(p environment.Point) bool {
	if p.X < 0 || p.X > g.cfg.Width-g.cfg.BlockSize || p.Y < 0 ||
		p.Y > g.cfg.Height-g.cfg.BlockSize {
		return true
	}
	for _, body := range g.snake[1:] {
		if p == body {
			return true
		}
	}
	return false
}

// Head returns the position of the head of the snake
func (g *Game) Head() environment.Point {
	return g.snake[0]
}

// Heading returns the current direction of the snake
func (g *Game) Heading() environment.Direction {
	return g.heading
}

// Food returns the position of the food
func (g *Game) Food() environment.Point {
	return g.food
}

// BlockSize returns the size of a cell
func (g *Game) BlockSize() int {
	return g.cfg.BlockSize
}

// Score returns the score of the current episode
func (g *Game) Score() int {
	return g.score
}

// Snake returns a copy of the cells occupied by the snake, head first
func (g *Game) Snake() []environment.Point {
	out := make([]environment.Point, len(g.snake))
	copy(out, g.snake)
	return out
}
