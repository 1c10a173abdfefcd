// Package environment outlines the interfaces and structs needed to
// implement concrete snake environments
package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NumActions is the number of actions available to the agent in any
// state. Actions are relative to the current heading.
const NumActions = 3

// Relative actions, used as indices into one-hot action vectors
const (
	TurnLeft = iota
	Straight
	TurnRight
)

// Point is a position on the board, in pixels. The y-axis grows
// downwards, as in screen coordinates.
type Point struct {
	X, Y int
}

// Add returns the point p translated by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// String implements the fmt.Stringer interface
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Direction is an absolute heading on the board
type Direction int

// Directions are enumerated clockwise
const (
	Right Direction = iota
	Down
	Left
	Up
)

// Clockwise returns the heading after a right turn
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// CounterClockwise returns the heading after a left turn
func (d Direction) CounterClockwise() Direction {
	return (d + 3) % 4
}

// Turn returns the heading after taking a relative action
func (d Direction) Turn(action int) Direction {
	switch action {
	case TurnLeft:
		return d.CounterClockwise()
	case TurnRight:
		return d.Clockwise()
	default:
		return d
	}
}

// Delta returns the unit offset of one step in direction d
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, -1
	}
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Up:
		return "Up"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Snapshot is the read-only view of an environment needed to encode
// its state
type Snapshot interface {
	Head() Point
	Heading() Direction
	Food() Point

	// BlockSize is the distance of a single step, i.e. one grid cell
	BlockSize() int

	// IsCollision returns whether the snake would collide at p
	IsCollision(p Point) bool
}

// Environment implements a simulated snake game
type Environment interface {
	Snapshot

	// Step takes a one-hot relative action and returns the reward,
	// whether the episode ended, and the current game score
	Step(action mat.Vector) (reward int, done bool, score int)

	// Reset starts a new episode
	Reset()
}

// ActionIndex returns the index of the hot entry of a one-hot action
// vector. If more than one entry is set, the first is returned.
func ActionIndex(action mat.Vector) int {
	for i := 0; i < action.Len(); i++ {
		if action.AtVec(i) != 0.0 {
			return i
		}
	}
	return -1
}
