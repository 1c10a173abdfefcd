// Package features implements the encoding of snake environments into
// fixed-length binary feature vectors
package features

import (
	"gonum.org/v1/gonum/mat"

	"github.com/rayaq-siddiqui/snake-rl/environment"
)

// Size is the number of features in an encoded state
const Size = 15

// Offsets into an encoded state
const (
	DangerStraight = iota
	DangerRight
	DangerLeft
	DangerBottomRight
	DangerBottomLeft
	DangerTopRight
	DangerTopLeft

	HeadingLeft
	HeadingRight
	HeadingUp
	HeadingDown

	FoodLeft
	FoodRight
	FoodUp
	FoodDown
)

var names = [Size]string{
	"danger straight", "danger right", "danger left",
	"danger bottom right", "danger bottom left", "danger top right",
	"danger top left",
	"heading left", "heading right", "heading up", "heading down",
	"food left", "food right", "food up", "food down",
}

// Names returns a description of each feature in an encoded state
func Names() []string {
	out := make([]string, Size)
	copy(out, names[:])
	return out
}

// frame is a unit offset expressed relative to the heading of the
// snake: forward steps along the heading and right steps along the
// heading rotated clockwise.
type frame struct {
	forward, right int
}

// dangers lists the cells checked for each danger flag, in the order
// of the danger offsets above. Bottom cells are one step behind the
// head, top cells one step ahead of it.
var dangers = [DangerTopLeft + 1]frame{
	DangerStraight:    {1, 0},
	DangerRight:       {0, 1},
	DangerLeft:        {0, -1},
	DangerBottomRight: {-1, 1},
	DangerBottomLeft:  {-1, -1},
	DangerTopRight:    {1, 1},
	DangerTopLeft:     {1, -1},
}

// cell returns the absolute point that is f away from head for a
// snake heading in direction d, with steps of size block.
func (f frame) cell(head environment.Point, d environment.Direction,
	block int) environment.Point {
	fx, fy := d.Delta()
	rx, ry := d.Clockwise().Delta()

	dx := f.forward*fx + f.right*rx
	dy := f.forward*fy + f.right*ry
	return head.Add(dx*block, dy*block)
}

// Encode encodes the snapshot of an environment into a state vector of
// Size binary features. Encode is pure: the same snapshot always
// produces the same state.
func Encode(s environment.Snapshot) *mat.VecDense {
	state := mat.NewVecDense(Size, nil)

	head := s.Head()
	heading := s.Heading()
	block := s.BlockSize()

	for i, f := range dangers {
		state.SetVec(i, indicator(s.IsCollision(f.cell(head, heading, block))))
	}

	state.SetVec(HeadingLeft, indicator(heading == environment.Left))
	state.SetVec(HeadingRight, indicator(heading == environment.Right))
	state.SetVec(HeadingUp, indicator(heading == environment.Up))
	state.SetVec(HeadingDown, indicator(heading == environment.Down))

	food := s.Food()
	state.SetVec(FoodLeft, indicator(food.X < head.X))
	state.SetVec(FoodRight, indicator(food.X > head.X))
	state.SetVec(FoodUp, indicator(food.Y < head.Y))
	state.SetVec(FoodDown, indicator(food.Y > head.Y))

	return state
}

func indicator(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
