package policy

// Schedule determines the value of ε given the number of games played
type Schedule interface {
	Epsilon(games int) float64
}

// Linear is a Schedule that starts at Start and decreases by one per
// game played. Linear is not clamped: once more than Start games have
// been played, ε is negative and the policy never explores.
type Linear struct {
	Start float64
}

// Epsilon implements the Schedule interface
func (l Linear) Epsilon(games int) float64 {
	return l.Start - float64(games)
}

// Constant is a Schedule that always returns the same ε
type Constant float64

// Epsilon implements the Schedule interface
func (c Constant) Epsilon(int) float64 {
	return float64(c)
}
