package engine

import "fmt"

// Variant selects the shape of the kicker's action space.
type Variant string

const (
	VariantLine Variant = "1d"
	VariantGrid Variant = "2d"
)

const (
	lineLow  = 0
	lineHigh = 20
	gridLow  = -5
	gridHigh = 15
)

// Shot is the real coordinate a kicker aims at. Y is always zero in the 1-D variant.
type Shot struct {
	X    int
	Y    int
	grid bool
}

func (s Shot) String() string {
	if s.grid {
		return fmt.Sprintf("(%d, %d)", s.X, s.Y)
	}
	return fmt.Sprintf("%d", s.X)
}

// LineShot returns the 1-D shot at coordinate x.
func LineShot(x int) Shot {
	return Shot{X: x}
}

// GridShot returns the 2-D shot at (x, y).
func GridShot(x, y int) Shot {
	return Shot{X: x, Y: y, grid: true}
}

// ActionSpace maps action indices to shots. Actions are laid out row-major
// over (x, y), so argmax over the flat table matches the grid's unravelled order.
type ActionSpace struct {
	variant Variant
	xs      []int
	ys      []int
}

func NewActionSpace(v Variant) ActionSpace {
	switch v {
	case VariantGrid:
		return ActionSpace{variant: v, xs: intRange(gridLow, gridHigh), ys: intRange(gridLow, gridHigh)}
	default:
		return ActionSpace{variant: VariantLine, xs: intRange(lineLow, lineHigh), ys: []int{0}}
	}
}

func intRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

func (s ActionSpace) Variant() Variant {
	return s.variant
}

func (s ActionSpace) Len() int {
	return len(s.xs) * len(s.ys)
}

// Dims returns the table shape: one column in the 1-D variant.
func (s ActionSpace) Dims() (rows, cols int) {
	return len(s.xs), len(s.ys)
}

func (s ActionSpace) Shot(action int) Shot {
	cols := len(s.ys)
	x := s.xs[action/cols]
	if s.variant == VariantGrid {
		return GridShot(x, s.ys[action%cols])
	}
	return LineShot(x)
}

// Action is the inverse of Shot. Shots of the other variant are not members.
func (s ActionSpace) Action(shot Shot) (int, bool) {
	if shot.grid != (s.variant == VariantGrid) {
		return 0, false
	}
	xi := shot.X - s.xs[0]
	yi := shot.Y - s.ys[0]
	if xi < 0 || xi >= len(s.xs) || yi < 0 || yi >= len(s.ys) {
		return 0, false
	}
	return xi*len(s.ys) + yi, true
}

func (s ActionSpace) Shots() []Shot {
	shots := make([]Shot, s.Len())
	for a := range shots {
		shots[a] = s.Shot(a)
	}
	return shots
}

// InGoal reports whether a shot lands inside the goal mouth.
func (s ActionSpace) InGoal(shot Shot) bool {
	if s.variant == VariantGrid {
		return inGridGoal(float64(shot.X), float64(shot.Y))
	}
	return inLineGoal(float64(shot.X))
}
