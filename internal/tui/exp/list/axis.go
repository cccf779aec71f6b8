package list

// Orientation selects the direction the list scrolls in.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Axis names one of the two screen axes.
type Axis int

const (
	AxisY Axis = iota
	AxisX
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Size is a width and height in cells. Sizes are floating point so that the
// windowing math can carry fractional and NaN intermediate values.
type Size struct {
	Width, Height float64
}

// Along returns the size component for the given axis.
func (s Size) Along(a Axis) float64 {
	if a == AxisX {
		return s.Width
	}
	return s.Height
}

// Point is a position in cells.
type Point struct {
	X, Y float64
}

// Along returns the coordinate for the given axis.
func (p Point) Along(a Axis) float64 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// Rect is the box a rendered child occupies inside the content block.
type Rect struct {
	Point
	Size
}

// axisSet is the table of axis-dependent quantities selected once from the
// orientation. Every calculation in the package reads these fields instead of
// branching on the orientation.
type axisSet struct {
	// scroll is the axis the target scrolls along and the content block is
	// translated along.
	scroll Axis
	// cross is the axis children wrap along; items sharing a scroll-axis
	// coordinate form one line.
	cross Axis
}

func axesFor(o Orientation) axisSet {
	if o == Horizontal {
		return axisSet{scroll: AxisX, cross: AxisY}
	}
	return axisSet{scroll: AxisY, cross: AxisX}
}
