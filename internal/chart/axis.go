package chart

// Orient is the side of the plot an axis is drawn on.
type Orient int

const (
	Bottom Orient = iota
	Left
)

// Axis geometry, matching the usual SVG axis layout.
const (
	tickSize    = 6
	tickPadding = 3
	// crispOffset aligns 1px strokes to the pixel grid.
	crispOffset = 0.5
)

// Tick is one labelled tick mark, positioned in pixels along the axis.
type Tick struct {
	Value float64
	Pos   float64
	Label string
}

// Axis is a drawn axis: its placement, domain line and ticks.
type Axis struct {
	Orient     Orient
	Transform  string
	DomainPath string
	Ticks      []Tick
}

// NewAxis lays out an axis for scale. Bottom axes sit at the end of the
// vertical range, left axes at the start of the horizontal range.
func NewAxis(orient Orient, s Linear, count int) Axis {
	values := s.Ticks(count)
	format := TickFormatter(s.TickStep(count))

	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pos: s.Map(v) + crispOffset, Label: format(v)}
	}

	r0, r1 := s.R0+crispOffset, s.R1+crispOffset
	a := Axis{Orient: orient, Ticks: ticks}
	switch orient {
	case Left:
		a.Transform = translate(RangeStart, 0)
		a.DomainPath = "M" + coord(-tickSize) + "," + coord(r0) +
			"H" + coord(crispOffset) + "V" + coord(r1) + "H" + coord(-tickSize)
	default:
		a.Transform = translate(0, RangeEnd)
		a.DomainPath = "M" + coord(r0) + "," + coord(tickSize) +
			"V" + coord(crispOffset) + "H" + coord(r1) + "V" + coord(tickSize)
	}
	return a
}

// tickTransform positions a tick group along the axis.
func (a Axis) tickTransform(t Tick) string {
	if a.Orient == Left {
		return translate(0, t.Pos)
	}
	return translate(t.Pos, 0)
}

// textAnchor is the label alignment for the axis.
func (a Axis) textAnchor() string {
	if a.Orient == Left {
		return "end"
	}
	return "middle"
}
