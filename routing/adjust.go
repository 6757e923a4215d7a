package routing

import (
	"math"

	"cdr.dev/slog"
)

// rotationCycle is the order RotateConnectionSides walks. Entry 0 is the
// automatic state. Each side first tries the pairs that keep the connector
// heading away from the source before the ones that double back.
var rotationCycle = []SidePair{
	{Auto, Auto},
	{Bottom, Top},
	{Bottom, Left},
	{Bottom, Right},
	{Bottom, Bottom},
	{Right, Left},
	{Right, Top},
	{Right, Bottom},
	{Right, Right},
	{Left, Right},
	{Left, Top},
	{Left, Bottom},
	{Left, Left},
	{Top, Bottom},
	{Top, Left},
	{Top, Right},
	{Top, Top},
}

func rotationIndex(p SidePair) int {
	if !p.From.Explicit() || !p.To.Explicit() {
		return 0
	}
	for i, v := range rotationCycle {
		if v == p {
			return i
		}
	}
	return 0
}

// RotateConnectionSides moves the side pair of e one step along the rotation
// cycle, skipping pairs that cannot be routed for the current layout. Any
// stored wrap margin is dropped since it belonged to the old shape.
func (r *Router) RotateConnectionSides(e *Edge, forward bool) {
	n := len(rotationCycle)
	idx := rotationIndex(e.Sides())
	for range rotationCycle {
		if forward {
			idx = (idx + 1) % n
		} else {
			idx = (idx - 1 + n) % n
		}
		next := rotationCycle[idx]
		e.FromSide, e.ToSide = next.From, next.To
		e.WrapMargin = nil

		route := r.ComputeRoute(e)
		if idx == 0 {
			return
		}
		if from, ok := resolve(e.From); ok && !route.Empty() && !route.Points[0].Equal(from.Center()) {
			return
		}
	}
	r.debug("no routable side pair found", slog.F("sides", e.Sides().String()))
}

// ChangeWrapMargin slides the middle segment of a 3 or 4 segment route by one
// step. A middle segment between the endpoints keeps a step away from both of
// them, one outside the endpoints stays within 1 to 50 steps of them.
func (r *Router) ChangeWrapMargin(e *Edge, increase bool) {
	pts := e.route.Points
	var i int
	switch len(pts) {
	case 4:
		i = 1
	case 5:
		i = 2
	default:
		r.debug("wrap margin needs a 3 or 4 segment route", slog.F("points", len(pts)))
		return
	}

	a, b := pts[i], pts[i+1]
	var coord func(Point) float64
	var set func(*Point, float64)
	switch {
	case a.X == b.X && a.Y != b.Y:
		coord = func(p Point) float64 { return p.X }
		set = func(p *Point, v float64) { p.X = v }
	case a.Y == b.Y && a.X != b.X:
		coord = func(p Point) float64 { return p.Y }
		set = func(p *Point, v float64) { p.Y = v }
	default:
		return
	}

	step := r.Step()
	delta := step
	if !increase {
		delta = -step
	}

	start, end := coord(pts[0]), coord(pts[len(pts)-1])
	lo, hi := math.Min(start, end), math.Max(start, end)
	c := coord(a)

	var margin, moved float64
	switch {
	case c > lo && c < hi:
		span := hi - lo
		if span <= 2*step {
			r.debug("gap too narrow to move the middle segment", slog.F("span", span))
			return
		}
		margin = clamp(math.Abs(c-start)+delta, step, span-step)
		if end > start {
			moved = start + margin
		} else {
			moved = start - margin
		}
	case c >= hi:
		margin = clamp(c-hi+delta, step, maxMarginSteps*step)
		moved = hi + margin
	default:
		margin = clamp(lo-c+delta, step, maxMarginSteps*step)
		moved = lo - margin
	}

	out := append([]Point(nil), pts...)
	set(&out[i], moved)
	set(&out[i+1], moved)
	e.route.Points = out
	e.SetWrapMargin(margin)
}

// RotateLabelPosition steps the label override of e through LabelPositions,
// limited to the vertices the current route has. Forward moves towards the
// end of the route.
func (r *Router) RotateLabelPosition(e *Edge, forward bool) {
	n := LabelCycleLength(len(e.route.Points))
	idx := e.LabelPosition.index()
	if idx >= n {
		idx = 0
	}
	if forward {
		idx = (idx + 1) % n
	} else {
		idx = (idx - 1 + n) % n
	}
	e.LabelPosition = LabelPositions[idx]
}
