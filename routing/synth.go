package routing

import "math"

type pathFamily int

const (
	// familyFacing pairs sides that look at each other (bottom-top, right-left).
	familyFacing pathFamily = iota
	// familyPerpendicular pairs a vertical side with a horizontal one.
	familyPerpendicular
	// familyDetour pairs a side with the same side of the other node.
	familyDetour
)

func (f pathFamily) String() string {
	switch f {
	case familyFacing:
		return "facing"
	case familyPerpendicular:
		return "perpendicular"
	case familyDetour:
		return "detour"
	}
	return "unknown"
}

var pathRules = map[SidePair]pathFamily{
	{Bottom, Top}:    familyFacing,
	{Bottom, Left}:   familyPerpendicular,
	{Bottom, Right}:  familyPerpendicular,
	{Bottom, Bottom}: familyDetour,

	{Right, Left}:   familyFacing,
	{Right, Top}:    familyPerpendicular,
	{Right, Bottom}: familyPerpendicular,
	{Right, Right}:  familyDetour,

	{Left, Right}:  familyFacing,
	{Left, Top}:    familyPerpendicular,
	{Left, Bottom}: familyPerpendicular,
	{Left, Left}:   familyDetour,

	{Top, Bottom}: familyFacing,
	{Top, Left}:   familyPerpendicular,
	{Top, Right}:  familyPerpendicular,
	{Top, Top}:    familyDetour,
}

// SidePath builds the polyline leaving from through fromSide and entering to
// through toSide. It returns nil when the pair does not fit the current
// layout, callers fall back to another rule in that case.
func (r *Router) SidePath(from, to Geometry, fromSide, toSide Side, margin *float64) []Point {
	family, ok := pathRules[SidePair{fromSide, toSide}]
	if !ok || !from.Resolved() || !to.Resolved() {
		return nil
	}

	exit := fromSide.outward()
	entry := toSide.outward().Scale(-1)
	p := from.Anchor(fromSide)
	q := to.Anchor(toSide)

	switch family {
	case familyFacing:
		return r.facingPath(p, q, exit, margin)
	case familyPerpendicular:
		return r.perpendicularPath(from, to, p, q, exit, entry, margin)
	default:
		return r.detourPath(from, to, p, q, exit, margin)
	}
}

func (r *Router) facingPath(p, q, exit Point, margin *float64) []Point {
	ahead := along(q, exit) - along(p, exit)
	if ahead <= 0 {
		return nil
	}
	if along(p, lateral(exit)) == along(q, lateral(exit)) {
		return []Point{p, q}
	}

	t := ahead / 2
	if margin != nil && ahead > 2*r.Step() {
		t = clamp(*margin, r.Step(), ahead-r.Step())
	}
	mid := along(p, exit) + t
	return []Point{p, place(p, exit, mid), place(q, exit, mid), q}
}

func (r *Router) perpendicularPath(from, to Geometry, p, q, exit, entry Point, margin *float64) []Point {
	ahead := along(q, exit) - along(p, exit)
	if ahead <= 0 {
		return nil
	}
	if along(q, entry)-along(p, entry) > 0 {
		return []Point{p, place(p, exit, along(q, exit)), q}
	}

	// The elbow would enter the target backwards: cross in front of the
	// target, overhang its entry side and come back in.
	gap := along(to.Center(), exit) - to.extent(exit) - along(p, exit)
	if gap <= 0 {
		return nil
	}
	cross := along(p, exit) + gap/2
	overhang := r.overhang(from, entry, margin)
	side := along(q, entry) - overhang

	a := place(p, exit, cross)
	b := place(a, entry, side)
	c := place(q, entry, side)
	return []Point{p, a, b, c, q}
}

func (r *Router) detourPath(from, to Geometry, p, q, exit Point, margin *float64) []Point {
	l := lateral(exit)
	fromLo, fromHi := along(from.Center(), l)-from.extent(l), along(from.Center(), l)+from.extent(l)
	toLo, toHi := along(to.Center(), l)-to.extent(l), along(to.Center(), l)+to.extent(l)
	if fromHi > toLo && toHi > fromLo {
		return nil
	}

	outer := math.Max(along(p, exit), along(q, exit))
	mid := outer + r.overhang(from, exit, margin)
	return []Point{p, place(p, exit, mid), place(q, exit, mid), q}
}

// overhang is how far a detour segment sits outside the nodes along axis.
func (r *Router) overhang(from Geometry, axis Point, margin *float64) float64 {
	if margin != nil {
		return clamp(*margin, r.Step(), maxMarginSteps*r.Step())
	}
	if axis.X != 0 {
		return from.Width * 0.3
	}
	return from.Height * 0.5
}

// DirectPath is the center to center fallback line.
func DirectPath(from, to Geometry) []Point {
	return []Point{from.Center(), to.Center()}
}

// along projects pt on the axis-aligned unit vector axis.
func along(pt, axis Point) float64 {
	return pt.X*axis.X + pt.Y*axis.Y
}

// place moves pt along axis so that along(pt, axis) == v, leaving the other
// coordinate untouched.
func place(pt, axis Point, v float64) Point {
	if axis.X != 0 {
		pt.X = v * axis.X
	} else {
		pt.Y = v * axis.Y
	}
	return pt
}

func lateral(axis Point) Point {
	return Point{math.Abs(axis.Y), math.Abs(axis.X)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
