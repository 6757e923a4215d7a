package routing

import "cdr.dev/slog"

// Route is an ordered polyline from the source boundary to the target
// boundary. Consecutive points share exactly one coordinate, except for the
// Direct fallback line.
type Route struct {
	Points []Point
	Case   Case
}

func (r Route) Empty() bool {
	return len(r.Points) == 0
}

// Segments is the number of line segments in the route.
func (r Route) Segments() int {
	if len(r.Points) < 2 {
		return 0
	}
	return len(r.Points) - 1
}

// Coords flattens the route to x0, y0, x1, y1, ...
func (r Route) Coords() []float64 {
	out := make([]float64, 0, len(r.Points)*2)
	for _, p := range r.Points {
		out = append(out, p.X, p.Y)
	}
	return out
}

func (r Route) Clone() Route {
	r.Points = append([]Point(nil), r.Points...)
	return r
}

// Edge is a connector between two nodes. It references its endpoints but does
// not own them; several edges may share a node.
type Edge struct {
	From GeometryProvider
	To   GeometryProvider

	FromSide Side
	ToSide   Side
	// WrapMargin overrides the default offset of the detour segment. Nil
	// means the default is derived from the node layout.
	WrapMargin *float64

	Label         string
	LabelPosition LabelPosition

	route Route
}

func NewEdge(from, to GeometryProvider, label string) *Edge {
	return &Edge{
		From:          from,
		To:            to,
		FromSide:      Auto,
		ToSide:        Auto,
		Label:         label,
		LabelPosition: LabelAuto,
	}
}

// Route returns the route computed by the last ComputeRoute call.
func (e *Edge) Route() Route {
	return e.route
}

func (e *Edge) Sides() SidePair {
	return SidePair{e.FromSide, e.ToSide}
}

func (e *Edge) SetWrapMargin(v float64) {
	e.WrapMargin = &v
}

// Clone copies the routing state of e. The endpoints are shared.
func (e *Edge) Clone() *Edge {
	c := *e
	if e.WrapMargin != nil {
		c.SetWrapMargin(*e.WrapMargin)
	}
	c.route = e.route.Clone()
	return &c
}

// ComputeRoute re-derives the route of e from the current node geometry and
// the stored sides and margin, and stores it on the edge. The route is empty
// while either node is unresolved.
func (r *Router) ComputeRoute(e *Edge) Route {
	from, okFrom := resolve(e.From)
	to, okTo := resolve(e.To)
	if !okFrom || !okTo {
		r.debug("geometry unresolved, skipping route",
			slog.F("from_resolved", okFrom),
			slog.F("to_resolved", okTo),
		)
		e.route = Route{}
		return e.route
	}

	c := r.Classify(from, to, e.FromSide, e.ToSide)
	var pts []Point
	if !c.Direct {
		pts = r.SidePath(from, to, c.Pair.From, c.Pair.To, e.WrapMargin)
	}
	if len(pts) == 0 {
		c = Case{Direct: true}
		pts = DirectPath(from, to)
	}
	e.route = Route{Points: pts, Case: c}
	return e.route
}

// LabelPlacement places the label of e against its current route.
func (r *Router) LabelPlacement(e *Edge) LabelPlacement {
	return placeLabel(e.route, e.Label, e.LabelPosition)
}
