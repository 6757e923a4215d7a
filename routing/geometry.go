// Package routing computes orthogonal connectors between flowchart nodes.
//
// Given the bounding geometry of two nodes it picks the sides the connector
// attaches to, synthesizes a 1 to 4 segment axis-aligned polyline between the
// side midpoints and places the connector label next to it. Manual overrides
// (explicit sides, a wrap margin for the detour segment and a label position)
// are stored on the Edge and survive re-routing when nodes move.
package routing

import "math"

type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

type Category string

const (
	CategoryProcess    Category = "process"
	CategoryDecision   Category = "decision"
	CategoryTerminator Category = "terminator"
	CategoryIO         Category = "io"
)

// Categories lists the node categories in toolbar order.
var Categories = []Category{CategoryTerminator, CategoryProcess, CategoryDecision, CategoryIO}

func (c Category) Valid() bool {
	switch c {
	case CategoryProcess, CategoryDecision, CategoryTerminator, CategoryIO:
		return true
	}
	return false
}

// Geometry is the bounding box of a node, described by its center and size.
type Geometry struct {
	CenterX  float64
	CenterY  float64
	Width    float64
	Height   float64
	Category Category
}

// Resolved reports whether the geometry can be routed against.
func (g Geometry) Resolved() bool {
	if math.IsNaN(g.CenterX) || math.IsNaN(g.CenterY) {
		return false
	}
	return g.Width > 0 && g.Height > 0
}

func (g Geometry) Center() Point { return Point{g.CenterX, g.CenterY} }
func (g Geometry) Top() Point    { return Point{g.CenterX, g.CenterY - g.Height/2} }
func (g Geometry) Bottom() Point { return Point{g.CenterX, g.CenterY + g.Height/2} }
func (g Geometry) Left() Point   { return Point{g.CenterX - g.Width/2, g.CenterY} }
func (g Geometry) Right() Point  { return Point{g.CenterX + g.Width/2, g.CenterY} }

// Anchor returns the midpoint of side s. Auto and Unset resolve to the center.
func (g Geometry) Anchor(s Side) Point {
	switch s {
	case Top:
		return g.Top()
	case Bottom:
		return g.Bottom()
	case Left:
		return g.Left()
	case Right:
		return g.Right()
	}
	return g.Center()
}

// extent is the half size of the box measured along axis v.
func (g Geometry) extent(v Point) float64 {
	return math.Abs(v.X)*g.Width/2 + math.Abs(v.Y)*g.Height/2
}

// GeometryProvider is implemented by anything an Edge can attach to.
// The boolean result is false while the node has no position yet.
type GeometryProvider interface {
	Geometry() (Geometry, bool)
}

// Fixed is a GeometryProvider for a node that never moves.
type Fixed Geometry

func (f Fixed) Geometry() (Geometry, bool) {
	g := Geometry(f)
	return g, g.Resolved()
}

func resolve(p GeometryProvider) (Geometry, bool) {
	if p == nil {
		return Geometry{}, false
	}
	g, ok := p.Geometry()
	if !ok || !g.Resolved() {
		return Geometry{}, false
	}
	return g, true
}
