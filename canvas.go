package main

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"flowedit/routing"
)

// Layout holds the world metrics of a canvas, all in pixels.
type Layout struct {
	Grid       float64
	CellWidth  float64
	CellHeight float64
	NodeWidth  float64
	NodeHeight float64
	Snap       bool
}

type Node struct {
	ID       int
	Category routing.Category
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Text     string
	// Placed is false for nodes loaded without a position. Their edges
	// have no route until the node is placed.
	Placed bool
}

func (n *Node) Geometry() (routing.Geometry, bool) {
	g := routing.Geometry{
		CenterX:  n.X,
		CenterY:  n.Y,
		Width:    n.Width,
		Height:   n.Height,
		Category: n.Category,
	}
	return g, n.Placed
}

func (n *Node) Center() routing.Point {
	return routing.Point{X: n.X, Y: n.Y}
}

func (n *Node) State() NodeState {
	return NodeState{
		ID:       n.ID,
		Category: n.Category,
		X:        n.X,
		Y:        n.Y,
		Width:    n.Width,
		Height:   n.Height,
		Text:     n.Text,
		Placed:   n.Placed,
	}
}

func (n *Node) Lines() []string {
	return strings.Split(n.Text, "\n")
}

type Edge struct {
	ID     int
	FromID int
	ToID   int
	*routing.Edge
}

func (e *Edge) State() EdgeState {
	s := EdgeState{
		ID:            e.ID,
		FromID:        e.FromID,
		ToID:          e.ToID,
		FromSide:      e.FromSide,
		ToSide:        e.ToSide,
		Label:         e.Label,
		LabelPosition: e.LabelPosition,
	}
	if e.WrapMargin != nil {
		v := *e.WrapMargin
		s.WrapMargin = &v
	}
	return s
}

type Canvas struct {
	nodes      []*Node
	edges      []*Edge
	nextNodeID int
	nextEdgeID int
	router     *routing.Router
	layout     Layout
}

var (
	errSelfEdge    = errors.New("cannot connect a node to itself")
	errUnknownNode = errors.New("no such node")
)

func NewCanvas(router *routing.Router, layout Layout) *Canvas {
	return &Canvas{
		nextNodeID: 1,
		nextEdgeID: 1,
		router:     router,
		layout:     layout,
	}
}

func (c *Canvas) Router() *routing.Router {
	return c.router
}

func (c *Canvas) Layout() Layout {
	return c.layout
}

func (c *Canvas) Nodes() []*Node {
	return c.nodes
}

func (c *Canvas) Edges() []*Edge {
	return c.edges
}

func (c *Canvas) Empty() bool {
	return len(c.nodes) == 0 && len(c.edges) == 0
}

func (c *Canvas) Node(id int) *Node {
	for _, n := range c.nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (c *Canvas) Edge(id int) *Edge {
	for _, e := range c.edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Snap moves a node center so that the node's top left corner lands on the
// grid.
func (c *Canvas) Snap(x, y, w, h float64) (float64, float64) {
	if !c.layout.Snap || c.layout.Grid <= 0 {
		return x, y
	}
	g := c.layout.Grid
	x = math.Floor((x+g/2-w/2)/g)*g + w/2
	y = math.Floor((y+g/2-h/2)/g)*g + h/2
	return x, y
}

// AddNode creates a node of the given category centered near (x, y) and
// returns its id.
func (c *Canvas) AddNode(category routing.Category, x, y float64, text string) int {
	w, h := c.layout.NodeWidth, c.layout.NodeHeight
	x, y = c.Snap(x, y, w, h)
	if text == "" {
		text = defaultNodeText[category]
	}
	return c.AddNodeWithState(NodeState{
		ID:       c.nextNodeID,
		Category: category,
		X:        x,
		Y:        y,
		Width:    w,
		Height:   h,
		Text:     text,
		Placed:   true,
	})
}

// AddNodeWithState inserts a node with a known id, used by undo and loading.
func (c *Canvas) AddNodeWithState(s NodeState) int {
	if s.ID <= 0 {
		s.ID = c.nextNodeID
	}
	if s.ID >= c.nextNodeID {
		c.nextNodeID = s.ID + 1
	}
	n := &Node{
		ID:       s.ID,
		Category: s.Category,
		X:        s.X,
		Y:        s.Y,
		Width:    s.Width,
		Height:   s.Height,
		Text:     s.Text,
		Placed:   s.Placed,
	}
	c.nodes = append(c.nodes, n)
	c.rerouteNode(n.ID)
	return n.ID
}

// DeleteNode removes a node together with every edge touching it.
func (c *Canvas) DeleteNode(id int) DeleteNodeData {
	var data DeleteNodeData
	for i, n := range c.nodes {
		if n.ID == id {
			data.Node = n.State()
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			break
		}
	}
	kept := c.edges[:0]
	for _, e := range c.edges {
		if e.FromID == id || e.ToID == id {
			data.Edges = append(data.Edges, e.State())
			continue
		}
		kept = append(kept, e)
	}
	c.edges = kept
	return data
}

func (c *Canvas) SetNodeText(id int, text string) {
	if n := c.Node(id); n != nil {
		n.Text = text
	}
}

// MoveNode shifts a node by (dx, dy) pixels and re-routes its edges.
func (c *Canvas) MoveNode(id int, dx, dy float64) {
	n := c.Node(id)
	if n == nil {
		return
	}
	n.X += dx
	n.Y += dy
	c.rerouteNode(id)
}

// PlaceNode centers a node at (x, y), snapping it to the grid.
func (c *Canvas) PlaceNode(id int, x, y float64) {
	n := c.Node(id)
	if n == nil {
		return
	}
	n.X, n.Y = c.Snap(x, y, n.Width, n.Height)
	n.Placed = true
	c.rerouteNode(id)
}

// ResizeNode grows or shrinks a node around its center. Sizes never drop
// below a few terminal cells.
func (c *Canvas) ResizeNode(id int, dw, dh float64) {
	n := c.Node(id)
	if n == nil {
		return
	}
	n.Width = math.Max(n.Width+dw, minNodeCols*c.layout.CellWidth)
	n.Height = math.Max(n.Height+dh, minNodeRows*c.layout.CellHeight)
	c.rerouteNode(id)
}

// SetNodeGeometry restores position and size from a snapshot.
func (c *Canvas) SetNodeGeometry(s NodeState) {
	n := c.Node(s.ID)
	if n == nil {
		return
	}
	n.X, n.Y = s.X, s.Y
	n.Width, n.Height = s.Width, s.Height
	n.Placed = s.Placed
	c.rerouteNode(s.ID)
}

func (c *Canvas) rerouteNode(id int) {
	for _, e := range c.edges {
		if e.FromID == id || e.ToID == id {
			c.router.ComputeRoute(e.Edge)
		}
	}
}

// AddEdge connects two nodes. Edges leaving a decision node are labelled
// Yes, then No, then ?.
func (c *Canvas) AddEdge(fromID, toID int) (int, error) {
	if fromID == toID {
		return 0, errSelfEdge
	}
	from, to := c.Node(fromID), c.Node(toID)
	if from == nil || to == nil {
		return 0, errUnknownNode
	}
	label := ""
	if from.Category == routing.CategoryDecision {
		label = c.nextDecisionLabel(fromID)
	}
	return c.RestoreEdge(EdgeState{
		FromID:   fromID,
		ToID:     toID,
		FromSide: routing.Auto,
		ToSide:   routing.Auto,
		Label:    label,
	})
}

func (c *Canvas) nextDecisionLabel(fromID int) string {
	used := map[string]bool{}
	for _, e := range c.edges {
		if e.FromID == fromID {
			used[e.Label] = true
		}
	}
	switch {
	case !used["Yes"]:
		return "Yes"
	case !used["No"]:
		return "No"
	}
	return "?"
}

// RestoreEdge inserts an edge from a snapshot and routes it.
func (c *Canvas) RestoreEdge(s EdgeState) (int, error) {
	from, to := c.Node(s.FromID), c.Node(s.ToID)
	if from == nil || to == nil {
		return 0, fmt.Errorf("edge %d->%d: %w", s.FromID, s.ToID, errUnknownNode)
	}
	if s.ID <= 0 {
		s.ID = c.nextEdgeID
	}
	if s.ID >= c.nextEdgeID {
		c.nextEdgeID = s.ID + 1
	}
	e := &Edge{
		ID:     s.ID,
		FromID: s.FromID,
		ToID:   s.ToID,
		Edge:   routing.NewEdge(from, to, s.Label),
	}
	c.applyEdgeState(e, s)
	c.edges = append(c.edges, e)
	return e.ID, nil
}

func (c *Canvas) applyEdgeState(e *Edge, s EdgeState) {
	e.FromSide, e.ToSide = s.FromSide, s.ToSide
	if e.FromSide == routing.Unset {
		e.FromSide = routing.Auto
	}
	if e.ToSide == routing.Unset {
		e.ToSide = routing.Auto
	}
	e.WrapMargin = nil
	if s.WrapMargin != nil {
		e.SetWrapMargin(*s.WrapMargin)
	}
	e.Label = s.Label
	e.LabelPosition = s.LabelPosition
	if e.LabelPosition == "" {
		e.LabelPosition = routing.LabelAuto
	}
	c.router.ComputeRoute(e.Edge)
}

// SetEdgeState overwrites the routing state of an existing edge.
func (c *Canvas) SetEdgeState(s EdgeState) {
	if e := c.Edge(s.ID); e != nil {
		c.applyEdgeState(e, s)
	}
}

func (c *Canvas) RemoveEdge(id int) (EdgeState, bool) {
	for i, e := range c.edges {
		if e.ID == id {
			c.edges = append(c.edges[:i], c.edges[i+1:]...)
			return e.State(), true
		}
	}
	return EdgeState{}, false
}

func (c *Canvas) SetEdgeLabel(id int, label string) {
	if e := c.Edge(id); e != nil {
		e.Label = label
	}
}

// RotateSides, ChangeMargin and RotateLabel adjust the selected edge and
// report its state before and after so the change can be undone.

func (c *Canvas) RotateSides(id int, forward bool) (RerouteData, bool) {
	return c.adjustEdge(id, func(e *routing.Edge) {
		c.router.RotateConnectionSides(e, forward)
	})
}

func (c *Canvas) ChangeMargin(id int, increase bool) (RerouteData, bool) {
	return c.adjustEdge(id, func(e *routing.Edge) {
		c.router.ChangeWrapMargin(e, increase)
	})
}

func (c *Canvas) RotateLabel(id int, forward bool) (RerouteData, bool) {
	return c.adjustEdge(id, func(e *routing.Edge) {
		c.router.RotateLabelPosition(e, forward)
	})
}

func (c *Canvas) adjustEdge(id int, fn func(*routing.Edge)) (RerouteData, bool) {
	e := c.Edge(id)
	if e == nil {
		return RerouteData{}, false
	}
	before := e.State()
	fn(e.Edge)
	after := e.State()
	return RerouteData{Before: before, After: after}, !edgeStatesEqual(before, after)
}

func edgeStatesEqual(a, b EdgeState) bool {
	if (a.WrapMargin == nil) != (b.WrapMargin == nil) {
		return false
	}
	if a.WrapMargin != nil && *a.WrapMargin != *b.WrapMargin {
		return false
	}
	a.WrapMargin, b.WrapMargin = nil, nil
	return a == b
}

// NodeAt returns the id of the topmost node containing the world point, or
// -1.
func (c *Canvas) NodeAt(x, y float64) int {
	for i := len(c.nodes) - 1; i >= 0; i-- {
		n := c.nodes[i]
		if !n.Placed {
			continue
		}
		if math.Abs(x-n.X) <= n.Width/2 && math.Abs(y-n.Y) <= n.Height/2 {
			return n.ID
		}
	}
	return -1
}

// Unplaced lists nodes waiting for a position.
func (c *Canvas) Unplaced() []int {
	var ids []int
	for _, n := range c.nodes {
		if !n.Placed {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Clone deep copies the canvas. Routes are recomputed on the copy.
func (c *Canvas) Clone() (*Canvas, error) {
	out := NewCanvas(c.router, c.layout)
	for _, n := range c.nodes {
		out.AddNodeWithState(n.State())
	}
	for _, e := range c.edges {
		if _, err := out.RestoreEdge(e.State()); err != nil {
			return nil, fmt.Errorf("failed to copy edge %d: %w", e.ID, err)
		}
	}
	out.nextNodeID = c.nextNodeID
	out.nextEdgeID = c.nextEdgeID
	return out, nil
}

// Bounds is the world rectangle covering every placed node and route.
func (c *Canvas) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
		ok = true
	}
	for _, n := range c.nodes {
		if !n.Placed {
			continue
		}
		grow(n.X-n.Width/2, n.Y-n.Height/2)
		grow(n.X+n.Width/2, n.Y+n.Height/2)
	}
	for _, e := range c.edges {
		for _, p := range e.Route().Points {
			grow(p.X, p.Y)
		}
	}
	return minX, minY, maxX, maxY, ok
}
