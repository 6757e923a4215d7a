package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRoute(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		from, to GeometryProvider
		fromSide Side
		toSide   Side

		exp     []Point
		expCase string
		label   LabelPlacement
	}{
		{
			name:    "vertical_drop",
			from:    box(100, 100),
			to:      box(100, 300),
			exp:     pts(100, 130, 100, 270),
			expCase: "bottom-top",
			label:   LabelPlacement{Anchor: AnchorNW, Justify: JustifyLeft, At: Point{106, 138}, Valid: true},
		},
		{
			name:    "decision_branch_right",
			from:    diamond(200, 100),
			to:      box(400, 100),
			exp:     pts(260, 100, 340, 100),
			expCase: "right-left",
			label:   LabelPlacement{Anchor: AnchorSW, Justify: JustifyLeft, At: Point{268, 100}, Valid: true},
		},
		{
			name:    "close_below_enters_from_side",
			from:    box(100, 100),
			to:      box(300, 180),
			exp:     pts(100, 130, 100, 180, 240, 180),
			expCase: "bottom-left",
			label:   LabelPlacement{Anchor: AnchorNW, Justify: JustifyLeft, At: Point{106, 138}, Valid: true},
		},
		{
			name:    "level_to_the_right",
			from:    box(100, 100),
			to:      box(400, 120),
			exp:     pts(160, 100, 250, 100, 250, 120, 340, 120),
			expCase: "right-left",
			label:   LabelPlacement{Anchor: AnchorSW, Justify: JustifyLeft, At: Point{168, 100}, Valid: true},
		},
		{
			name:    "back_edge_wraps_left",
			from:    box(100, 300),
			to:      box(100, 100),
			exp:     pts(40, 300, 4, 300, 4, 100, 40, 100),
			expCase: "left-left",
			label:   LabelPlacement{Anchor: AnchorSE, Justify: JustifyLeft, At: Point{32, 300}, Valid: true},
		},
		{
			name:    "overlapping_nodes_fall_back_to_direct",
			from:    box(100, 100),
			to:      box(110, 110),
			exp:     pts(100, 100, 110, 110),
			expCase: "direct",
			label:   LabelPlacement{Anchor: AnchorCenter, Justify: JustifyCenter, At: Point{105, 97}, Valid: true},
		},
		{
			name:     "explicit_pair_that_cannot_route",
			from:     box(100, 100),
			to:       box(100, 300),
			fromSide: Right,
			toSide:   Left,
			exp:      pts(100, 100, 100, 300),
			expCase:  "direct",
			label:    LabelPlacement{Anchor: AnchorCenter, Justify: JustifyCenter, At: Point{100, 192}, Valid: true},
		},
		{
			name:     "explicit_top_to_bottom",
			from:     box(100, 300),
			to:       box(100, 100),
			fromSide: Top,
			toSide:   Bottom,
			exp:      pts(100, 270, 100, 130),
			expCase:  "top-bottom",
			label:    LabelPlacement{Anchor: AnchorSW, Justify: JustifyLeft, At: Point{106, 262}, Valid: true},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRouter(t)
			e := NewEdge(tc.from, tc.to, "go")
			if tc.fromSide != Unset {
				e.FromSide, e.ToSide = tc.fromSide, tc.toSide
			}

			route := r.ComputeRoute(e)
			assert.Equal(t, tc.exp, route.Points)
			assert.Equal(t, tc.expCase, route.Case.String())
			assert.Equal(t, route, e.Route())

			tc.label.Text = "go"
			assert.Equal(t, tc.label, r.LabelPlacement(e))
		})
	}
}

func TestComputeRouteUnresolved(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	e := NewEdge(box(100, 100), unplaced{}, "Yes")
	e.FromSide, e.ToSide = Bottom, Top

	route := r.ComputeRoute(e)
	assert.True(t, route.Empty())
	assert.Empty(t, route.Coords())
	assert.Equal(t, "none", route.Case.String())

	label := r.LabelPlacement(e)
	assert.False(t, label.Valid)
	assert.Equal(t, "Yes", label.Text)

	// Operations on an unrouted edge are no-ops rather than failures.
	r.ChangeWrapMargin(e, true)
	assert.Nil(t, e.WrapMargin)
	r.RotateLabelPosition(e, true)
	assert.Equal(t, LabelAuto, e.LabelPosition)

	e.From = nil
	assert.True(t, r.ComputeRoute(e).Empty())
}

func TestComputeRouteIsIdempotent(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	e := NewEdge(box(100, 100), box(400, 250), "")
	first := r.ComputeRoute(e).Clone()
	second := r.ComputeRoute(e)
	require.Equal(t, first, second)
	assert.Equal(t, []float64{100, 130, 100, 175, 400, 175, 400, 220}, second.Coords())
}

func TestComputeRouteFollowsMovedNode(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	target := &movable{g: Geometry(box(100, 300))}
	e := NewEdge(box(100, 100), target, "")
	e.FromSide, e.ToSide = Bottom, Top
	e.SetWrapMargin(30)

	assert.Equal(t, pts(100, 130, 100, 270), r.ComputeRoute(e).Points)

	target.g.CenterX = 300
	assert.Equal(t, pts(100, 130, 100, 160, 300, 160, 300, 270), r.ComputeRoute(e).Points)
	assert.Equal(t, Bottom, e.FromSide)
	assert.Equal(t, 30.0, *e.WrapMargin)
}

func TestEdgeClone(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	e := NewEdge(box(100, 100), box(300, 300), "x")
	e.SetWrapMargin(20)
	r.ComputeRoute(e)

	c := e.Clone()
	*c.WrapMargin = 40
	c.route.Points[0].X = -1

	assert.Equal(t, 20.0, *e.WrapMargin)
	assert.Equal(t, 100.0, e.Route().Points[0].X)
}

type movable struct {
	g Geometry
}

func (m *movable) Geometry() (Geometry, bool) {
	return m.g, m.g.Resolved()
}
