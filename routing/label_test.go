package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelCycleLength(t *testing.T) {
	t.Parallel()

	for points, exp := range map[int]int{0: 1, 1: 1, 2: 9, 3: 13, 4: 17, 5: 21, 6: 1} {
		assert.Equal(t, exp, LabelCycleLength(points), "points=%d", points)
	}
	assert.Len(t, LabelPositions, LabelCycleLength(5))
}

func TestLabelPositionValid(t *testing.T) {
	t.Parallel()

	for _, lp := range LabelPositions {
		assert.True(t, lp.Valid(), lp)
	}
	assert.True(t, LabelPosition("").Valid())
	for _, lp := range []LabelPosition{"p5se", "p0s", "p0xx", "q0se", "pxse", "p0sew"} {
		assert.False(t, lp.Valid(), lp)
	}
}

func TestAnchorFraction(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		anchor Anchor
		fx, fy float64
	}{
		{AnchorCenter, 0.5, 0.5},
		{AnchorN, 0.5, 0},
		{AnchorNE, 1, 0},
		{AnchorE, 1, 0.5},
		{AnchorSE, 1, 1},
		{AnchorS, 0.5, 1},
		{AnchorSW, 0, 1},
		{AnchorW, 0, 0.5},
		{AnchorNW, 0, 0},
	}
	for _, tc := range testCases {
		fx, fy := tc.anchor.Fraction()
		assert.Equal(t, tc.fx, fx, tc.anchor)
		assert.Equal(t, tc.fy, fy, tc.anchor)
	}
}

func TestPlaceLabelCorners(t *testing.T) {
	t.Parallel()

	route := Route{Points: pts(100, 100, 100, 200, 300, 200), Case: Case{Pair: SidePair{Bottom, Left}}}
	testCases := []struct {
		lp      LabelPosition
		at      Point
		justify Justify
	}{
		{"p1se", Point{94, 196}, JustifyRight},
		{"p1sw", Point{106, 196}, JustifyLeft},
		{"p1nw", Point{106, 204}, JustifyLeft},
		{"p1ne", Point{94, 204}, JustifyRight},
		{"p2sw", Point{306, 196}, JustifyLeft},
	}
	for _, tc := range testCases {
		got := placeLabel(route, "No", tc.lp)
		assert.Equal(t, tc.at, got.At, tc.lp)
		assert.Equal(t, tc.justify, got.Justify, tc.lp)
		assert.Equal(t, Anchor(string(tc.lp)[2:]), got.Anchor, tc.lp)
	}

	got := placeLabel(Route{Points: pts(5, 5)}, "", LabelAuto)
	assert.Equal(t, Point{5, -3}, got.At)
	assert.Equal(t, AnchorCenter, got.Anchor)
}
