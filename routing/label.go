package routing

import (
	"strconv"
	"strings"
)

// Anchor is the point of the label box that sits on the placement point,
// named like compass corners (nw = top left of the text is on the point).
type Anchor string

const (
	AnchorCenter Anchor = "center"
	AnchorN      Anchor = "n"
	AnchorNE     Anchor = "ne"
	AnchorE      Anchor = "e"
	AnchorSE     Anchor = "se"
	AnchorS      Anchor = "s"
	AnchorSW     Anchor = "sw"
	AnchorW      Anchor = "w"
	AnchorNW     Anchor = "nw"
)

// Fraction returns where the anchor sits inside the text box, 0 is the
// left/top edge and 1 the right/bottom edge.
func (a Anchor) Fraction() (fx, fy float64) {
	fx, fy = 0.5, 0.5
	s := string(a)
	if a == AnchorCenter {
		return fx, fy
	}
	if strings.HasPrefix(s, "n") {
		fy = 0
	} else if strings.HasPrefix(s, "s") {
		fy = 1
	}
	if strings.HasSuffix(s, "w") {
		fx = 0
	} else if strings.HasSuffix(s, "e") {
		fx = 1
	}
	return fx, fy
}

type Justify string

const (
	JustifyLeft   Justify = "left"
	JustifyCenter Justify = "center"
	JustifyRight  Justify = "right"
)

// LabelPlacement tells the renderer where to draw an edge label.
type LabelPlacement struct {
	Text    string
	Anchor  Anchor
	Justify Justify
	At      Point
	// Valid is false when the edge has no route, At is meaningless then.
	Valid bool
}

// LabelPosition is a manual label placement: "auto" or p{vertex}{corner}.
type LabelPosition string

const LabelAuto LabelPosition = "auto"

// LabelPositions is the cycle walked by RotateLabelPosition.
var LabelPositions = []LabelPosition{
	LabelAuto,
	"p0se", "p0sw", "p0nw", "p0ne",
	"p1se", "p1sw", "p1nw", "p1ne",
	"p2se", "p2sw", "p2nw", "p2ne",
	"p3se", "p3sw", "p3nw", "p3ne",
	"p4se", "p4sw", "p4nw", "p4ne",
}

func (lp LabelPosition) IsAuto() bool {
	return lp == "" || lp == LabelAuto
}

func (lp LabelPosition) Valid() bool {
	if lp.IsAuto() {
		return true
	}
	_, _, ok := lp.parse()
	return ok
}

// parse splits p{vertex}{corner} into its parts.
func (lp LabelPosition) parse() (int, Anchor, bool) {
	s := string(lp)
	if len(s) != 4 || s[0] != 'p' {
		return 0, "", false
	}
	vertex, err := strconv.Atoi(s[1:2])
	if err != nil || vertex > 4 {
		return 0, "", false
	}
	corner := Anchor(s[2:])
	if _, ok := cornerOffsets[corner]; !ok {
		return 0, "", false
	}
	return vertex, corner, true
}

func (lp LabelPosition) index() int {
	if lp.IsAuto() {
		return 0
	}
	for i, v := range LabelPositions {
		if v == lp {
			return i
		}
	}
	return 0
}

// LabelCycleLength is how many entries of LabelPositions are usable for a
// route with the given number of points: auto plus four corners per vertex.
func LabelCycleLength(points int) int {
	if points < 2 || points > 5 {
		return 1
	}
	return 1 + 4*points
}

// cornerOffsets nudge a label away from the vertex it is pinned to, towards
// the side the text extends to.
var cornerOffsets = map[Anchor]Point{
	AnchorSE: {-6, -4},
	AnchorSW: {6, -4},
	AnchorNW: {6, 4},
	AnchorNE: {-6, 4},
}

type labelRule struct {
	offset Point
	anchor Anchor
}

// defaultLabels is keyed by the side the route leaves its source from. The
// label sits just past the first point, clear of the line.
var defaultLabels = map[Side]labelRule{
	Bottom: {Point{6, 8}, AnchorNW},
	Right:  {Point{8, 0}, AnchorSW},
	Left:   {Point{-8, 0}, AnchorSE},
	Top:    {Point{6, -8}, AnchorSW},
}

func placeLabel(route Route, text string, override LabelPosition) LabelPlacement {
	pts := route.Points
	if len(pts) == 0 {
		return LabelPlacement{Text: text, Anchor: AnchorCenter, Justify: JustifyCenter}
	}

	if vertex, corner, ok := override.parse(); ok && vertex < len(pts) {
		justify := JustifyLeft
		if strings.HasSuffix(string(corner), "e") {
			justify = JustifyRight
		}
		return LabelPlacement{
			Text:    text,
			Anchor:  corner,
			Justify: justify,
			At:      pts[vertex].Add(cornerOffsets[corner]),
			Valid:   true,
		}
	}

	if rule, ok := defaultLabels[route.Case.Pair.From]; ok && !route.Case.Direct {
		return LabelPlacement{
			Text:    text,
			Anchor:  rule.anchor,
			Justify: JustifyLeft,
			At:      pts[0].Add(rule.offset),
			Valid:   true,
		}
	}

	mid := Point{pts[0].X, pts[0].Y - 8}
	if len(pts) > 1 {
		mid = Point{(pts[0].X + pts[1].X) / 2, (pts[0].Y+pts[1].Y)/2 - 8}
	}
	return LabelPlacement{
		Text:    text,
		Anchor:  AnchorCenter,
		Justify: JustifyCenter,
		At:      mid,
		Valid:   true,
	}
}
