package main

import (
	"math"
	"strings"
	"unicode/utf8"

	"flowedit/routing"
)

// viewport maps world pixels onto terminal cells. Pan is counted in cells.
type viewport struct {
	cellW, cellH  float64
	panX, panY    int
	width, height int
}

func (v viewport) col(x float64) int { return int(math.Floor(x/v.cellW)) - v.panX }
func (v viewport) row(y float64) int { return int(math.Floor(y/v.cellH)) - v.panY }

func (v viewport) cell(p routing.Point) point {
	return point{v.col(p.X), v.row(p.Y)}
}

// worldAt returns the world point at the center of a screen cell.
func (v viewport) worldAt(col, row int) (float64, float64) {
	return (float64(col+v.panX) + 0.5) * v.cellW, (float64(row+v.panY) + 0.5) * v.cellH
}

type renderOptions struct {
	selectedNode int
	selectedEdge int
	linkFrom     int
	// preview draws a pending connection from linkFrom to this cell
	preview *point
}

func noSelection() renderOptions {
	return renderOptions{selectedNode: -1, selectedEdge: -1, linkFrom: -1}
}

type frame struct {
	tl, tr, bl, br rune
	h              rune
	left, right    rune
	midL, midR     rune
}

var frames = map[routing.Category]frame{
	routing.CategoryProcess:    {'┌', '┐', '└', '┘', '─', '│', '│', '│', '│'},
	routing.CategoryTerminator: {'╭', '╮', '╰', '╯', '─', '│', '│', '│', '│'},
	routing.CategoryDecision:   {'/', '\\', '\\', '/', '─', '│', '│', '<', '>'},
	routing.CategoryIO:         {'/', '/', '/', '/', '─', '/', '/', '/', '/'},
}

var selectedFrame = frame{'#', '#', '#', '#', '#', '#', '#', '#', '#'}

type lineGlyphs struct {
	h, v, cross           rune
	tl, tr, bl, br        rune
	up, down, left, right rune
}

var (
	thinLine  = lineGlyphs{'─', '│', '┼', '┌', '┐', '└', '┘', '▲', '▼', '◀', '▶'}
	heavyLine = lineGlyphs{'━', '┃', '╋', '┏', '┓', '┗', '┛', '▲', '▼', '◀', '▶'}
)

const directDot = '·'

// Render draws the canvas into width x height cells. Edges go first so
// nodes cover the ends of their connectors, arrow heads are drawn last.
func (c *Canvas) Render(v viewport, opts renderOptions) []string {
	if v.height < 1 {
		v.height = 1
	}
	if v.width < 1 {
		v.width = 1
	}
	grid := make([][]rune, v.height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", v.width))
	}

	for _, e := range c.edges {
		c.drawEdge(grid, v, e, e.ID == opts.selectedEdge)
	}
	if opts.preview != nil {
		if from := c.Node(opts.linkFrom); from != nil && from.Placed {
			drawDotted(grid, v.cell(from.Center()), *opts.preview)
		}
	}
	for _, e := range c.edges {
		drawLabel(grid, v, c.router.LabelPlacement(e.Edge))
	}
	for _, n := range c.nodes {
		if !n.Placed {
			continue
		}
		selected := n.ID == opts.selectedNode || n.ID == opts.linkFrom
		drawNode(grid, v, n, selected)
	}
	for _, e := range c.edges {
		c.drawArrowHead(grid, v, e, e.ID == opts.selectedEdge)
	}

	out := make([]string, len(grid))
	for i, row := range grid {
		out[i] = string(row)
	}
	return out
}

func inGrid(grid [][]rune, p point) bool {
	return p.Y >= 0 && p.Y < len(grid) && p.X >= 0 && p.X < len(grid[p.Y])
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (c *Canvas) drawEdge(grid [][]rune, v viewport, e *Edge, selected bool) {
	route := e.Route()
	if route.Empty() {
		return
	}
	cells := make([]point, len(route.Points))
	for i, p := range route.Points {
		cells[i] = v.cell(p)
	}
	if route.Case.Direct {
		drawDotted(grid, cells[0], cells[len(cells)-1])
		return
	}

	g := thinLine
	if selected {
		g = heavyLine
	}
	for i := 0; i+1 < len(cells); i++ {
		drawSegment(grid, cells[i], cells[i+1], g)
	}
	for i := 1; i+1 < len(cells); i++ {
		drawCorner(grid, cells[i-1], cells[i], cells[i+1], g)
	}
}

func drawSegment(grid [][]rune, a, b point, g lineGlyphs) {
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		return
	}
	glyph, across := g.h, g.v
	if dx == 0 {
		glyph, across = g.v, g.h
	}
	for p := a; ; p = (point{p.X + dx, p.Y + dy}) {
		if inGrid(grid, p) {
			switch grid[p.Y][p.X] {
			case across, thinLine.cross, heavyLine.cross:
				grid[p.Y][p.X] = g.cross
			default:
				grid[p.Y][p.X] = glyph
			}
		}
		if p == b {
			break
		}
	}
}

// drawCorner picks the elbow glyph from the two neighbours of the corner
// cell.
func drawCorner(grid [][]rune, prev, corner, next point, g lineGlyphs) {
	if !inGrid(grid, corner) {
		return
	}
	a := point{sign(prev.X - corner.X), sign(prev.Y - corner.Y)}
	b := point{sign(next.X - corner.X), sign(next.Y - corner.Y)}
	horiz, vert := a.X+b.X, a.Y+b.Y
	if a.X != 0 && b.X != 0 || a.Y != 0 && b.Y != 0 {
		return
	}
	switch {
	case horiz < 0 && vert > 0:
		grid[corner.Y][corner.X] = g.tr
	case horiz < 0 && vert < 0:
		grid[corner.Y][corner.X] = g.br
	case horiz > 0 && vert > 0:
		grid[corner.Y][corner.X] = g.tl
	case horiz > 0 && vert < 0:
		grid[corner.Y][corner.X] = g.bl
	}
}

func drawDotted(grid [][]rune, a, b point) {
	for _, p := range dottedCells(a, b) {
		if inGrid(grid, p) && grid[p.Y][p.X] == ' ' {
			grid[p.Y][p.X] = directDot
		}
	}
}

func dottedCells(a, b point) []point {
	steps := max(abs(b.X-a.X), abs(b.Y-a.Y))
	if steps == 0 {
		return []point{a}
	}
	out := make([]point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		out = append(out, point{
			X: a.X + int(math.Round(t*float64(b.X-a.X))),
			Y: a.Y + int(math.Round(t*float64(b.Y-a.Y))),
		})
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// drawArrowHead puts the head in the cell just outside the target node.
func (c *Canvas) drawArrowHead(grid [][]rune, v viewport, e *Edge, selected bool) {
	route := e.Route()
	if len(route.Points) < 2 {
		return
	}
	g := thinLine
	if selected {
		g = heavyLine
	}

	var tip, dir point
	if route.Case.Direct {
		to := c.Node(e.ToID)
		if to == nil {
			return
		}
		r := nodeRect(v, to)
		cells := dottedCells(v.cell(route.Points[0]), v.cell(route.Points[1]))
		for i := len(cells) - 1; i > 0; i-- {
			if !r.contains(cells[i]) {
				tip = cells[i]
				dir = point{sign(cells[len(cells)-1].X - tip.X), sign(cells[len(cells)-1].Y - tip.Y)}
				break
			}
		}
		if dir.Y != 0 && dir.X != 0 {
			dir.X = 0
		}
	} else {
		n := len(route.Points)
		last, prev := v.cell(route.Points[n-1]), v.cell(route.Points[n-2])
		dir = point{sign(last.X - prev.X), sign(last.Y - prev.Y)}
		tip = point{last.X - dir.X, last.Y - dir.Y}
	}
	if !inGrid(grid, tip) {
		return
	}
	switch dir {
	case point{0, -1}:
		grid[tip.Y][tip.X] = g.up
	case point{0, 1}:
		grid[tip.Y][tip.X] = g.down
	case point{-1, 0}:
		grid[tip.Y][tip.X] = g.left
	case point{1, 0}:
		grid[tip.Y][tip.X] = g.right
	}
}

type cellRect struct {
	c0, r0, c1, r1 int
}

func (r cellRect) contains(p point) bool {
	return p.X >= r.c0 && p.X <= r.c1 && p.Y >= r.r0 && p.Y <= r.r1
}

func nodeRect(v viewport, n *Node) cellRect {
	r := cellRect{
		c0: v.col(n.X - n.Width/2),
		r0: v.row(n.Y - n.Height/2),
		c1: v.col(n.X + n.Width/2),
		r1: v.row(n.Y + n.Height/2),
	}
	if r.c1-r.c0 < 2 {
		r.c1 = r.c0 + 2
	}
	if r.r1-r.r0 < 2 {
		r.r1 = r.r0 + 2
	}
	return r
}

func drawNode(grid [][]rune, v viewport, n *Node, selected bool) {
	r := nodeRect(v, n)
	f := frames[n.Category]
	if f.h == 0 {
		f = frames[routing.CategoryProcess]
	}
	if selected {
		f = selectedFrame
	}
	mid := (r.r0 + r.r1) / 2

	for y := r.r0; y <= r.r1; y++ {
		for x := r.c0; x <= r.c1; x++ {
			p := point{x, y}
			if !inGrid(grid, p) {
				continue
			}
			var ch rune
			switch {
			case y == r.r0 && x == r.c0:
				ch = f.tl
			case y == r.r0 && x == r.c1:
				ch = f.tr
			case y == r.r1 && x == r.c0:
				ch = f.bl
			case y == r.r1 && x == r.c1:
				ch = f.br
			case y == r.r0 || y == r.r1:
				ch = f.h
			case x == r.c0 && y == mid:
				ch = f.midL
			case x == r.c1 && y == mid:
				ch = f.midR
			case x == r.c0:
				ch = f.left
			case x == r.c1:
				ch = f.right
			default:
				ch = ' '
			}
			grid[y][x] = ch
		}
	}

	inner := r.c1 - r.c0 - 1
	rows := r.r1 - r.r0 - 1
	lines := wrapText(n.Text, inner)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	top := r.r0 + 1 + (rows-len(lines))/2
	for i, line := range lines {
		x := r.c0 + 1 + (inner-utf8.RuneCountInString(line))/2
		putString(grid, x, top+i, line)
	}
}

func drawLabel(grid [][]rune, v viewport, pl routing.LabelPlacement) {
	if !pl.Valid || pl.Text == "" {
		return
	}
	lines := wrapText(pl.Text, int(labelWrapWidth/v.cellW))
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	fx, fy := pl.Anchor.Fraction()
	left := labelStart(pl.At.X, fx, width, v.cellW) - v.panX
	top := labelStart(pl.At.Y, fy, len(lines), v.cellH) - v.panY

	for i, l := range lines {
		pad := 0
		switch pl.Justify {
		case routing.JustifyCenter:
			pad = (width - utf8.RuneCountInString(l)) / 2
		case routing.JustifyRight:
			pad = width - utf8.RuneCountInString(l)
		}
		putString(grid, left+pad, top+i, l)
	}
}

// labelStart is the first cell of a label n cells long whose anchor
// fraction sits at pos. Edge anchors round away from pos so the text
// never covers the cell holding the anchor point.
func labelStart(pos, frac float64, n int, cell float64) int {
	switch frac {
	case 0:
		return int(math.Ceil(pos / cell))
	case 1:
		return int(math.Floor(pos/cell)) - n
	}
	return int(math.Round(pos/cell - frac*float64(n)))
}

func putString(grid [][]rune, x, y int, s string) {
	i := 0
	for _, ch := range s {
		if p := (point{x + i, y}); inGrid(grid, p) {
			grid[p.Y][p.X] = ch
		}
		i++
	}
}

// wrapText breaks text on words so no line is wider than width runes.
// Explicit newlines are kept.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, w := range words {
			for utf8.RuneCountInString(w) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				r := []rune(w)
				out = append(out, string(r[:width]))
				w = string(r[width:])
			}
			switch {
			case line == "":
				line = w
			case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) <= width:
				line += " " + w
			default:
				out = append(out, line)
				line = w
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// EdgeAt returns the id of the edge drawn through a screen cell, or -1.
func (c *Canvas) EdgeAt(v viewport, at point) int {
	for i := len(c.edges) - 1; i >= 0; i-- {
		e := c.edges[i]
		route := e.Route()
		if route.Empty() {
			continue
		}
		if route.Case.Direct {
			for _, p := range dottedCells(v.cell(route.Points[0]), v.cell(route.Points[1])) {
				if p == at {
					return e.ID
				}
			}
			continue
		}
		for j := 0; j+1 < len(route.Points); j++ {
			a, b := v.cell(route.Points[j]), v.cell(route.Points[j+1])
			r := cellRect{min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X), max(a.Y, b.Y)}
			if r.contains(at) {
				return e.ID
			}
		}
	}
	return -1
}
