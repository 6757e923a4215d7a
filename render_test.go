package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowedit/routing"
)

func testViewport() viewport {
	return viewport{cellW: 10, cellH: 20, width: 50, height: 20}
}

func TestRenderVerticalDrop(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryProcess, 100, 100)
	b := addBox(c, routing.CategoryTerminator, 100, 300)
	id, err := c.AddEdge(a, b)
	require.NoError(t, err)

	lines := c.Render(testViewport(), noSelection())
	require.Len(t, lines, 20)

	// process frame spans columns 4..16 and rows 3..6
	assert.Equal(t, '┌', runeAt(lines, 4, 3))
	assert.Equal(t, '┘', runeAt(lines, 16, 6))
	assert.Equal(t, '╭', runeAt(lines, 4, 13))
	assert.Contains(t, lines[4]+lines[5], "process")

	for row := 7; row <= 11; row++ {
		assert.Equal(t, '│', runeAt(lines, 10, row), "row %d", row)
	}
	assert.Equal(t, '▼', runeAt(lines, 10, 12))

	// the default label hangs below and right of the exit point
	assert.Equal(t, ' ', runeAt(lines, 11, 7))
	c.SetEdgeLabel(id, "go")
	lines = c.Render(testViewport(), noSelection())
	assert.Equal(t, "go", string([]rune(lines[7])[11:13]))
	assert.Equal(t, '│', runeAt(lines, 10, 7))

	opts := noSelection()
	opts.selectedEdge = id
	lines = c.Render(testViewport(), opts)
	assert.Equal(t, '┃', runeAt(lines, 10, 9))
	assert.Equal(t, '▼', runeAt(lines, 10, 12))
}

func TestRenderElbows(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryProcess, 100, 100)
	b := addBox(c, routing.CategoryProcess, 400, 300)
	_, err := c.AddEdge(a, b)
	require.NoError(t, err)

	v := testViewport()
	lines := c.Render(v, noSelection())
	// bottom-top route: (100,130) (100,200) (400,200) (400,270)
	assert.Equal(t, '└', runeAt(lines, 10, 10))
	assert.Equal(t, '┐', runeAt(lines, 40, 10))
	assert.Equal(t, '─', runeAt(lines, 25, 10))
	assert.Equal(t, '▼', runeAt(lines, 40, 12))
}

func TestRenderDirectFallback(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryProcess, 100, 100)
	b := addBox(c, routing.CategoryProcess, 200, 140)
	id, err := c.AddEdge(a, b)
	require.NoError(t, err)
	require.True(t, c.Edge(id).Route().Case.Direct)

	// both ends of the line are hidden under the overlapping nodes
	lines := c.Render(testViewport(), noSelection())
	assert.NotContains(t, strings.Join(lines, ""), "·")

	assert.Equal(t, []point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}, dottedCells(point{0, 0}, point{4, 2}))

	grid := [][]rune{[]rune("  x  ")}
	drawDotted(grid, point{0, 0}, point{4, 0})
	assert.Equal(t, "··x··", string(grid[0]))
}

func TestLabelStart(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 7, labelStart(138, 0, 2, 20))
	assert.Equal(t, 7, labelStart(140, 0, 2, 20))
	assert.Equal(t, 3, labelStart(92, 1, 1, 20))
	assert.Equal(t, 3, labelStart(100, 1, 2, 20))
	assert.Equal(t, 8, labelStart(100, 0.5, 4, 10))
}

func TestRenderUnplacedAndPanned(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryProcess, 100, 100)
	b := c.AddNodeWithState(NodeState{Category: routing.CategoryProcess, Width: 120, Height: 60, Text: "hidden"})
	_, err := c.AddEdge(a, b)
	require.NoError(t, err)

	v := testViewport()
	v.panX, v.panY = 2, 1
	lines := c.Render(v, noSelection())
	assert.Equal(t, '┌', runeAt(lines, 2, 2))
	assert.NotContains(t, strings.Join(lines, ""), "hidden")
}

func TestEdgeAt(t *testing.T) {
	t.Parallel()

	c := newTestCanvas(t)
	a := addBox(c, routing.CategoryProcess, 100, 100)
	b := addBox(c, routing.CategoryProcess, 100, 300)
	id, err := c.AddEdge(a, b)
	require.NoError(t, err)

	v := testViewport()
	assert.Equal(t, id, c.EdgeAt(v, point{10, 9}))
	assert.Equal(t, -1, c.EdgeAt(v, point{30, 9}))

	x, y := v.worldAt(10, 4)
	assert.Equal(t, a, c.NodeAt(x, y))
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Items in", "stock?"}, wrapText("Items in stock?", 9))
	assert.Equal(t, []string{"abcd", "ef"}, wrapText("abcdef", 4))
	assert.Equal(t, []string{"a", "", "b"}, wrapText("a\n\nb", 10))
}
