package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"oss.terrastruct.com/xdefer"

	"flowedit/routing"
)

const (
	pngPadding  = 40.0
	pngFontSize = 12.0
	lineSpacing = 1.2
)

// ExportToPNG draws the chart at world scale, one pixel per world unit.
func (c *Canvas) ExportToPNG(filename string, pal palette) (err error) {
	defer xdefer.Errorf(&err, "failed to export %s", filename)

	minX, minY, maxX, maxY, ok := c.Bounds()
	if !ok {
		return fmt.Errorf("nothing to export")
	}
	// labels may hang outside the nodes
	minX -= pngPadding + labelWrapWidth/2
	maxX += pngPadding + labelWrapWidth/2
	minY -= pngPadding
	maxY += pngPadding

	dc := gg.NewContext(int(math.Ceil(maxX-minX)), int(math.Ceil(maxY-minY)))
	dc.SetColor(pal.background)
	dc.Clear()
	dc.Translate(-minX, -minY)

	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	for _, e := range c.edges {
		drawEdgePNG(dc, e.Route(), pal)
	}
	for _, e := range c.edges {
		drawLabelPNG(dc, c.router.LabelPlacement(e.Edge), pal)
	}
	for _, n := range c.nodes {
		if n.Placed {
			drawNodePNG(dc, n, pal)
		}
	}
	return dc.SavePNG(filename)
}

func drawEdgePNG(dc *gg.Context, route routing.Route, pal palette) {
	pts := route.Points
	if len(pts) < 2 {
		return
	}
	dc.SetColor(pal.edge)
	dc.SetLineWidth(1.5)
	if route.Case.Direct {
		dc.SetDash(4, 3)
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
	dc.SetDash()

	if !route.Case.Direct {
		drawArrowPNG(dc, pts[len(pts)-2], pts[len(pts)-1])
	}
}

func drawArrowPNG(dc *gg.Context, from, to routing.Point) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	arrowSize := 8.0
	arrowAngle := 0.5

	dc.MoveTo(to.X, to.Y)
	dc.LineTo(to.X-arrowSize*dx+arrowSize*dy*arrowAngle, to.Y-arrowSize*dy-arrowSize*dx*arrowAngle)
	dc.LineTo(to.X-arrowSize*dx-arrowSize*dy*arrowAngle, to.Y-arrowSize*dy+arrowSize*dx*arrowAngle)
	dc.ClosePath()
	dc.Fill()
}

func drawNodePNG(dc *gg.Context, n *Node, pal palette) {
	left, top := n.X-n.Width/2, n.Y-n.Height/2
	fill, outline := pal.fill, pal.outline

	switch n.Category {
	case routing.CategoryTerminator:
		fill = pal.terminatorFill
		outline = darken(pal.terminatorFill)
		dc.DrawRoundedRectangle(left, top, n.Width, n.Height, n.Height/2)
	case routing.CategoryDecision:
		dc.MoveTo(n.X, top)
		dc.LineTo(left+n.Width, n.Y)
		dc.LineTo(n.X, top+n.Height)
		dc.LineTo(left, n.Y)
		dc.ClosePath()
	case routing.CategoryIO:
		skew := n.Height / 4
		dc.MoveTo(left+skew, top)
		dc.LineTo(left+n.Width, top)
		dc.LineTo(left+n.Width-skew, top+n.Height)
		dc.LineTo(left, top+n.Height)
		dc.ClosePath()
	default:
		dc.DrawRectangle(left, top, n.Width, n.Height)
	}
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(outline)
	dc.SetLineWidth(1.5)
	dc.Stroke()

	dc.SetColor(pal.text)
	dc.DrawStringWrapped(n.Text, n.X, n.Y, 0.5, 0.5, n.Width-12, lineSpacing, gg.AlignCenter)
}

func drawLabelPNG(dc *gg.Context, pl routing.LabelPlacement, pal palette) {
	if !pl.Valid || pl.Text == "" {
		return
	}
	// Anchor against the wrapped text itself, not the whole wrap width.
	width := 0.0
	for _, line := range dc.WordWrap(pl.Text, labelWrapWidth) {
		w, _ := dc.MeasureString(line)
		width = math.Max(width, w)
	}
	align := gg.AlignLeft
	switch pl.Justify {
	case routing.JustifyCenter:
		align = gg.AlignCenter
	case routing.JustifyRight:
		align = gg.AlignRight
	}
	ax, ay := pl.Anchor.Fraction()
	dc.SetColor(pal.text)
	dc.DrawStringWrapped(pl.Text, pl.At.X, pl.At.Y, ax, ay, math.Ceil(width)+1, lineSpacing, align)
}

// renderAll renders the whole chart at terminal resolution.
func (c *Canvas) renderAll() []string {
	minX, minY, maxX, maxY, ok := c.Bounds()
	if !ok {
		return nil
	}
	l := c.layout
	margin := 2
	v := viewport{cellW: l.CellWidth, cellH: l.CellHeight}
	v.panX = int(math.Floor(minX/l.CellWidth)) - margin - int(labelWrapWidth/l.CellWidth)/2
	v.panY = int(math.Floor(minY/l.CellHeight)) - margin
	v.width = int(math.Ceil(maxX/l.CellWidth)) - v.panX + margin + int(labelWrapWidth/l.CellWidth)/2
	v.height = int(math.Ceil(maxY/l.CellHeight)) - v.panY + margin
	return c.Render(v, noSelection())
}

func writeLines(filename string, lines []string) (err error) {
	defer xdefer.Errorf(&err, "failed to write %s", filename)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return w.Flush()
}

// ExportVisualTXT writes the terminal rendering of the whole chart.
func (c *Canvas) ExportVisualTXT(filename string) error {
	lines := c.renderAll()
	if lines == nil {
		return fmt.Errorf("nothing to export")
	}
	return writeLines(filename, lines)
}
