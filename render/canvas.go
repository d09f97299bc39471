package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/stagecore/viewport"
)

// Drawer is implemented by scene logic that draws itself on the terminal
type Drawer interface {
	Draw(c *Canvas)
}

// Canvas maps content coordinates to screen cells through the current view fit
// Cells outside the drawable area are dropped
type Canvas struct {
	screen  tcell.Screen
	fit     viewport.Result
	content viewport.Size
	cols    int
	rows    int // drawable rows, excludes the status line
}

// Size returns the content size in cells
func (c *Canvas) Size() (int, int) {
	return c.content.W, c.content.H
}

// Cell converts a content coordinate to a screen cell
func (c *Canvas) Cell(x, y float64) (int, int) {
	vx, vy := c.fit.ToView(x, y)
	return int(math.Floor(vx)) + c.fit.OffsetX, int(math.Floor(vy)) + c.fit.OffsetY
}

// Set draws r at a content coordinate
func (c *Canvas) Set(x, y float64, r rune, style tcell.Style) {
	cx, cy := c.Cell(x, y)
	c.setCell(cx, cy, r, style)
}

// Text draws s left to right starting at a content coordinate, one cell per rune
func (c *Canvas) Text(x, y float64, s string, style tcell.Style) {
	cx, cy := c.Cell(x, y)
	for _, r := range s {
		c.setCell(cx, cy, r, style)
		cx++
	}
}

// Fill paints every drawable cell of the content area with style
func (c *Canvas) Fill(r rune, style tcell.Style) {
	x0, y0 := c.Cell(0, 0)
	x1, y1 := c.Cell(float64(c.content.W), float64(c.content.H))
	for y := max(y0, 0); y < min(y1, c.rows); y++ {
		for x := max(x0, 0); x < min(x1, c.cols); x++ {
			c.screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (c *Canvas) setCell(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.screen.SetContent(x, y, r, nil, style)
}
