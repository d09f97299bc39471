// Package viewport computes how game content of a fixed size is fitted into a host window
package viewport

import (
	"fmt"
	"math"
)

// Mode selects the fitting strategy
type Mode string

const (
	// LetterBox keeps the view at content size and scales it uniformly to fit inside the window
	LetterBox Mode = "letter-box"
	// Crop resizes the view to the window, content is drawn unscaled from the top-left
	Crop Mode = "crop"
	// ScaleInner resizes the view to the window and scales content to fit inside it
	ScaleInner Mode = "scale-inner"
	// ScaleOuter resizes the view to the window and scales content to cover it
	ScaleOuter Mode = "scale-outer"
	// Never keeps the view and content at their configured size
	Never Mode = "never"
)

// Modes lists every supported mode
var Modes = []Mode{LetterBox, Crop, ScaleInner, ScaleOuter, Never}

// ParseMode validates a mode name, empty selects LetterBox
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return LetterBox, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown resize mode %q", s)
}

// Size is a width and height in host units (pixels or cells)
type Size struct {
	W, H int
}

// Result describes a fitted view
type Result struct {
	Mode Mode
	// View is the size the renderer should render at
	View Size
	// Scale maps content units to view units
	Scale float64
	// Left and Top offset the scaled content inside the view
	Left, Top int
	// Window offset of the view inside the window, used by letter-boxing
	OffsetX, OffsetY int
}

// Fit computes the view for content placed in window
// Degenerate sizes produce a unit scale with no offset
func Fit(mode Mode, window, content Size) Result {
	r := Result{Mode: mode, View: content, Scale: 1}
	if window.W <= 0 || window.H <= 0 || content.W <= 0 || content.H <= 0 {
		return r
	}

	switch mode {
	case Crop:
		r.View = window
	case ScaleInner:
		r.View = window
		r.Scale, r.Left, r.Top = innerBox(window, content)
	case ScaleOuter:
		r.View = window
		r.Scale, r.Left, r.Top = outerBox(window, content)
	case Never:
	default:
		r.Mode = LetterBox
		scale, left, top := innerBox(window, content)
		r.Scale = scale
		r.OffsetX, r.OffsetY = left, top
	}
	return r
}

// innerBox scales content to fit entirely inside box, centered
func innerBox(box, content Size) (float64, int, int) {
	scale := math.Min(float64(box.W)/float64(content.W), float64(box.H)/float64(content.H))
	return scale, center(box.W, content.W, scale), center(box.H, content.H, scale)
}

// outerBox scales content to cover box, centered, overflow is negative offset
func outerBox(box, content Size) (float64, int, int) {
	scale := math.Max(float64(box.W)/float64(content.W), float64(box.H)/float64(content.H))
	return scale, center(box.W, content.W, scale), center(box.H, content.H, scale)
}

func center(box, content int, scale float64) int {
	return int(math.Floor((float64(box) - float64(content)*scale) / 2))
}

// ToView maps a content coordinate into view coordinates
func (r Result) ToView(x, y float64) (float64, float64) {
	return x*r.Scale + float64(r.Left), y*r.Scale + float64(r.Top)
}

// ToContent maps a view coordinate back into content coordinates
func (r Result) ToContent(x, y float64) (float64, float64) {
	if r.Scale == 0 {
		return x, y
	}
	return (x - float64(r.Left)) / r.Scale, (y - float64(r.Top)) / r.Scale
}
