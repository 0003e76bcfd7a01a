package canvas

import (
	"fmt"
	"math"
)

// Size is a concrete pixel size.
type Size struct {
	Width, Height int
}

// Rect is a placed child in container pixels. Origin at top-left, Y grows
// downward.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Width returns the horizontal span of the rect.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical span of the rect.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns the rect's width and height.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Empty reports whether the rect covers no pixels.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether the pixel (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// Place computes the child's rect for one pass.
//
// Sizes use the virtual scale in VirtualDesign mode and the axis stretch scale
// in StretchDesign mode. Positions in VirtualDesign mode are offset by the
// virtual window padding; StretchDesign positions are not.
func Place(c ChildSpec, s ScaleSet) Rect {
	w := round(pick(c.WidthMode, s.StretchX, s.VirtualX) * float64(c.Width))
	h := round(pick(c.HeightMode, s.StretchY, s.VirtualY) * float64(c.Height))
	x := offset(c.XMode, s.StretchX, s.VirtualX, s.PaddingX, c.X)
	y := offset(c.YMode, s.StretchY, s.VirtualY, s.PaddingY, c.Y)
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Aggregate returns the bounding extent of rects measured from the container
// origin: the maximum right and bottom edge, never below zero.
func Aggregate(rects []Rect) Size {
	var ext Size
	for _, r := range rects {
		ext.Width = max(ext.Width, r.Right)
		ext.Height = max(ext.Height, r.Bottom)
	}
	return ext
}

func pick(m ScalingMode, stretch, virtual float64) float64 {
	if m == StretchDesign {
		return stretch
	}
	return virtual
}

func offset(m ScalingMode, stretch, virtual float64, padding, design int) int {
	if m == StretchDesign {
		return round(stretch * float64(design))
	}
	return round(virtual*float64(design)) + padding
}

func round(v float64) int { return int(math.Round(v)) }
