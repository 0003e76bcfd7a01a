package canvas

import "math"

// ScaleSet holds the factors derived for one pass.
// VirtualX and VirtualY are always equal to min(StretchX, StretchY).
type ScaleSet struct {
	StretchX, StretchY float64
	VirtualX, VirtualY float64
	PaddingX, PaddingY int
}

// Virtual returns the uniform virtual scale.
func (s ScaleSet) Virtual() float64 { return s.VirtualX }

func (s ScaleSet) transpose() ScaleSet {
	return ScaleSet{
		StretchX: s.StretchY, StretchY: s.StretchX,
		VirtualX: s.VirtualY, VirtualY: s.VirtualX,
		PaddingX: s.PaddingY, PaddingY: s.PaddingX,
	}
}

// axisSize decides one axis of the container's concrete size.
type axisSize struct {
	pixels  int
	content bool // use the children's bounding extent
	limit   int  // cap for the content fallback, < 0 for none
}

func fixed(px int) axisSize { return axisSize{pixels: px, limit: -1} }

func fromContent(limit int) axisSize { return axisSize{content: true, limit: limit} }

func (a axisSize) resolve(extent int) int {
	if !a.content {
		return a.pixels
	}
	if a.limit >= 0 && extent > a.limit {
		return a.limit
	}
	return extent
}

// Resolution is the output of Resolve: the pass scales plus the rule that
// turns the children's bounding extent into the container size.
type Resolution struct {
	Scales ScaleSet

	width, height axisSize
}

// Size returns the container's concrete size given the children's bounding
// extent. The extent only matters for axes that could not be derived from the
// design aspect ratio.
func (r Resolution) Size(extent Size) Size {
	return Size{
		Width:  r.width.resolve(extent.Width),
		Height: r.height.resolve(extent.Height),
	}
}

// UsesExtent reports whether Size depends on the children's bounding extent.
func (r Resolution) UsesExtent() bool {
	return r.width.content || r.height.content
}

func (r Resolution) transpose() Resolution {
	return Resolution{Scales: r.Scales.transpose(), width: r.height, height: r.width}
}

type resolveFunc func(w, h Constraint, d DesignSize) Resolution

// resolvers is indexed by [width mode][height mode].
var resolvers = [modeCount][modeCount]resolveFunc{
	ModeExact: {
		ModeExact:       resolveExactExact,
		ModeAtMost:      resolveExactAtMost,
		ModeUnspecified: resolveExactUnspecified,
	},
	ModeAtMost: {
		ModeExact:       transposed(resolveExactAtMost),
		ModeAtMost:      resolveAtMostAtMost,
		ModeUnspecified: resolveAtMostUnspecified,
	},
	ModeUnspecified: {
		ModeExact:       transposed(resolveExactUnspecified),
		ModeAtMost:      transposed(resolveAtMostUnspecified),
		ModeUnspecified: resolveUnspecifiedUnspecified,
	},
}

// Resolve derives the scales, paddings and container sizing rule for the
// given constraints and design size. It never fails: zero design dimensions
// produce zero scales.
func Resolve(w, h Constraint, d DesignSize) Resolution {
	w, h = w.normalize(), h.normalize()
	return resolvers[w.Mode][h.Mode](w, h, d)
}

// transposed runs fn with the axes swapped, turning a width-led derivation
// into its height-led counterpart.
func transposed(fn resolveFunc) resolveFunc {
	return func(w, h Constraint, d DesignSize) Resolution {
		return fn(h, w, d.transpose()).transpose()
	}
}

func resolveExactExact(w, h Constraint, d DesignSize) Resolution {
	sx, sy, v := uniform(scaleOf(w.Pixels, d.Width), scaleOf(h.Pixels, d.Height))
	return Resolution{
		Scales: ScaleSet{
			StretchX: sx, StretchY: sy,
			VirtualX: v, VirtualY: v,
			PaddingX: center(w.Pixels, v, d.Width),
			PaddingY: center(h.Pixels, v, d.Height),
		},
		width:  fixed(w.Pixels),
		height: fixed(h.Pixels),
	}
}

func resolveExactAtMost(w, h Constraint, d DesignSize) Resolution {
	tempH := project(w.Pixels, d.Width, d.Height)
	availH := min(tempH, h.Pixels)
	sx, sy, v := uniform(scaleOf(w.Pixels, d.Width), scaleOf(availH, d.Height))

	r := Resolution{
		Scales: ScaleSet{
			StretchX: sx, StretchY: sy,
			VirtualX: v, VirtualY: v,
			PaddingX: center(w.Pixels, v, d.Width),
		},
		width: fixed(w.Pixels),
	}
	if tempH != 0 {
		r.Scales.PaddingY = center(availH, v, d.Height)
		r.height = fixed(availH)
	} else {
		r.height = fromContent(h.Pixels)
	}
	return r
}

func resolveExactUnspecified(w, _ Constraint, d DesignSize) Resolution {
	s := scaleOf(w.Pixels, d.Width)
	r := Resolution{
		Scales: ScaleSet{
			StretchX: s, StretchY: s,
			VirtualX: s, VirtualY: s,
			PaddingX: center(w.Pixels, s, d.Width),
		},
		width:  fixed(w.Pixels),
		height: fromContent(-1),
	}
	if tempH := project(w.Pixels, d.Width, d.Height); tempH != 0 {
		r.height = fixed(tempH)
	}
	return r
}

// resolveAtMostAtMost never scales up: each axis is capped at the design size.
func resolveAtMostAtMost(w, h Constraint, d DesignSize) Resolution {
	availW, availH := min(w.Pixels, d.Width), min(h.Pixels, d.Height)
	sx, sy, v := uniform(scaleOf(availW, d.Width), scaleOf(availH, d.Height))
	return Resolution{
		Scales: ScaleSet{
			StretchX: sx, StretchY: sy,
			VirtualX: v, VirtualY: v,
			PaddingX: center(availW, v, d.Width),
			PaddingY: center(availH, v, d.Height),
		},
		width:  fixed(availW),
		height: fixed(availH),
	}
}

func resolveAtMostUnspecified(w, _ Constraint, d DesignSize) Resolution {
	availW := min(w.Pixels, d.Width)
	s := scaleOf(availW, d.Width)
	r := Resolution{
		Scales: ScaleSet{
			StretchX: s, StretchY: s,
			VirtualX: s, VirtualY: s,
			PaddingX: center(availW, s, d.Width),
		},
		width:  fixed(availW),
		height: fromContent(-1),
	}
	if tempH := project(availW, d.Width, d.Height); tempH != 0 {
		r.height = fixed(tempH)
	}
	return r
}

// resolveUnspecifiedUnspecified places children at raw design coordinates and
// sizes the container to the design size.
func resolveUnspecifiedUnspecified(_, _ Constraint, d DesignSize) Resolution {
	return Resolution{
		Scales: ScaleSet{StretchX: 1, StretchY: 1, VirtualX: 1, VirtualY: 1},
		width:  fixed(d.Width),
		height: fixed(d.Height),
	}
}

// scaleOf maps design units to pixels along one axis; 0 without a design size.
func scaleOf(px, design int) float64 {
	if design == 0 {
		return 0
	}
	return float64(px) / float64(design)
}

// uniform applies zero-forcing and derives the virtual scale.
// A scale cannot be derived from one design dimension alone, so one zero
// stretch scale forces the other to zero.
func uniform(sx, sy float64) (stretchX, stretchY, virtual float64) {
	if sx == 0 || sy == 0 {
		return 0, 0, 0
	}
	return sx, sy, math.Min(sx, sy)
}

// project converts px along an axis of design length from into the matching
// length along an axis of design length to, keeping the design aspect ratio.
// Returns 0 when either design dimension is missing.
func project(px, from, to int) int {
	if from == 0 || to == 0 {
		return 0
	}
	return int(float64(px) / float64(from) * float64(to))
}

// center returns the padding that centers virtual*design inside avail pixels.
func center(avail int, virtual float64, design int) int {
	pad := int((float64(avail) - virtual*float64(design)) / 2)
	return max(pad, 0)
}
