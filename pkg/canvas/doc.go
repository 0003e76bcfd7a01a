// Package canvas computes resolution-independent layouts for rectangular items.
//
// # Overview
//
// A designer authors a canvas against a fixed design coordinate space (for
// example a 100×100 grid). At layout time the container receives a pixel
// constraint per axis and this package maps the design geometry onto that
// concrete box. The result of one layout pass contains:
//
//   - A [ScaleSet]: the uniform virtual scale, the per-axis stretch scales and
//     the padding that centers the virtual window
//   - A [Rect] for every participating child
//   - The container's own concrete [Size]
//   - A back-to-front drawing order by depth
//
// # Windows
//
// The stretch window is the container's raw pixel box, possibly distorted
// relative to the design aspect ratio. The virtual window is the largest
// design-aspect-ratio rectangle that fits inside it, centered by padding.
// Every child chooses, per axis and separately for size and position, which
// window it scales against (see [ScalingMode]).
//
// # Constraints
//
// Each axis is constrained independently with [Exact], [AtMost] or
// [Unspecified]. [Resolve] dispatches on the (width, height) mode pair to one
// of nine derivations. Axes that cannot be sized from the design aspect ratio
// fall back to the children's bounding extent, computed by [Aggregate].
//
// # Passes
//
// A [Container] owns the design size and its children. [Container.Measure]
// and [Container.Layout] mirror the two-phase measure/layout protocol of a
// host UI toolkit:
//
//	c, _ := canvas.New(canvas.DesignSize{Width: 100, Height: 100})
//	_ = c.Add("logo", &canvas.ChildSpec{X: 30, Y: 30, Width: 50, Height: 50, Depth: 15})
//	m := c.Measure(canvas.Exact(200), canvas.Exact(100))
//	for _, p := range c.Layout(0, 0, m.Size.Width, m.Size.Height) {
//	    fmt.Println(p.ID, p.Rect)
//	}
//
// Every pass is recomputed from scratch and is a pure function of the current
// design size, children and constraints. Configuration errors are reported by
// [New], [Container.Add] and [Container.Update]; a pass never fails.
package canvas
