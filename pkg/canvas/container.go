package canvas

import (
	"fmt"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Container lays out children designed against a fixed design size.
//
// A Container is not safe for concurrent use. Mutations (Add, Update, Remove,
// SetDesign) are expected between passes and discard the last measurement.
type Container struct {
	design   DesignSize
	children []*child
	index    map[string]*child

	// last holds the rects of the most recent Measure, keyed by child ID.
	last *pass
}

// child is one entry in the container. A nil spec marks a child without
// design layout data; it is kept for ordering bookkeeping but excluded from
// every pass.
type child struct {
	id   string
	spec *ChildSpec
}

type pass struct {
	measurement Measurement
	rects       map[string]Rect
}

// ChildSize is a child's resolved size, reported by Measure so the host can
// size the child itself.
type ChildSize struct {
	ID     string
	Width  int
	Height int
}

// Measurement is the result of Container.Measure.
type Measurement struct {
	Width, Height Constraint

	// Size is the container's concrete size for this pass.
	Size Size
	// Extent is the bounding extent of all placed children.
	Extent Size
	Scales ScaleSet

	// Children lists participating children in insertion order.
	Children []ChildSize
}

// Placement is a child's final rect relative to the container, in
// back-to-front order. The host applies Rect and, when BringToFront is set,
// raises the child above its siblings before handling the next placement.
type Placement struct {
	ID           string
	Rect         Rect
	Depth        float64
	Order        int
	BringToFront bool
}

// Result bundles one full pass.
type Result struct {
	Measurement
	Placements []Placement
}

// New creates an empty container. It returns an INVALID_CONFIGURATION error
// for negative design dimensions.
func New(design DesignSize) (*Container, error) {
	if err := design.Validate(); err != nil {
		return nil, err
	}
	return &Container{
		design: design,
		index:  make(map[string]*child),
	}, nil
}

// Design returns the container's design size.
func (c *Container) Design() DesignSize { return c.design }

// SetDesign replaces the design size.
func (c *Container) SetDesign(d DesignSize) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.design = d
	c.last = nil
	return nil
}

// Add appends a child. A nil spec adds a child without design layout data,
// which never takes part in measurement or placement.
func (c *Container) Add(id string, spec *ChildSpec) error {
	if err := clerrors.ValidateChildID(id); err != nil {
		return err
	}
	if _, exists := c.index[id]; exists {
		return clerrors.New(clerrors.ErrCodeDuplicateChild, "child %q already exists", id)
	}
	var own *ChildSpec
	if spec != nil {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("child %q: %w", id, err)
		}
		cp := *spec
		own = &cp
	}

	ch := &child{id: id, spec: own}
	c.children = append(c.children, ch)
	c.index[id] = ch
	c.last = nil
	return nil
}

// Update mutates a child's spec through fn and re-validates it. On a
// validation error the previous spec is kept. Updating a child without
// design layout data attaches a zero spec first.
func (c *Container) Update(id string, fn func(*ChildSpec)) error {
	ch, ok := c.index[id]
	if !ok {
		return clerrors.New(clerrors.ErrCodeChildNotFound, "child %q not found", id)
	}

	var next ChildSpec
	if ch.spec != nil {
		next = *ch.spec
	}
	fn(&next)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("child %q: %w", id, err)
	}
	ch.spec = &next
	c.last = nil
	return nil
}

// Detach removes a child's design layout data while keeping the child.
func (c *Container) Detach(id string) bool {
	ch, ok := c.index[id]
	if !ok {
		return false
	}
	ch.spec = nil
	c.last = nil
	return true
}

// Remove deletes a child. It reports whether the child existed.
func (c *Container) Remove(id string) bool {
	if _, ok := c.index[id]; !ok {
		return false
	}
	delete(c.index, id)
	for i, ch := range c.children {
		if ch.id == id {
			c.children = append(c.children[:i], c.children[i+1:]...)
			break
		}
	}
	c.last = nil
	return true
}

// Spec returns a copy of a child's spec. ok is false when the child does not
// exist or has no design layout data.
func (c *Container) Spec(id string) (spec ChildSpec, ok bool) {
	ch, exists := c.index[id]
	if !exists || ch.spec == nil {
		return ChildSpec{}, false
	}
	return *ch.spec, true
}

// Children returns every child ID in insertion order, participating or not.
func (c *Container) Children() []string {
	ids := make([]string, len(c.children))
	for i, ch := range c.children {
		ids[i] = ch.id
	}
	return ids
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// participants returns children with design layout data, in insertion order.
func (c *Container) participants() []*child {
	out := make([]*child, 0, len(c.children))
	for _, ch := range c.children {
		if ch.spec != nil {
			out = append(out, ch)
		}
	}
	return out
}

// Measure runs the measurement half of a pass: resolve scales, place every
// participating child and derive the container's concrete size. The pass is
// kept for the following Layout call.
func (c *Container) Measure(w, h Constraint) Measurement {
	res := Resolve(w, h, c.design)
	parts := c.participants()

	m := Measurement{
		Width:    w.normalize(),
		Height:   h.normalize(),
		Scales:   res.Scales,
		Children: make([]ChildSize, 0, len(parts)),
	}
	rects := make([]Rect, 0, len(parts))
	byID := make(map[string]Rect, len(parts))

	for _, ch := range parts {
		r := Place(*ch.spec, res.Scales)
		rects = append(rects, r)
		byID[ch.id] = r
		m.Children = append(m.Children, ChildSize{ID: ch.id, Width: r.Width(), Height: r.Height()})
	}

	m.Extent = Aggregate(rects)
	m.Size = res.Size(m.Extent)

	c.last = &pass{measurement: m, rects: byID}
	return m
}

// LastMeasurement returns the most recent measurement. ok is false when no
// pass has run since the last mutation.
func (c *Container) LastMeasurement() (m Measurement, ok bool) {
	if c.last == nil {
		return Measurement{}, false
	}
	return c.last.measurement, true
}

// Layout runs the placement half of a pass and returns placements in
// back-to-front depth order. Rects are relative to the container's own origin,
// so the bounds only matter when no measurement is current: the container is
// then measured with Exact(right-left) × Exact(bottom-top) first.
func (c *Container) Layout(left, top, right, bottom int) []Placement {
	if c.last == nil {
		c.Measure(Exact(max(right-left, 0)), Exact(max(bottom-top, 0)))
	}

	parts := c.participants()
	layers := make([]Layer, len(parts))
	depths := make(map[string]float64, len(parts))
	for i, ch := range parts {
		layers[i] = Layer{ID: ch.id, Depth: ch.spec.Depth}
		depths[ch.id] = ch.spec.Depth
	}

	order := OrderByDepth(layers)
	placements := make([]Placement, len(order))
	for i, id := range order {
		placements[i] = Placement{
			ID:           id,
			Rect:         c.last.rects[id],
			Depth:        depths[id],
			Order:        i,
			BringToFront: true,
		}
	}
	return placements
}

// Pass runs Measure followed by Layout at the measured size.
func (c *Container) Pass(w, h Constraint) Result {
	m := c.Measure(w, h)
	return Result{
		Measurement: m,
		Placements:  c.Layout(0, 0, m.Size.Width, m.Size.Height),
	}
}
