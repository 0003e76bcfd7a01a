package canvas

import (
	"fmt"
	"strconv"
	"strings"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Mode is how a single axis of the container is constrained.
type Mode uint8

const (
	// ModeUnspecified places no bound on the axis.
	ModeUnspecified Mode = iota
	// ModeExact requires the axis to be exactly Pixels long.
	ModeExact
	// ModeAtMost allows the axis to be at most Pixels long.
	ModeAtMost

	modeCount
)

// String returns the lower-case mode name used in constraint strings.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeAtMost:
		return "atmost"
	case ModeUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Constraint is the sizing input for one axis of one pass.
// The zero value is Unspecified.
type Constraint struct {
	Mode   Mode
	Pixels int
}

// Exact returns a constraint that fixes the axis at px pixels.
func Exact(px int) Constraint { return Constraint{Mode: ModeExact, Pixels: px} }

// AtMost returns a constraint that caps the axis at px pixels.
func AtMost(px int) Constraint { return Constraint{Mode: ModeAtMost, Pixels: px} }

// Unspecified returns a constraint with no bound.
func Unspecified() Constraint { return Constraint{} }

// String formats the constraint so that ParseConstraint reads it back.
func (c Constraint) String() string {
	switch c.Mode {
	case ModeExact, ModeAtMost:
		return c.Mode.String() + ":" + strconv.Itoa(c.Pixels)
	default:
		return ModeUnspecified.String()
	}
}

// normalize maps unknown modes to Unspecified and clamps negative pixels so
// the resolver table can be indexed safely.
func (c Constraint) normalize() Constraint {
	if c.Mode >= modeCount {
		return Unspecified()
	}
	if c.Mode == ModeUnspecified {
		return Constraint{}
	}
	if c.Pixels < 0 {
		c.Pixels = 0
	}
	return c
}

// ParseConstraint parses a constraint string.
//
// Accepted forms (case-insensitive):
//   - "exact:200" or "200": Exact(200)
//   - "atmost:200" or "max:200": AtMost(200)
//   - "unspecified", "auto" or "": Unspecified
func ParseConstraint(s string) (Constraint, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "unspecified", "auto":
		return Unspecified(), nil
	}

	kind, value, found := strings.Cut(s, ":")
	if !found {
		kind, value = "exact", s
	}

	px, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return Constraint{}, clerrors.New(clerrors.ErrCodeInvalidConstraint, "invalid pixel value in constraint %q", s)
	}
	if px < 0 {
		return Constraint{}, clerrors.New(clerrors.ErrCodeInvalidConstraint, "constraint pixels must be >= 0, got %d", px)
	}

	switch strings.TrimSpace(kind) {
	case "exact":
		return Exact(px), nil
	case "atmost", "max":
		return AtMost(px), nil
	default:
		return Constraint{}, clerrors.New(clerrors.ErrCodeInvalidConstraint,
			"unknown constraint mode %q (must be 'exact', 'atmost' or 'unspecified')", kind)
	}
}

// ParseConstraintPair parses "<width>x<height>" or "<width>,<height>", for
// example "exact:200xatmost:100", "200x100" or "auto,max:300".
func ParseConstraintPair(s string) (width, height Constraint, err error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if ws, hs, found := strings.Cut(norm, ","); found {
		if width, err = ParseConstraint(ws); err != nil {
			return Constraint{}, Constraint{}, err
		}
		if height, err = ParseConstraint(hs); err != nil {
			return Constraint{}, Constraint{}, err
		}
		return width, height, nil
	}

	// "exact" itself contains an x, so try every separator position.
	for i := 0; i < len(norm); i++ {
		if norm[i] != 'x' || i == 0 || i == len(norm)-1 {
			continue
		}
		w, werr := ParseConstraint(norm[:i])
		h, herr := ParseConstraint(norm[i+1:])
		if werr == nil && herr == nil {
			return w, h, nil
		}
	}
	return Constraint{}, Constraint{}, clerrors.New(clerrors.ErrCodeInvalidConstraint,
		"constraint pair %q must have the form <width>x<height>", s)
}
