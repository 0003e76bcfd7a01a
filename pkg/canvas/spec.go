package canvas

import (
	"strconv"
	"strings"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// DesignSize is the container's footprint in design units.
type DesignSize struct {
	Width, Height int
}

// Validate reports an INVALID_CONFIGURATION error for negative dimensions.
func (d DesignSize) Validate() error {
	return clerrors.ValidateDesignSize(d.Width, d.Height)
}

func (d DesignSize) transpose() DesignSize {
	return DesignSize{Width: d.Height, Height: d.Width}
}

// ScalingMode selects the window a child axis is scaled against.
type ScalingMode int

const (
	// VirtualDesign scales with the uniform virtual scale and, for positions,
	// offsets by the virtual window padding.
	VirtualDesign ScalingMode = 0
	// StretchDesign scales with the per-axis stretch scale and ignores padding.
	StretchDesign ScalingMode = 1
)

// Valid reports whether m is a recognized mode.
func (m ScalingMode) Valid() bool {
	return m == VirtualDesign || m == StretchDesign
}

func (m ScalingMode) String() string {
	switch m {
	case VirtualDesign:
		return "virtual"
	case StretchDesign:
		return "stretch"
	default:
		return "ScalingMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseScalingMode accepts "virtual"/"0" and "stretch"/"1", case-insensitive.
// The empty string is VirtualDesign, the default for every unset axis.
func ParseScalingMode(s string) (ScalingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "virtual", "0":
		return VirtualDesign, nil
	case "stretch", "1":
		return StretchDesign, nil
	default:
		return 0, clerrors.New(clerrors.ErrCodeInvalidConfiguration,
			"unknown scaling mode %q (must be 'virtual' or 'stretch')", s)
	}
}

// ChildSpec is a child's design-space geometry and scaling choices.
// The zero value is a zero-sized child at the origin at depth 0 with every
// axis in VirtualDesign mode.
type ChildSpec struct {
	X, Y          int
	Width, Height int
	Depth         float64

	WidthMode  ScalingMode
	HeightMode ScalingMode
	XMode      ScalingMode
	YMode      ScalingMode
}

// Validate checks sizes, depth and every scaling mode.
func (s ChildSpec) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return clerrors.New(clerrors.ErrCodeInvalidConfiguration,
			"child design size must be >= 0, got %dx%d", s.Width, s.Height)
	}
	if err := clerrors.ValidateDepth(s.Depth); err != nil {
		return err
	}
	modes := [...]struct {
		name string
		mode ScalingMode
	}{
		{"width", s.WidthMode},
		{"height", s.HeightMode},
		{"x", s.XMode},
		{"y", s.YMode},
	}
	for _, m := range modes {
		if !m.mode.Valid() {
			return clerrors.New(clerrors.ErrCodeInvalidConfiguration,
				"unknown %s scaling mode %d", m.name, int(m.mode))
		}
	}
	return nil
}
