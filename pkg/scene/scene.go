package scene

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/canvaslayout/pkg/canvas"
	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Scene is the document form of a canvas container.
type Scene struct {
	Name         string  `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	DesignWidth  int     `json:"design_width" toml:"design_width" yaml:"design_width"`
	DesignHeight int     `json:"design_height" toml:"design_height" yaml:"design_height"`
	Children     []Child `json:"children" toml:"children" yaml:"children"`
}

// Child is one child of a scene. Scaling modes are strings accepted by
// canvas.ParseScalingMode; empty means virtual.
type Child struct {
	ID     string  `json:"id" toml:"id" yaml:"id"`
	X      int     `json:"x,omitempty" toml:"x,omitempty" yaml:"x,omitempty"`
	Y      int     `json:"y,omitempty" toml:"y,omitempty" yaml:"y,omitempty"`
	Width  int     `json:"width,omitempty" toml:"width,omitempty" yaml:"width,omitempty"`
	Height int     `json:"height,omitempty" toml:"height,omitempty" yaml:"height,omitempty"`
	Depth  float64 `json:"depth,omitempty" toml:"depth,omitempty" yaml:"depth,omitempty"`

	WidthMode  string `json:"width_mode,omitempty" toml:"width_mode,omitempty" yaml:"width_mode,omitempty"`
	HeightMode string `json:"height_mode,omitempty" toml:"height_mode,omitempty" yaml:"height_mode,omitempty"`
	XMode      string `json:"x_mode,omitempty" toml:"x_mode,omitempty" yaml:"x_mode,omitempty"`
	YMode      string `json:"y_mode,omitempty" toml:"y_mode,omitempty" yaml:"y_mode,omitempty"`

	// Unmanaged children carry no design layout data and never take part in
	// a pass.
	Unmanaged bool `json:"unmanaged,omitempty" toml:"unmanaged,omitempty" yaml:"unmanaged,omitempty"`
}

// Design returns the scene's design size.
func (s *Scene) Design() canvas.DesignSize {
	return canvas.DesignSize{Width: s.DesignWidth, Height: s.DesignHeight}
}

// Spec converts the child to a canvas spec.
func (c Child) Spec() (canvas.ChildSpec, error) {
	// Documents must survive a JSON round trip, which cannot carry infinities.
	if math.IsInf(c.Depth, 0) {
		return canvas.ChildSpec{}, clerrors.New(clerrors.ErrCodeInvalidConfiguration,
			"depth must be finite, got %v", c.Depth)
	}

	spec := canvas.ChildSpec{
		X: c.X, Y: c.Y,
		Width: c.Width, Height: c.Height,
		Depth: c.Depth,
	}
	modes := []struct {
		name string
		raw  string
		dst  *canvas.ScalingMode
	}{
		{"width_mode", c.WidthMode, &spec.WidthMode},
		{"height_mode", c.HeightMode, &spec.HeightMode},
		{"x_mode", c.XMode, &spec.XMode},
		{"y_mode", c.YMode, &spec.YMode},
	}
	for _, m := range modes {
		mode, err := canvas.ParseScalingMode(m.raw)
		if err != nil {
			return canvas.ChildSpec{}, fmt.Errorf("%s: %w", m.name, err)
		}
		*m.dst = mode
	}
	return spec, spec.Validate()
}

// Container builds a validated container holding the scene's children in
// document order.
func (s *Scene) Container() (*canvas.Container, error) {
	c, err := canvas.New(s.Design())
	if err != nil {
		return nil, err
	}
	for _, ch := range s.Children {
		if ch.Unmanaged {
			if err := c.Add(ch.ID, nil); err != nil {
				return nil, err
			}
			continue
		}
		spec, err := ch.Spec()
		if err != nil {
			return nil, fmt.Errorf("child %q: %w", ch.ID, err)
		}
		if err := c.Add(ch.ID, &spec); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Validate reports the first configuration error in the scene.
func (s *Scene) Validate() error {
	_, err := s.Container()
	return err
}

// Hash returns the SHA-256 of the scene's canonical JSON encoding.
// Equal scenes hash equally regardless of the format they were read from.
func (s *Scene) Hash() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", clerrors.Wrap(clerrors.ErrCodeInvalidFormat, err, "encode scene")
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
