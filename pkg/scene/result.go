package scene

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/canvaslayout/pkg/canvas"
	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Result is the export format of one layout pass.
type Result struct {
	Scene  string `json:"scene,omitempty"`
	PassID string `json:"pass_id"`

	// Width and Height are the constraints in canvas.ParseConstraint form.
	Width  string `json:"width"`
	Height string `json:"height"`

	Size   Size   `json:"size"`
	Extent Size   `json:"extent"`
	Scales Scales `json:"scales"`

	// Placements are in back-to-front order; Order is the index.
	Placements []Placement `json:"placements"`
}

// Size is a pixel size.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Scales mirrors canvas.ScaleSet.
type Scales struct {
	StretchX float64 `json:"stretch_x"`
	StretchY float64 `json:"stretch_y"`
	VirtualX float64 `json:"virtual_x"`
	VirtualY float64 `json:"virtual_y"`
	PaddingX int     `json:"padding_x"`
	PaddingY int     `json:"padding_y"`
}

// Placement is one child's rect relative to the container.
type Placement struct {
	ID     string  `json:"id"`
	Order  int     `json:"order"`
	Depth  float64 `json:"depth"`
	Left   int     `json:"left"`
	Top    int     `json:"top"`
	Right  int     `json:"right"`
	Bottom int     `json:"bottom"`
}

// Width returns the horizontal span of the placement.
func (p Placement) Width() int { return p.Right - p.Left }

// Height returns the vertical span of the placement.
func (p Placement) Height() int { return p.Bottom - p.Top }

// Rect returns the placement as a canvas rect.
func (p Placement) Rect() canvas.Rect {
	return canvas.Rect{Left: p.Left, Top: p.Top, Right: p.Right, Bottom: p.Bottom}
}

// NewResult converts a canvas pass into its export form.
func NewResult(name, passID string, res canvas.Result) *Result {
	out := &Result{
		Scene:  name,
		PassID: passID,
		Width:  res.Width.String(),
		Height: res.Height.String(),
		Size:   Size{Width: res.Size.Width, Height: res.Size.Height},
		Extent: Size{Width: res.Extent.Width, Height: res.Extent.Height},
		Scales: Scales{
			StretchX: res.Scales.StretchX,
			StretchY: res.Scales.StretchY,
			VirtualX: res.Scales.VirtualX,
			VirtualY: res.Scales.VirtualY,
			PaddingX: res.Scales.PaddingX,
			PaddingY: res.Scales.PaddingY,
		},
		Placements: make([]Placement, len(res.Placements)),
	}
	for i, p := range res.Placements {
		out.Placements[i] = Placement{
			ID:     p.ID,
			Order:  p.Order,
			Depth:  p.Depth,
			Left:   p.Rect.Left,
			Top:    p.Rect.Top,
			Right:  p.Rect.Right,
			Bottom: p.Rect.Bottom,
		}
	}
	return out
}

// MarshalResult encodes a result as indented JSON.
func MarshalResult(r *Result) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return data, nil
}

// UnmarshalResult decodes a result produced by MarshalResult.
func UnmarshalResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, clerrors.Wrap(clerrors.ErrCodeInvalidFormat, err, "decode result")
	}
	return &r, nil
}
