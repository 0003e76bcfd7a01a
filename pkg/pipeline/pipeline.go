// Package pipeline runs layout passes over scenes with caching.
//
// The CLI, the watcher and the HTTP service all go through a [Runner] so
// that every entry point validates options, derives cache keys and reports
// events the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, hit, err := runner.Run(ctx, sc, pipeline.Options{
//	    Width:  "exact:1280",
//	    Height: "atmost:720",
//	})
//
// Several sizes of one scene run in parallel with [Runner.RunMany].
package pipeline

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvaslayout/pkg/cache"
	"github.com/matzehuels/canvaslayout/pkg/canvas"
)

// DefaultConstraint is used for an unset width or height.
const DefaultConstraint = "unspecified"

// Options configures one layout pass.
// Width and Height are constraint strings accepted by canvas.ParseConstraint.
type Options struct {
	Width   string `json:"width,omitempty"`
	Height  string `json:"height,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // skip the cache lookup and overwrite the entry

	// Logger overrides the runner's logger for this pass.
	Logger *log.Logger `json:"-"`

	width, height canvas.Constraint
	validated     bool
}

// NewOptions builds options from parsed constraints.
func NewOptions(w, h canvas.Constraint) Options {
	return Options{Width: w.String(), Height: h.String()}
}

// ValidateAndSetDefaults parses both constraints and normalizes the strings
// to their canonical form so equal constraints share a cache key.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Width == "" {
		o.Width = DefaultConstraint
	}
	if o.Height == "" {
		o.Height = DefaultConstraint
	}

	w, err := canvas.ParseConstraint(o.Width)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	h, err := canvas.ParseConstraint(o.Height)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}

	o.width, o.height = w, h
	o.Width, o.Height = w.String(), h.String()
	o.validated = true
	return nil
}

// Constraints returns the parsed constraints. Call ValidateAndSetDefaults
// first.
func (o *Options) Constraints() (width, height canvas.Constraint) {
	return o.width, o.height
}

// LayoutKeyOpts returns the cache key options for this pass.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Width: o.Width, Height: o.Height}
}
