package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies one pass over a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
}

// LayoutKeyOpts are the pass inputs besides the scene itself.
type LayoutKeyOpts struct {
	Width  string `json:"width"`  // normalized width constraint
	Height string `json:"height"` // normalized height constraint
}

// layoutFormat is bumped whenever the encoded result changes shape, so stale
// entries are never decoded.
const layoutFormat = 1

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>" over the scene hash and constraints.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", layoutFormat, sceneHash, opts)
}

var _ Keyer = DefaultKeyer{}
