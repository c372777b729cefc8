package cache

// Key types, used as key prefixes and observability labels.
const (
	KeyTypeLayout = "layout"
	KeyTypeRender = "render"
)

// LayoutKeyOpts are the inputs that change a computed layout.
type LayoutKeyOpts struct {
	Width      float64 `json:"w"`
	Height     float64 `json:"h"`
	Seed       int64   `json:"s"`
	Iterations int     `json:"i"`
	Physics    string  `json:"p,omitempty"` // hash of the simulation constants
}

// RenderKeyOpts are the inputs that change a rendered artifact.
type RenderKeyOpts struct {
	Format      string  `json:"f"`
	ShowWeights bool    `json:"sw"`
	Highlighted []int   `json:"hl,omitempty"`
	Scale       float64 `json:"sc,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the layout of a snapshot.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// RenderKey returns the key for an artifact rendered from a layout.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, graphHash, opts)
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey(KeyTypeRender, layoutHash, opts)
}
