package cache

// ArtifactKeyOpts holds every render setting that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	VizType    string  `json:"viz_type"`
	Width      int     `json:"width"`
	Margin     float64 `json:"margin"`
	Scale      float64 `json:"scale"`
	Policy     string  `json:"policy"`
	NoCorners  bool    `json:"no_corners"`
	Seam       float64 `json:"seam"`
	Title      string  `json:"title"`
	Background string  `json:"background"`
	Detailed   bool    `json:"detailed"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered format of a definition.
	ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(definitionHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", definitionHash, opts)
}
