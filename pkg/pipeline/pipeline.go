// Package pipeline runs the heatflow render pipeline shared by the CLI and
// the HTTP server.
//
// # Stages
//
//  1. Parse: decode and validate a definition (TOML, YAML or JSON)
//  2. Build: turn the node chain into a configured diagram
//  3. Render: write the diagram in each requested format
//
// Rendered artifacts are cached by the hash of the definition bytes plus
// every option that affects output, so re-rendering an unchanged file is
// a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Definition:       data,
//	    DefinitionFormat: io.FormatTOML,
//	    Formats:          []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	stdio "io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/heatflow/pkg/cache"
	"github.com/matzehuels/heatflow/pkg/core/diagram"
	"github.com/matzehuels/heatflow/pkg/core/render/sink"
	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the output width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultMargin is the padding per axis as a fraction of the extent.
	DefaultMargin = sink.DefaultMargin

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = sink.DefaultScale

	// MaxScale bounds the PNG resolution multiplier.
	MaxScale = sink.MaxScale

	// MaxWidth bounds the requested width.
	MaxWidth = 10000

	// MaxDefinitionSize bounds definition input in bytes.
	MaxDefinitionSize = 1 << 20
)

// Visualization types.
const (
	// VizSchematic is the routed heat-pump schematic.
	VizSchematic = "schematic"
	// VizNodelink is the graphviz overview of the chain.
	VizNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizSchematic

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizSchematic: true,
	VizNodelink:  true,
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run. The JSON form is accepted by the
// server as query parameters.
type Options struct {
	// Input: either raw definition bytes or a path to load them from.
	Definition       []byte    `json:"-"`
	DefinitionFormat io.Format `json:"definition_format,omitempty"`
	Path             string    `json:"path,omitempty"`

	// Build options
	Policy    string  `json:"policy,omitempty"`
	NoCorners bool    `json:"no_corners,omitempty"`
	Seam      float64 `json:"seam,omitempty"`

	// Render options
	VizType    string   `json:"viz_type,omitempty"`
	Formats    []string `json:"formats,omitempty"`
	Width      int      `json:"width,omitempty"`
	Margin     *float64 `json:"margin,omitempty"` // nil means DefaultMargin; 0 is a tight frame
	Scale      float64  `json:"scale,omitempty"`
	Title      string   `json:"title,omitempty"`
	Background string   `json:"background,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// validated tracks whether Validate has succeeded.
	validated bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	Definition     *io.Definition
	DefinitionHash string
	Diagram        *diagram.Diagram

	// Unmatched lists connection overrides that named no adjacent pair.
	Unmatched []diagram.ConnKey

	// Artifacts maps format to rendered bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	ParseTime       time.Duration
	BuildTime       time.Duration
	RenderTime      time.Duration
}

// CacheInfo reports which formats were served from the cache.
type CacheInfo struct {
	RenderHit bool     // every requested format came from cache
	Hits      []string // formats served from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: schematic, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks and
// dropping duplicates. An empty string yields nil.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Margin == nil {
		o.Margin = Float64(DefaultMargin)
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every option. Once it has
// succeeded, later calls return nil immediately.
func (o *Options) Validate() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()

	if len(o.Definition) == 0 && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "definition or path is required")
	}
	if len(o.Definition) > MaxDefinitionSize {
		return errors.New(errors.ErrCodeInvalidInput, "definition too large (max %d bytes)", MaxDefinitionSize)
	}
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width > MaxWidth {
		return errors.New(errors.ErrCodeInvalidInput, "width %d exceeds maximum %d", o.Width, MaxWidth)
	}
	if m := *o.Margin; m < 0 || m >= 1 || math.IsNaN(m) {
		return errors.New(errors.ErrCodeInvalidInput, "margin %g must be in [0, 1)", m)
	}
	if o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g exceeds maximum %g", o.Scale, MaxScale)
	}
	if o.Background != "" && !sink.ValidColor(o.Background) {
		return errors.New(errors.ErrCodeInvalidInput, "background %q is not a color name or #rrggbb", o.Background)
	}
	if o.Seam < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "seam %g must not be negative", o.Seam)
	}
	if _, err := diagram.ParsePolicy(o.Policy); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// MarginValue returns the margin, or DefaultMargin when unset.
func (o *Options) MarginValue() float64 {
	if o.Margin == nil {
		return DefaultMargin
	}
	return *o.Margin
}

// Float64 returns a pointer to v, for optional fields such as Margin.
func Float64(v float64) *float64 { return &v }

// IsNodelink reports whether this run renders the graphviz overview.
func (o *Options) IsNodelink() bool { return o.VizType == VizNodelink }

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		VizType:    o.VizType,
		Width:      o.Width,
		Margin:     o.MarginValue(),
		Scale:      o.Scale,
		Policy:     o.Policy,
		NoCorners:  o.NoCorners,
		Seam:       o.Seam,
		Title:      o.Title,
		Background: o.Background,
		Detailed:   o.Detailed,
	}
}

// readDefinition returns the definition bytes and format, loading Path
// when no bytes were supplied.
func (o *Options) readDefinition() ([]byte, io.Format, error) {
	if len(o.Definition) > 0 {
		f := o.DefinitionFormat
		if f == "" {
			f = io.FormatJSON
		}
		return o.Definition, f, nil
	}
	f, err := io.FormatFromPath(o.Path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(o.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", o.Path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", o.Path)
	}
	if len(data) > MaxDefinitionSize {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "definition %s too large (max %d bytes)", o.Path, MaxDefinitionSize)
	}
	return data, f, nil
}
