package cli

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heatflow/pkg/errors"
	"github.com/matzehuels/heatflow/pkg/pipeline"
)

// renderOpts holds the render command flags.
type renderOpts struct {
	output     string
	formats    string
	vizType    string
	width      int
	margin     float64
	scale      float64
	policy     string
	noCorners  bool
	seam       float64
	title      string
	background string
	detailed   bool
	noCache    bool
	refresh    bool
}

func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		vizType: pipeline.VizSchematic,
		width:   pipeline.DefaultWidth,
		margin:  pipeline.DefaultMargin,
		scale:   pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a definition file",
		Long: `Render a TOML, YAML or JSON definition as a schematic (default) or a
graphviz overview. With several formats, outputs are written next to each
other as <base>.<format>.`,
		Example: `  heatflow render plant.toml
  heatflow render plant.yaml -f svg,png -o out/plant
  heatflow render plant.toml -t nodelink --detailed -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (one format) or base path (several)")
	f.StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot")
	f.StringVarP(&opts.vizType, "type", "t", opts.vizType, "visualization: schematic or nodelink")
	f.IntVar(&opts.width, "width", opts.width, "output width in pixels")
	f.Float64Var(&opts.margin, "margin", opts.margin, "padding per axis as a fraction of the extent")
	f.Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	f.StringVar(&opts.policy, "policy", "", "default connection kinds: normal or preset (overrides the file)")
	f.BoolVar(&opts.noCorners, "no-corners", false, "omit corner labels")
	f.Float64Var(&opts.seam, "seam", 0, "extend connector ends toward their nodes by this many plot units")
	f.StringVar(&opts.title, "title", "", "document title (defaults to the definition title)")
	f.StringVar(&opts.background, "background", "", "background color, e.g. white or #f0f0f0")
	f.BoolVar(&opts.detailed, "detailed", false, "include corner labels in nodelink output")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	f.BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")

	return cmd
}

// applyConfig fills flags the user did not set from the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *renderOpts) {
	flags := cmd.Flags()
	if !flags.Changed("width") && c.Config.Width > 0 {
		opts.width = c.Config.Width
	}
	if !flags.Changed("margin") && c.Config.Margin > 0 {
		opts.margin = c.Config.Margin
	}
	if !flags.Changed("format") && len(c.Config.Formats) > 0 {
		opts.formats = strings.Join(c.Config.Formats, ",")
	}
	if !flags.Changed("policy") && c.Config.Policy != "" {
		opts.policy = c.Config.Policy
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, pipeline.Options{
		Path:       input,
		VizType:    opts.vizType,
		Formats:    pipeline.ParseFormats(opts.formats),
		Width:      opts.width,
		Margin:     pipeline.Float64(opts.margin),
		Scale:      opts.scale,
		Policy:     opts.policy,
		NoCorners:  opts.noCorners,
		Seam:       opts.seam,
		Title:      opts.title,
		Background: opts.background,
		Detailed:   opts.detailed,
		Refresh:    opts.refresh,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, sortedFormats(res.Artifacts))
	for _, format := range sortedFormats(res.Artifacts) {
		if err := writeArtifact(paths[format], res.Artifacts[format]); err != nil {
			return err
		}
	}
	prog.done("render complete", "file", input)

	printSuccess("Rendered %s", input)
	printStats(res.Stats.NodeCount, res.Stats.ConnectionCount, res.CacheInfo.RenderHit)
	for _, format := range sortedFormats(res.Artifacts) {
		printFile(paths[format])
	}
	for _, k := range res.Unmatched {
		printWarning("override %s → %s (%s) matches no adjacent pair", k.StartID, k.EndID, k.Side)
	}
	return nil
}

// outputPaths maps each format to its file. A single format uses output
// verbatim when given; otherwise files are named <base>.<format>.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = avoidInput(output, input, formats[0])
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = avoidInput(base+"."+f, input, f)
	}
	return paths
}

// avoidInput moves an artifact path that would overwrite the definition
// file to <base>.scene.<format>.
func avoidInput(path, input, format string) string {
	if input == "" || filepath.Clean(path) != filepath.Clean(input) {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".scene." + format
}

// basePath strips a known format extension from output, or the
// definition extension from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeArtifact(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func sortedFormats(artifacts map[string][]byte) []string {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
