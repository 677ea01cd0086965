package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/interlinear/pkg/config"
	"github.com/matzehuels/interlinear/pkg/errors"
	"github.com/matzehuels/interlinear/pkg/pipeline"
	"github.com/matzehuels/interlinear/pkg/render/interlinear"
	"github.com/matzehuels/interlinear/pkg/tier"
)

// renderFlags holds the command-line flags of the render command. Option
// flags only override the config file when set explicitly.
type renderFlags struct {
	source  sourceFlags
	config  string
	output  string
	noCache bool
	refresh bool
	pick    bool

	formats   string
	tiers     []string
	reference string

	timeUnit   int64
	blockWidth int
	leftMargin int
	begin      int64
	end        int64

	wrap           bool
	showBoundaries bool
	showTimeLine   bool
	timeFormat     string
	alignment      string

	title        string
	header       string
	footer       string
	fragment     bool
	tokens       bool
	colorProfile string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Export annotation tiers as a time-aligned grid",
		Long: `Export annotation tiers as a time-aligned character grid.

Tiers are given with --tier NAME[:FLAGS], repeated in output order. FLAGS is a
comma-separated list of ref (reference tier), u (underline), b (bold) and
i (italic). Without --tier every tier of the document is rendered.

Options can also come from a TOML, YAML or JSON file via --config; flags given
on the command line override the file.

With a single format and no --output the result is written to stdout.
Rendered outputs are cached locally for faster subsequent runs.`,
		Example: `  interlinear render session.json --tier words:ref,u --tier gloss:i --time-line
  interlinear render session.json -f html,ansi -o out/session
  interlinear render --mongo-uri mongodb://localhost --mongo-document session-01 --pick`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, f, opts)
		},
	}

	f.register(cmd)
	return cmd
}

// register binds the render flags to cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	f.source.register(cmd)
	fs.StringVarP(&f.config, "config", "c", "", "render options file (.toml, .yaml, .json)")
	fs.StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached outputs and render again")
	fs.BoolVar(&f.pick, "pick", false, "choose tiers interactively")

	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): text (default), html, ansi, json (comma-separated)")
	fs.StringArrayVarP(&f.tiers, "tier", "t", nil, "tier to render as NAME[:ref,u,b,i] (repeatable, in output order)")
	fs.StringVar(&f.reference, "reference", "", "reference tier whose boundaries drive segmentation")

	fs.Int64Var(&f.timeUnit, "time-unit", pipeline.DefaultTimeUnit, "milliseconds per character column")
	fs.IntVar(&f.blockWidth, "block-width", pipeline.DefaultBlockWidth, "nominal grid columns per block")
	fs.IntVar(&f.leftMargin, "left-margin", pipeline.DefaultLeftMargin, "width of the tier label column")
	fs.Int64Var(&f.begin, "begin", 0, "export range start in milliseconds")
	fs.Int64Var(&f.end, "end", 0, "export range end in milliseconds (0 = end of document)")

	fs.BoolVar(&f.wrap, "wrap", false, "cut reference annotations longer than one block")
	fs.BoolVar(&f.showBoundaries, "boundaries", false, "mark annotation boundaries with [ and ]")
	fs.BoolVar(&f.showTimeLine, "time-line", false, "add a time ruler below each block")
	fs.StringVar(&f.timeFormat, "time-format", pipeline.DefaultTimeFormat, "ruler time format: hhmmssms, ssms, ms, pal, ntsc")
	fs.StringVar(&f.alignment, "align", pipeline.DefaultAlignment, "alignment of fitted text: left, right")

	fs.StringVar(&f.title, "title", "", "HTML page title (default: document name)")
	fs.StringVar(&f.header, "header", "", "text placed above the grid (HTML)")
	fs.StringVar(&f.footer, "footer", "", "text placed below the grid (HTML)")
	fs.BoolVar(&f.fragment, "fragment", false, "emit an HTML fragment without the page wrapper")
	fs.BoolVar(&f.tokens, "tokens", false, "include raw tokens in JSON output")
	fs.StringVar(&f.colorProfile, "color-profile", pipeline.DefaultColorProfile, "ANSI color profile: ascii, ansi, ansi256, truecolor")
}

// options builds the pipeline options from the config file and the flags
// that were set explicitly.
func (f *renderFlags) options(fs *pflag.FlagSet) (pipeline.Options, error) {
	var opts pipeline.Options
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if fs.Changed("tier") {
		tiers, err := parseTierSpecs(f.tiers)
		if err != nil {
			return opts, err
		}
		opts.Tiers = tiers
	}
	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("reference", func() { opts.ReferenceTier = f.reference })
	set("time-unit", func() { opts.TimeUnit = f.timeUnit })
	set("block-width", func() { opts.BlockWidth = f.blockWidth })
	set("left-margin", func() { opts.LeftMargin = f.leftMargin })
	set("begin", func() { opts.Begin = f.begin })
	set("end", func() { opts.End = f.end })
	set("wrap", func() { opts.Wrap = f.wrap })
	set("boundaries", func() { opts.ShowBoundaries = f.showBoundaries })
	set("time-line", func() { opts.ShowTimeLine = f.showTimeLine })
	set("time-format", func() { opts.TimeFormat = f.timeFormat })
	set("align", func() { opts.Alignment = f.alignment })
	set("title", func() { opts.Title = f.title })
	set("header", func() { opts.Header = f.header })
	set("footer", func() { opts.Footer = f.footer })
	set("fragment", func() { opts.Fragment = f.fragment })
	set("tokens", func() { opts.Tokens = f.tokens })
	set("color-profile", func() { opts.ColorProfile = f.colorProfile })
	opts.Refresh = f.refresh

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseTierSpecs parses NAME[:FLAGS] tier arguments.
func parseTierSpecs(specs []string) ([]interlinear.TierSetting, error) {
	out := make([]interlinear.TierSetting, 0, len(specs))
	for _, spec := range specs {
		name, flags, _ := strings.Cut(spec, ":")
		s := interlinear.TierSetting{Name: strings.TrimSpace(name)}
		if err := errors.ValidateTierName(s.Name); err != nil {
			return nil, err
		}
		for _, fl := range strings.Split(flags, ",") {
			switch strings.TrimSpace(fl) {
			case "":
			case "ref", "reference":
				s.Reference = true
			case "u", "underline":
				s.Underline = true
			case "b", "bold":
				s.Bold = true
			case "i", "italic":
				s.Italic = true
			default:
				return nil, errors.New(errors.ErrCodeInvalidInput, "tier %q: unknown flag %q (must be ref, u, b or i)", s.Name, fl)
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// runRender loads the document, optionally lets the user pick tiers and runs
// the pipeline.
func (c *CLI) runRender(ctx context.Context, args []string, f renderFlags, opts pipeline.Options) error {
	ctx = withLogger(ctx, c.Logger)

	prog := newProgress(c.Logger)
	doc, err := c.loadDocument(ctx, args, f.source, f.noCache)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	prog.done("Loaded document", "name", doc.Name, "tiers", doc.TierCount(), "annotations", doc.AnnotationCount())

	if f.pick {
		tiers, ok, err := pickTiers(doc, opts.Tiers)
		if err != nil {
			return err
		}
		if !ok {
			printInfo("Cancelled")
			return nil
		}
		opts.Tiers = tiers
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Exporting...")
	spinner.Start()
	result, err := runner.Execute(ctx, doc, opts)
	if err = stopExport(spinner, doc.Name, err); err != nil {
		return err
	}

	if result.Body != nil && result.Stats.BlockCount == 0 {
		printWarning("No blocks in range [%d, %d)", opts.Begin, opts.End)
	}

	if f.output == "" && len(opts.Formats) == 1 {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, outputBase(f.output, args, doc))
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.TierCount, result.Stats.BlockCount, result.CacheInfo.RenderHit)
	for i, format := range opts.Formats {
		if format == pipeline.FormatHTML {
			printNextStep("Open in a browser", paths[i])
		}
	}
	return nil
}

// stopExport stops the export spinner and reports how the export ended. A
// cancelled export returns err unchanged.
func stopExport(s *Spinner, name string, err error) error {
	switch {
	case err == nil:
		s.StopWithSuccess("Exported " + name)
		return nil
	case s.Cancelled():
		s.Stop()
		printWarning("Export cancelled")
		return err
	default:
		s.StopWithError("Export failed")
		return fmt.Errorf("render: %w", err)
	}
}

// pickTiers runs the interactive tier picker. ok is false when the user quit
// without confirming.
func pickTiers(doc *tier.Document, preset []interlinear.TierSetting) ([]interlinear.TierSetting, bool, error) {
	final, err := tea.NewProgram(NewTierPickerModel(doc, preset), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return nil, false, fmt.Errorf("tier picker: %w", err)
	}
	m := final.(TierPickerModel)
	if !m.Confirmed {
		return nil, false, nil
	}
	return m.Settings(), true, nil
}

// outputBase returns the path outputs are written to, without extension.
func outputBase(output string, args []string, doc *tier.Document) string {
	if output != "" {
		ext := filepath.Ext(output)
		for _, known := range pipeline.Extensions {
			if ext == known {
				return strings.TrimSuffix(output, ext)
			}
		}
		return output
	}
	if len(args) > 0 {
		return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	return doc.Name
}

// writeArtifacts writes one file per format and returns the paths in format
// order. A single format is written to base plus its extension.
func writeArtifacts(artifacts map[string][]byte, formats []string, base string) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + pipeline.Extensions[format]
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
