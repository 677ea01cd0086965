package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/interlinear/pkg/pipeline"
	"github.com/matzehuels/interlinear/pkg/render/interlinear/layout"
	"github.com/matzehuels/interlinear/pkg/tier"
	"github.com/matzehuels/interlinear/pkg/timecode"
)

// tiersCommand creates the tiers command that lists the tiers of a document.
func (c *CLI) tiersCommand() *cobra.Command {
	var (
		src        sourceFlags
		timeFormat string
	)

	cmd := &cobra.Command{
		Use:   "tiers [document.json]",
		Short: "List the tiers of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tf, err := timecode.Parse(timeFormat)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			doc, err := c.loadDocument(ctx, args, src, false)
			if err != nil {
				return fmt.Errorf("load document: %w", err)
			}
			printTiers(os.Stdout, doc, tf)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&timeFormat, "time-format", pipeline.DefaultTimeFormat, "time format: hhmmssms, ssms, ms, pal, ntsc")
	return cmd
}

func printTiers(w io.Writer, doc *tier.Document, tf timecode.Format) {
	fmt.Fprintln(w, StyleTitle.Render(doc.Name))
	if doc.Media != "" {
		fmt.Fprintln(w, StyleDim.Render(doc.Media))
	}
	fmt.Fprintln(w, tierTable(doc, tf))
}

// blocksCommand creates the blocks command that prints the block ranges the
// segmenter computes, without rendering the grid.
func (c *CLI) blocksCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "blocks [document.json]",
		Short: "Print the block ranges of an export",
		Long: `Print the time ranges of the blocks an export would produce.

Accepts the same layout flags as render, which is useful to tune the block
width and reference tier before rendering a long document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd.Flags())
			if err != nil {
				return err
			}
			return c.runBlocks(cmd.Context(), args, f, opts)
		},
	}

	fs := cmd.Flags()
	f.source.register(cmd)
	fs.StringVarP(&f.config, "config", "c", "", "render options file (.toml, .yaml, .json)")
	fs.StringArrayVarP(&f.tiers, "tier", "t", nil, "tier as NAME[:ref,u,b,i] (repeatable)")
	fs.StringVar(&f.reference, "reference", "", "reference tier whose boundaries drive segmentation")
	fs.Int64Var(&f.timeUnit, "time-unit", pipeline.DefaultTimeUnit, "milliseconds per character column")
	fs.IntVar(&f.blockWidth, "block-width", pipeline.DefaultBlockWidth, "nominal grid columns per block")
	fs.Int64Var(&f.begin, "begin", 0, "export range start in milliseconds")
	fs.Int64Var(&f.end, "end", 0, "export range end in milliseconds (0 = end of document)")
	fs.BoolVar(&f.wrap, "wrap", false, "cut reference annotations longer than one block")
	fs.StringVar(&f.timeFormat, "time-format", pipeline.DefaultTimeFormat, "time format: hhmmssms, ssms, ms, pal, ntsc")
	return cmd
}

func (c *CLI) runBlocks(ctx context.Context, args []string, f renderFlags, opts pipeline.Options) error {
	ctx = withLogger(ctx, c.Logger)
	doc, err := c.loadDocument(ctx, args, f.source, false)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	blocks, err := pipeline.Blocks(doc, opts)
	if err != nil {
		return err
	}
	tf, err := timecode.Parse(opts.TimeFormat)
	if err != nil {
		return err
	}
	printBlocks(os.Stdout, blocks, opts.TimeUnit, tf)
	return nil
}

// printBlocks writes one line per block: index, range and column count.
func printBlocks(w io.Writer, blocks []layout.Block, unit int64, tf timecode.Format) {
	for i, b := range blocks {
		fmt.Fprintf(w, "%4d  %s  %s  %s\n",
			i+1,
			StyleValue.Render(timecode.Millis(b.Begin, tf)),
			StyleValue.Render(timecode.Millis(b.End, tf)),
			StyleNumber.Render(fmt.Sprintf("%d cols", b.Columns(unit))))
	}
}
