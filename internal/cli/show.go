package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/wellmap/wellmap/pkg/config"
	"github.com/wellmap/wellmap/pkg/errors"
	"github.com/wellmap/wellmap/pkg/pipeline"
	"github.com/wellmap/wellmap/pkg/platemap"
	"github.com/wellmap/wellmap/pkg/render"
)

type showOptions struct {
	output     string
	color      string
	dpi        int
	foreground bool
	noCache    bool
	refresh    bool
	preview    bool
}

func (c *CLI) showCommand() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "wellmap <toml> [<attr>...]",
		Short: "Visualize microplate layouts",
		Long: `Draw the plate layout described by a TOML file.

Each attribute is drawn as a heat map of every plate, with one color per
distinct value. If no attributes are given, every attribute with at least two
different values is shown. For large layouts, name the few attributes you
want to focus on.

Without --output the image opens in the system viewer and the terminal is
returned immediately (use --foreground to wait for the viewer instead).`,
		Example: `  wellmap plate.toml
  wellmap plate.toml drug conc -c viridis
  wellmap plate.toml -o $.svg`,
		Args:              cobra.MinimumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		ValidArgsFunction: completeLayoutArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), args[0], args[1:], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "write the image to `PATH` (format from the extension, $ is replaced by the layout name)")
	flags.StringVarP(&opts.color, "color", "c", "", "color scheme (default: the layout's meta.style.color, then "+platemap.DefaultColormap+")")
	flags.IntVar(&opts.dpi, "dpi", render.DefaultDPI, "resolution of raster images")
	flags.BoolVarP(&opts.foreground, "foreground", "f", false, "wait for the image viewer to exit (xdg-open on Linux returns at once)")
	flags.BoolVar(&opts.noCache, "no-cache", false, "neither read nor write the render cache")
	flags.BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached image exists")
	flags.BoolVarP(&opts.preview, "preview", "p", false, "show the layout in the terminal")

	cmd.RegisterFlagCompletionFunc("color", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return platemap.ColormapNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (c *CLI) runShow(ctx context.Context, path string, attrs []string, opts showOptions) error {
	logger := loggerFromContext(ctx)

	format := render.FormatPNG
	out := ""
	switch {
	case opts.output != "":
		out = outputPath(opts.output, path)
		if err := errors.ValidateOutputPath(out); err != nil {
			return err
		}
		f, err := render.FormatFromPath(out)
		if err != nil {
			return err
		}
		format = f
	case opts.preview:
		// The terminal preview draws from the figure, so skip raster encoding.
		format = render.FormatJSON
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, pipeline.Options{
		Path:    path,
		Attrs:   attrs,
		Color:   opts.color,
		Format:  format,
		DPI:     opts.dpi,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d %s", len(res.Attrs), plural("attribute", len(res.Attrs))))

	if opts.preview {
		if err := runPreview(ctx, res.Figure); err != nil {
			return err
		}
		if out == "" {
			return nil
		}
	}

	if out != "" {
		if err := os.WriteFile(out, res.Artifact, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", out)
		}
		printSuccess(c.Stdout, "Layout written to: %s", out)
		printStats(c.Stdout, res.Stats.NumWells, res.Stats.NumPlates, res.CacheHit)
		return nil
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s.png", appName, uuid.NewString()))
	if err := os.WriteFile(tmp, res.Artifact, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmp)
	}
	logger.Debug("opening viewer", "path", tmp, "foreground", opts.foreground)
	if opts.foreground && viewerWaits(c.goos) {
		defer os.Remove(tmp)
	}
	return c.openViewer(tmp, opts.foreground)
}

// outputPath replaces every "$" in pattern with the layout's file stem, so
// "$.svg" next to "plate.toml" becomes "plate.svg".
func outputPath(pattern, layoutPath string) string {
	base := filepath.Base(layoutPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(pattern, "$", stem)
}

// completeLayoutArgs completes the layout file, then the attributes it
// defines.
func completeLayoutArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	}
	tbl, _, err := config.Load(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, a := range tbl.Attrs {
		if strings.HasPrefix(a, toComplete) {
			names = append(names, a)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
