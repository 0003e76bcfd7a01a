package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvaslayout/pkg/canvas"
	"github.com/matzehuels/canvaslayout/pkg/pipeline"
	"github.com/matzehuels/canvaslayout/pkg/scene"
)

// layoutFlags holds the flags shared by layout and watch.
type layoutFlags struct {
	width   string
	height  string
	sizes   []string
	output  string
	noCache bool
	cache   string
	refresh bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.width, "width", pipeline.DefaultConstraint, "width constraint: exact:<px>, atmost:<px> or unspecified")
	cmd.Flags().StringVar(&f.height, "height", pipeline.DefaultConstraint, "height constraint: exact:<px>, atmost:<px> or unspecified")
	cmd.Flags().StringArrayVar(&f.sizes, "size", nil, "constraint pair WxH, e.g. exact:200xatmost:100 (repeatable, overrides --width/--height)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the result JSON to this file")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.cache, "cache", "", "cache backend: none, file[:dir] or redis://host:port/db")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when a cached result exists")
}

// options expands the flags into one pipeline.Options per requested size.
func (f *layoutFlags) options() ([]pipeline.Options, error) {
	if len(f.sizes) == 0 {
		return []pipeline.Options{{Width: f.width, Height: f.height, Refresh: f.refresh}}, nil
	}
	opts := make([]pipeline.Options, 0, len(f.sizes))
	for _, s := range f.sizes {
		w, h, err := canvas.ParseConstraintPair(s)
		if err != nil {
			return nil, fmt.Errorf("--size %q: %w", s, err)
		}
		o := pipeline.NewOptions(w, h)
		o.Refresh = f.refresh
		opts = append(opts, o)
	}
	return opts, nil
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [scene]",
		Short: "Run a layout pass over a scene file",
		Long: `Run a layout pass over a scene file.

The scene is a TOML, YAML or JSON document describing the design size and the
children with their design boxes, depths and positioning modes. The pass
resolves the scales for the given constraints and prints every placed child
back-to-front.

Pass --size several times to lay out the same scene at multiple sizes in
parallel. Results are cached locally for faster subsequent runs.`,
		Example: `  canvaslayout layout scene.toml --width exact:1280 --height exact:720
  canvaslayout layout scene.yaml --size 1920x1080 --size atmost:800xauto -o out.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runLayout loads the scene, runs every requested pass and prints the results.
func (c *CLI) runLayout(ctx context.Context, input string, flags layoutFlags) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.cache, flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	return layoutOnce(c.attachLogger(ctx), runner, input, opts, flags.output)
}

// layoutOnce reads input and runs opts against it with the context's logger,
// printing each result and writing them to output when set.
func layoutOnce(ctx context.Context, runner *pipeline.Runner, input string, opts []pipeline.Options, output string) error {
	s, err := scene.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}

	logger := loggerFromContext(ctx)
	passOpts := make([]pipeline.Options, len(opts))
	for i, o := range opts {
		o.Logger = logger
		passOpts[i] = o
	}

	prog := newProgress(logger)
	results, hits, err := runner.RunMany(ctx, s, passOpts)
	if err != nil {
		return fmt.Errorf("layout %s: %w", input, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d size(s)", len(results)))

	printSuccess("Layout complete: %s", StyleTitle.Render(sceneLabel(s, input)))
	for i, res := range results {
		printStats(res, hits[i])
		printScales(res)
		writePlacements(os.Stdout, res)
	}

	if output != "" {
		if err := writeResults(output, results); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printFile(output)
	}
	return nil
}

// writeResults writes one result as an object and several as an array.
func writeResults(path string, results []*scene.Result) error {
	var (
		data []byte
		err  error
	)
	if len(results) == 1 {
		data, err = scene.MarshalResult(results[0])
	} else {
		data, err = json.MarshalIndent(results, "", "  ")
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func sceneLabel(s *scene.Scene, path string) string {
	if s.Name != "" {
		return s.Name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
