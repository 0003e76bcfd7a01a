package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvaslayout/pkg/watcher"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    layoutFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [scene]",
		Short: "Re-run the layout whenever the scene file changes",
		Long: `Re-run the layout whenever the scene file changes.

The scene is laid out once at startup and again after every save. Invalid
intermediate edits are reported without stopping the watch. Press Ctrl+C to
stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], flags, debounce)
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period before re-running after a change")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, flags layoutFlags, debounce time.Duration) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.cache, flags.noCache, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	ctx = c.attachLogger(ctx)
	rerun := func(ctx context.Context) {
		if err := layoutOnce(ctx, runner, input, opts, flags.output); err != nil && !errors.Is(err, context.Canceled) {
			printError("%v", err)
		}
	}

	rerun(ctx)
	printInfo("Watching %s", input)
	printNextStep("Stop", "Ctrl+C")

	if err := watcher.Watch(ctx, input, debounce, rerun); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}
	printDetail("Stopped watching %s", input)
	return nil
}
