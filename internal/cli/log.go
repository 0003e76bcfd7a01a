// Package cli implements the canvaslayout command-line interface.
//
// The commands read scene documents (TOML, YAML or JSON), run layout passes
// through the pipeline runner and print the resulting placements. The CLI
// is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Run one or more layout passes over a scene file
//   - watch: Re-run the layout whenever the scene file changes
//   - serve: Expose layout passes over HTTP
//   - cache: Manage the layout result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so long-running callbacks log consistently.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Laid out 3 sizes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// attachLogger attaches the CLI logger unless ctx already carries one.
func (c *CLI) attachLogger(ctx context.Context) context.Context {
	if _, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return ctx
	}
	return withLogger(ctx, c.Logger)
}

// loggerFromContext retrieves the logger from ctx, falling back to log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
