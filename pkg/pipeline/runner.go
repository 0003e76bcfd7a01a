package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/canvaslayout/pkg/cache"
	"github.com/matzehuels/canvaslayout/pkg/observability"
	"github.com/matzehuels/canvaslayout/pkg/scene"
)

// cacheKeyType labels layout entries in cache hooks.
const cacheKeyType = "layout"

// Runner executes layout passes with caching.
//
// The Runner holds no per-pass state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// cache.DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Run measures and lays out the scene under the given constraints.
// hit reports whether the result came from the cache. Cache failures are
// logged and never fail the pass.
func (r *Runner) Run(ctx context.Context, s *scene.Scene, opts Options) (res *scene.Result, hit bool, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)

	sceneHash, err := s.Hash()
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.LayoutKey(sceneHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, logger, key); ok {
			observability.Cache().OnCacheHit(ctx, cacheKeyType)
			logger.Debug("layout from cache", "scene", s.Name, "width", opts.Width, "height", opts.Height)
			return cached, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	res, err = r.pass(ctx, s, opts)
	if err != nil {
		return nil, false, err
	}
	logger.Info("layout pass",
		"scene", s.Name,
		"width", opts.Width,
		"height", opts.Height,
		"size", fmt.Sprintf("%dx%d", res.Size.Width, res.Size.Height),
		"children", len(res.Placements))

	r.store(ctx, logger, key, res)
	return res, false, nil
}

// RunMany runs one pass per options value in parallel. Results and hits are
// in input order. The first error cancels the remaining passes.
func (r *Runner) RunMany(ctx context.Context, s *scene.Scene, opts []Options) (results []*scene.Result, hits []bool, err error) {
	results = make([]*scene.Result, len(opts))
	hits = make([]bool, len(opts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, o := range opts {
		g.Go(func() error {
			res, hit, err := r.Run(ctx, s, o)
			if err != nil {
				return fmt.Errorf("size %d: %w", i+1, err)
			}
			results[i], hits[i] = res, hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return results, hits, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) pass(ctx context.Context, s *scene.Scene, opts Options) (res *scene.Result, err error) {
	start := time.Now()
	observability.Layout().OnPassStart(ctx, s.Name, opts.Width, opts.Height)
	defer func() {
		children := 0
		if res != nil {
			children = len(res.Placements)
		}
		observability.Layout().OnPassComplete(ctx, s.Name, children, time.Since(start), err)
	}()

	c, err := s.Container()
	if err != nil {
		return nil, err
	}
	w, h := opts.Constraints()
	return scene.NewResult(s.Name, uuid.NewString(), c.Pass(w, h)), nil
}

func (r *Runner) lookup(ctx context.Context, logger *log.Logger, key string) (*scene.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if errors.Is(err, cache.ErrCorrupt) {
		logger.Debug("discarding unreadable cache entry", "err", err)
		return nil, false
	}
	if err != nil {
		logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	res, err := scene.UnmarshalResult(data)
	if err != nil {
		logger.Debug("discarding unreadable cache entry", "err", fmt.Errorf("%w: %v", cache.ErrCorrupt, err))
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return res, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, key string, res *scene.Result) {
	data, err := scene.MarshalResult(res)
	if err != nil {
		logger.Warn("encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}
