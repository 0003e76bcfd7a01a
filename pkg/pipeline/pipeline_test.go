package pipeline

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/canvaslayout/pkg/cache"
	"github.com/matzehuels/canvaslayout/pkg/canvas"
	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
	"github.com/matzehuels/canvaslayout/pkg/observability"
	"github.com/matzehuels/canvaslayout/pkg/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		Name:         "demo",
		DesignWidth:  100,
		DesignHeight: 100,
		Children: []scene.Child{
			{ID: "badge", X: 30, Y: 30, Width: 50, Height: 50, Depth: 15},
			{ID: "base", Width: 50, Height: 50},
		},
	}
}

func testRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantWidth  string
		wantHeight string
		wantErr    bool
	}{
		{"defaults", Options{}, "unspecified", "unspecified", false},
		{"bare pixels", Options{Width: "200", Height: "max:100"}, "exact:200", "atmost:100", false},
		{"auto", Options{Width: "AUTO", Height: "exact:5"}, "unspecified", "exact:5", false},
		{"bad width", Options{Width: "wide"}, "", "", true},
		{"negative height", Options{Height: "atmost:-3"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr {
				if !clerrors.Is(err, clerrors.ErrCodeInvalidConstraint) {
					t.Errorf("error = %v, want INVALID_CONSTRAINT", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.opts.Width != tt.wantWidth || tt.opts.Height != tt.wantHeight {
				t.Errorf("got %s x %s, want %s x %s", tt.opts.Width, tt.opts.Height, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestNewOptions(t *testing.T) {
	o := NewOptions(canvas.Exact(200), canvas.AtMost(100))
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	w, h := o.Constraints()
	if w != canvas.Exact(200) || h != canvas.AtMost(100) {
		t.Errorf("Constraints() = %v, %v", w, h)
	}
}

func TestRun(t *testing.T) {
	r := testRunner(t, nil)
	res, hit, err := r.Run(context.Background(), testScene(), Options{Width: "exact:200", Height: "exact:100"})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if hit {
		t.Error("null cache should never hit")
	}
	if res.Size != (scene.Size{Width: 200, Height: 100}) {
		t.Errorf("Size = %+v", res.Size)
	}
	if res.PassID == "" {
		t.Error("PassID should be set")
	}
	if len(res.Placements) != 2 || res.Placements[0].ID != "base" || res.Placements[1].ID != "badge" {
		t.Fatalf("placements = %+v", res.Placements)
	}
	badge := res.Placements[1]
	if badge.Rect() != (canvas.Rect{Left: 80, Top: 30, Right: 130, Bottom: 80}) {
		t.Errorf("badge rect = %v", badge.Rect())
	}
}

func TestRunCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	ctx := context.Background()
	s := testScene()

	first, hit, err := r.Run(ctx, s, Options{Width: "200", Height: "100"})
	if err != nil || hit {
		t.Fatalf("first Run() = hit %v, err %v", hit, err)
	}

	// Equivalent constraint spelling shares the entry.
	second, hit, err := r.Run(ctx, s, Options{Width: "exact:200", Height: "EXACT:100"})
	if err != nil || !hit {
		t.Fatalf("second Run() = hit %v, err %v; want cache hit", hit, err)
	}
	if second.PassID != first.PassID {
		t.Errorf("cached PassID = %s, want %s", second.PassID, first.PassID)
	}

	refreshed, hit, err := r.Run(ctx, s, Options{Width: "200", Height: "100", Refresh: true})
	if err != nil || hit {
		t.Fatalf("refresh Run() = hit %v, err %v", hit, err)
	}
	if refreshed.PassID == first.PassID {
		t.Error("refresh should compute a new pass")
	}

	s.Children[0].Depth = -1
	if _, hit, _ := r.Run(ctx, s, Options{Width: "200", Height: "100"}); hit {
		t.Error("changed scene should miss")
	}
}

func TestRunErrors(t *testing.T) {
	r := testRunner(t, nil)

	if _, _, err := r.Run(context.Background(), testScene(), Options{Width: "huge"}); !clerrors.Is(err, clerrors.ErrCodeInvalidConstraint) {
		t.Errorf("bad constraint error = %v", err)
	}

	bad := testScene()
	bad.Children = append(bad.Children, scene.Child{ID: "base"})
	if _, _, err := r.Run(context.Background(), bad, Options{}); !clerrors.Is(err, clerrors.ErrCodeDuplicateChild) {
		t.Errorf("duplicate child error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := r.Run(ctx, testScene(), Options{}); err != context.Canceled {
		t.Errorf("cancelled Run() error = %v", err)
	}
}

func TestRunMany(t *testing.T) {
	r := testRunner(t, nil)
	opts := []Options{
		{Width: "200", Height: "100"},
		{Width: "auto", Height: "auto"},
		{Width: "atmost:50", Height: "atmost:50"},
	}

	results, hits, err := r.RunMany(context.Background(), testScene(), opts)
	if err != nil {
		t.Fatalf("RunMany() error: %v", err)
	}
	if len(hits) != len(opts) {
		t.Fatalf("len(hits) = %d, want %d", len(hits), len(opts))
	}
	want := []scene.Size{{Width: 200, Height: 100}, {Width: 100, Height: 100}, {Width: 50, Height: 50}}
	for i, res := range results {
		if res.Size != want[i] {
			t.Errorf("result %d size = %+v, want %+v", i, res.Size, want[i])
		}
	}

	opts = append(opts, Options{Width: "nope"})
	if _, _, err := r.RunMany(context.Background(), testScene(), opts); !clerrors.Is(err, clerrors.ErrCodeInvalidConstraint) {
		t.Errorf("RunMany() error = %v, want INVALID_CONSTRAINT", err)
	}
}

func TestRunManyReportsHits(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	ctx := context.Background()

	if _, _, err := r.Run(ctx, testScene(), Options{Width: "200", Height: "100"}); err != nil {
		t.Fatal(err)
	}

	opts := []Options{{Width: "exact:200", Height: "exact:100"}, {Width: "300", Height: "100"}}
	_, hits, err := r.RunMany(ctx, testScene(), opts)
	if err != nil {
		t.Fatalf("RunMany() error: %v", err)
	}
	if !hits[0] || hits[1] {
		t.Errorf("hits = %v, want [true false]", hits)
	}

	_, hits, err = r.RunMany(ctx, testScene(), opts)
	if err != nil {
		t.Fatalf("RunMany() error: %v", err)
	}
	if !hits[0] || !hits[1] {
		t.Errorf("second hits = %v, want [true true]", hits)
	}
}

// corruptCache reports every stored entry as undecodable.
type corruptCache struct{ cache.NullCache }

func (corruptCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrCorrupt
}

func TestRunTreatsCorruptEntriesAsMiss(t *testing.T) {
	ctx := context.Background()

	res, hit, err := testRunner(t, corruptCache{}).Run(ctx, testScene(), Options{Width: "200", Height: "100"})
	if err != nil || hit || res == nil {
		t.Fatalf("Run() over corrupt entry = %v, hit %v, err %v; want fresh pass", res, hit, err)
	}

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	opts := Options{Width: "200", Height: "100"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	hash, err := testScene().Hash()
	if err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())
	if err := fc.Set(ctx, key, []byte("not a result"), time.Hour); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := r.Run(ctx, testScene(), opts); err != nil || hit {
		t.Fatalf("Run() over undecodable result = hit %v, err %v; want miss", hit, err)
	}
	if _, hit, err := r.Run(ctx, testScene(), opts); err != nil || !hit {
		t.Errorf("Run() after recompute = hit %v, err %v; want hit", hit, err)
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	observability.NoopCacheHooks

	mu        sync.Mutex
	starts    int
	completes int
	hits      int
	misses    int
	sets      int
}

func (h *recordingHooks) OnPassStart(context.Context, string, string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) OnPassComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.completes++
}

func (h *recordingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func (h *recordingHooks) OnCacheMiss(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.misses++
}

func (h *recordingHooks) OnCacheSet(context.Context, string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sets++
}

func TestRunHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	hooks := &recordingHooks{}
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, _, err := r.Run(ctx, testScene(), Options{Width: "300"}); err != nil {
			t.Fatal(err)
		}
	}

	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("pass hooks = %d/%d, want 1/1", hooks.starts, hooks.completes)
	}
	if hooks.misses != 1 || hooks.hits != 1 || hooks.sets != 1 {
		t.Errorf("cache hooks miss/hit/set = %d/%d/%d, want 1/1/1", hooks.misses, hooks.hits, hooks.sets)
	}
}
