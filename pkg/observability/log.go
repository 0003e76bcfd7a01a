package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event at debug level through a charm logger.
// It implements LayoutHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetLayoutHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnPassStart(_ context.Context, scene, width, height string) {
	h.Logger.Debug("pass start", "scene", scene, "width", width, "height", height)
}

func (h *LogHooks) OnPassComplete(_ context.Context, scene string, children int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("pass failed", "scene", scene, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("pass complete", "scene", scene, "children", children, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

var (
	_ LayoutHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
