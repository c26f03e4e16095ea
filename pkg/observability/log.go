package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports pipeline, cache and server events to a logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	Logger *log.Logger
}

func (h LogHooks) OnEncodeStart(_ context.Context, level string, textLen int) {
	h.Logger.Debug("encode", "level", level, "bytes", textLen)
}

func (h LogHooks) OnEncodeComplete(_ context.Context, level string, modules int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("encode failed", "level", level, "err", err)
		return
	}
	h.Logger.Debug("encoded", "level", level, "modules", modules, "took", d.Round(time.Microsecond))
}

func (h LogHooks) OnRenderStart(_ context.Context, style, format string) {
	h.Logger.Debug("render", "style", style, "format", format)
}

func (h LogHooks) OnRenderComplete(_ context.Context, style, format string, st RenderStats, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "style", style, "format", format, "err", err)
		return
	}
	h.Logger.Debug("rendered", "style", style, "format", format,
		"active", st.Active, "primitives", st.Primitives, "fragments", st.Fragments,
		"took", d.Round(time.Microsecond))
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, requestID, method, route string) {
	h.Logger.Debug("request", "id", requestID, "method", method, "route", route)
}

func (h LogHooks) OnResponse(_ context.Context, requestID, method, route string, status int, d time.Duration) {
	if status >= 500 {
		h.Logger.Warn("response", "id", requestID, "method", method, "route", route, "status", status, "took", d.Round(time.Microsecond))
		return
	}
	h.Logger.Debug("response", "id", requestID, "method", method, "route", route, "status", status, "took", d.Round(time.Microsecond))
}

var (
	_ PipelineHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ ServerHooks   = LogHooks{}
)
