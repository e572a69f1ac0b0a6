package emufat16

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
)

// slogLevelTrace sits below slog.LevelDebug, mirroring the teacher's test
// harness convention of a bespoke trace level for the noisiest internal
// bookkeeping calls.
const slogLevelTrace = slog.Level(-8)

func (e *Emulator) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if e.cfg.Logger == nil {
		return
	}
	e.cfg.Logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (e *Emulator) trace(msg string, attrs ...slog.Attr) { e.logattrs(slogLevelTrace, msg, attrs...) }
func (e *Emulator) debug(msg string, attrs ...slog.Attr) { e.logattrs(slog.LevelDebug, msg, attrs...) }
func (e *Emulator) info(msg string, attrs ...slog.Attr)  { e.logattrs(slog.LevelInfo, msg, attrs...) }
func (e *Emulator) warn(msg string, attrs ...slog.Attr)  { e.logattrs(slog.LevelWarn, msg, attrs...) }
func (e *Emulator) logerror(msg string, attrs ...slog.Attr) {
	e.logattrs(slog.LevelError, msg, attrs...)
}

// humanSize renders a byte count for log messages, e.g. "1.2 MB".
func humanSize(n uint32) string {
	return humanize.Bytes(uint64(n))
}

func slogU32(key string, v uint32) slog.Attr { return slog.Uint64(key, uint64(v)) }
func slogStr(key string, v string) slog.Attr { return slog.String(key, v) }
