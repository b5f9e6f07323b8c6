package logx

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

type slogLogger struct {
	l *slog.Logger
}

// NewSlog builds a text logger for interactive tools writing to w.
// Unknown levels fall back to info.
func NewSlog(w io.Writer, level string) Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
}

// NewSlogAdapter wraps an existing *slog.Logger.
func NewSlogAdapter(l *slog.Logger) Logger {
	return slogLogger{l: l}
}

func (s slogLogger) Debug(msg string, fields ...Field) { s.log(slog.LevelDebug, msg, fields) }
func (s slogLogger) Info(msg string, fields ...Field)  { s.log(slog.LevelInfo, msg, fields) }
func (s slogLogger) Warn(msg string, fields ...Field)  { s.log(slog.LevelWarn, msg, fields) }
func (s slogLogger) Error(msg string, fields ...Field) { s.log(slog.LevelError, msg, fields) }

func (s slogLogger) With(fields ...Field) Logger {
	attrs := toSlogAttrs(fields)
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return slogLogger{l: s.l.With(args...)}
}

func (slogLogger) Sync() error { return nil }

func (s slogLogger) log(level slog.Level, msg string, fields []Field) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.LogAttrs(ctx, level, msg, toSlogAttrs(fields)...)
}

// toSlogAttrs drops nil errors and renders errors as their message.
func toSlogAttrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case nil:
			if f.Key == "error" {
				continue
			}
			out = append(out, slog.Any(f.Key, nil))
		case error:
			out = append(out, slog.String(f.Key, v.Error()))
		case time.Duration:
			out = append(out, slog.Duration(f.Key, v))
		default:
			out = append(out, slog.Any(f.Key, v))
		}
	}
	return out
}
