package utils

import (
	"context"
	"log/slog"
	"os"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	DebugCtx(ctx context.Context, msg string, args ...any)
	InfoCtx(ctx context.Context, msg string, args ...any)
	WarnCtx(ctx context.Context, msg string, args ...any)
	ErrorCtx(ctx context.Context, msg string, args ...any)
}

type DefaultLogger struct {
	logger *slog.Logger
}

func NewDefaultLogger(level slog.Level) *DefaultLogger {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	return &DefaultLogger{logger: logger}
}

const prefix = "[tagstore] "

func (d *DefaultLogger) Debug(msg string, args ...any) {
	d.logger.Debug(prefix+msg, args...)
}

func (d *DefaultLogger) Info(msg string, args ...any) {
	d.logger.Info(prefix+msg, args...)
}

func (d *DefaultLogger) Warn(msg string, args ...any) {
	d.logger.Warn(prefix+msg, args...)
}

func (d *DefaultLogger) Error(msg string, args ...any) {
	d.logger.Error(prefix+msg, args...)
}

var DefaultArgs int

func getDefaultArgs(ctx context.Context) []any {
	ctxargs := ctx.Value(&DefaultArgs)
	if ctxargs == nil {
		ctxargs = make([]any, 0)
	}
	return ctxargs.([]any)
}

func WithDefaultArgs(ctx context.Context, args ...any) context.Context {
	dargs := getDefaultArgs(ctx)
	dargs = append(dargs, args...)
	return context.WithValue(ctx, &DefaultArgs, dargs)
}

func (d *DefaultLogger) DebugCtx(ctx context.Context, msg string, args ...any) {
	args = append(args, getDefaultArgs(ctx)...)
	d.logger.Debug(prefix+msg, args...)
}

func (d *DefaultLogger) InfoCtx(ctx context.Context, msg string, args ...any) {
	args = append(args, getDefaultArgs(ctx)...)
	d.logger.Info(prefix+msg, args...)
}

func (d *DefaultLogger) WarnCtx(ctx context.Context, msg string, args ...any) {
	args = append(args, getDefaultArgs(ctx)...)
	d.logger.Warn(prefix+msg, args...)
}

func (d *DefaultLogger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	args = append(args, getDefaultArgs(ctx)...)
	d.logger.Error(prefix+msg, args...)
}

// componentLogger tags every line from one subsystem (such as pebble's own
// event listener) with a fixed component name,
// without making every call site repeat it as a structured arg.
type componentLogger struct {
	Logger
	component string
}

// WithComponent returns a Logger that behaves exactly like log, except
// every message is prefixed with "[component] ". Wrapped around a
// DefaultLogger, the tag follows the package-wide "[tagstore] " prefix
// DefaultLogger itself adds ("[tagstore] [component] msg").
func WithComponent(log Logger, component string) Logger {
	return &componentLogger{Logger: log, component: component}
}

func (c *componentLogger) tag(msg string) string {
	return "[" + c.component + "] " + msg
}

func (c *componentLogger) Debug(msg string, args ...any) { c.Logger.Debug(c.tag(msg), args...) }
func (c *componentLogger) Info(msg string, args ...any)  { c.Logger.Info(c.tag(msg), args...) }
func (c *componentLogger) Warn(msg string, args ...any)  { c.Logger.Warn(c.tag(msg), args...) }
func (c *componentLogger) Error(msg string, args ...any) { c.Logger.Error(c.tag(msg), args...) }

func (c *componentLogger) DebugCtx(ctx context.Context, msg string, args ...any) {
	c.Logger.DebugCtx(ctx, c.tag(msg), args...)
}

func (c *componentLogger) InfoCtx(ctx context.Context, msg string, args ...any) {
	c.Logger.InfoCtx(ctx, c.tag(msg), args...)
}

func (c *componentLogger) WarnCtx(ctx context.Context, msg string, args ...any) {
	c.Logger.WarnCtx(ctx, c.tag(msg), args...)
}

func (c *componentLogger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	c.Logger.ErrorCtx(ctx, c.tag(msg), args...)
}
