package logging

import (
	"context"
	"log/slog"
	"time"

	"github.com/secmon-lab/scanhook/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns request ID from context. If request ID is not set, return new request ID and context with it
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	newID := types.NewRequestID()
	return newID, context.WithValue(ctx, ctxRequestIDKey{}, newID)
}

// WithRequestID returns a new context carrying id as its request ID.
func WithRequestID(ctx context.Context, id types.RequestID) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey{}, id)
}

// RequestIDFrom returns the request ID stored in ctx without creating one.
func RequestIDFrom(ctx context.Context) (types.RequestID, bool) {
	id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID)
	return id, ok
}

type ctxLoggerKey struct{}

// With returns a new context with logger
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns logger from context. If logger is not set, return default logger
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// WithAttrs returns a context whose logger carries the given attributes.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	return With(ctx, From(ctx).With(args...))
}

type ctxTimeKey struct{}
type TimeFunc func() time.Time

// CtxTime returns time from context. If time is not set, return current time
func CtxTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ctxTimeKey{}).(TimeFunc); ok {
		return t()
	}
	return time.Now()
}

// CtxWithTime returns a new context with time function
func CtxWithTime(ctx context.Context, timeFunc TimeFunc) context.Context {
	return context.WithValue(ctx, ctxTimeKey{}, timeFunc)
}

// Detach returns a context that is never canceled by src but keeps its
// logger, request ID and time function. Work that outlives an HTTP response
// runs on it.
func Detach(src context.Context) context.Context {
	dst := context.WithoutCancel(src)
	dst = With(dst, From(src))

	if reqID, ok := src.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		dst = context.WithValue(dst, ctxRequestIDKey{}, reqID)
	}
	if timeFunc, ok := src.Value(ctxTimeKey{}).(TimeFunc); ok {
		dst = context.WithValue(dst, ctxTimeKey{}, timeFunc)
	}

	return dst
}
