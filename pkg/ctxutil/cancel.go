package ctxutil

import (
	"context"
	"os"
	"os/signal"
)

type key string

var cancelkey = key("cancel")

// CancelContext provides a cancelable context. The cancel function
// is kept in the context and can be called with Cancel.
func CancelContext(ctx context.Context) context.Context {
	return cancelContext(context.WithCancel(ctx))
}

// SignalContext provides a context cancelled when one of the given
// signals is received.
func SignalContext(ctx context.Context, signals ...os.Signal) context.Context {
	return cancelContext(signal.NotifyContext(ctx, signals...))
}

func cancelContext(ctx context.Context, cancel context.CancelFunc) context.Context {
	return context.WithValue(ctx, cancelkey, cancel)
}

// Cancel cancels a context created by this package. Other
// contexts are ignored.
func Cancel(ctx context.Context) {
	if c, ok := ctx.Value(cancelkey).(context.CancelFunc); ok {
		c()
	}
}
