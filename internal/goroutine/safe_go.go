package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/abrarlaghari22/absrefer/internal/logger"
)

// SafeGo runs fn in a goroutine and turns a panic into an error log instead
// of a crash. Used for fire-and-forget work such as notification dispatch.
func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if logger.Log != nil {
					logger.Log.Errorf("panic in goroutine: %v\n%s", r, debug.Stack())
				}
			}
		}()
		fn()
	}()
}

// SafeGoWithContext is SafeGo for functions that take a context.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	SafeGo(func() { fn(ctx) })
}
