package middleware

import (
	"runtime/debug"
	"time"

	"github.com/danverh/ytgrab-bot/pkg/logger"
)

func Recover(next func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "error", r, "stack", string(debug.Stack()))
			}
		}()
		next()
	}
}

func Logger(name string, next func()) func() {
	return func() {
		start := time.Now()

		defer func() {
			if duration := time.Since(start); duration > 100*time.Millisecond {
				logger.InfoWithDuration("Handler completed (slow)", start, "name", name)
			} else {
				logger.Debug("Handler completed", "name", name, "duration", duration)
			}
		}()

		next()
	}
}

func Chain(f func(), middlewares ...func(func()) func()) func() {
	for i := len(middlewares) - 1; i >= 0; i-- {
		f = middlewares[i](f)
	}
	return f
}
