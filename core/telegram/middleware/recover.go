package middleware

import (
	"runtime/debug"
	"sync/atomic"

	"github.com/m3rciful/finbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// PanicHook runs after a recovered panic, with the triggering context. It is
// the place to drop per-user state and tell the user to start over.
type PanicHook func(c tele.Context, recovered any)

var panicHook atomic.Pointer[PanicHook]

// SetPanicHook installs the hook invoked on recovered panics.
func SetPanicHook(hook PanicHook) {
	if hook == nil {
		panicHook.Store(nil)
		return
	}
	panicHook.Store(&hook)
}

// RecoverMiddleware catches panics in handlers and prevents the bot from crashing.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		defer func() {
			if r := recover(); r != nil {
				logger.TG.Error("panic recovered",
					slog.String("event", "tg.panic"),
					slog.Any("err", r),
					slog.String("stack", string(debug.Stack())),
				)
				if hook := panicHook.Load(); hook != nil {
					(*hook)(c, r)
				}
			}
		}()
		return next(c)
	}
}
