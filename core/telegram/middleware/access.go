package middleware

import tele "gopkg.in/telebot.v4"

// OwnerOptions defines the single-user access gate. The bot serves exactly
// one Telegram identity; every other sender is refused before any handler
// or session state is touched.
type OwnerOptions struct {
	OwnerID   int64
	OnRefused tele.HandlerFunc
}

// OwnerOnlyMiddleware rejects updates from anyone but the configured owner.
func OwnerOnlyMiddleware(opts OwnerOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}
			if opts.OwnerID != 0 && sender.ID != opts.OwnerID {
				if opts.OnRefused != nil {
					return opts.OnRefused(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
