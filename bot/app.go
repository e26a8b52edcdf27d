// Package bot implements the dialog layer: a guided finite-state
// conversation and a free-text quick-entry flow, both producing transaction
// drafts that are handed to the ledger client.
package bot

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/finbot/core/config"
	"github.com/m3rciful/finbot/core/logger"
	coretelegram "github.com/m3rciful/finbot/core/telegram"
	"github.com/m3rciful/finbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/finbot/core/telegram/helpers"
	"github.com/m3rciful/finbot/core/telegram/middleware"
	"github.com/m3rciful/finbot/core/telegram/router"
	"github.com/m3rciful/finbot/ledger"
)

// App wires sessions, the ledger client and the Telegram transport together.
type App struct {
	cfg      *coreconfig.Config
	ledger   *ledger.Client
	sessions *Sessions
}

// New builds the bot application from loaded configuration.
func New(cfg *coreconfig.Config) *App {
	return &App{
		cfg: cfg,
		ledger: ledger.New(ledger.Config{
			URL:        cfg.Ledger.URL,
			OwnerID:    cfg.Owner.TelegramID,
			Timeout:    cfg.Ledger.Timeout(),
			SummaryTTL: cfg.Ledger.SummaryTTL(),
		}),
		sessions: NewSessions(),
	}
}

// InProgress reports whether the user's dialog awaits text, satisfying the
// message router's FSM interface.
func (a *App) InProgress(userID int64) bool {
	return a.sessions.InProgress(userID)
}

// TelegramRunOptions assembles registry, middlewares and routes for the core
// runtime.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.cmdStart,
		Description: "Главное меню и сводка месяца",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.cmdHelp,
		Description: "Как пользоваться ботом",
	})

	callbackHandlers := map[string]tele.HandlerFunc{
		cbMenu:      a.onMenu,
		cbType:      a.onChooseType,
		cbExpCat:    a.onExpenseCategory,
		cbExpSub:    a.onExpenseSubcategory,
		cbIncCat:    a.onIncomeCategory,
		cbComment:   a.onCommentSkip,
		cbAnalysis:  a.onAnalysisKind,
		cbPeriod:    a.onAnalysisPeriod,
		cbBack:      a.onBack,
		cbEditRow:   a.onEditRow,
		cbEditField: a.onEditField,
		cbQuick:     a.onQuickAction,
		cbQuickCat:  a.onQuickCategory,
		cbQuickEdit: a.onQuickEditField,
		cbQuickType: a.onQuickType,
	}
	for key, h := range callbackHandlers {
		if err := reg.RegisterCallback(key, h); err != nil {
			return coretelegram.RunOptions{}, err
		}
	}

	reg.SetTextFallback(a.onQuickEntry)

	refuse := func(c tele.Context) error {
		return tghelpers.SendText(c, denyText)
	}

	middleware.SetPanicHook(func(c tele.Context, _ any) {
		if c == nil {
			return
		}
		if sender := c.Sender(); sender != nil {
			a.sessions.Reset(sender.ID)
		}
		_ = c.Send(crashText)
	})

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.TextRoutes(a, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return coretelegram.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(a.cfg, refuse, nil),
		Routes:      routes,
	}, nil
}

func (a *App) session(c tele.Context) *Session {
	sender := c.Sender()
	if sender == nil {
		return &Session{Pos: PosMenu}
	}
	return a.sessions.Get(sender.ID)
}

// staleButton logs and swallows a callback that arrived for a position the
// session is no longer in: a duplicated or outdated button press, not a fault.
func (a *App) staleButton(c tele.Context, err error) error {
	logger.Warn(tghelpers.BuildContext(c), "dialog", "transition.refused",
		slog.String("err", err.Error()),
	)
	return nil
}

func (a *App) cmdStart(c tele.Context) error {
	sess := a.session(c)
	return a.sendMenu(c, sess, "Привет, Иришка! 🙂")
}

func (a *App) cmdHelp(c tele.Context) error {
	return tghelpers.SendHTML(c, helpText)
}

// sendMenu clears the session back to Menu and shows the month screen with
// the main keyboard. An unsaved draft does not survive a return to Menu.
func (a *App) sendMenu(c tele.Context, sess *Session, prefix string) error {
	ctx := tghelpers.BuildContext(c)
	sess.Clear()

	body := "Не смог получить сводку месяца 🙈 Попробуй ещё раз чуть позже."
	if s, err := a.ledger.Summary(ctx); err != nil {
		logger.Error(ctx, "dialog", "summary.fail", slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	} else {
		body = monthScreen(s)
	}
	if prefix != "" {
		body = prefix + "\n\n" + body
	}
	return tghelpers.SendHTML(c, body, kbMain())
}

// failSubmission handles a ledger write failure: the draft is discarded, the
// session resets to Menu and the user is told the write did not happen.
func (a *App) failSubmission(c tele.Context, sess *Session, err error) error {
	ctx := tghelpers.BuildContext(c)
	logger.Error(ctx, "dialog", "submit.fail", slog.String("err", logger.SanitizeLimit(err.Error(), 256)))
	return a.sendMenu(c, sess, ledgerFailText)
}
