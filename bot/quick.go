package bot

import (
	"fmt"

	tele "gopkg.in/telebot.v4"

	"log/slog"

	"github.com/m3rciful/finbot/core/logger"
	"github.com/m3rciful/finbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/finbot/core/telegram/helpers"
	"github.com/m3rciful/finbot/finance"
)

const quickEditMenuText = "<b>Что хочешь изменить?</b>\n\nНажми на поле для редактирования:"

// onQuickEntry is the text fallback: any free-form message while the session
// rests at Menu is treated as a quick-entry line. Text arriving mid-flow for
// a position that does not await input is dropped.
func (a *App) onQuickEntry(c tele.Context) error {
	sess := a.session(c)
	ctx := tghelpers.BuildContext(c)

	if sess.Pos != PosMenu {
		logger.Debug(ctx, "dialog", "quick.stray",
			slog.String("pos", sess.Pos.String()),
		)
		return nil
	}

	res := finance.QuickParse(c.Text())
	logger.Debug(ctx, "parse", "quick.result",
		slog.Int("status", int(res.Status)),
		slog.Int("suggestions", len(res.Suggestions)),
	)

	switch res.Status {
	case finance.QuickRejected:
		return tghelpers.SendHTML(c, res.Reason)

	case finance.QuickNeedsClarification:
		if err := sess.To(PosQuickConfirm); err != nil {
			return a.staleButton(c, err)
		}
		sess.Quick = &QuickDraft{
			Draft:       finance.Draft{Amount: res.Amount, Comment: res.Comment},
			Suggestions: res.Suggestions,
		}
		text := fmt.Sprintf(
			"💰 Сумма: <b>%s</b> ₽\n📝 Возможно, ты имела в виду:\n\nВыбери категорию:",
			formatMoney(res.Amount))
		return tghelpers.SendHTML(c, text, kbQuickCategorySelect(res.Suggestions))

	case finance.QuickReady:
		if err := sess.To(PosQuickConfirm); err != nil {
			return a.staleButton(c, err)
		}
		sess.Quick = &QuickDraft{Draft: res.Draft}
		return tghelpers.SendHTML(c, draftSummary(res.Draft), kbQuickConfirm())
	}
	return nil
}

// onQuickCategory resolves a clarification pick into a ready draft.
func (a *App) onQuickCategory(c tele.Context) error {
	sess := a.session(c)
	idx, err := callbacks.PayloadInt(c)
	if err != nil || idx < 0 {
		return nil
	}
	q := sess.Quick
	if q == nil || idx >= len(q.Suggestions) {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosQuickConfirm})
	}
	if err := sess.To(PosQuickConfirm); err != nil {
		return a.staleButton(c, err)
	}
	q.Draft = finance.ResolveSuggestion(q.Suggestions[idx], q.Draft.Amount, q.Draft.Comment)
	q.Suggestions = nil
	return tghelpers.EditOrSendHTML(c, draftSummary(q.Draft), kbQuickConfirm())
}

// onQuickAction handles the confirmation card: save, edit, cancel.
func (a *App) onQuickAction(c tele.Context) error {
	sess := a.session(c)
	q := sess.Quick
	if q == nil {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosMenu})
	}

	switch callbacks.CallbackPayload(c) {
	case "save":
		if !q.Draft.Complete() {
			if err := sess.To(PosQuickEditField); err != nil {
				return a.staleButton(c, err)
			}
			sess.Edit = &DraftEdit{}
			return tghelpers.EditOrSendHTML(c,
				"Сначала выбери категорию 🙈\n\n"+quickEditMenuText, kbQuickEdit(q.Draft))
		}
		d := q.Draft
		if err := a.ledger.Add(tghelpers.BuildContext(c), d); err != nil {
			return a.failSubmission(c, sess, err)
		}
		header := pick(phExpenseSaved)
		if d.Kind == finance.KindIncome {
			header = pick(phIncomeSaved)
		}
		if err := tghelpers.EditOrSendHTML(c, header+" 🎉"); err != nil {
			return err
		}
		return a.sendMenu(c, sess, "")

	case "edit":
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = &DraftEdit{}
		return tghelpers.EditOrSendHTML(c, quickEditMenuText, kbQuickEdit(q.Draft))

	case "cancel":
		if err := tghelpers.EditOrSendHTML(c, "Отменено ❌"); err != nil {
			return err
		}
		return a.sendMenu(c, sess, "")
	}
	return nil
}

// onQuickEditField routes the field-menu buttons of the quick-draft editor.
func (a *App) onQuickEditField(c tele.Context) error {
	sess := a.session(c)
	q := sess.Quick
	if q == nil {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosQuickEditValue})
	}

	payload := callbacks.CallbackPayload(c)
	if payload == "back" {
		if err := sess.To(PosQuickConfirm); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = nil
		return tghelpers.EditOrSendHTML(c, draftSummary(q.Draft), kbQuickConfirm())
	}

	field := DraftField(payload)
	switch field {
	case FieldType:
		if err := sess.To(PosQuickEditValue); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = &DraftEdit{Field: FieldType}
		return tghelpers.EditOrSendHTML(c, "Выбери тип транзакции:", kbQuickType())

	case FieldAmountDraft:
		if err := sess.To(PosQuickEditValue); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = &DraftEdit{Field: FieldAmountDraft}
		return tghelpers.EditOrSendHTML(c, fmt.Sprintf(
			"Текущая сумма: <b>%s</b> ₽\n\nВведи новую сумму:\n(например: 2500 / 2 500 / 2к)",
			formatMoney(q.Draft.Amount)))

	case FieldCategory:
		if err := sess.To(PosQuickEditValue); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = &DraftEdit{Field: FieldCategory}
		if q.Draft.Kind == finance.KindIncome {
			return tghelpers.EditOrSendHTML(c, "Выбери источник дохода:", kbIncomeCategories())
		}
		return tghelpers.EditOrSendHTML(c, "Выбери категорию расхода:", kbExpenseCategories())

	case FieldSubcategory:
		if q.Draft.Kind != finance.KindExpense || q.Draft.Category == "" {
			return tghelpers.EditOrSendHTML(c,
				"Сначала выбери категорию 🙈\n\n"+quickEditMenuText, kbQuickEdit(q.Draft))
		}
		if err := sess.To(PosQuickEditValue); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = &DraftEdit{Field: FieldSubcategory}
		return tghelpers.EditOrSendHTML(c,
			pickWithCategory(phExpenseSubcategory, q.Draft.Category),
			kbExpenseSubcategories(q.Draft.Category))

	case FieldComment:
		if err := sess.To(PosQuickEditValue); err != nil {
			return a.staleButton(c, err)
		}
		sess.Edit = &DraftEdit{Field: FieldComment}
		current := q.Draft.Comment
		if current == "" {
			current = "(пусто)"
		}
		return tghelpers.EditOrSendHTML(c, fmt.Sprintf(
			"Текущий комментарий: <i>%s</i>\n\nВведи новый комментарий:", current))
	}
	return nil
}

// onQuickType changes the draft's kind. Switching the kind invalidates the
// category, so it is reset and must be re-picked before saving.
func (a *App) onQuickType(c tele.Context) error {
	sess := a.session(c)
	q := sess.Quick
	if q == nil {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosQuickEditField})
	}

	payload := callbacks.CallbackPayload(c)
	if payload == "back" {
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, quickEditMenuText, kbQuickEdit(q.Draft))
	}

	var kind finance.Kind
	switch payload {
	case "expense":
		kind = finance.KindExpense
	case "income":
		kind = finance.KindIncome
	default:
		return nil
	}
	if err := sess.To(PosQuickEditField); err != nil {
		return a.staleButton(c, err)
	}
	if q.Draft.Kind != kind {
		q.Draft.Kind = kind
		q.Draft.Category = ""
		q.Draft.Subcategory = ""
	}
	return tghelpers.EditOrSendHTML(c, quickEditMenuText, kbQuickEdit(q.Draft))
}

// quickEditText consumes typed values for the amount and comment fields of
// the quick-draft editor.
func (a *App) quickEditText(c tele.Context, sess *Session, text string) error {
	q := sess.Quick
	de, ok := sess.Edit.(*DraftEdit)
	if q == nil || !ok {
		return a.sendMenu(c, sess, "")
	}

	switch de.Field {
	case FieldAmountDraft:
		amount, ok := finance.ParseAmount(text)
		if !ok || !amount.IsPositive() {
			return tghelpers.SendText(c, badAmountText)
		}
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		q.Draft.Amount = amount
		return tghelpers.SendHTML(c, quickEditMenuText, kbQuickEdit(q.Draft))

	case FieldComment:
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		q.Draft.Comment = text
		return tghelpers.SendHTML(c, quickEditMenuText, kbQuickEdit(q.Draft))
	}
	return nil
}
