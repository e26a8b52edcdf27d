package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/finbot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/finbot/core/telegram/helpers"
	"github.com/m3rciful/finbot/finance"
	"github.com/m3rciful/finbot/ledger"
)

const chooseTypeText = "Что вносим?"

// onMenu dispatches the main-menu buttons: add, edit, analysis, set_balance.
func (a *App) onMenu(c tele.Context) error {
	sess := a.session(c)
	switch callbacks.CallbackPayload(c) {
	case "add":
		if err := sess.To(PosChooseType); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, chooseTypeText, kbChooseType())

	case "edit":
		if err := sess.To(PosEditSelect); err != nil {
			return a.staleButton(c, err)
		}
		records, err := a.ledger.Recent(tghelpers.BuildContext(c), 10)
		if err != nil {
			return a.failSubmission(c, sess, err)
		}
		if len(records) == 0 {
			sess.Clear()
			return tghelpers.EditOrSendHTML(c, "Записей пока нет 🙈", kbMain())
		}
		sess.Edit = &RecordEdit{Snapshot: records}
		return tghelpers.EditOrSendHTML(c,
			"<b>Последние записи:</b>\n\nВыбери что исправить:", kbEditList(records))

	case "analysis":
		if err := sess.To(PosAnalysisKind); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, "Что анализируем?", kbAnalysisKind())

	case "set_balance":
		if err := sess.To(PosSetBalance); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, "Окей, напиши текущий баланс (число):")
	}
	return nil
}

func (a *App) onChooseType(c tele.Context) error {
	sess := a.session(c)
	switch callbacks.CallbackPayload(c) {
	case "expense":
		if err := sess.To(PosExpenseCategory); err != nil {
			return a.staleButton(c, err)
		}
		sess.Draft = &finance.Draft{Kind: finance.KindExpense}
		return tghelpers.EditOrSendHTML(c, pick(phExpenseCategory), kbExpenseCategories())
	case "income":
		if err := sess.To(PosIncomeCategory); err != nil {
			return a.staleButton(c, err)
		}
		sess.Draft = &finance.Draft{Kind: finance.KindIncome}
		return tghelpers.EditOrSendHTML(c, pick(phIncomeCategory), kbIncomeCategories())
	}
	return nil
}

func (a *App) onExpenseCategory(c tele.Context) error {
	sess := a.session(c)
	idx, err := callbacks.PayloadInt(c)
	if err != nil || idx < 0 || idx >= len(finance.ExpenseCategories) {
		return nil
	}
	cat := finance.ExpenseCategories[idx].Name

	// Quick-draft field edit reuses the same category keyboard.
	if de, ok := sess.Edit.(*DraftEdit); ok && de.Field == FieldCategory {
		if sess.Quick == nil {
			return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: sess.Pos})
		}
		if err := sess.To(PosQuickEditValue); err != nil {
			return a.staleButton(c, err)
		}
		sess.Quick.Draft.Kind = finance.KindExpense
		sess.Quick.Draft.Category = cat
		sess.Quick.Draft.Subcategory = ""
		return tghelpers.EditOrSendHTML(c,
			pickWithCategory(phExpenseSubcategory, cat), kbExpenseSubcategories(cat))
	}

	if err := sess.To(PosExpenseSubcategory); err != nil {
		return a.staleButton(c, err)
	}
	if sess.Draft == nil {
		sess.Draft = &finance.Draft{Kind: finance.KindExpense}
	}
	sess.Draft.Category = cat
	sess.Draft.Subcategory = ""
	return tghelpers.EditOrSendHTML(c,
		pickWithCategory(phExpenseSubcategory, cat), kbExpenseSubcategories(cat))
}

func (a *App) onExpenseSubcategory(c tele.Context) error {
	sess := a.session(c)
	idx, err := callbacks.PayloadInt(c)
	if err != nil || idx < 0 {
		return nil
	}

	if de, ok := sess.Edit.(*DraftEdit); ok && (de.Field == FieldCategory || de.Field == FieldSubcategory) {
		if sess.Quick == nil {
			return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: sess.Pos})
		}
		cat, ok := finance.ExpenseCategoryByName(sess.Quick.Draft.Category)
		if !ok || idx >= len(cat.Subcategories) {
			return nil
		}
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		sess.Quick.Draft.Subcategory = cat.Subcategories[idx]
		return tghelpers.EditOrSendHTML(c, quickEditMenuText, kbQuickEdit(sess.Quick.Draft))
	}

	if sess.Draft == nil {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosAmount})
	}
	cat, ok := finance.ExpenseCategoryByName(sess.Draft.Category)
	if !ok || idx >= len(cat.Subcategories) {
		return nil
	}
	if err := sess.To(PosAmount); err != nil {
		return a.staleButton(c, err)
	}
	sess.Draft.Subcategory = cat.Subcategories[idx]
	return tghelpers.EditOrSendHTML(c, pick(phExpenseAmount))
}

func (a *App) onIncomeCategory(c tele.Context) error {
	sess := a.session(c)
	idx, err := callbacks.PayloadInt(c)
	if err != nil || idx < 0 || idx >= len(finance.IncomeCategories) {
		return nil
	}
	cat := finance.IncomeCategories[idx]

	if de, ok := sess.Edit.(*DraftEdit); ok && de.Field == FieldCategory {
		if sess.Quick == nil {
			return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: sess.Pos})
		}
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		sess.Quick.Draft.Kind = finance.KindIncome
		sess.Quick.Draft.Category = cat
		sess.Quick.Draft.Subcategory = ""
		return tghelpers.EditOrSendHTML(c, quickEditMenuText, kbQuickEdit(sess.Quick.Draft))
	}

	if err := sess.To(PosAmount); err != nil {
		return a.staleButton(c, err)
	}
	if sess.Draft == nil {
		sess.Draft = &finance.Draft{Kind: finance.KindIncome}
	}
	sess.Draft.Category = cat
	sess.Draft.Subcategory = ""
	return tghelpers.EditOrSendHTML(c, pick(phIncomeAmount))
}

// onCommentSkip finishes the guided flow without a comment.
func (a *App) onCommentSkip(c tele.Context) error {
	sess := a.session(c)
	if callbacks.CallbackPayload(c) != "skip" || sess.Draft == nil {
		return nil
	}
	if sess.Pos != PosComment {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosMenu})
	}
	sess.Draft.Comment = ""
	return a.submitGuided(c, sess)
}

func (a *App) submitGuided(c tele.Context, sess *Session) error {
	d := *sess.Draft
	if err := a.ledger.Add(tghelpers.BuildContext(c), d); err != nil {
		return a.failSubmission(c, sess, err)
	}
	return a.sendMenu(c, sess, savedSummary(d))
}

func (a *App) onAnalysisKind(c tele.Context) error {
	sess := a.session(c)
	var kind finance.Kind
	switch callbacks.CallbackPayload(c) {
	case "expense":
		kind = finance.KindExpense
	case "income":
		kind = finance.KindIncome
	default:
		return nil
	}
	if err := sess.To(PosAnalysisPeriod); err != nil {
		return a.staleButton(c, err)
	}
	sess.AnalysisKind = kind
	return tghelpers.EditOrSendHTML(c, "За какой период?", kbAnalysisPeriod())
}

func (a *App) onAnalysisPeriod(c tele.Context) error {
	sess := a.session(c)
	period := callbacks.CallbackPayload(c)
	switch period {
	case "today", "month", "year":
	default:
		return nil
	}
	if sess.Pos != PosAnalysisPeriod || sess.AnalysisKind == "" {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosMenu})
	}
	report, err := a.ledger.Analyze(tghelpers.BuildContext(c), sess.AnalysisKind, period)
	if err != nil {
		return a.failSubmission(c, sess, err)
	}
	if err := tghelpers.EditOrSendHTML(c, analysisText(report)); err != nil {
		return err
	}
	return a.sendMenu(c, sess, "")
}

// onBack walks one step backwards. Collected draft fields ahead of the
// destination survive so going forward again keeps them.
func (a *App) onBack(c tele.Context) error {
	sess := a.session(c)

	// During a quick-draft category pick, back returns to the field menu.
	if _, ok := sess.Edit.(*DraftEdit); ok && sess.Quick != nil {
		if err := sess.To(PosQuickEditField); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, quickEditMenuText, kbQuickEdit(sess.Quick.Draft))
	}

	switch callbacks.CallbackPayload(c) {
	case "menu":
		return a.sendMenu(c, sess, "")

	case "choose_type":
		if err := sess.To(PosChooseType); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, chooseTypeText, kbChooseType())

	case "exp_cat":
		if err := sess.To(PosExpenseCategory); err != nil {
			return a.staleButton(c, err)
		}
		if sess.Draft != nil {
			sess.Draft.Subcategory = ""
		}
		return tghelpers.EditOrSendHTML(c, pick(phExpenseCategory), kbExpenseCategories())

	case "analysis_kind":
		if err := sess.To(PosAnalysisKind); err != nil {
			return a.staleButton(c, err)
		}
		return tghelpers.EditOrSendHTML(c, "Что анализируем?", kbAnalysisKind())

	case "edit_list":
		if err := sess.To(PosEditSelect); err != nil {
			return a.staleButton(c, err)
		}
		re, ok := sess.Edit.(*RecordEdit)
		if !ok {
			return a.sendMenu(c, sess, "")
		}
		re.Target = nil
		re.Field = ""
		return tghelpers.EditOrSendHTML(c,
			"<b>Последние записи:</b>\n\nВыбери что исправить:", kbEditList(re.Snapshot))
	}
	return nil
}

// onEditRow resolves the picked row against the snapshot taken when the list
// was shown.
func (a *App) onEditRow(c tele.Context) error {
	sess := a.session(c)
	rowID, err := callbacks.PayloadInt64(c)
	if err != nil {
		return nil
	}
	re, ok := sess.Edit.(*RecordEdit)
	if !ok {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosEditField})
	}
	if err := sess.To(PosEditField); err != nil {
		return a.staleButton(c, err)
	}
	for i := range re.Snapshot {
		if re.Snapshot[i].RowID == rowID {
			re.Target = &re.Snapshot[i]
			return tghelpers.EditOrSendHTML(c, recordDetails(*re.Target), kbEditField())
		}
	}
	return a.sendMenu(c, sess, "Запись не найдена 🙈 Возможно, список устарел.")
}

func (a *App) onEditField(c tele.Context) error {
	sess := a.session(c)
	re, ok := sess.Edit.(*RecordEdit)
	if !ok || re.Target == nil {
		return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosEditValue})
	}

	switch callbacks.CallbackPayload(c) {
	case "delete":
		if sess.Pos != PosEditField {
			return a.staleButton(c, &ErrIllegalTransition{From: sess.Pos, To: PosMenu})
		}
		if err := a.ledger.Delete(tghelpers.BuildContext(c), re.Target.RowID); err != nil {
			return a.failSubmission(c, sess, err)
		}
		return a.sendMenu(c, sess, "✅ Запись удалена")

	case "amount":
		if err := sess.To(PosEditValue); err != nil {
			return a.staleButton(c, err)
		}
		re.Field = ledger.FieldAmount
		return tghelpers.EditOrSendHTML(c, fmt.Sprintf(
			"Текущая сумма: <b>%s</b> ₽\n\nВведи новую сумму:\n(например: 2500 / 2 500 / 2к)",
			formatMoney(re.Target.Amount)))

	case "comment":
		if err := sess.To(PosEditValue); err != nil {
			return a.staleButton(c, err)
		}
		re.Field = ledger.FieldComment
		current := re.Target.Comment
		if current == "" {
			current = "(пусто)"
		}
		return tghelpers.EditOrSendHTML(c, fmt.Sprintf(
			"Текущий комментарий: <i>%s</i>\n\nВведи новый комментарий:", current))
	}
	return nil
}

// ManagerHandler consumes free-form text while the dialog awaits it. The
// message router calls it only when InProgress reports true.
func (a *App) ManagerHandler(c tele.Context) error {
	sess := a.session(c)
	text := strings.TrimSpace(c.Text())

	switch sess.Pos {
	case PosAmount:
		if sess.Draft == nil {
			return a.sendMenu(c, sess, "")
		}
		amount, ok := finance.ParseAmount(text)
		if !ok || !amount.IsPositive() {
			return tghelpers.SendText(c, badAmountText)
		}
		if err := sess.To(PosComment); err != nil {
			return a.staleButton(c, err)
		}
		sess.Draft.Amount = amount
		prompt := pick(phExpenseComment)
		if sess.Draft.Kind == finance.KindIncome {
			prompt = pick(phIncomeComment)
		}
		return tghelpers.SendHTML(c, prompt, kbSkipComment())

	case PosComment:
		if sess.Draft == nil {
			return a.sendMenu(c, sess, "")
		}
		sess.Draft.Comment = text
		return a.submitGuided(c, sess)

	case PosSetBalance:
		amount, ok := finance.ParseAmount(text)
		if !ok {
			return tghelpers.SendText(c, badBalanceText)
		}
		if err := a.ledger.SetBalance(tghelpers.BuildContext(c), amount); err != nil {
			return a.failSubmission(c, sess, err)
		}
		return a.sendMenu(c, sess,
			fmt.Sprintf("✅ Баланс установлен: <b>%s</b> ₽", formatMoney(amount)))

	case PosEditValue:
		re, ok := sess.Edit.(*RecordEdit)
		if !ok || re.Target == nil {
			return a.sendMenu(c, sess, "")
		}
		switch re.Field {
		case ledger.FieldAmount:
			amount, ok := finance.ParseAmount(text)
			if !ok || !amount.IsPositive() {
				return tghelpers.SendText(c, badAmountText)
			}
			err := a.ledger.Update(tghelpers.BuildContext(c), re.Target.RowID, ledger.FieldAmount, amount.InexactFloat64())
			if err != nil {
				return a.failSubmission(c, sess, err)
			}
			return a.sendMenu(c, sess,
				fmt.Sprintf("✅ Сумма изменена на <b>%s</b> ₽", formatMoney(amount)))
		case ledger.FieldComment:
			err := a.ledger.Update(tghelpers.BuildContext(c), re.Target.RowID, ledger.FieldComment, text)
			if err != nil {
				return a.failSubmission(c, sess, err)
			}
			return a.sendMenu(c, sess, "✅ Комментарий изменен")
		}
		return a.sendMenu(c, sess, "")

	case PosQuickEditValue:
		return a.quickEditText(c, sess, text)
	}
	return nil
}
