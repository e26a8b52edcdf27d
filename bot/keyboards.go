package bot

import (
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/finbot/core/telegram/keyboard"
	"github.com/m3rciful/finbot/finance"
	"github.com/m3rciful/finbot/ledger"
)

// Callback keys. Telebot encodes buttons as \f<unique>|<payload>; the
// callback router dispatches on unique and handlers read the payload.
const (
	cbMenu        = "menu"
	cbType        = "type"
	cbExpCat      = "expcat"
	cbExpSub      = "expsub"
	cbIncCat      = "inccat"
	cbComment     = "comment"
	cbAnalysis    = "akind"
	cbPeriod      = "aperiod"
	cbBack        = "back"
	cbEditRow     = "edit_row"
	cbEditField   = "edit_field"
	cbQuick       = "quick"
	cbQuickCat    = "quickcat"
	cbQuickEdit   = "quickedit"
	cbQuickType   = "quicktype"
)

const backLabel = "⬅️ Назад"

func kbMain() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➕ Внести транзакцию", Unique: cbMenu, Data: "add"},
		{Text: "📝 Скорректировать записи", Unique: cbMenu, Data: "edit"},
		{Text: "📊 Анализ", Unique: cbMenu, Data: "analysis"},
		{Text: "💰 Установить баланс", Unique: cbMenu, Data: "set_balance"},
	})
}

func kbChooseType() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➖ Затраты", Unique: cbType, Data: "expense"},
		{Text: "➕ Доход", Unique: cbType, Data: "income"},
		{Text: backLabel, Unique: cbBack, Data: "menu"},
	})
}

func kbExpenseCategories() *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(finance.ExpenseCategories))
	for i, cat := range finance.ExpenseCategories {
		btns = append(btns, keyboard.InlineBtn{Text: cat.Name, Unique: cbExpCat, Data: strconv.Itoa(i)})
	}
	markup := keyboard.InlineButtonsNPerRow(btns, 2)
	appendBackRow(markup, cbBack, "choose_type")
	return markup
}

func kbExpenseSubcategories(category string) *tele.ReplyMarkup {
	cat, _ := finance.ExpenseCategoryByName(category)
	btns := make([]keyboard.InlineBtn, 0, len(cat.Subcategories))
	for i, sub := range cat.Subcategories {
		btns = append(btns, keyboard.InlineBtn{Text: sub, Unique: cbExpSub, Data: strconv.Itoa(i)})
	}
	markup := keyboard.InlineButtonsNPerRow(btns, 2)
	appendBackRow(markup, cbBack, "exp_cat")
	return markup
}

func kbIncomeCategories() *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(finance.IncomeCategories))
	for i, cat := range finance.IncomeCategories {
		btns = append(btns, keyboard.InlineBtn{Text: cat, Unique: cbIncCat, Data: strconv.Itoa(i)})
	}
	markup := keyboard.InlineButtonsNPerRow(btns, 2)
	appendBackRow(markup, cbBack, "choose_type")
	return markup
}

func kbSkipComment() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Пропустить", Unique: cbComment, Data: "skip"},
	})
}

func kbAnalysisKind() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➖ Затраты", Unique: cbAnalysis, Data: "expense"},
		{Text: "➕ Доходы", Unique: cbAnalysis, Data: "income"},
		{Text: backLabel, Unique: cbBack, Data: "menu"},
	})
}

func kbAnalysisPeriod() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Сегодня", Unique: cbPeriod, Data: "today"},
		{Text: "В этом месяце", Unique: cbPeriod, Data: "month"},
		{Text: "В этом году", Unique: cbPeriod, Data: "year"},
		{Text: backLabel, Unique: cbBack, Data: "analysis_kind"},
	})
}

func kbEditList(records []ledger.Record) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(records)+1)
	for _, r := range records {
		date := r.Date
		if len(date) > 10 {
			date = date[:10]
		}
		label := fmt.Sprintf("%s %s | %s | %s ₽", r.Kind.Sign(), date, r.Category, formatMoneyWhole(r.Amount))
		btns = append(btns, keyboard.InlineBtn{Text: label, Unique: cbEditRow, Data: strconv.FormatInt(r.RowID, 10)})
	}
	btns = append(btns, keyboard.InlineBtn{Text: backLabel, Unique: cbBack, Data: "menu"})
	return keyboard.InlineButtons(btns)
}

func kbEditField() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "💰 Изменить сумму", Unique: cbEditField, Data: "amount"},
		{Text: "💬 Изменить комментарий", Unique: cbEditField, Data: "comment"},
		{Text: "🗑 Удалить запись", Unique: cbEditField, Data: "delete"},
		{Text: backLabel, Unique: cbBack, Data: "edit_list"},
	})
}

func kbQuickConfirm() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "✅ Да, сохранить", Unique: cbQuick, Data: "save"},
		{Text: "✏️ Изменить данные", Unique: cbQuick, Data: "edit"},
		{Text: "❌ Отмена", Unique: cbQuick, Data: "cancel"},
	})
}

// kbQuickEdit shows the quick-draft field menu with current values on the
// buttons themselves.
func kbQuickEdit(d finance.Draft) *tele.ReplyMarkup {
	btns := []keyboard.InlineBtn{
		{
			Text:   fmt.Sprintf("Тип: %s %s", d.Kind.Sign(), d.Kind.Title()),
			Unique: cbQuickEdit, Data: string(FieldType),
		},
		{
			Text:   fmt.Sprintf("💰 Сумма: %s ₽", formatMoneyWhole(d.Amount)),
			Unique: cbQuickEdit, Data: string(FieldAmountDraft),
		},
		{
			Text:   "📁 Категория: " + orPlaceholder(d.Category, "?"),
			Unique: cbQuickEdit, Data: string(FieldCategory),
		},
	}
	if d.Kind == finance.KindExpense {
		btns = append(btns, keyboard.InlineBtn{
			Text:   "📂 Подкатегория: " + orPlaceholder(d.Subcategory, "(не указана)"),
			Unique: cbQuickEdit, Data: string(FieldSubcategory),
		})
	}
	comment := d.Comment
	if len([]rune(comment)) > 20 {
		comment = string([]rune(comment)[:20]) + "..."
	}
	btns = append(btns,
		keyboard.InlineBtn{
			Text:   "📝 Комментарий: " + orPlaceholder(comment, "(пусто)"),
			Unique: cbQuickEdit, Data: string(FieldComment),
		},
		keyboard.InlineBtn{Text: "⬅️ Назад к подтверждению", Unique: cbQuickEdit, Data: "back"},
	)
	return keyboard.InlineButtons(btns)
}

func kbQuickCategorySelect(suggestions []finance.Suggestion) *tele.ReplyMarkup {
	btns := make([]keyboard.InlineBtn, 0, len(suggestions)+1)
	for i, s := range suggestions {
		btns = append(btns, keyboard.InlineBtn{Text: "✅ " + s.Label(), Unique: cbQuickCat, Data: strconv.Itoa(i)})
	}
	btns = append(btns, keyboard.InlineBtn{Text: "❌ Отмена", Unique: cbQuick, Data: "cancel"})
	return keyboard.InlineButtons(btns)
}

func kbQuickType() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "➖ Расход", Unique: cbQuickType, Data: "expense"},
		{Text: "➕ Доход", Unique: cbQuickType, Data: "income"},
		{Text: backLabel, Unique: cbQuickType, Data: "back"},
	})
}

func appendBackRow(markup *tele.ReplyMarkup, unique, payload string) {
	btn := markup.Data(backLabel, unique, payload)
	markup.InlineKeyboard = append(markup.InlineKeyboard, []tele.InlineButton{*btn.Inline()})
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
