package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/finbot/finance"
	"github.com/m3rciful/finbot/ledger"
)

// formatMoney renders an amount with two decimals and space-grouped
// thousands, the way the ledger sheet displays it: 12 345.67.
func formatMoney(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(2))
}

// formatMoneyWhole renders an amount without decimals for compact button labels.
func formatMoneyWhole(d decimal.Decimal) string {
	return groupThousands(d.Round(0).StringFixed(0))
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// monthScreen renders the month summary block shown after every completed
// action.
func monthScreen(s ledger.MonthSummary) string {
	label := s.MonthLabel
	if label == "" {
		label = "Текущий месяц"
	}
	return fmt.Sprintf(
		"<b>%s</b>\n"+
			"💰 Начальный баланс: <b>%s</b> ₽\n"+
			"➖ Расходы: <b>%s</b> ₽\n"+
			"➕ Доходы: <b>%s</b> ₽\n"+
			"📊 Баланс месяца: <b>%s</b> ₽\n"+
			"💳 Текущий баланс: <b>%s</b> ₽",
		label,
		formatMoney(s.InitialBalance),
		formatMoney(s.Expenses),
		formatMoney(s.Incomes),
		formatMoney(s.Balance),
		formatMoney(s.CurrentBalance),
	)
}

// draftSummary renders the quick-entry confirmation card.
func draftSummary(d finance.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>%s</b>\n", d.Kind.Sign(), d.Kind.Title())
	fmt.Fprintf(&b, "💰 Сумма: <b>%s</b> ₽\n", formatMoney(d.Amount))
	fmt.Fprintf(&b, "📁 Категория: %s", d.Category)
	if d.Kind == finance.KindExpense && d.Subcategory != "" {
		fmt.Fprintf(&b, " → %s", d.Subcategory)
	}
	if d.Comment != "" {
		fmt.Fprintf(&b, "\n📝 Комментарий: %s", d.Comment)
	}
	b.WriteString("\n\n<b>Всё верно?</b>")
	return b.String()
}

// savedSummary renders the final confirmation line after a guided submission.
func savedSummary(d finance.Draft) string {
	header := pick(phExpenseSaved)
	detail := fmt.Sprintf("%s → %s — %s ₽", d.Category, d.Subcategory, formatMoney(d.Amount))
	if d.Kind == finance.KindIncome {
		header = pick(phIncomeSaved)
		detail = fmt.Sprintf("%s — %s ₽", d.Category, formatMoney(d.Amount))
	}
	if c := strings.TrimSpace(d.Comment); c != "" {
		detail += "\nКоммент: " + c
	}
	return header + "\n" + detail
}

// recordDetails renders a stored record ahead of the edit-field menu.
func recordDetails(r ledger.Record) string {
	date := r.Date
	if len(date) > 16 {
		date = date[:16]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s %s</b>\n", r.Kind.Sign(), r.Kind.Title())
	fmt.Fprintf(&b, "📅 %s\n", date)
	fmt.Fprintf(&b, "📂 %s", r.Category)
	if r.Subcategory != "" {
		fmt.Fprintf(&b, " → %s", r.Subcategory)
	}
	fmt.Fprintf(&b, "\n💰 %s ₽", formatMoney(r.Amount))
	if r.Comment != "" {
		fmt.Fprintf(&b, "\n💬 %s", r.Comment)
	}
	b.WriteString("\n\n<b>Что хочешь изменить?</b>")
	return b.String()
}

// analysisText renders a per-category breakdown report.
func analysisText(a ledger.Analysis) string {
	title := a.Title
	if title == "" {
		title = "Анализ"
	}
	if len(a.Items) == 0 {
		return fmt.Sprintf("<b>%s</b>\n\nДанных пока нет.", title)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n", title)
	for _, it := range a.Items {
		fmt.Fprintf(&b, "• %s: <b>%s</b> ₽\n", it.Category, formatMoney(it.Amount))
	}
	return b.String()
}

const helpText = "🎯 <b>Быстрый ввод</b>\n" +
	"Просто напиши одной строкой:\n" +
	"• <i>продукты 1500</i>\n" +
	"• <i>кафе 800 обед с другом</i>\n" +
	"• <i>муж 50000</i>\n\n" +
	"📋 <b>Или используй кнопки:</b>\n" +
	"• Внести транзакцию\n" +
	"• Скорректировать записи\n" +
	"• Анализ\n" +
	"• Установить баланс"
