package bot

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/finbot/finance"
	"github.com/m3rciful/finbot/ledger"
)

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"0.00", "0.00"},
		{"999", "999"},
		{"1000", "1 000"},
		{"12345.67", "12 345.67"},
		{"1234567.89", "1 234 567.89"},
		{"-12345.00", "-12 345.00"},
	}
	for _, tc := range cases {
		if got := groupThousands(tc.in); got != tc.want {
			t.Errorf("groupThousands(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := formatMoney(decimal.NewFromFloat(12345.5)); got != "12 345.50" {
		t.Fatalf("formatMoney = %q", got)
	}
	if got := formatMoneyWhole(decimal.NewFromFloat(2500.75)); got != "2 501" {
		t.Fatalf("formatMoneyWhole = %q", got)
	}
}

func TestMonthScreen(t *testing.T) {
	out := monthScreen(ledger.MonthSummary{
		MonthLabel:     "Август 2026",
		Expenses:       decimal.NewFromInt(45000),
		Incomes:        decimal.NewFromInt(90000),
		Balance:        decimal.NewFromInt(45000),
		InitialBalance: decimal.NewFromInt(10000),
		CurrentBalance: decimal.NewFromInt(55000),
	})
	for _, want := range []string{
		"<b>Август 2026</b>",
		"➖ Расходы: <b>45 000.00</b> ₽",
		"➕ Доходы: <b>90 000.00</b> ₽",
		"💳 Текущий баланс: <b>55 000.00</b> ₽",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("month screen missing %q:\n%s", want, out)
		}
	}
}

func TestMonthScreenEmptyLabel(t *testing.T) {
	out := monthScreen(ledger.MonthSummary{})
	if !strings.Contains(out, "Текущий месяц") {
		t.Fatalf("empty label not defaulted:\n%s", out)
	}
}

func TestDraftSummaryExpense(t *testing.T) {
	out := draftSummary(finance.Draft{
		Kind:        finance.KindExpense,
		Category:    "Дом",
		Subcategory: "Продукты",
		Amount:      decimal.NewFromInt(2500),
		Comment:     "пятёрочка",
	})
	for _, want := range []string{
		"➖ <b>Расход</b>",
		"💰 Сумма: <b>2 500.00</b> ₽",
		"Дом → Продукты",
		"📝 Комментарий: пятёрочка",
		"<b>Всё верно?</b>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("draft summary missing %q:\n%s", want, out)
		}
	}
}

func TestDraftSummaryIncomeHasNoSubcategory(t *testing.T) {
	out := draftSummary(finance.Draft{
		Kind:     finance.KindIncome,
		Category: "Муж",
		Amount:   decimal.NewFromInt(50000),
	})
	if strings.Contains(out, "→") {
		t.Fatalf("income summary must not render a subcategory arrow:\n%s", out)
	}
	if strings.Contains(out, "Комментарий") {
		t.Fatalf("empty comment must not render:\n%s", out)
	}
}

func TestSavedSummary(t *testing.T) {
	expense := savedSummary(finance.Draft{
		Kind:        finance.KindExpense,
		Category:    "Дом",
		Subcategory: "Продукты",
		Amount:      decimal.NewFromInt(2500),
		Comment:     "обед",
	})
	if !strings.Contains(expense, "Дом → Продукты — 2 500.00 ₽") {
		t.Errorf("expense detail line missing:\n%s", expense)
	}
	if !strings.Contains(expense, "Коммент: обед") {
		t.Errorf("comment line missing:\n%s", expense)
	}

	income := savedSummary(finance.Draft{
		Kind:     finance.KindIncome,
		Category: "Муж",
		Amount:   decimal.NewFromInt(50000),
	})
	if !strings.Contains(income, "Муж — 50 000.00 ₽") {
		t.Errorf("income detail line missing:\n%s", income)
	}
	if strings.Contains(income, "→") {
		t.Errorf("income detail must not carry a subcategory arrow:\n%s", income)
	}
}

func TestRecordDetails(t *testing.T) {
	out := recordDetails(ledger.Record{
		RowID:    7,
		Date:     "2026-08-29 14:03:22",
		Kind:     finance.KindExpense,
		Category: "Дом",
		Amount:   decimal.NewFromInt(2500),
		Comment:  "пятёрочка",
	})
	if !strings.Contains(out, "📅 2026-08-29 14:03") {
		t.Errorf("date not truncated to minutes:\n%s", out)
	}
	if !strings.Contains(out, "<b>Что хочешь изменить?</b>") {
		t.Errorf("edit prompt missing:\n%s", out)
	}
}

func TestAnalysisText(t *testing.T) {
	empty := analysisText(ledger.Analysis{Title: "Расходы за месяц"})
	if !strings.Contains(empty, "Данных пока нет.") {
		t.Fatalf("empty analysis:\n%s", empty)
	}

	out := analysisText(ledger.Analysis{
		Title: "Расходы за месяц",
		Items: []ledger.AnalysisItem{
			{Category: "Дом", Amount: decimal.NewFromInt(30000)},
			{Category: "Кафе", Amount: decimal.NewFromInt(8000)},
		},
	})
	if !strings.Contains(out, "• Дом: <b>30 000.00</b> ₽") {
		t.Errorf("analysis row missing:\n%s", out)
	}
}

func TestPickWithCategory(t *testing.T) {
	for i := 0; i < 20; i++ {
		out := pickWithCategory(phExpenseSubcategory, "Дом")
		if strings.Contains(out, "{cat}") {
			t.Fatalf("placeholder left unexpanded: %q", out)
		}
	}
}
