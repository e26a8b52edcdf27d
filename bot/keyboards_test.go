package bot

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/finbot/finance"
	"github.com/m3rciful/finbot/ledger"
)

func TestKbMain(t *testing.T) {
	markup := kbMain()
	if len(markup.InlineKeyboard) != 4 {
		t.Fatalf("main menu rows = %d, want 4", len(markup.InlineKeyboard))
	}
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.Unique != cbMenu {
				t.Errorf("main menu button %q routed to %q", btn.Text, btn.Unique)
			}
		}
	}
}

func TestKbExpenseCategoriesCoversTaxonomy(t *testing.T) {
	markup := kbExpenseCategories()
	var count int
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if btn.Unique == cbExpCat {
				count++
			}
		}
	}
	if count != len(finance.ExpenseCategories) {
		t.Fatalf("category buttons = %d, want %d", count, len(finance.ExpenseCategories))
	}

	last := markup.InlineKeyboard[len(markup.InlineKeyboard)-1]
	if len(last) != 1 || last[0].Unique != cbBack {
		t.Fatal("last row must be the back button")
	}
}

func TestKbQuickEditRowsByKind(t *testing.T) {
	expense := kbQuickEdit(finance.Draft{
		Kind:     finance.KindExpense,
		Category: "Дом",
		Amount:   decimal.NewFromInt(2500),
	})
	income := kbQuickEdit(finance.Draft{
		Kind:     finance.KindIncome,
		Category: "Муж",
		Amount:   decimal.NewFromInt(50000),
	})
	// Expense adds a subcategory row on top of type/amount/category/comment/back.
	if got, want := len(expense.InlineKeyboard), 6; got != want {
		t.Fatalf("expense rows = %d, want %d", got, want)
	}
	if got, want := len(income.InlineKeyboard), 5; got != want {
		t.Fatalf("income rows = %d, want %d", got, want)
	}
}

func TestKbQuickEditTruncatesComment(t *testing.T) {
	long := strings.Repeat("к", 40)
	markup := kbQuickEdit(finance.Draft{
		Kind:    finance.KindIncome,
		Comment: long,
	})
	var found bool
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			if strings.Contains(btn.Text, "Комментарий") {
				found = true
				if strings.Contains(btn.Text, long) {
					t.Fatalf("comment not truncated: %q", btn.Text)
				}
				if !strings.Contains(btn.Text, "...") {
					t.Fatalf("truncated comment lacks ellipsis: %q", btn.Text)
				}
			}
		}
	}
	if !found {
		t.Fatal("comment button missing")
	}
}

func TestKbEditListLabels(t *testing.T) {
	markup := kbEditList([]ledger.Record{
		{
			RowID:    12,
			Date:     "2026-08-29 10:00:00",
			Kind:     finance.KindExpense,
			Category: "Дом",
			Amount:   decimal.NewFromFloat(2500.40),
		},
	})
	if len(markup.InlineKeyboard) != 2 {
		t.Fatalf("rows = %d, want record + back", len(markup.InlineKeyboard))
	}
	btn := markup.InlineKeyboard[0][0]
	if !strings.Contains(btn.Text, "2026-08-29") || !strings.Contains(btn.Text, "2 500") {
		t.Errorf("record label = %q", btn.Text)
	}
	if btn.Unique != cbEditRow || btn.Data != "12" {
		t.Errorf("record button = (%q, %q), want (%q, \"12\")", btn.Unique, btn.Data, cbEditRow)
	}
}

func TestKbQuickCategorySelect(t *testing.T) {
	markup := kbQuickCategorySelect([]finance.Suggestion{
		{Kind: finance.KindExpense, Category: "Дом"},
		{Kind: finance.KindIncome, Category: "Муж"},
	})
	if len(markup.InlineKeyboard) != 3 {
		t.Fatalf("rows = %d, want suggestions + cancel", len(markup.InlineKeyboard))
	}
	first := markup.InlineKeyboard[0][0]
	if !strings.HasPrefix(first.Text, "✅ ➖ ") {
		t.Errorf("suggestion label = %q", first.Text)
	}
	cancel := markup.InlineKeyboard[2][0]
	if cancel.Unique != cbQuick || cancel.Data != "cancel" {
		t.Errorf("cancel button = (%q, %q)", cancel.Unique, cancel.Data)
	}
}
