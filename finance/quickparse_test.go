package finance

import (
	"reflect"
	"testing"
)

func TestQuickParseExpenseWithHint(t *testing.T) {
	res := QuickParse("продукты 1500")
	if res.Status != QuickReady {
		t.Fatalf("status = %v, want ready (reason: %s)", res.Status, res.Reason)
	}
	d := res.Draft
	if d.Kind != KindExpense {
		t.Errorf("kind = %s, want expense", d.Kind)
	}
	if d.Category != "Повседневные расходы" {
		t.Errorf("category = %q", d.Category)
	}
	if d.Subcategory != "Продукты" {
		t.Errorf("subcategory = %q, want hinted Продукты", d.Subcategory)
	}
	if d.Amount.String() != "1500" {
		t.Errorf("amount = %s, want 1500", d.Amount)
	}
	if d.Comment != "" {
		t.Errorf("comment = %q, want empty", d.Comment)
	}
}

func TestQuickParseExpenseWithComment(t *testing.T) {
	res := QuickParse("кафе 800 обед с другом")
	if res.Status != QuickReady {
		t.Fatalf("status = %v, want ready", res.Status)
	}
	d := res.Draft
	if d.Category != "Повседневные расходы" || d.Subcategory != "Рестораны и кафе" {
		t.Errorf("resolved %q -> %q", d.Category, d.Subcategory)
	}
	if d.Amount.String() != "800" {
		t.Errorf("amount = %s", d.Amount)
	}
	if d.Comment != "обед с другом" {
		t.Errorf("comment = %q", d.Comment)
	}
}

func TestQuickParseIncomeBeatsExpense(t *testing.T) {
	// "подарок" is both an income and an expense alias; income wins.
	res := QuickParse("подарок 5000")
	if res.Status != QuickReady {
		t.Fatalf("status = %v, want ready", res.Status)
	}
	if res.Draft.Kind != KindIncome || res.Draft.Category != "Подарки" {
		t.Errorf("got kind=%s category=%q", res.Draft.Kind, res.Draft.Category)
	}
	if res.Draft.Subcategory != "" {
		t.Errorf("income draft has subcategory %q", res.Draft.Subcategory)
	}
}

func TestQuickParseIncome(t *testing.T) {
	res := QuickParse("муж 50000")
	if res.Status != QuickReady {
		t.Fatalf("status = %v, want ready", res.Status)
	}
	if res.Draft.Kind != KindIncome || res.Draft.Category != "Муж" {
		t.Errorf("got kind=%s category=%q", res.Draft.Kind, res.Draft.Category)
	}
	if res.Draft.Amount.String() != "50000" {
		t.Errorf("amount = %s", res.Draft.Amount)
	}
}

func TestQuickParseAmountFirstInLine(t *testing.T) {
	res := QuickParse("1500 продукты")
	if res.Status != QuickReady {
		t.Fatalf("status = %v, want ready", res.Status)
	}
	if res.Draft.Category != "Повседневные расходы" {
		t.Errorf("category = %q", res.Draft.Category)
	}
}

func TestQuickParseCurrencyStopwords(t *testing.T) {
	res := QuickParse("такси 300 рублей")
	if res.Status != QuickReady {
		t.Fatalf("status = %v, want ready", res.Status)
	}
	if res.Draft.Subcategory != "Такси и каршеринг" {
		t.Errorf("subcategory = %q", res.Draft.Subcategory)
	}
	if res.Draft.Comment != "" {
		t.Errorf("stopword leaked into comment: %q", res.Draft.Comment)
	}
}

func TestQuickParseRejections(t *testing.T) {
	cases := []string{
		"просто текст", // no amount
		"5000",         // no category token
		"0 продукты",   // non-positive amount
	}
	for _, in := range cases {
		res := QuickParse(in)
		if res.Status != QuickRejected {
			t.Errorf("QuickParse(%q).Status = %v, want rejected", in, res.Status)
		}
		if res.Reason == "" {
			t.Errorf("QuickParse(%q) rejected without a hint", in)
		}
	}
}

func TestQuickParseTypoSuggestsCorrection(t *testing.T) {
	res := QuickParse("пордукты 1500")
	if res.Status != QuickNeedsClarification {
		t.Fatalf("status = %v, want needs-clarification", res.Status)
	}
	if res.Amount.String() != "1500" {
		t.Errorf("amount = %s", res.Amount)
	}
	found := false
	for _, s := range res.Suggestions {
		if s.Kind == KindExpense && s.Category == "Повседневные расходы" {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestions %v do not contain the corrected category", res.Suggestions)
	}
}

func TestQuickParseSuggestionCaps(t *testing.T) {
	res := QuickParse("пордукты 1500")
	if res.Status != QuickNeedsClarification {
		t.Fatalf("status = %v, want needs-clarification", res.Status)
	}
	exp, inc := 0, 0
	for _, s := range res.Suggestions {
		switch s.Kind {
		case KindExpense:
			exp++
		case KindIncome:
			inc++
		}
	}
	if exp > maxFuzzyPerKind || inc > maxFuzzyPerKind {
		t.Errorf("suggestion counts exceed cap: expense=%d income=%d", exp, inc)
	}
}

func TestQuickParseIdempotent(t *testing.T) {
	a := QuickParse("кафе 800 обед")
	b := QuickParse("кафе 800 обед")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same line parsed differently:\n%+v\n%+v", a, b)
	}
}

func TestResolveSuggestionExpenseFallback(t *testing.T) {
	amount, _ := ParseAmount("1500")
	d := ResolveSuggestion(Suggestion{Kind: KindExpense, Category: "Повседневные расходы"}, amount, "заметка")
	if d.Subcategory != "Другое" {
		t.Errorf("subcategory = %q, want fallback Другое", d.Subcategory)
	}
	if !d.Complete() {
		t.Error("resolved expense draft is not complete")
	}
}

func TestResolveSuggestionIncome(t *testing.T) {
	amount, _ := ParseAmount("5000")
	d := ResolveSuggestion(Suggestion{Kind: KindIncome, Category: "Подарки"}, amount, "")
	if d.Subcategory != "" {
		t.Errorf("income draft has subcategory %q", d.Subcategory)
	}
	if !d.Complete() {
		t.Error("resolved income draft is not complete")
	}
}

func TestSimilarity(t *testing.T) {
	if got := similarity("продукты", "продукты"); got != 1 {
		t.Errorf("identical strings ratio = %v", got)
	}
	if got := similarity("пордукты", "продукты"); got < fuzzyCutoff {
		t.Errorf("transposition ratio = %v, want >= %v", got, fuzzyCutoff)
	}
	if got := similarity("абв", "xyz"); got != 0 {
		t.Errorf("disjoint strings ratio = %v, want 0", got)
	}
}
