package finance

import "testing"

func TestValidateTaxonomy(t *testing.T) {
	if err := ValidateTaxonomy(); err != nil {
		t.Fatalf("static taxonomy is inconsistent: %v", err)
	}
}

func TestFallbackSubcategory(t *testing.T) {
	if got := FallbackSubcategory("Повседневные расходы"); got != "Другое" {
		t.Errorf("fallback = %q, want Другое", got)
	}
	// Транспорт has no "Другое"; the fallback is simply the last entry.
	if got := FallbackSubcategory("Транспорт"); got != "Такси и каршеринг" {
		t.Errorf("fallback = %q", got)
	}
	if got := FallbackSubcategory("Нет такой"); got != "Другое" {
		t.Errorf("unknown category fallback = %q", got)
	}
}

func TestDraftComplete(t *testing.T) {
	amount, _ := ParseAmount("100")
	cases := []struct {
		name string
		d    Draft
		want bool
	}{
		{"expense full", Draft{Kind: KindExpense, Category: "Дом", Subcategory: "Ремонт", Amount: amount}, true},
		{"expense no subcategory", Draft{Kind: KindExpense, Category: "Дом", Amount: amount}, false},
		{"income no subcategory", Draft{Kind: KindIncome, Category: "Муж", Amount: amount}, true},
		{"no amount", Draft{Kind: KindIncome, Category: "Муж"}, false},
		{"no category", Draft{Kind: KindExpense, Subcategory: "Ремонт", Amount: amount}, false},
		{"no kind", Draft{Category: "Дом", Subcategory: "Ремонт", Amount: amount}, false},
	}
	for _, tc := range cases {
		if got := tc.d.Complete(); got != tc.want {
			t.Errorf("%s: Complete() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
