package finance

import "github.com/shopspring/decimal"

// Draft is the transaction record accumulated across dialog steps before a
// single ledger submission. Fields are filled monotonically; a draft is
// submitted only once Complete reports true.
type Draft struct {
	Kind        Kind
	Category    string
	Subcategory string // expenses only, empty for income
	Amount      decimal.Decimal
	Comment     string
}

// Complete reports whether every field required for the draft's kind is
// present: kind, category and a positive amount always, plus a subcategory
// for expenses. An expense draft with an empty subcategory must never reach
// the ledger.
func (d Draft) Complete() bool {
	if d.Kind != KindExpense && d.Kind != KindIncome {
		return false
	}
	if d.Category == "" || !d.Amount.IsPositive() {
		return false
	}
	if d.Kind == KindExpense && d.Subcategory == "" {
		return false
	}
	return true
}
