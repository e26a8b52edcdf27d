package bot

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/m3rciful/finbot/finance"
)

func TestGuidedExpensePath(t *testing.T) {
	s := &Session{Pos: PosMenu}
	path := []Position{
		PosChooseType, PosExpenseCategory, PosExpenseSubcategory,
		PosAmount, PosComment, PosMenu,
	}
	for _, next := range path {
		if err := s.To(next); err != nil {
			t.Fatalf("To(%s): %v", next, err)
		}
	}
	if s.Pos != PosMenu {
		t.Fatalf("final position = %s, want menu", s.Pos)
	}
}

func TestIllegalTransitionRefused(t *testing.T) {
	s := &Session{Pos: PosMenu}
	err := s.To(PosAmount)
	if err == nil {
		t.Fatal("expected error for menu -> amount")
	}
	var illegal *ErrIllegalTransition
	if !errors.As(err, &illegal) {
		t.Fatalf("error type = %T, want *ErrIllegalTransition", err)
	}
	if s.Pos != PosMenu {
		t.Fatalf("refused transition mutated position to %s", s.Pos)
	}
}

func TestBackwardStepKeepsDraft(t *testing.T) {
	s := &Session{
		Pos: PosExpenseSubcategory,
		Draft: &finance.Draft{
			Kind:     finance.KindExpense,
			Category: "Дом",
		},
	}
	if err := s.To(PosExpenseCategory); err != nil {
		t.Fatalf("back step: %v", err)
	}
	if s.Draft == nil || s.Draft.Category != "Дом" {
		t.Fatal("backward step must not drop collected draft fields")
	}
	if err := s.To(PosExpenseSubcategory); err != nil {
		t.Fatalf("forward again: %v", err)
	}
}

func TestClearResetsEverything(t *testing.T) {
	s := &Session{
		Pos:          PosQuickEditValue,
		Draft:        &finance.Draft{Kind: finance.KindExpense},
		Quick:        &QuickDraft{Draft: finance.Draft{Amount: decimal.NewFromInt(100)}},
		Edit:         &DraftEdit{Field: FieldComment},
		AnalysisKind: finance.KindExpense,
	}
	s.Clear()
	if s.Pos != PosMenu || s.Draft != nil || s.Quick != nil || s.Edit != nil || s.AnalysisKind != "" {
		t.Fatalf("Clear left state behind: %+v", s)
	}
}

func TestAwaitsText(t *testing.T) {
	cases := []struct {
		name string
		sess Session
		want bool
	}{
		{"menu", Session{Pos: PosMenu}, false},
		{"choose_type", Session{Pos: PosChooseType}, false},
		{"amount", Session{Pos: PosAmount}, true},
		{"comment", Session{Pos: PosComment}, true},
		{"set_balance", Session{Pos: PosSetBalance}, true},
		{"edit_value", Session{Pos: PosEditValue}, true},
		{"quick_confirm", Session{Pos: PosQuickConfirm}, false},
		{"quick_edit_amount", Session{Pos: PosQuickEditValue, Edit: &DraftEdit{Field: FieldAmountDraft}}, true},
		{"quick_edit_comment", Session{Pos: PosQuickEditValue, Edit: &DraftEdit{Field: FieldComment}}, true},
		{"quick_edit_category", Session{Pos: PosQuickEditValue, Edit: &DraftEdit{Field: FieldCategory}}, false},
		{"quick_edit_no_context", Session{Pos: PosQuickEditValue}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.sess.AwaitsText(); got != tc.want {
				t.Fatalf("AwaitsText() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSessionsStore(t *testing.T) {
	store := NewSessions()

	first := store.Get(42)
	if first.Pos != PosMenu {
		t.Fatalf("new session position = %s, want menu", first.Pos)
	}
	if store.Get(42) != first {
		t.Fatal("Get returned a different session for the same user")
	}

	if store.InProgress(42) {
		t.Fatal("fresh session must not report in-progress")
	}
	first.Pos = PosAmount
	if !store.InProgress(42) {
		t.Fatal("amount position must report in-progress")
	}

	store.Reset(42)
	if first.Pos != PosMenu {
		t.Fatalf("Reset left position %s", first.Pos)
	}
	if store.InProgress(7) {
		t.Fatal("unknown user must not report in-progress")
	}
}

func TestTransitionTableTargetsAreDefined(t *testing.T) {
	for from, tos := range transitions {
		if _, ok := positionNames[from]; !ok {
			t.Fatalf("transition source %d has no name", int(from))
		}
		for _, to := range tos {
			if _, ok := positionNames[to]; !ok {
				t.Fatalf("transition target %d (from %s) has no name", int(to), from)
			}
		}
	}
}
