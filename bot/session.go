package bot

import (
	"fmt"
	"sync"

	"github.com/m3rciful/finbot/finance"
	"github.com/m3rciful/finbot/ledger"
)

// Position enumerates the dialog states. The conversation always starts at
// Menu and loops back to it after every completed action.
type Position int

const (
	PosMenu Position = iota
	PosChooseType
	PosExpenseCategory
	PosExpenseSubcategory
	PosIncomeCategory
	PosAmount
	PosComment
	PosAnalysisKind
	PosAnalysisPeriod
	PosSetBalance
	PosEditSelect
	PosEditField
	PosEditValue
	PosQuickConfirm
	PosQuickEditField
	PosQuickEditValue
)

var positionNames = map[Position]string{
	PosMenu:               "menu",
	PosChooseType:         "choose_type",
	PosExpenseCategory:    "expense_category",
	PosExpenseSubcategory: "expense_subcategory",
	PosIncomeCategory:     "income_category",
	PosAmount:             "amount",
	PosComment:            "comment",
	PosAnalysisKind:       "analysis_kind",
	PosAnalysisPeriod:     "analysis_period",
	PosSetBalance:         "set_balance",
	PosEditSelect:         "edit_select",
	PosEditField:          "edit_field",
	PosEditValue:          "edit_value",
	PosQuickConfirm:       "quick_confirm",
	PosQuickEditField:     "quick_edit_field",
	PosQuickEditValue:     "quick_edit_value",
}

func (p Position) String() string {
	if n, ok := positionNames[p]; ok {
		return n
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// transitions is the legal-move table. A callback arriving for a move not
// listed here is a stale or duplicated button press and is ignored instead
// of mutating state.
var transitions = map[Position][]Position{
	PosMenu:               {PosMenu, PosChooseType, PosEditSelect, PosAnalysisKind, PosSetBalance, PosQuickConfirm},
	PosChooseType:         {PosExpenseCategory, PosIncomeCategory, PosMenu},
	PosExpenseCategory:    {PosExpenseSubcategory, PosChooseType},
	PosExpenseSubcategory: {PosAmount, PosExpenseCategory},
	PosIncomeCategory:     {PosAmount, PosChooseType},
	PosAmount:             {PosComment, PosAmount},
	PosComment:            {PosMenu},
	PosAnalysisKind:       {PosAnalysisPeriod, PosMenu},
	PosAnalysisPeriod:     {PosMenu, PosAnalysisKind},
	PosSetBalance:         {PosMenu, PosSetBalance},
	PosEditSelect:         {PosEditField, PosMenu},
	PosEditField:          {PosEditValue, PosEditSelect, PosMenu},
	PosEditValue:          {PosMenu, PosEditValue},
	PosQuickConfirm:       {PosMenu, PosQuickEditField, PosQuickConfirm},
	PosQuickEditField:     {PosQuickConfirm, PosQuickEditValue, PosMenu},
	PosQuickEditValue:     {PosQuickEditField, PosQuickEditValue},
}

// ErrIllegalTransition reports a move the table does not allow.
type ErrIllegalTransition struct {
	From, To Position
}

func (e *ErrIllegalTransition) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s", e.From, e.To)
}

// DraftField names a quick-draft field being edited.
type DraftField string

const (
	FieldType        DraftField = "type"
	FieldAmountDraft DraftField = "amount"
	FieldCategory    DraftField = "category"
	FieldSubcategory DraftField = "subcategory"
	FieldComment     DraftField = "comment"
)

// EditContext distinguishes the two edit flows: correcting a stored ledger
// record vs. adjusting an unsaved quick-entry draft. Handlers type-switch on
// it instead of comparing string flags.
type EditContext interface{ editContext() }

// RecordEdit targets a stored ledger record. The snapshot is taken once on
// entry to the edit list; row selection resolves against it.
type RecordEdit struct {
	Snapshot []ledger.Record
	Target   *ledger.Record
	Field    ledger.UpdateField
}

func (*RecordEdit) editContext() {}

// DraftEdit targets a field of the unsaved quick-entry draft.
type DraftEdit struct {
	Field DraftField
}

func (*DraftEdit) editContext() {}

// QuickDraft carries a quick-entry draft through the confirm/edit sub-flow,
// together with the clarification suggestions when the category keyword was
// only fuzzy-matched.
type QuickDraft struct {
	Draft       finance.Draft
	Suggestions []finance.Suggestion
}

// Session is the per-user conversation state. The bot serves a single owner,
// so there is no cross-session coordination; handlers still treat missing
// drafts as recoverable no-ops because the transport may deliver overlapping
// callback and text events.
type Session struct {
	Pos          Position
	Draft        *finance.Draft
	Quick        *QuickDraft
	Edit         EditContext
	AnalysisKind finance.Kind
}

// To advances the session position, refusing moves absent from the table.
func (s *Session) To(next Position) error {
	allowed, ok := transitions[s.Pos]
	if !ok {
		return &ErrIllegalTransition{From: s.Pos, To: next}
	}
	for _, p := range allowed {
		if p == next {
			s.Pos = next
			return nil
		}
	}
	return &ErrIllegalTransition{From: s.Pos, To: next}
}

// Clear drops all collected state and returns the session to Menu. Used on
// cancel, successful completion, and error recovery; it intentionally
// bypasses the transition table.
func (s *Session) Clear() {
	s.Pos = PosMenu
	s.Draft = nil
	s.Quick = nil
	s.Edit = nil
	s.AnalysisKind = ""
}

// AwaitsText reports whether the current position consumes free-form text.
func (s *Session) AwaitsText() bool {
	switch s.Pos {
	case PosAmount, PosComment, PosSetBalance, PosEditValue:
		return true
	case PosQuickEditValue:
		// Only amount and comment are typed; other fields use buttons.
		if de, ok := s.Edit.(*DraftEdit); ok {
			return de.Field == FieldAmountDraft || de.Field == FieldComment
		}
		return false
	default:
		return false
	}
}

// Sessions is the in-memory per-user session store. State lives for the
// process lifetime only; a restart loses an unsaved draft, which is
// acceptable for a single-user bot.
type Sessions struct {
	mu     sync.RWMutex
	byUser map[int64]*Session
}

// NewSessions creates an empty session store.
func NewSessions() *Sessions {
	return &Sessions{byUser: make(map[int64]*Session)}
}

// Get returns the session for a user, creating one at Menu on first use.
func (s *Sessions) Get(userID int64) *Session {
	s.mu.RLock()
	sess, ok := s.byUser[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.byUser[userID]; ok {
		return sess
	}
	sess = &Session{Pos: PosMenu}
	s.byUser[userID] = sess
	return sess
}

// Reset clears a user's session back to Menu.
func (s *Sessions) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.byUser[userID]; ok {
		sess.Clear()
	}
}

// InProgress reports whether the user's dialog currently awaits text input.
// The message router uses this to decide between dialog continuation and
// quick-entry parsing.
func (s *Sessions) InProgress(userID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byUser[userID]
	return ok && sess.AwaitsText()
}
