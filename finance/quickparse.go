package finance

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// QuickStatus is the discriminator of a quick-entry parse outcome.
type QuickStatus int

const (
	// QuickReady means the line fully resolved into a draft.
	QuickReady QuickStatus = iota
	// QuickNeedsClarification means the category keyword only fuzzy-matched
	// and the user has to pick one of the suggestions.
	QuickNeedsClarification
	// QuickRejected means the line could not be interpreted; Reason carries
	// a user-facing hint.
	QuickRejected
)

// Suggestion is one clarification option. Each entry carries its own kind so
// that selection never relies on positional arithmetic over separate
// expense/income slices.
type Suggestion struct {
	Kind     Kind
	Category string
}

// Label renders the suggestion as shown on its keyboard button.
func (s Suggestion) Label() string {
	return s.Kind.Sign() + " " + s.Category
}

// QuickResult is the outcome of parsing one quick-entry line. Exactly one of
// the three statuses holds; see the field comments for which fields are
// meaningful under each.
type QuickResult struct {
	Status QuickStatus

	// Ready
	Draft Draft

	// NeedsClarification
	Amount      decimal.Decimal
	Comment     string
	Keyword     string
	Suggestions []Suggestion

	// Rejected
	Reason string
}

const (
	fuzzyCutoff     = 0.6
	maxFuzzyPerKind = 2
)

var amountTokenRe = regexp.MustCompile(`\d+(?:[.,]\d{1,2})?(?:к|k)?`)

const quickExamples = "Пример: <i>продукты 1500</i> или <i>муж 50000</i>"

// QuickParse interprets one free-text line as a transaction: an amount, a
// category keyword and an optional trailing comment, e.g. "кафе 800 обед с
// другом". Pure function over the static taxonomy.
func QuickParse(line string) QuickResult {
	text := strings.ToLower(strings.TrimSpace(line))

	token := amountTokenRe.FindString(text)
	if token == "" {
		return rejected("Не нашел сумму в сообщении 🙈\n\n" + quickExamples)
	}

	amount, ok := ParseAmount(token)
	if !ok || !amount.IsPositive() {
		return rejected("Не понял сумму 🙈\n\nПример: <i>продукты 1500</i>")
	}

	rest := strings.Replace(text, token, "", 1)
	var words []string
	for _, w := range strings.Fields(rest) {
		if _, skip := currencyStopwords[w]; skip {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return rejected("Не нашел категорию 🙈\n\nПример: <i>продукты 1500</i> или <i>1500 продукты</i>")
	}

	keyword := words[0]
	comment := joinCommentWords(words[1:])

	// Income aliases win over expense aliases on collision.
	if cat, ok := IncomeAliases[keyword]; ok {
		return ready(Draft{
			Kind:     KindIncome,
			Category: cat,
			Amount:   amount,
			Comment:  comment,
		})
	}
	if cat, ok := ExpenseAliases[keyword]; ok {
		sub, hinted := SubcategoryHints[keyword]
		if !hinted || !hasSubcategory(cat, sub) {
			sub = FallbackSubcategory(cat)
		}
		return ready(Draft{
			Kind:        KindExpense,
			Category:    cat,
			Subcategory: sub,
			Amount:      amount,
			Comment:     comment,
		})
	}

	suggestions := fuzzySuggestions(keyword)
	if len(suggestions) > 0 {
		return QuickResult{
			Status:      QuickNeedsClarification,
			Amount:      amount,
			Comment:     comment,
			Keyword:     keyword,
			Suggestions: suggestions,
		}
	}

	return rejected(fmt.Sprintf(
		"Не нашел категорию '<i>%s</i>' 🙈\n\n"+
			"<b>Примеры расходов:</b>\nпродукты 1500\nкафе 800\nтакси 300\n\n"+
			"<b>Примеры доходов:</b>\nмуж 50000\nподарок 5000",
		keyword,
	))
}

// ResolveSuggestion turns a picked clarification option into a ready draft.
// The original keyword no longer identifies a hint at this point, so expense
// drafts take the category's fallback subcategory.
func ResolveSuggestion(s Suggestion, amount decimal.Decimal, comment string) Draft {
	d := Draft{
		Kind:     s.Kind,
		Category: s.Category,
		Amount:   amount,
		Comment:  comment,
	}
	if s.Kind == KindExpense {
		d.Subcategory = FallbackSubcategory(s.Category)
	}
	return d
}

// joinCommentWords drops tokens that are themselves alias keywords; spelling
// the category twice is redundant, not a comment.
func joinCommentWords(words []string) string {
	var kept []string
	for _, w := range words {
		if _, ok := ExpenseAliases[w]; ok {
			continue
		}
		if _, ok := IncomeAliases[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func fuzzySuggestions(keyword string) []Suggestion {
	var out []Suggestion
	seen := make(map[string]struct{})
	for _, kw := range closeMatches(keyword, expenseKeywords, maxFuzzyPerKind, fuzzyCutoff) {
		cat := ExpenseAliases[kw]
		if _, dup := seen["e:"+cat]; dup {
			continue
		}
		seen["e:"+cat] = struct{}{}
		out = append(out, Suggestion{Kind: KindExpense, Category: cat})
	}
	for _, kw := range closeMatches(keyword, incomeKeywords, maxFuzzyPerKind, fuzzyCutoff) {
		cat := IncomeAliases[kw]
		if _, dup := seen["i:"+cat]; dup {
			continue
		}
		seen["i:"+cat] = struct{}{}
		out = append(out, Suggestion{Kind: KindIncome, Category: cat})
	}
	return out
}

func ready(d Draft) QuickResult {
	return QuickResult{Status: QuickReady, Draft: d}
}

func rejected(reason string) QuickResult {
	return QuickResult{Status: QuickRejected, Reason: reason}
}
