package finance

import (
	"fmt"
	"sort"
)

// Kind distinguishes the two transaction types. The values match what the
// ledger service stores, so they go onto the wire as-is.
type Kind string

const (
	KindExpense Kind = "расход"
	KindIncome  Kind = "доход"
)

// Sign returns the emoji marker used across bot messages and keyboards.
func (k Kind) Sign() string {
	if k == KindIncome {
		return "➕"
	}
	return "➖"
}

// Title returns the capitalized human label for messages.
func (k Kind) Title() string {
	if k == KindIncome {
		return "Доход"
	}
	return "Расход"
}

// ExpenseCategory is one expense category with its ordered subcategories.
// The last subcategory is the fallback ("Другое" by convention).
type ExpenseCategory struct {
	Name          string
	Subcategories []string
}

// ExpenseCategories is the fixed expense taxonomy, in menu order.
var ExpenseCategories = []ExpenseCategory{
	{"Дети", []string{
		"Кружки и секции", "Карманные деньги", "Медицинские расходы", "Детский сад",
		"Одежда", "Повседневные траты", "Игрушки", "Другое",
	}},
	{"Задолженности", []string{
		"Кредитные карты", "Образовательный кредит", "Другие кредиты",
		"Налоги (федеральные)", "Налоги (муниципальные)", "Другое",
	}},
	{"Образование", []string{"Плата за образование", "Учебная литература", "Уроки музыки", "Другое"}},
	{"Развлечения", []string{
		"Книги", "Концерты", "Игры", "Хобби", "Кино", "Музыка", "Отдых на природе",
		"Фотографии", "Спорт", "Театр", "Телевидение", "Другое",
	}},
	{"Повседневные расходы", []string{
		"Продукты", "Рестораны и кафе", "Средства гигиены", "Одежда",
		"Химчистка", "Косметические средства", "Подписки", "Другое",
	}},
	{"Подарки", []string{"Подарки", "Благотворительность", "Другое"}},
	{"Здоровье", []string{
		"Обследования врачей/стоматолога/окулиста", "Услуги специалистов",
		"Лекарства", "Скорая помощь", "Другое",
	}},
	{"Дом", []string{
		"Аренда/ипотека", "Налог на недвижимость", "Мебель", "Сад", "Товары для дома",
		"Обслуживание", "Ремонт", "Переезд", "Другое",
	}},
	{"Страхование", []string{
		"Страхование автомобиля", "Медицинская страховка",
		"Страхование недвижимости", "Страхование жизни", "Другое",
	}},
	{"Домашние животные", []string{"Корм", "Ветеринар", "Игрушки", "Товары для животных", "Другое"}},
	{"Техника", []string{"Домены и хостинг", "Онлайн-сервисы", "Устройства", "Программное обеспечение", "Другое"}},
	{"Транспорт", []string{
		"Топливо", "Платежи за автомобиль", "Ремонт", "Регистрация/водительские права",
		"Запчасти", "Общественный транспорт", "Такси и каршеринг",
	}},
	{"Путешествия", []string{"Авиабилеты", "Отели", "Питание", "Транспорт", "Развлечения", "Другое"}},
	{"Услуги ЖКХ", []string{
		"Телефон", "Телевидение", "Интернет", "Электричество",
		"Отопление/газ", "Вода", "Вывоз мусора", "Другое",
	}},
	{"Красота", []string{"Маникюр", "Педикюр", "Парикмахер", "Убирание волос", "Массаж", "Другое"}},
}

// IncomeCategories is the flat income taxonomy, in menu order.
var IncomeCategories = []string{
	"Муж", "Государство", "% по вкладам", "Возвраты", "Подарки", "Случайные доходы", "Продажи",
}

// ExpenseAliases maps lowercase quick-entry keywords to expense categories.
var ExpenseAliases = map[string]string{
	"дети":          "Дети",
	"детям":         "Дети",
	"ребенку":       "Дети",
	"задолженности": "Задолженности",
	"долги":         "Задолженности",
	"кредит":        "Задолженности",
	"образование":   "Образование",
	"учеба":         "Образование",
	"развлечения":   "Развлечения",
	"отдых":         "Развлечения",
	"повседневные":  "Повседневные расходы",
	"продукты":      "Повседневные расходы",
	"еда":           "Повседневные расходы",
	"кафе":          "Повседневные расходы",
	"ресторан":      "Повседневные расходы",
	"одежда":        "Повседневные расходы",
	"подарки":       "Подарки",
	"подарок":       "Подарки",
	"здоровье":      "Здоровье",
	"врач":          "Здоровье",
	"лекарства":     "Здоровье",
	"аптека":        "Здоровье",
	"дом":           "Дом",
	"мебель":        "Дом",
	"ремонт":        "Дом",
	"страхование":   "Страхование",
	"страховка":     "Страхование",
	"животные":      "Домашние животные",
	"питомец":       "Домашние животные",
	"кот":           "Домашние животные",
	"собака":        "Домашние животные",
	"техника":       "Техника",
	"гаджеты":       "Техника",
	"транспорт":     "Транспорт",
	"топливо":       "Транспорт",
	"бензин":        "Транспорт",
	"такси":         "Транспорт",
	"метро":         "Транспорт",
	"путешествия":   "Путешествия",
	"поездка":       "Путешествия",
	"отель":         "Путешествия",
	"жкх":           "Услуги ЖКХ",
	"коммуналка":    "Услуги ЖКХ",
	"свет":          "Услуги ЖКХ",
	"вода":          "Услуги ЖКХ",
	"интернет":      "Услуги ЖКХ",
	"красота":       "Красота",
	"маникюр":       "Красота",
	"парикмахер":    "Красота",
}

// IncomeAliases maps lowercase quick-entry keywords to income categories.
// Income aliases win over expense aliases on a keyword collision.
var IncomeAliases = map[string]string{
	"муж":         "Муж",
	"зарплата":    "Муж",
	"государство": "Государство",
	"пособие":     "Государство",
	"проценты":    "% по вкладам",
	"вклад":       "% по вкладам",
	"возврат":     "Возвраты",
	"вернули":     "Возвраты",
	"подарок":     "Подарки",
	"подарки":     "Подарки",
	"продажа":     "Продажи",
}

// SubcategoryHints narrows an expense alias keyword down to a concrete
// subcategory. Consulted only after the keyword resolved an expense category.
var SubcategoryHints = map[string]string{
	"продукты":   "Продукты",
	"еда":        "Продукты",
	"кафе":       "Рестораны и кафе",
	"ресторан":   "Рестораны и кафе",
	"одежда":     "Одежда",
	"врач":       "Обследования врачей/стоматолога/окулиста",
	"лекарства":  "Лекарства",
	"аптека":     "Лекарства",
	"мебель":     "Мебель",
	"ремонт":     "Ремонт",
	"такси":      "Такси и каршеринг",
	"метро":      "Общественный транспорт",
	"бензин":     "Топливо",
	"топливо":    "Топливо",
	"отель":      "Отели",
	"свет":       "Электричество",
	"вода":       "Вода",
	"интернет":   "Интернет",
	"жкх":        "Другое",
	"коммуналка": "Другое",
	"маникюр":    "Маникюр",
	"парикмахер": "Парикмахер",
}

// currencyStopwords are dropped during quick-entry tokenization.
var currencyStopwords = map[string]struct{}{
	"рублей": {}, "руб": {}, "рубля": {}, "рублик": {}, "рубликов": {},
	"р": {}, "р.": {}, "₽": {},
}

// Sorted alias keywords; fuzzy matching iterates these so that suggestion
// order is deterministic.
var (
	expenseKeywords []string
	incomeKeywords  []string
)

func init() {
	expenseKeywords = sortedKeys(ExpenseAliases)
	incomeKeywords = sortedKeys(IncomeAliases)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExpenseCategoryByName looks a category up by its canonical name.
func ExpenseCategoryByName(name string) (ExpenseCategory, bool) {
	for _, c := range ExpenseCategories {
		if c.Name == name {
			return c, true
		}
	}
	return ExpenseCategory{}, false
}

// IsIncomeCategory reports whether name is a canonical income category.
func IsIncomeCategory(name string) bool {
	for _, c := range IncomeCategories {
		if c == name {
			return true
		}
	}
	return false
}

// FallbackSubcategory returns the last subcategory of an expense category,
// or "Другое" if the category is unknown.
func FallbackSubcategory(category string) string {
	if c, ok := ExpenseCategoryByName(category); ok && len(c.Subcategories) > 0 {
		return c.Subcategories[len(c.Subcategories)-1]
	}
	return "Другое"
}

func hasSubcategory(category, sub string) bool {
	c, ok := ExpenseCategoryByName(category)
	if !ok {
		return false
	}
	for _, s := range c.Subcategories {
		if s == sub {
			return true
		}
	}
	return false
}

// ValidateTaxonomy checks the cross-reference invariants of the static
// tables: every alias must target an existing category, and every
// subcategory hint whose keyword is an expense alias must target a
// subcategory existing under that alias's category.
func ValidateTaxonomy() error {
	for kw, cat := range ExpenseAliases {
		if _, ok := ExpenseCategoryByName(cat); !ok {
			return fmt.Errorf("expense alias %q references unknown category %q", kw, cat)
		}
	}
	for kw, cat := range IncomeAliases {
		if !IsIncomeCategory(cat) {
			return fmt.Errorf("income alias %q references unknown category %q", kw, cat)
		}
	}
	for kw, sub := range SubcategoryHints {
		cat, ok := ExpenseAliases[kw]
		if !ok {
			continue
		}
		if !hasSubcategory(cat, sub) {
			return fmt.Errorf("subcategory hint %q -> %q not found under category %q", kw, sub, cat)
		}
	}
	return nil
}
