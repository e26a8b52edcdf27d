package bot

import (
	"math/rand"
	"strings"
)

// Prompt and confirmation phrase pools. One entry is picked at random per
// prompt so the dialog does not sound canned.

var phExpenseCategory = []string{
	"На что потратилась, Иришка? 🙂",
	"Куда сегодня ушли денежки, Иришка?",
	"Что оплатили? Давай выберем категорию.",
	"Окей, рассказывай — что за трата?",
	"Давай зафиксируем: какая категория?",
	"Выбирай, на что это было 🙂",
	"На что записываем расход?",
	"Что купила? 🙂",
	"Куда улетели денежки? 🙂",
}

var phExpenseSubcategory = []string{
	"<b>{cat}</b>, а точнее?",
	"Понял(а). А внутри <b>{cat}</b> — что именно?",
	"Уточним: <b>{cat}</b> → какой пункт?",
	"Что конкретно в <b>{cat}</b>?",
	"Окей, а точнее в <b>{cat}</b>?",
	"Выбери подкатегорию, пожалуйста.",
	"Какая подкатегория подходит лучше всего?",
	"В <b>{cat}</b> какой раздел?",
	"Давай точнее в рамках <b>{cat}</b>.",
	"Что именно из <b>{cat}</b>?",
}

var phExpenseAmount = []string{
	"И сколько там?",
	"Какая сумма?",
	"На сколько вышло?",
	"Сколько списалось?",
	"Сколько запишем?",
	"Окей, цифру скажи 🙂",
	"Сколько это стоило?",
	"Давай сумму.",
	"Сколько получилось?",
	"Ммм, и сколько там?",
}

var phExpenseComment = []string{
	"Да норм, это недорого! Добавишь коммент?",
	"Коммент добавим или пропускаем?",
	"Хочешь уточнение для себя? (необязательно)",
	"Добавим короткий коммент? 🙂",
	"Если есть деталь — напиши, если нет — пропускай.",
	"Коммент оставим? (можно пропустить)",
	"Одной фразой что это было? (или пропусти)",
	"Есть что дописать? 🙂",
	"Добавишь пояснение? (не обязательно)",
	"Оставим заметку? (если хочешь)",
}

var phExpenseSaved = []string{
	"Всё понял, записал ✅",
	"Готово ✅ Зафиксировал.",
	"Записано ✅ Спасибо.",
	"Есть ✅ Сохранил.",
	"Сделано ✅",
	"Принял ✅ Добавил в таблицу.",
	"Угу ✅ Зафиксировал.",
	"Окей ✅ Записал.",
	"Отлично ✅ Внес.",
	"Готово ✅",
}

var phIncomeCategory = []string{
	"Опачки, денежки! И кто такой добрый?",
	"Ого! Доходик пришёл 🙂 От кого?",
	"Денежки пришли — записываем. Кто источник?",
	"Супер! Откуда поступление?",
	"Окей, выбери источник дохода 🙂",
	"Поступление! Кто молодец?",
	"Доход! Давай категорию.",
	"Ну красота 🙂 Кто отправитель?",
	"Денежки прилетели. Откуда?",
	"Кто сегодня пополнил копилочку? 🙂",
}

var phIncomeAmount = []string{
	"Ммм, и сколько там?",
	"И сколько пришло?",
	"Какая сумма?",
	"Сколько запишем?",
	"На сколько пополнились?",
	"Окей, цифру скажи 🙂",
	"Сколько поступило?",
	"Давай сумму.",
	"Сколько получилось?",
	"Сколько там денежек?",
}

var phIncomeComment = []string{
	"Нормально так! Коммент оставишь?",
	"Хочешь добавить коммент? (необязательно)",
	"Добавим уточнение? (можно пропустить)",
	"Коммент напишешь? 🙂",
	"Если есть деталь — напиши, если нет — пропускай.",
	"Оставим заметку?",
	"Одной фразой — что это было? (или пропусти)",
	"Добавишь пояснение?",
	"Коммент нужен?",
	"Есть что уточнить? 🙂",
}

var phIncomeSaved = []string{
	"Красотка, всё записал ✅",
	"Готово ✅ Записал поступление.",
	"Есть ✅ Сохранил.",
	"Отлично ✅ Зафиксировал.",
	"Принял ✅",
	"Сделано ✅",
	"Записано ✅",
	"Окей ✅ Всё занёс.",
	"Угу ✅ В таблице.",
	"Красота ✅",
}

const denyText = "Извини, доступ только для Иришки 🙂"

const badAmountText = "Не понял сумму 🙈\nНапиши, пожалуйста, например: 2500 / 2 500 / 2к"

const badBalanceText = "Не понял число 🙈 Напиши ещё раз, например: 25000 / 25 000 / 25к"

const crashText = "Ой, что-то пошло не так 🙈 Попробуем ещё раз?"

const ledgerFailText = "Не получилось сохранить 🙈 Запись не добавлена, попробуй ещё раз с начала."

func pick(pool []string) string {
	return pool[rand.Intn(len(pool))]
}

func pickWithCategory(pool []string, category string) string {
	return strings.ReplaceAll(pick(pool), "{cat}", category)
}
