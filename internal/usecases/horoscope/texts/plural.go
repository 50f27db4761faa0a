package texts

import "github.com/QuilGrafit/astroX/internal/domain"

// PluralForm грамматическая форма слова после числа
type PluralForm int

const (
	PluralOne  PluralForm = iota // 1, 21, 101
	PluralFew                    // 2-4, 22-24
	PluralMany                   // 0, 5-20, 25-30
)

// PluralRule выбирает форму по числу
type PluralRule func(n int) PluralForm

// PluralRules правила по локалям
var PluralRules = map[domain.Language]PluralRule{
	domain.LanguageRU: PluralClassRU,
}

// PluralClassRU правило для русского: 1 (кроме 11) - one, 2-4 (кроме 12-14) - few, остальное - many
func PluralClassRU(n int) PluralForm {
	if n < 0 {
		n = -n
	}
	lastDigit := n % 10
	lastTwoDigits := n % 100

	if lastTwoDigits >= 11 && lastTwoDigits <= 14 {
		return PluralMany
	}

	switch lastDigit {
	case 1:
		return PluralOne
	case 2, 3, 4:
		return PluralFew
	default:
		return PluralMany
	}
}

// PluralClass форма для локали; неизвестная локаль использует правило по умолчанию
func PluralClass(lang domain.Language, n int) PluralForm {
	rule, ok := PluralRules[lang]
	if !ok {
		rule = PluralRules[domain.DefaultLanguage]
	}
	return rule(n)
}

// Plural возвращает слово в форме для числа n, forms - [one, few, many]
func Plural(lang domain.Language, n int, forms [3]string) string {
	return forms[PluralClass(lang, n)]
}
