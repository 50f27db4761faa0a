package texts

import (
	"testing"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReading() domain.DailyReading {
	age := 24
	return domain.DailyReading{
		UserID: 1,
		Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Sign:   domain.SignLeo,
		Aspects: []domain.AspectReading{
			{Aspect: domain.AspectLove, Score: 8, Line: "Любовь <рядом>"},
			{Aspect: domain.AspectCareer, Score: 3, Line: ""},
			{Aspect: domain.AspectFinance, Score: 5, Line: "Деньги"},
			{Aspect: domain.AspectHealth, Score: 10, Line: "Здоровье"},
		},
		Mood:        "спокойное",
		Color:       "синий",
		LuckyNumber: 7,
		Planet:      "Солнце",
		Stone:       "Рубин",
		Compatible:  []domain.SignCode{domain.SignAries, domain.SignSagittarius},
		Tip:         "Отдохни",
		Age:         &age,
	}
}

func TestFormatReading(t *testing.T) {
	rules, err := content.Default()
	require.NoError(t, err)

	text := FormatReading(sampleReading(), rules, domain.LanguageRU)

	assert.Contains(t, text, "01.03.2024")
	assert.Contains(t, text, "Тебе 24 года")
	assert.Contains(t, text, "★★★★★★★★☆☆ 8/10")
	assert.Contains(t, text, "Любовь &lt;рядом&gt;", "lines are HTML-escaped")
	assert.Contains(t, text, "Счастливое число: 7")
	assert.Contains(t, text, "Совет дня:</b> Отдохни")
	assert.NotContains(t, text, rules.UndefinedCompatibility)
}

func TestFormatReading_UndefinedCompatibility(t *testing.T) {
	rules, err := content.Default()
	require.NoError(t, err)

	r := sampleReading()
	r.Compatible = nil
	r.CompatibilityUndefined = true
	r.Age = nil

	text := FormatReading(r, rules, domain.LanguageRU)
	assert.Contains(t, text, "Совместимость: "+rules.UndefinedCompatibility)
	assert.NotContains(t, text, "Тебе")
}

func TestFormatWelcomeBack(t *testing.T) {
	name := "<Аня>"
	assert.Equal(t, "С возвращением, <b>&lt;Аня&gt;</b>! 🌙", FormatWelcomeBack(&name))
	assert.Equal(t, WelcomeBackAnonymous, FormatWelcomeBack(nil))
}

func TestFormatDonate(t *testing.T) {
	assert.Equal(t, DonateUnavailable, FormatDonate(""))
	assert.Contains(t, FormatDonate("UQ-wallet"), "<code>UQ-wallet</code>")
}
