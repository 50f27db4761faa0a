package texts

import (
	"fmt"
	"html"
	"strings"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/content"
)

const dateLayout = "02.01.2006"

var yearsForms = [3]string{"год", "года", "лет"}

var genderNames = map[domain.Gender]string{
	domain.GenderMale:   "мужской",
	domain.GenderFemale: "женский",
}

// FormatAskBirthDateNamed просьба ввести дату после ввода имени
func FormatAskBirthDateNamed(name string) string {
	return fmt.Sprintf(askBirthDateNamed, html.EscapeString(name))
}

// FormatAskGender просьба выбрать пол с подтверждением знака
func FormatAskGender(sign *content.Sign) string {
	return fmt.Sprintf(askGender, sign.Emoji, sign.Name)
}

func FormatBirthDateUpdated(sign *content.Sign) string {
	return fmt.Sprintf(birthDateUpdated, sign.Emoji, sign.Name)
}

func FormatSignChanged(sign *content.Sign) string {
	return fmt.Sprintf(signChanged, sign.Emoji, sign.Name)
}

// FormatWelcomeBack приветствие вернувшегося пользователя
func FormatWelcomeBack(name *string) string {
	if name == nil || *name == "" {
		return WelcomeBackAnonymous
	}
	return fmt.Sprintf(welcomeBack, html.EscapeString(*name))
}

func FormatUnknownCommand(command string) string {
	return fmt.Sprintf(unknownCommand, html.EscapeString(command))
}

func FormatFortune(slip string) string {
	return fmt.Sprintf(fortune, html.EscapeString(slip))
}

func FormatOracleAnswer(question, answer string) string {
	return fmt.Sprintf(oracleAnswer, html.EscapeString(question), html.EscapeString(answer))
}

func FormatDonate(wallet string) string {
	if wallet == "" {
		return DonateUnavailable
	}
	return fmt.Sprintf(donate, html.EscapeString(wallet))
}

// FormatYears "24 года"
func FormatYears(lang domain.Language, n int) string {
	return fmt.Sprintf("%d %s", n, Plural(lang, n, yearsForms))
}

// FormatReading гороскоп в HTML
func FormatReading(r domain.DailyReading, rules *content.Ruleset, lang domain.Language) string {
	var b strings.Builder

	sign, _ := rules.Sign(r.Sign)
	if sign != nil {
		fmt.Fprintf(&b, "%s <b>%s</b> • %s\n", sign.Emoji, sign.Name, r.Date.Format(dateLayout))
	} else {
		fmt.Fprintf(&b, "<b>%s</b> • %s\n", r.Sign, r.Date.Format(dateLayout))
	}
	if r.Age != nil {
		fmt.Fprintf(&b, "🎂 Тебе %s\n", FormatYears(lang, *r.Age))
	}
	b.WriteString("\n")

	for _, a := range r.Aspects {
		title, emoji := string(a.Aspect), ""
		if aspect, ok := rules.Aspect(a.Aspect); ok {
			title, emoji = aspect.Title, aspect.Emoji
		}
		fmt.Fprintf(&b, "%s <b>%s</b>: %s %d/10\n", emoji, title, scoreBar(a.Score), a.Score)
		if a.Line != "" {
			fmt.Fprintf(&b, "<i>%s</i>\n", html.EscapeString(a.Line))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "😊 Настроение: %s\n", html.EscapeString(r.Mood))
	fmt.Fprintf(&b, "🎨 Цвет дня: %s\n", html.EscapeString(r.Color))
	fmt.Fprintf(&b, "🔢 Счастливое число: %d\n", r.LuckyNumber)
	fmt.Fprintf(&b, "🪐 Планета: %s\n", html.EscapeString(r.Planet))
	fmt.Fprintf(&b, "💎 Камень: %s\n", html.EscapeString(r.Stone))
	fmt.Fprintf(&b, "💞 Совместимость: %s\n", formatCompatible(r, rules))
	fmt.Fprintf(&b, "\n💡 <b>Совет дня:</b> %s", html.EscapeString(r.Tip))

	return b.String()
}

// FormatDailyBroadcast гороскоп для утренней рассылки
func FormatDailyBroadcast(r domain.DailyReading, rules *content.Ruleset, lang domain.Language) string {
	return dailyBroadcastHeader + FormatReading(r, rules, lang)
}

func formatCompatible(r domain.DailyReading, rules *content.Ruleset) string {
	if r.CompatibilityUndefined || len(r.Compatible) == 0 {
		return rules.UndefinedCompatibility
	}
	names := make([]string, 0, len(r.Compatible))
	for _, code := range r.Compatible {
		if s, ok := rules.Sign(code); ok {
			names = append(names, s.Emoji+" "+s.Name)
		} else {
			names = append(names, string(code))
		}
	}
	return strings.Join(names, ", ")
}

func scoreBar(score int) string {
	const total = 10
	score = max(0, min(score, total))
	return strings.Repeat("★", score) + strings.Repeat("☆", total-score)
}

// ProfileView данные для экрана профиля
type ProfileView struct {
	Profile      *domain.Profile
	Sign         *content.Sign
	ReferralLink string
	InvitedCount int
}

// FormatProfile экран профиля
func FormatProfile(v ProfileView) string {
	var b strings.Builder
	b.WriteString("👤 <b>Твой профиль</b>\n\n")

	p := v.Profile
	if p.DisplayName != nil && *p.DisplayName != "" {
		fmt.Fprintf(&b, "Имя: %s\n", html.EscapeString(*p.DisplayName))
	} else {
		b.WriteString("Имя: не указано\n")
	}
	if p.BirthDate != nil {
		fmt.Fprintf(&b, "Дата рождения: %s\n", p.BirthDate.Format(dateLayout))
	} else {
		b.WriteString("Дата рождения: не указана\n")
	}
	if p.Gender != nil {
		fmt.Fprintf(&b, "Пол: %s\n", genderNames[*p.Gender])
	}
	if v.Sign != nil {
		fmt.Fprintf(&b, "Знак: %s %s\n", v.Sign.Emoji, v.Sign.Name)
	}

	fmt.Fprintf(&b, "\n📨 Приглашено друзей: %d\n", v.InvitedCount)
	if v.ReferralLink != "" {
		fmt.Fprintf(&b, "Твоя ссылка: %s", html.EscapeString(v.ReferralLink))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatBroadcastAlert сводка рассылки для алерта
func FormatBroadcastAlert(result domain.BroadcastResult) string {
	return fmt.Sprintf(broadcastAlert, result.Sent, result.Failed)
}

// FormatBroadcastListAlert алерт о невозможности получить список пользователей
func FormatBroadcastListAlert(err error) string {
	return fmt.Sprintf(broadcastListAlert, err.Error())
}
