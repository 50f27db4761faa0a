package horoscope

import (
	"fmt"
	"net/url"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

const shareText = "Мой личный астролог в Telegram 🔮"

// reading гороскоп пользователя на сегодня
func (s *Service) reading(profile *domain.Profile) domain.DailyReading {
	return s.Generator.Generate(profile.ID, profile, s.today())
}

// showReading гороскоп всегда новым сообщением, меню остаётся на месте
func (s *Service) showReading(ss *session) {
	r := s.reading(ss.profile)
	ss.send(texts.FormatReading(r, s.Rules, ss.profile.LanguageCode), backKeyboard(actionMainMenu))
}

func (s *Service) showProfile(ss *session) {
	sign, _ := s.Rules.Sign(ss.profile.ZodiacSign)
	link := s.referralLink(ss.profile.ID)

	ss.show(texts.FormatProfile(texts.ProfileView{
		Profile:      ss.profile,
		Sign:         sign,
		ReferralLink: link,
		InvitedCount: len(ss.profile.ReferralIDs),
	}), profileKeyboard(link))
}

func (s *Service) showDonate(ss *session) {
	ss.show(texts.FormatDonate(s.Config.DonationWallet), backKeyboard(actionMainMenu))
}

// referralLink ссылка вида https://t.me/<bot>?start=<id>; пустая, если имя бота не задано
func (s *Service) referralLink(id int64) string {
	if s.Config.BotUsername == "" {
		return ""
	}
	return fmt.Sprintf("https://t.me/%s?start=%d", s.Config.BotUsername, id)
}

func shareURL(link string) string {
	q := url.Values{}
	q.Set("url", link)
	q.Set("text", shareText)
	return "https://t.me/share/url?" + q.Encode()
}
