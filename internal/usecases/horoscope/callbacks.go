package horoscope

import (
	"context"
	"strings"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// handleAction нажатие inline-кнопки вне регистрации
func (s *Service) handleAction(ctx context.Context, ss *session, action string) error {
	switch action {
	case actionMainMenu:
		ss.show(texts.MainMenu, mainMenuKeyboard())
	case actionHoroscope:
		s.showReading(ss)
	case actionSettings:
		ss.show(texts.SettingsMenu, settingsKeyboard())
	case actionFunMenu:
		ss.show(texts.FunMenu, funKeyboard())
	case actionProfile:
		s.showProfile(ss)
	case actionDonate:
		s.showDonate(ss)
	case actionSettingsSign:
		ss.show(texts.ChooseSign, s.signKeyboard())
	case actionSettingsLanguage:
		ss.show(texts.ChooseLanguage, languageKeyboard())
	case actionSettingsBirthDate:
		return s.enterChangeBirthDate(ctx, ss)
	case actionFunFortune:
		s.showFortune(ss)
	case actionFunYesNo:
		return s.enterOracle(ctx, ss)
	default:
		switch {
		case strings.HasPrefix(action, actionSignPrefix):
			return s.changeSign(ctx, ss, domain.SignCode(strings.TrimPrefix(action, actionSignPrefix)))
		case strings.HasPrefix(action, actionLangPrefix):
			return s.changeLanguage(ctx, ss, domain.Language(strings.TrimPrefix(action, actionLangPrefix)))
		}
		s.ignoreAction(ss, action)
	}
	return nil
}

// ignoreAction неизвестное или устаревшее действие: только подтверждаем нажатие
func (s *Service) ignoreAction(ss *session, action string) {
	s.Log.Debug("unknown action ignored",
		"user_id", ss.profile.ID,
		"action", action,
	)
	ss.answer(texts.ActionExpired)
}

func (s *Service) changeSign(ctx context.Context, ss *session, code domain.SignCode) error {
	sign, ok := s.Rules.Sign(code)
	if !ok {
		s.ignoreAction(ss, actionSignPrefix+string(code))
		return nil
	}

	if err := s.setField(ctx, ss, domain.FieldZodiacSign, code); err != nil {
		return err
	}
	ss.show(texts.FormatSignChanged(sign), settingsKeyboard())
	return nil
}

func (s *Service) changeLanguage(ctx context.Context, ss *session, lang domain.Language) error {
	if !lang.IsValid() {
		s.ignoreAction(ss, actionLangPrefix+string(lang))
		return nil
	}

	if err := s.setField(ctx, ss, domain.FieldLanguageCode, lang); err != nil {
		return err
	}
	ss.show(texts.LanguageChanged, settingsKeyboard())
	return nil
}
