package horoscope

import (
	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/onboarding"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// Идентификаторы действий inline-кнопок
const (
	actionMainMenu          = "main_menu"
	actionHoroscope         = "horoscope"
	actionSettings          = "settings"
	actionFunMenu           = "fun_menu"
	actionProfile           = "profile"
	actionDonate            = "donate"
	actionSettingsSign      = "settings_sign"
	actionSettingsBirthDate = "settings_birth_date"
	actionSettingsLanguage  = "settings_language"
	actionFunFortune        = "fun_fortune"
	actionFunYesNo          = "fun_yes_no"

	actionSignPrefix = "sign_"
	actionLangPrefix = "lang_"
)

const signsPerRow = 3

func button(text, data string) domain.InlineButton {
	return domain.InlineButton{Text: text, Data: data}
}

func mainMenuKeyboard() *domain.InlineKeyboard {
	return &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
		{button(texts.ButtonHoroscope, actionHoroscope)},
		{button(texts.ButtonFun, actionFunMenu)},
		{button(texts.ButtonProfile, actionProfile), button(texts.ButtonSettings, actionSettings)},
		{button(texts.ButtonDonate, actionDonate)},
	}}
}

func backKeyboard(action string) *domain.InlineKeyboard {
	return &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
		{button(texts.ButtonBack, action)},
	}}
}

func settingsKeyboard() *domain.InlineKeyboard {
	return &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
		{button(texts.ButtonChangeSign, actionSettingsSign)},
		{button(texts.ButtonChangeBirth, actionSettingsBirthDate)},
		{button(texts.ButtonChangeLang, actionSettingsLanguage)},
		{button(texts.ButtonMainMenu, actionMainMenu)},
	}}
}

func funKeyboard() *domain.InlineKeyboard {
	return &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
		{button(texts.ButtonFortune, actionFunFortune), button(texts.ButtonYesNo, actionFunYesNo)},
		{button(texts.ButtonMainMenu, actionMainMenu)},
	}}
}

func (s *Service) signKeyboard() *domain.InlineKeyboard {
	kb := &domain.InlineKeyboard{}
	var row []domain.InlineButton
	for _, code := range domain.AllSigns() {
		label := string(code)
		if sign, ok := s.Rules.Sign(code); ok {
			label = sign.Emoji + " " + sign.Name
		}
		row = append(row, button(label, actionSignPrefix+string(code)))
		if len(row) == signsPerRow {
			kb.Rows = append(kb.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.Rows = append(kb.Rows, row)
	}
	kb.Rows = append(kb.Rows, []domain.InlineButton{button(texts.ButtonBack, actionSettings)})
	return kb
}

func languageKeyboard() *domain.InlineKeyboard {
	return &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
		{button(texts.ButtonLanguageRU, actionLangPrefix+string(domain.LanguageRU))},
		{button(texts.ButtonBack, actionSettings)},
	}}
}

func genderKeyboard() *domain.InlineKeyboard {
	return &domain.InlineKeyboard{Rows: [][]domain.InlineButton{
		{button(texts.ButtonGenderMale, onboarding.ActionGenderMale), button(texts.ButtonGenderFemale, onboarding.ActionGenderFemale)},
		{button(texts.ButtonConfirmSign, onboarding.ActionSignConfirm)},
	}}
}

func profileKeyboard(referralLink string) *domain.InlineKeyboard {
	kb := &domain.InlineKeyboard{}
	if referralLink != "" {
		kb.Rows = append(kb.Rows, []domain.InlineButton{{Text: texts.ButtonShareReferral, URL: shareURL(referralLink)}})
	}
	kb.Rows = append(kb.Rows, []domain.InlineButton{button(texts.ButtonBack, actionMainMenu)})
	return kb
}
