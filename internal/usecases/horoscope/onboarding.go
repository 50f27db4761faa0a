package horoscope

import (
	"context"
	"strings"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/content"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/onboarding"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// onFirstContact первое событие от пользователя: реферальная ссылка и старт регистрации
func (s *Service) onFirstContact(ctx context.Context, ss *session) error {
	if ss.event.Kind == domain.EventTextMessage {
		text := strings.TrimSpace(ss.event.Text)
		if IsCommand(text) {
			if command, args := ParseCommand(text); command == commandStart && args != "" {
				s.applyReferral(ctx, ss, args)
			}
		}
	}

	return s.applyFlowResult(ctx, ss, s.Flow.Start())
}

// onOnboarding ввод на шаге регистрации или смены даты рождения
func (s *Service) onOnboarding(ctx context.Context, ss *session) error {
	var in onboarding.Input
	if ss.event.Kind == domain.EventButtonPress {
		in = onboarding.Action(ss.event.ActionID)
	} else {
		in = onboarding.Text(ss.event.Text)
	}

	res := s.Flow.Transition(ss.profile.ConversationState, in, s.today())
	if res.Err != nil {
		s.Log.Debug("onboarding input rejected",
			"user_id", ss.profile.ID,
			"state", ss.profile.ConversationState,
			"error", res.Err,
		)
	}

	return s.applyFlowResult(ctx, ss, res)
}

// enterChangeBirthDate переход к смене даты рождения из настроек
func (s *Service) enterChangeBirthDate(ctx context.Context, ss *session) error {
	return s.applyFlowResult(ctx, ss, s.Flow.ChangeBirthDate())
}

// applyFlowResult записывает поля по порядку (conversation_state последним) и готовит подсказку
func (s *Service) applyFlowResult(ctx context.Context, ss *session, res onboarding.Result) error {
	from := ss.profile.ConversationState

	for _, w := range res.Writes {
		if err := s.setField(ctx, ss, w.Field, w.Value); err != nil {
			return err
		}
	}

	if res.Changed(from) {
		s.Log.Debug("conversation state changed",
			"user_id", ss.profile.ID,
			"from", from,
			"to", res.Next,
		)
	}

	s.prompt(ss, from, res)
	return nil
}

func (s *Service) prompt(ss *session, from domain.ConversationState, res onboarding.Result) {
	switch res.Prompt {
	case onboarding.PromptAskName:
		ss.send(texts.AskName, nil)
	case onboarding.PromptNameInvalid:
		ss.send(texts.NameInvalid, nil)
	case onboarding.PromptAskBirthDate:
		switch {
		case res.Name != "":
			ss.send(texts.FormatAskBirthDateNamed(res.Name), nil)
		case res.Next == domain.StateChangingBirthDate:
			ss.send(texts.ChangeBirthDatePrompt, nil)
		default:
			ss.send(texts.AskBirthDate, nil)
		}
	case onboarding.PromptBirthDateFormat:
		ss.send(texts.BirthDateFormatError, nil)
	case onboarding.PromptBirthDateFuture:
		ss.send(texts.BirthDateFutureError, nil)
	case onboarding.PromptAskGenderOrSign:
		ss.send(texts.FormatAskGender(s.signOrDefault(res.Sign)), genderKeyboard())
	case onboarding.PromptUseButtons:
		if ss.event.Kind == domain.EventButtonPress {
			ss.answer(texts.UseButtons)
		}
		ss.send(texts.FormatAskGender(s.signOrDefault(ss.profile.ZodiacSign)), genderKeyboard())
	case onboarding.PromptCompleted:
		// кнопка пола превращается в подтверждение, меню отдельным сообщением
		ss.show(texts.RegistrationCompleted, nil)
		ss.send(texts.MainMenu, mainMenuKeyboard())
		s.Log.Info("registration completed", "user_id", ss.profile.ID, "from", from)
	case onboarding.PromptBirthDateUpdated:
		ss.send(texts.FormatBirthDateUpdated(s.signOrDefault(res.Sign)), mainMenuKeyboard())
	}
}

func (s *Service) signOrDefault(code domain.SignCode) *content.Sign {
	if sign, ok := s.Rules.Sign(code); ok {
		return sign
	}
	sign, _ := s.Rules.Sign(s.Rules.DefaultSign)
	return sign
}
