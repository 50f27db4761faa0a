package horoscope

import (
	"context"
	"strings"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// showFortune случайное предсказание, не зависит от даты
func (s *Service) showFortune(ss *session) {
	slips := s.Rules.FortuneSlips
	ss.show(texts.FormatFortune(slips[s.intN(len(slips))]), funKeyboard())
}

func (s *Service) enterOracle(ctx context.Context, ss *session) error {
	if err := s.setField(ctx, ss, domain.FieldConversationState, domain.StateAwaitingOracleQuestion); err != nil {
		return err
	}
	ss.send(texts.OracleAsk, nil)
	return nil
}

// onOracleState ожидание вопроса оракулу.
// Команда или кнопка выводят из режима и обрабатываются как обычно.
func (s *Service) onOracleState(ctx context.Context, ss *session) error {
	text := strings.TrimSpace(ss.event.Text)

	if ss.event.Kind == domain.EventButtonPress || IsCommand(text) {
		if err := s.setField(ctx, ss, domain.FieldConversationState, domain.StateNone); err != nil {
			return err
		}
		return s.route(ctx, ss)
	}

	if !isQuestion(text) {
		ss.send(texts.OracleNotQuestion, nil)
		return nil
	}

	if err := s.setField(ctx, ss, domain.FieldConversationState, domain.StateNone); err != nil {
		return err
	}
	ss.send(texts.FormatOracleAnswer(text, s.oracleAnswer()), funKeyboard())
	return nil
}

// oracleAnswer взвешенный выбор категории, затем равновероятный выбор ответа
func (s *Service) oracleAnswer() string {
	categories := s.Rules.Oracle

	total := 0
	for _, c := range categories {
		total += c.Weight
	}

	roll := s.intN(total)
	for _, c := range categories {
		if roll < c.Weight {
			return c.Lines[s.intN(len(c.Lines))]
		}
		roll -= c.Weight
	}

	last := categories[len(categories)-1]
	return last.Lines[s.intN(len(last.Lines))]
}

func isQuestion(text string) bool {
	return len([]rune(text)) > 1 && (strings.HasSuffix(text, "?") || strings.HasSuffix(text, "？"))
}
