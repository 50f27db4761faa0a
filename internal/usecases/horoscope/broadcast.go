package horoscope

import (
	"context"
	"fmt"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// RunBroadcast рассылает гороскоп на сегодня всем профилям.
// Ошибка отправки одному пользователю не прерывает рассылку.
func (s *Service) RunBroadcast(ctx context.Context) (domain.BroadcastResult, error) {
	var result domain.BroadcastResult

	profiles, err := s.Profiles.ListAll(ctx)
	if err != nil {
		s.alert(ctx, texts.FormatBroadcastListAlert(err))
		return result, fmt.Errorf("failed to list profiles: %w", err)
	}

	today := s.today()
	s.Log.Info("broadcast started", "profiles", len(profiles), "date", today.Format("2006-01-02"))

	for i, p := range profiles {
		if i > 0 {
			if err := s.sleep(ctx, s.Config.BroadcastDelay); err != nil {
				s.Log.Warn("broadcast interrupted",
					"error", err,
					"sent", result.Sent,
					"failed", result.Failed,
				)
				return result, fmt.Errorf("broadcast interrupted: %w", err)
			}
		}

		reading := s.Generator.Generate(p.ID, p, today)
		msg := htmlMessage(texts.FormatDailyBroadcast(reading, s.Rules, p.LanguageCode), mainMenuKeyboard())

		if err := s.Messenger.Send(ctx, p.ID, msg); err != nil {
			result.Failed++
			s.Log.Warn("failed to send daily reading",
				"error", err,
				"user_id", p.ID,
			)
			continue
		}
		result.Sent++
	}

	s.Log.Info("broadcast finished", "sent", result.Sent, "failed", result.Failed)

	if result.Failed > 0 {
		s.alert(ctx, texts.FormatBroadcastAlert(result))
	}
	return result, nil
}

func (s *Service) alert(ctx context.Context, message string) {
	if s.Alerter == nil {
		return
	}
	if err := s.Alerter.SendAlert(ctx, message); err != nil {
		s.Log.Error("failed to send alert", "error", err)
	}
}
