package horoscope

import (
	"context"

	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

const (
	commandStart     = "start"
	commandMenu      = "menu"
	commandHoroscope = "horoscope"
	commandSettings  = "settings"
	commandProfile   = "profile"
	commandDonate    = "donate"
	commandHelp      = "help"
)

func (s *Service) handleCommand(ctx context.Context, ss *session, command, args string) error {
	switch command {
	case commandStart:
		// вернувшийся пользователь: реферальный аргумент уже не учитывается
		ss.send(texts.FormatWelcomeBack(ss.profile.DisplayName), mainMenuKeyboard())
	case commandMenu:
		ss.send(texts.MainMenu, mainMenuKeyboard())
	case commandHoroscope:
		s.showReading(ss)
	case commandSettings:
		ss.send(texts.SettingsMenu, settingsKeyboard())
	case commandProfile:
		s.showProfile(ss)
	case commandDonate:
		s.showDonate(ss)
	case commandHelp:
		ss.send(texts.Help, nil)
	default:
		s.Log.Debug("unknown command",
			"user_id", ss.profile.ID,
			"command", command,
		)
		ss.send(texts.FormatUnknownCommand("/"+command), nil)
	}
	return nil
}
