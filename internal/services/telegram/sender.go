package telegram

import (
	"context"
	"fmt"

	TgClient "github.com/QuilGrafit/astroX/internal/adapters/secondary/telegram"
	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/service"
)

var _ service.IMessenger = (*Service)(nil)

// Send отправляет сообщение пользователю
func (s *Service) Send(ctx context.Context, chatID int64, msg domain.OutgoingMessage) error {
	_, err := s.TelegramClient.SendMessage(ctx, TgClient.SendMessageRequest{
		ChatID:                chatID,
		Text:                  msg.Text,
		ParseMode:             string(msg.ParseMode),
		ReplyMarkup:           TgClient.KeyboardMarkup(msg.Keyboard),
		DisableWebPagePreview: true,
	})
	if err != nil {
		if TgClient.IsForbidden(err) {
			s.Log.Info("user blocked the bot", "chat_id", chatID)
		}
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.Log.Debug("message sent successfully", "chat_id", chatID)
	return nil
}

// Edit редактирует ранее отправленное сообщение; "message is not modified" не считается ошибкой
func (s *Service) Edit(ctx context.Context, ref domain.MessageRef, msg domain.OutgoingMessage) error {
	err := s.TelegramClient.EditMessageText(ctx, TgClient.EditMessageTextRequest{
		ChatID:                ref.ChatID,
		MessageID:             ref.MessageID,
		Text:                  msg.Text,
		ParseMode:             string(msg.ParseMode),
		ReplyMarkup:           TgClient.KeyboardMarkup(msg.Keyboard),
		DisableWebPagePreview: true,
	})
	if err != nil && !TgClient.IsNotModified(err) {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (s *Service) AnswerCallback(ctx context.Context, callbackID string, text string, showAlert bool) error {
	err := s.TelegramClient.AnswerCallbackQuery(ctx, TgClient.AnswerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	if err != nil {
		return fmt.Errorf("failed to answer callback query %s: %w", callbackID, err)
	}
	return nil
}

// RegisterCommands публикует список команд в меню Telegram
func (s *Service) RegisterCommands(ctx context.Context, commands []TgClient.BotCommand) error {
	if err := s.TelegramClient.SetMyCommands(ctx, commands); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}
	s.Log.Info("bot commands registered", "count", len(commands))
	return nil
}
