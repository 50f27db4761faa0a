package domain

// Типы Bot API (https://core.telegram.org/bots/api), только поля, которые читает бот.

const ChatTypePrivate = "private"

type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Sender автор обновления: отправитель сообщения или нажавший кнопку; nil для прочих обновлений
func (u *Update) Sender() *TelegramUser {
	switch {
	case u == nil:
		return nil
	case u.Message != nil:
		return u.Message.From
	case u.CallbackQuery != nil:
		return u.CallbackQuery.From
	}
	return nil
}

type Message struct {
	MessageID int64         `json:"message_id"`
	From      *TelegramUser `json:"from,omitempty"`
	Chat      *Chat         `json:"chat"`
	Text      *string       `json:"text,omitempty"`
}

type CallbackQuery struct {
	ID      string        `json:"id"`
	From    *TelegramUser `json:"from,omitempty"`
	Message *Message      `json:"message,omitempty"` // сообщение с нажатой кнопкой, может отсутствовать у старых
	Data    *string       `json:"data,omitempty"`
}

// TelegramUser аккаунт Telegram, не путать с Profile
type TelegramUser struct {
	ID        int64   `json:"id"`
	IsBot     bool    `json:"is_bot"`
	FirstName string  `json:"first_name"`
	Username  *string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// IsPrivate личный диалог с ботом; группы и каналы бот не обслуживает
func (c *Chat) IsPrivate() bool {
	return c != nil && c.Type == ChatTypePrivate
}
