package telegram

import (
	"context"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// InlineKeyboardMarkup reply_markup с inline-кнопками
type InlineKeyboardMarkup struct {
	InlineKeyboard [][]domain.InlineButton `json:"inline_keyboard"`
}

// SendMessageRequest запрос на отправку сообщения
type SendMessageRequest struct {
	ChatID      int64                 `json:"chat_id"`
	Text        string                `json:"text"`
	ParseMode   string                `json:"parse_mode,omitempty"` // "HTML", "Markdown", "MarkdownV2"
	ReplyMarkup *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	// MessageThreadID топик форума (для алертов)
	MessageThreadID *int64 `json:"message_thread_id,omitempty"`
	// ссылки (реферальная, кошелёк) без превью
	DisableWebPagePreview bool `json:"disable_web_page_preview,omitempty"`
}

// EditMessageTextRequest запрос на редактирование текста сообщения
type EditMessageTextRequest struct {
	ChatID                int64                 `json:"chat_id"`
	MessageID             int64                 `json:"message_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
}

// AnswerCallbackRequest ответ на нажатие inline-кнопки; без него клиент крутит индикатор загрузки
type AnswerCallbackRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
	Text            string `json:"text,omitempty"`
	ShowAlert       bool   `json:"show_alert,omitempty"`
	CacheTime       int    `json:"cache_time,omitempty"`
}

// SendMessage отправляет сообщение и возвращает его id
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (int64, error) {
	var result domain.Message
	if err := c.call(ctx, "sendMessage", req, &result); err != nil {
		return 0, err
	}

	c.log.Debug("message sent successfully",
		"chat_id", req.ChatID,
		"message_id", result.MessageID,
	)
	return result.MessageID, nil
}

// EditMessageText заменяет текст и клавиатуру ранее отправленного сообщения
func (c *Client) EditMessageText(ctx context.Context, req EditMessageTextRequest) error {
	// для сообщений бота result - это Message, для inline - true; нам не нужен ни один
	if err := c.call(ctx, "editMessageText", req, nil); err != nil {
		return err
	}

	c.log.Debug("message edited successfully",
		"chat_id", req.ChatID,
		"message_id", req.MessageID,
	)
	return nil
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, req AnswerCallbackRequest) error {
	return c.call(ctx, "answerCallbackQuery", req, nil)
}

// KeyboardMarkup переводит доменную клавиатуру в формат Bot API
func KeyboardMarkup(kb *domain.InlineKeyboard) *InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	return &InlineKeyboardMarkup{InlineKeyboard: kb.Rows}
}
