package domain

// ParseMode режим форматирования исходящего сообщения
type ParseMode string

const (
	ParseModeNone ParseMode = ""
	ParseModeHTML ParseMode = "HTML"
)

// MessageRef ссылка на уже отправленное сообщение (для редактирования)
type MessageRef struct {
	ChatID    int64
	MessageID int64
}

// InlineButton кнопка inline-клавиатуры
type InlineButton struct {
	Text string `json:"text"`
	Data string `json:"callback_data,omitempty"`
	URL  string `json:"url,omitempty"`
}

// InlineKeyboard inline-клавиатура, строки кнопок
type InlineKeyboard struct {
	Rows [][]InlineButton
}

// OutgoingMessage исходящее сообщение
type OutgoingMessage struct {
	Text      string
	ParseMode ParseMode
	Keyboard  *InlineKeyboard
}
