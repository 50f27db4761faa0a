package domain

// EventKind тип входящего события
type EventKind int

const (
	EventTextMessage EventKind = iota + 1
	EventButtonPress
)

// Event входящее событие от пользователя: текст или нажатие inline-кнопки
type Event struct {
	Kind     EventKind
	SenderID int64
	Username *string

	// TextMessage
	Text string

	// ButtonPress
	ActionID   string
	CallbackID string
	Message    *MessageRef
}

func NewTextEvent(senderID int64, username *string, text string) Event {
	return Event{
		Kind:     EventTextMessage,
		SenderID: senderID,
		Username: username,
		Text:     text,
	}
}

func NewButtonEvent(senderID int64, username *string, actionID, callbackID string, message *MessageRef) Event {
	return Event{
		Kind:       EventButtonPress,
		SenderID:   senderID,
		Username:   username,
		ActionID:   actionID,
		CallbackID: callbackID,
		Message:    message,
	}
}
