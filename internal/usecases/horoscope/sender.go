package horoscope

import (
	"context"
	"errors"
	"fmt"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// reply исходящее действие, которое выполняется после снятия блокировки пользователя
type reply struct {
	edit *domain.MessageRef // nil - новое сообщение
	msg  domain.OutgoingMessage
}

// session состояние обработки одного события
type session struct {
	event   domain.Event
	profile *domain.Profile
	isNew   bool

	replies      []reply
	callbackText string
	callbackSent bool
}

func newSession(event domain.Event) *session {
	return &session{event: event}
}

func (ss *session) send(text string, kb *domain.InlineKeyboard) {
	ss.replies = append(ss.replies, reply{msg: htmlMessage(text, kb)})
}

// show редактирует сообщение с нажатой кнопкой, а для текстового ввода отправляет новое
func (ss *session) show(text string, kb *domain.InlineKeyboard) {
	if ss.event.Kind == domain.EventButtonPress && ss.event.Message != nil {
		ref := *ss.event.Message
		ss.replies = append(ss.replies, reply{edit: &ref, msg: htmlMessage(text, kb)})
		return
	}
	ss.send(text, kb)
}

func (ss *session) answer(text string) {
	ss.callbackText = text
}

func htmlMessage(text string, kb *domain.InlineKeyboard) domain.OutgoingMessage {
	return domain.OutgoingMessage{Text: text, ParseMode: domain.ParseModeHTML, Keyboard: kb}
}

// flush отправляет накопленные ответы, блокировка к этому моменту уже снята
func (s *Service) flush(ctx context.Context, ss *session) error {
	var errs []error

	if ss.event.Kind == domain.EventButtonPress && ss.event.CallbackID != "" {
		if err := s.Messenger.AnswerCallback(ctx, ss.event.CallbackID, ss.callbackText, false); err != nil {
			s.Log.WarnContext(ctx, "failed to answer callback", "error", err)
		}
	}

	for _, r := range ss.replies {
		if r.edit != nil {
			err := s.Messenger.Edit(ctx, *r.edit, r.msg)
			if err == nil {
				continue
			}
			// сообщение могло устареть, показываем новым
			s.Log.DebugContext(ctx, "edit failed, sending new message", "error", err)
		}

		if err := s.Messenger.Send(ctx, ss.event.SenderID, r.msg); err != nil {
			s.Log.ErrorContext(ctx, "failed to send message", "error", err)
			errs = append(errs, fmt.Errorf("failed to send message: %w", err))
		}
	}

	return errors.Join(errs...)
}
