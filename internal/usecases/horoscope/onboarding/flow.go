package onboarding

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/QuilGrafit/astroX/internal/domain"
)

const (
	birthDateLayout = "02.01.2006"
	maxNameLength   = 64

	ActionGenderMale   = "gender_male"
	ActionGenderFemale = "gender_female"
	ActionSignConfirm  = "sign_confirm"
)

var (
	ErrBirthDateFormat = errors.New("birth date must be DD.MM.YYYY")
	ErrBirthDateFuture = errors.New("birth date is in the future")
	ErrNameInvalid     = errors.New("name is empty or too long")
)

var birthDatePattern = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// Prompt что показать пользователю после перехода
type Prompt int

const (
	PromptNone Prompt = iota
	PromptAskName
	PromptNameInvalid
	PromptAskBirthDate
	PromptBirthDateFormat
	PromptBirthDateFuture
	PromptAskGenderOrSign
	PromptUseButtons
	PromptCompleted
	PromptBirthDateUpdated
)

// Input ввод пользователя: текст или действие inline-кнопки
type Input struct {
	Text     string
	ActionID string
}

func Text(text string) Input {
	return Input{Text: text}
}

func Action(actionID string) Input {
	return Input{ActionID: actionID}
}

func (in Input) IsAction() bool {
	return in.ActionID != ""
}

// FieldWrite запись поля профиля, которую должен выполнить вызывающий
type FieldWrite struct {
	Field domain.ProfileField
	Value any
}

// Result итог перехода: новое состояние, записи в профиль и подсказка пользователю
type Result struct {
	Next   domain.ConversationState
	Writes []FieldWrite
	Prompt Prompt
	// Completed шаги закончились, пользователю показывается главное меню
	Completed bool
	// Sign знак, выведенный из даты рождения (если дата была принята)
	Sign domain.SignCode
	// Name принятое имя
	Name string
	// Err причина отказа для шага с ошибкой валидации
	Err error
}

// Changed true, если переход сменил состояние
func (r Result) Changed(from domain.ConversationState) bool {
	return r.Next != from
}

// Flow машина состояний регистрации. Чистая: не ходит в сеть и хранилище.
type Flow struct {
	// CollectName включает шаги имени и пола: None -> AwaitingName -> AwaitingBirthDate -> AwaitingGenderOrSign -> None
	CollectName bool
}

// Start первый шаг регистрации
func (f Flow) Start() Result {
	if f.CollectName {
		return enter(domain.StateAwaitingName, PromptAskName)
	}
	return enter(domain.StateAwaitingBirthDate, PromptAskBirthDate)
}

// ChangeBirthDate вход в смену даты рождения из настроек
func (f Flow) ChangeBirthDate() Result {
	return enter(domain.StateChangingBirthDate, PromptAskBirthDate)
}

// Transition обрабатывает ввод в состоянии state; today - текущая дата в опорном часовом поясе
func (f Flow) Transition(state domain.ConversationState, in Input, today time.Time) Result {
	switch state {
	case domain.StateAwaitingName:
		return f.onName(in)
	case domain.StateAwaitingBirthDate:
		return f.onBirthDate(in, today)
	case domain.StateAwaitingGenderOrSign:
		return f.onGenderOrSign(in)
	case domain.StateChangingBirthDate:
		return f.onChangeBirthDate(in, today)
	default:
		// не шаг регистрации: ничего не меняем
		return Result{Next: state}
	}
}

func (f Flow) onName(in Input) Result {
	if in.IsAction() {
		return stay(domain.StateAwaitingName, PromptAskName, nil)
	}

	name := strings.TrimSpace(in.Text)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return stay(domain.StateAwaitingName, PromptNameInvalid, ErrNameInvalid)
	}

	r := enter(domain.StateAwaitingBirthDate, PromptAskBirthDate)
	r.Writes = append([]FieldWrite{{Field: domain.FieldDisplayName, Value: name}}, r.Writes...)
	r.Name = name
	return r
}

func (f Flow) onBirthDate(in Input, today time.Time) Result {
	birthDate, res, ok := acceptBirthDate(domain.StateAwaitingBirthDate, in, today)
	if !ok {
		return res
	}

	var r Result
	if f.CollectName {
		r = enter(domain.StateAwaitingGenderOrSign, PromptAskGenderOrSign)
	} else {
		r = enter(domain.StateNone, PromptCompleted)
		r.Completed = true
	}
	return withBirthDate(r, birthDate)
}

func (f Flow) onGenderOrSign(in Input) Result {
	if !in.IsAction() {
		return stay(domain.StateAwaitingGenderOrSign, PromptUseButtons, nil)
	}

	r := enter(domain.StateNone, PromptCompleted)
	r.Completed = true

	switch in.ActionID {
	case ActionGenderMale:
		r.Writes = append([]FieldWrite{{Field: domain.FieldGender, Value: domain.GenderMale}}, r.Writes...)
	case ActionGenderFemale:
		r.Writes = append([]FieldWrite{{Field: domain.FieldGender, Value: domain.GenderFemale}}, r.Writes...)
	case ActionSignConfirm:
	default:
		return stay(domain.StateAwaitingGenderOrSign, PromptUseButtons, nil)
	}
	return r
}

func (f Flow) onChangeBirthDate(in Input, today time.Time) Result {
	birthDate, res, ok := acceptBirthDate(domain.StateChangingBirthDate, in, today)
	if !ok {
		return res
	}

	r := enter(domain.StateNone, PromptBirthDateUpdated)
	r.Completed = true
	return withBirthDate(r, birthDate)
}

// acceptBirthDate разбирает ввод; при ошибке возвращает самопереход с подсказкой
func acceptBirthDate(state domain.ConversationState, in Input, today time.Time) (time.Time, Result, bool) {
	if in.IsAction() {
		return time.Time{}, stay(state, PromptAskBirthDate, nil), false
	}

	birthDate, err := ParseBirthDate(in.Text, today)
	switch {
	case errors.Is(err, ErrBirthDateFuture):
		return time.Time{}, stay(state, PromptBirthDateFuture, err), false
	case err != nil:
		return time.Time{}, stay(state, PromptBirthDateFormat, err), false
	}
	return birthDate, Result{}, true
}

func withBirthDate(r Result, birthDate time.Time) Result {
	sign := domain.SignForDate(birthDate)
	r.Writes = append([]FieldWrite{
		{Field: domain.FieldBirthDate, Value: birthDate},
		{Field: domain.FieldZodiacSign, Value: sign},
	}, r.Writes...)
	r.Sign = sign
	return r
}

// ParseBirthDate строгий разбор ДД.ММ.ГГГГ: реальная дата не позже today
func ParseBirthDate(text string, today time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if !birthDatePattern.MatchString(text) {
		return time.Time{}, ErrBirthDateFormat
	}

	// time.Parse отвергает несуществующие даты вроде 31.04
	birthDate, err := time.ParseInLocation(birthDateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, ErrBirthDateFormat
	}

	ty, tm, td := today.Date()
	if birthDate.After(time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)) {
		return time.Time{}, ErrBirthDateFuture
	}
	return birthDate, nil
}

// enter переход в состояние с записью conversation_state
func enter(next domain.ConversationState, prompt Prompt) Result {
	return Result{
		Next:   next,
		Prompt: prompt,
		Writes: []FieldWrite{{Field: domain.FieldConversationState, Value: next}},
	}
}

// stay самопереход без записей
func stay(state domain.ConversationState, prompt Prompt, err error) Result {
	return Result{Next: state, Prompt: prompt, Err: err}
}
