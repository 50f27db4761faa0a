package domain

// ConversationState шаг диалога, ввод на котором сейчас ожидается от пользователя
type ConversationState string

const (
	StateNone                   ConversationState = "none"
	StateAwaitingName           ConversationState = "awaiting_name"
	StateAwaitingBirthDate      ConversationState = "awaiting_birth_date"
	StateAwaitingGenderOrSign   ConversationState = "awaiting_gender_or_sign"
	StateChangingBirthDate      ConversationState = "changing_birth_date"
	StateAwaitingOracleQuestion ConversationState = "awaiting_oracle_question"
)

func (s ConversationState) String() string {
	return string(s)
}

func (s ConversationState) IsValid() bool {
	switch s {
	case StateNone, StateAwaitingName, StateAwaitingBirthDate, StateAwaitingGenderOrSign,
		StateChangingBirthDate, StateAwaitingOracleQuestion:
		return true
	default:
		return false
	}
}

// IsOnboarding true для шагов, которыми владеет машина состояний регистрации
func (s ConversationState) IsOnboarding() bool {
	switch s {
	case StateAwaitingName, StateAwaitingBirthDate, StateAwaitingGenderOrSign, StateChangingBirthDate:
		return true
	default:
		return false
	}
}
